/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package itemstore

import (
	"reflect"
	"slices"
	"sync"

	"github.com/suparena/itemstore/datastore"
	"github.com/suparena/itemstore/errors"
)

// Catalog holds named data stores, kept apart per item type so lookups stay
// typed. A Catalog is safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	stores map[reflect.Type]map[string]any
}

// NewCatalog creates an empty Catalog
func NewCatalog() *Catalog {
	return &Catalog{
		stores: make(map[reflect.Type]map[string]any),
	}
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register adds ds under name for item type T
func Register[T any](c *Catalog, name string, ds datastore.DataStore[T]) error {
	if name == "" {
		return errors.NewValidationError("name", "must not be empty")
	}
	if ds == nil {
		return errors.NewValidationError("ds", "must not be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	typ := typeKey[T]()
	named, ok := c.stores[typ]
	if !ok {
		named = make(map[string]any)
		c.stores[typ] = named
	}
	if _, exists := named[name]; exists {
		return errors.NewAlreadyExistsError("datastore", name)
	}
	named[name] = ds
	return nil
}

// Lookup returns the data store registered under name for item type T
func Lookup[T any](c *Catalog, name string) (datastore.DataStore[T], error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ds, exists := c.stores[typeKey[T]()][name]
	if !exists {
		return nil, errors.NewNotFoundError("datastore", name)
	}
	return ds.(datastore.DataStore[T]), nil
}

// Remove deletes the data store registered under name for item type T
func Remove[T any](c *Catalog, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	named := c.stores[typeKey[T]()]
	if _, exists := named[name]; !exists {
		return errors.NewNotFoundError("datastore", name)
	}
	delete(named, name)
	return nil
}

// Names returns the sorted names registered for item type T
func Names[T any](c *Catalog) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	named := c.stores[typeKey[T]()]
	names := make([]string, 0, len(named))
	for k := range named {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
