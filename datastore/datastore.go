/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/itemstore/storagemodels"
)

// DataStore persists items of type T in a table with a single key attribute.
type DataStore[T any] interface {
	// GetOne returns the item stored under key, or nil if there is none.
	GetOne(ctx context.Context, key any, opts ...storagemodels.GetOption) (*T, error)

	// Put replaces the whole item.
	Put(ctx context.Context, item T) error

	// UpdateItem writes the attributes present in item and returns the item as
	// stored afterwards. The item is created when it does not exist.
	UpdateItem(ctx context.Context, item T, opts ...storagemodels.UpdateOption) (*T, error)

	Stream(ctx context.Context, params *storagemodels.ScanParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]

	Delete(ctx context.Context, key any) error
}

// TableManager creates and drops the table behind a DataStore.
type TableManager interface {
	// CreateTable creates the table and waits until it can be used.
	CreateTable(ctx context.Context) error

	// DeleteTable drops the table and waits until it is gone. A table that
	// does not exist is not an error.
	DeleteTable(ctx context.Context) error

	// RecreateTable drops and creates the table, leaving it empty.
	RecreateTable(ctx context.Context) error
}
