/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/itemstore/errors"
)

// Schema describes the key of the table a Go type is stored in.
type Schema struct {
	// KeyAttribute is the name of the partition key attribute.
	KeyAttribute string
	// KeyType is the scalar type of the key: S, N or B. Defaults to S.
	KeyType types.ScalarAttributeType
}

// Validate checks that the schema names a key with a supported type.
func (s Schema) Validate() error {
	if s.KeyAttribute == "" {
		return errors.NewValidationError("KeyAttribute", "must not be empty")
	}
	switch s.KeyType {
	case "", types.ScalarAttributeTypeS, types.ScalarAttributeTypeN, types.ScalarAttributeTypeB:
		return nil
	default:
		return errors.NewValidationError("KeyType", "must be one of S, N or B")
	}
}

// AttributeType returns KeyType, defaulting to S.
func (s Schema) AttributeType() types.ScalarAttributeType {
	if s.KeyType == "" {
		return types.ScalarAttributeTypeS
	}
	return s.KeyType
}

var (
	schemaRegistry = make(map[reflect.Type]Schema)
	mu             sync.RWMutex
)

// RegisterSchema associates a Go type T with the schema of its table.
// Registering T again replaces the previous schema.
func RegisterSchema[T any](schema Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	schemaRegistry[typeOf[T]()] = schema
	return nil
}

// MustRegisterSchema is RegisterSchema for init functions; it panics on an
// invalid schema.
func MustRegisterSchema[T any](schema Schema) {
	if err := RegisterSchema[T](schema); err != nil {
		panic(err)
	}
}

// GetSchema retrieves the schema for type T, if any.
func GetSchema[T any]() (Schema, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := schemaRegistry[typeOf[T]()]
	return s, ok
}

// UnregisterSchema forgets the schema for type T.
func UnregisterSchema[T any]() {
	mu.Lock()
	defer mu.Unlock()
	delete(schemaRegistry, typeOf[T]())
}

// typeOf works for interface and map types too, unlike reflect.TypeOf on a zero value.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
