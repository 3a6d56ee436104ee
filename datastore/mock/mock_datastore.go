/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.DataStore
// for tests. It merges partial updates with the same writer as the DynamoDB
// store, so null handling behaves identically.
package mock

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/itemstore/datastore"
	"github.com/suparena/itemstore/errors"
	"github.com/suparena/itemstore/registry"
	"github.com/suparena/itemstore/storagemodels"
	"github.com/suparena/itemstore/update"
)

var (
	_ datastore.DataStore[struct{}] = (*DataStore[struct{}])(nil)
	_ datastore.TableManager        = (*DataStore[struct{}])(nil)
)

// DataStore is a mock implementation of datastore.DataStore[T] for testing
type DataStore[T any] struct {
	mu      sync.RWMutex
	data    map[string]storagemodels.Record
	schema  registry.Schema
	writer  update.Writer
	now     func() time.Time
	missing bool

	getError    error
	putError    error
	updateError error
	deleteError error
}

// New creates a mock DataStore using the schema registered for T, or an "id"
// string key when T has none.
func New[T any]() *DataStore[T] {
	schema, ok := registry.GetSchema[T]()
	if !ok {
		schema = registry.Schema{KeyAttribute: "id", KeyType: types.ScalarAttributeTypeS}
	}
	return &DataStore[T]{
		data:   make(map[string]storagemodels.Record),
		schema: schema,
		writer: update.NewWriter(schema.KeyAttribute),
		now:    time.Now,
	}
}

// WithSchema replaces the key schema
func (m *DataStore[T]) WithSchema(schema registry.Schema) *DataStore[T] {
	m.schema = schema
	m.writer = update.NewWriter(schema.KeyAttribute)
	return m
}

// WithClock sets the time source for update timestamps
func (m *DataStore[T]) WithClock(now func() time.Time) *DataStore[T] {
	m.now = now
	return m
}

// WithGetError makes GetOne operations return an error
func (m *DataStore[T]) WithGetError(err error) *DataStore[T] {
	m.getError = err
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithUpdateError makes UpdateItem operations return an error
func (m *DataStore[T]) WithUpdateError(err error) *DataStore[T] {
	m.updateError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// GetOne returns the item stored under key, or nil if there is none. Reads
// are always consistent.
func (m *DataStore[T]) GetOne(ctx context.Context, key any, _ ...storagemodels.GetOption) (*T, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	k, err := m.keyString(key)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkTable(); err != nil {
		return nil, err
	}

	record, ok := m.data[k]
	if !ok {
		return nil, nil
	}
	return decode[T](record)
}

// Put stores item, replacing any item with the same key
func (m *DataStore[T]) Put(ctx context.Context, item T) error {
	if m.putError != nil {
		return m.putError
	}
	partial, err := encode(item)
	if err != nil {
		return err
	}
	record, err := m.writer.Apply(nil, partial, update.Policy{IgnoreNulls: true})
	if err != nil {
		return err
	}
	k, err := m.keyString(record[m.schema.KeyAttribute])
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkTable(); err != nil {
		return err
	}
	m.data[k] = record
	return nil
}

// UpdateItem merges item into the stored record under the same key
func (m *DataStore[T]) UpdateItem(ctx context.Context, item T, opts ...storagemodels.UpdateOption) (*T, error) {
	if m.updateError != nil {
		return nil, m.updateError
	}
	options := storagemodels.NewUpdateOptions(opts...)

	partial, err := encode(item)
	if err != nil {
		return nil, err
	}
	changes, err := m.writer.Changes(partial, update.PolicyFrom(options))
	if err != nil {
		return nil, err
	}
	if options.UpdatedAtAttribute != "" {
		if err := m.writer.StampUpdatedAt(changes, options.UpdatedAtAttribute, m.now()); err != nil {
			return nil, err
		}
	}
	k, err := m.keyString(changes[m.schema.KeyAttribute])
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkTable(); err != nil {
		return nil, err
	}

	existing, found := m.data[k]
	if options.RequireExists && !found {
		return nil, errors.NewConditionFailedError("update",
			fmt.Sprintf("attribute_exists(%s)", m.schema.KeyAttribute), nil)
	}

	record, err := m.writer.Apply(existing, storagemodels.PartialRecord(changes), update.PolicyFrom(options))
	if err != nil {
		return nil, err
	}
	m.data[k] = record
	return decode[T](record)
}

// Stream emits every stored item in key order
func (m *DataStore[T]) Stream(ctx context.Context, params *storagemodels.ScanParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}
	resultChan := make(chan storagemodels.StreamResult[T], options.BufferSize)

	m.mu.RLock()
	tableErr := m.checkTable()
	keys := slices.Sorted(maps.Keys(m.data))
	records := make([]storagemodels.Record, len(keys))
	for i, k := range keys {
		records[i] = m.data[k].Clone()
	}
	m.mu.RUnlock()

	go func() {
		defer close(resultChan)

		if tableErr != nil {
			select {
			case <-ctx.Done():
			case resultChan <- storagemodels.StreamResult[T]{Error: tableErr}:
			}
			return
		}

		for i, record := range records {
			result := storagemodels.StreamResult[T]{
				Raw: record,
				Meta: storagemodels.StreamMeta{
					Index:      int64(i),
					PageNumber: 1,
					Timestamp:  time.Now(),
				},
			}
			if item, err := decode[T](record); err != nil {
				result.Error = err
			} else {
				result.Item = *item
			}

			select {
			case <-ctx.Done():
				return
			case resultChan <- result:
			}
		}
	}()

	return resultChan
}

// Delete removes the item under key. A missing item is not an error.
func (m *DataStore[T]) Delete(ctx context.Context, key any) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	k, err := m.keyString(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkTable(); err != nil {
		return err
	}
	delete(m.data, k)
	return nil
}

// CreateTable marks the table as present
func (m *DataStore[T]) CreateTable(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.missing {
		return errors.NewAlreadyExistsError("table", "mock")
	}
	m.missing = false
	return nil
}

// DeleteTable drops all data and marks the table as absent
func (m *DataStore[T]) DeleteTable(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missing = true
	m.data = make(map[string]storagemodels.Record)
	return nil
}

// RecreateTable leaves an empty, present table
func (m *DataStore[T]) RecreateTable(ctx context.Context) error {
	if err := m.DeleteTable(ctx); err != nil {
		return err
	}
	return m.CreateTable(ctx)
}

// Helper methods for testing

// SetRecord stores a raw record, bypassing the writer
func (m *DataStore[T]) SetRecord(record storagemodels.Record) error {
	k, err := m.keyString(record[m.schema.KeyAttribute])
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[k] = record.Clone()
	return nil
}

// Record returns a copy of the raw record under key
func (m *DataStore[T]) Record(key any) (storagemodels.Record, bool) {
	k, err := m.keyString(key)
	if err != nil {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.data[k]
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

// Count returns the number of stored items
func (m *DataStore[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *DataStore[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]storagemodels.Record)
}

func (m *DataStore[T]) checkTable() error {
	if m.missing {
		return errors.NewNotFoundError("table", "mock")
	}
	return nil
}

// keyString normalizes a key value the way the DynamoDB store does and
// returns its map key.
func (m *DataStore[T]) keyString(key any) (string, error) {
	av, ok := key.(types.AttributeValue)
	if !ok {
		var err error
		if av, err = attributevalue.Marshal(key); err != nil {
			return "", fmt.Errorf("failed to marshal key: %w", err)
		}
	}
	if s, isString := av.(*types.AttributeValueMemberS); isString {
		switch m.schema.AttributeType() {
		case types.ScalarAttributeTypeN:
			av = &types.AttributeValueMemberN{Value: s.Value}
		case types.ScalarAttributeTypeB:
			av = &types.AttributeValueMemberB{Value: []byte(s.Value)}
		}
	}
	if storagemodels.IsNull(av) {
		return "", errors.NewMissingKeyAttributeError(m.schema.KeyAttribute)
	}
	return storagemodels.KeyString(av)
}

func encode[T any](item T) (storagemodels.PartialRecord, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}
	return storagemodels.PartialRecord(av), nil
}

func decode[T any](record storagemodels.Record) (*T, error) {
	result := new(T)
	if err := attributevalue.UnmarshalMap(record, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}
