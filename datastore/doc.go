/*
Package datastore defines the core interfaces for ItemStore's persistence layer.

DataStore[T] provides typed single-key item operations:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key any, opts ...storagemodels.GetOption) (*T, error)
	    Put(ctx context.Context, item T) error
	    UpdateItem(ctx context.Context, item T, opts ...storagemodels.UpdateOption) (*T, error)
	    Stream(ctx context.Context, params *storagemodels.ScanParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
	    Delete(ctx context.Context, key any) error
	}

UpdateItem is a partial update: nil pointer fields of T are explicit nulls,
omitempty fields that are empty are omitted. See package update for the merge
rules.

TableManager covers the table lifecycle used by tests and tooling.

Implementations:
  - ddb: DynamoDB implementation
  - mock: In-memory implementation for testing
*/
package datastore
