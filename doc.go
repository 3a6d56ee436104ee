/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package itemstore provides typed storage of items in DynamoDB tables keyed by a
single attribute, with partial updates that distinguish an omitted attribute
from an explicit null.

An update writes only the attributes present in the item. A nil pointer field
without omitempty is an explicit null: with ignore-nulls set it leaves the
stored value alone, otherwise the whole update is rejected before anything is
written. Attributes that are omitted keep their stored value either way.

Key Features:
  - Type-safe operations using Go generics
  - Server side merge in a single UpdateItem call
  - Streaming scans with retry logic and progress tracking
  - Semantic error types for better error handling
  - An in-memory mock store with the same merge semantics

Basic Usage:

	cfg := config.New(config.FromEnv()...)
	store, err := ddb.NewDynamodbDataStoreFromConfig[Item](ctx, cfg)
	if err != nil {
		return err
	}

	item, err := store.UpdateItem(ctx, Item{ID: "id123", Count: &n},
		storagemodels.WithIgnoreNulls(true))
	if errors.IsNullAttributeRejected(err) {
		// the item held a null and nulls are not ignored
	}

	// keep several stores under names
	catalog := itemstore.NewCatalog()
	itemstore.Register[Item](catalog, "items", store)
	items, _ := itemstore.Lookup[Item](catalog, "items")

	// concurrent partial updates, results in input order
	updated, err := itemstore.UpdateAll(ctx, items, batch, 8,
		storagemodels.WithIgnoreNulls(true))
*/
package itemstore
