/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Typed items marshaled with attributevalue (dynamodbav struct tags)
  - Strongly or eventually consistent reads
  - Partial updates with a null-handling policy, executed as one UpdateItem
  - Optional existence condition and updatedAt stamping on updates
  - Streaming scans with retry logic and progress tracking
  - Table create/delete/recreate with waiters

Partial Updates:

Nil pointer fields of an item are explicit nulls; omitempty fields that are
empty are left out of the update altogether:

	type SimpleItem struct {
	    ID               string  `dynamodbav:"id"`
	    IntegerAttribute *int    `dynamodbav:"integerAttribute"`
	    StringAttribute  *string `dynamodbav:"stringAttribute,omitempty"`
	}

	// integerAttribute is null: skipped
	item, err := store.UpdateItem(ctx, SimpleItem{ID: "id"},
	    storagemodels.WithIgnoreNulls(true))

	// integerAttribute is null: rejected with errors.ErrNullAttributeRejected
	_, err = store.UpdateItem(ctx, SimpleItem{ID: "id"},
	    storagemodels.WithIgnoreNulls(false))

Table Lifecycle:

	store, _ := ddb.NewDynamodbDataStore[SimpleItem](client, "UpdateItem",
	    ddb.WithSchema(registry.Schema{KeyAttribute: "id"}))
	err := store.RecreateTable(ctx) // a missing table is fine

Streaming:

	results := store.Stream(ctx, &storagemodels.ScanParams{ConsistentRead: true},
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	    storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
	        slog.Info("scan progress", "items", p.ItemsProcessed)
	    }),
	)
*/
package ddb
