/*
Package storagemodels defines the data shapes shared by ItemStore packages.

Records:

A Record is the complete attribute map of one stored item; a PartialRecord is
an update payload. The two are both map[string]types.AttributeValue, but a
PartialRecord distinguishes an omitted attribute (no map entry) from an
explicit null (a NULL member):

	partial := storagemodels.PartialRecord{
	    "id":               &types.AttributeValueMemberS{Value: "id"},
	    "integerAttribute": &types.AttributeValueMemberNULL{Value: true},
	}

Options:

Reads, partial updates and scans are configured with functional options:

	item, err := store.GetOne(ctx, "id", storagemodels.WithConsistentRead(true))

	item, err := store.UpdateItem(ctx, bean,
	    storagemodels.WithIgnoreNulls(true),
	    storagemodels.WithUpdatedAt("updatedAt"),
	)

	results := store.Stream(ctx, &storagemodels.ScanParams{},
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	)
*/
package storagemodels
