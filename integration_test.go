//go:build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package itemstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/itemstore/config"
	"github.com/suparena/itemstore/datastore/ddb"
	"github.com/suparena/itemstore/datastore/testmodels"
	"github.com/suparena/itemstore/errors"
	"github.com/suparena/itemstore/storagemodels"
)

// TestUpdateItemIgnoreNulls runs against a live table named by AWS_DDB_TABLE
// (or DDB_TEST_TABLE_NAME), read from the environment or a .env file. The
// table is dropped and recreated.
func TestUpdateItemIgnoreNulls(t *testing.T) {
	cfg := config.New(config.FromEnv()...)
	if cfg.TableName == "" {
		t.Skip("no test table configured, set AWS_DDB_TABLE")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := ddb.NewDynamodbDataStoreFromConfig[testmodels.SimpleItem](ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, store.RecreateTable(ctx))
	t.Cleanup(func() {
		if err := store.DeleteTable(context.Background()); err != nil {
			t.Logf("failed to delete table %s: %v", store.TableName(), err)
		}
	})

	consistent := storagemodels.WithConsistentRead(true)
	const key = "id123"
	n := 123

	tests := []struct {
		name        string
		item        testmodels.SimpleItem
		ignoreNulls bool
		wantErr     bool
		wantInt     *int
	}{
		{
			name:        "key only with nulls ignored",
			item:        testmodels.SimpleItem{ID: key},
			ignoreNulls: true,
		},
		{
			name:    "explicit null rejected",
			item:    testmodels.SimpleItem{ID: key},
			wantErr: true,
		},
		{
			name:    "value written",
			item:    testmodels.SimpleItem{ID: key, IntegerAttribute: &n},
			wantInt: &n,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, store.Delete(ctx, key))

			before, err := store.GetOne(ctx, key, consistent)
			require.NoError(t, err)
			require.Nil(t, before)

			_, err = store.UpdateItem(ctx, tt.item, storagemodels.WithIgnoreNulls(tt.ignoreNulls))
			if tt.wantErr {
				assert.True(t, errors.IsNullAttributeRejected(err), "got %v", err)
				after, err := store.GetOne(ctx, key, consistent)
				require.NoError(t, err)
				assert.Nil(t, after)
				return
			}
			require.NoError(t, err)

			after, err := store.GetOne(ctx, key, consistent)
			require.NoError(t, err)
			require.NotNil(t, after)
			assert.Equal(t, key, after.ID)
			assert.Equal(t, tt.wantInt, after.IntegerAttribute)
			assert.Nil(t, after.StringAttribute)
		})
	}
}
