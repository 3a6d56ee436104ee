/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package itemstore

import (
	"context"
	"fmt"

	"github.com/suparena/itemstore/datastore"
	"github.com/suparena/itemstore/storagemodels"
	"golang.org/x/sync/errgroup"
)

// UpdateAll applies a partial update for each item, running at most jobs
// updates at once. Results are returned in the order of items. The first
// failure cancels the updates that have not started yet and is returned
// together with the results gathered so far.
func UpdateAll[T any](
	ctx context.Context,
	store datastore.DataStore[T],
	items []T,
	jobs int,
	opts ...storagemodels.UpdateOption,
) ([]*T, error) {
	if jobs < 1 {
		jobs = 1
	}

	results := make([]*T, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	started := 0
	for i := range items {
		if gctx.Err() != nil {
			break
		}
		started++
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := store.UpdateItem(gctx, items[i], opts...)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	err := g.Wait()
	if err == nil && started < len(items) {
		err = ctx.Err()
	}
	return results, err
}
