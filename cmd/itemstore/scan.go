/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/suparena/itemstore/storagemodels"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Prints all items of the table as YAML documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, _, err := newStore(cmd)
		if err != nil {
			return err
		}

		pageSize, _ := cmd.Flags().GetInt32("page-size")
		consistent, _ := cmd.Flags().GetBool("consistent")

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		params := &storagemodels.ScanParams{ConsistentRead: consistent}
		results := store.Stream(ctx, params,
			storagemodels.WithPageSize(pageSize),
			storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
				slog.Debug("Scan progress", "items", p.ItemsProcessed, "pages", p.PagesProcessed)
			}),
		)

		enc := newItemEncoder(cmd.OutOrStdout())
		count := 0
		for res := range results {
			if res.Error != nil {
				return res.Error
			}
			if err := enc.Encode(res.Item); err != nil {
				return err
			}
			count++
		}
		if err := enc.Close(); err != nil {
			return err
		}
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		slog.Debug("Scan finished", "items", count)
		return nil
	},
}

func init() {
	scanCmd.Flags().Int32("page-size", 100, "Items per scan page")
	scanCmd.Flags().Bool("consistent", false, "Use strongly consistent reads")

	rootCmd.AddCommand(scanCmd)
}
