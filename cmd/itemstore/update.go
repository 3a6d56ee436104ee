/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"
	"github.com/suparena/itemstore"
	"github.com/suparena/itemstore/storagemodels"
)

var updateCmd = &cobra.Command{
	Use:   "update -f FILE...",
	Short: "Partially updates items with the items in the given files",
	Long: `Partially updates items. Only attributes present in an item are written.
An attribute set to null fails the update unless --ignore-nulls is given, in
which case the stored value is kept. Every item must hold the key attribute.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		files, _ := flags.GetStringSlice("file")
		items, err := readItemFiles(files, cmd.InOrStdin())
		if err != nil {
			return err
		}

		store, cfg, err := newStore(cmd)
		if err != nil {
			return err
		}

		ignoreNulls := cfg.IgnoreNulls
		if flags.Changed("ignore-nulls") {
			ignoreNulls, _ = flags.GetBool("ignore-nulls")
		}
		opts := []storagemodels.UpdateOption{storagemodels.WithIgnoreNulls(ignoreNulls)}
		if requireExists, _ := flags.GetBool("require-exists"); requireExists {
			opts = append(opts, storagemodels.WithRequireExists())
		}
		if stamp, _ := flags.GetString("stamp"); stamp != "" {
			opts = append(opts, storagemodels.WithUpdatedAt(stamp))
		}
		jobs := cfg.JobsNum
		if flags.Changed("jobs") {
			jobs, _ = flags.GetInt("jobs")
		}

		results, err := itemstore.UpdateAll(cmd.Context(), store, items, jobs, opts...)
		if err != nil {
			return err
		}

		out := make([]any, len(results))
		for i, r := range results {
			out[i] = *r
		}
		return writeItems(cmd.OutOrStdout(), out...)
	},
}

func init() {
	f := updateCmd.Flags()
	f.StringSliceP("file", "f", nil, "Item file, - for stdin (repeatable)")
	f.Bool("ignore-nulls", false, "Keep stored values for attributes set to null")
	f.Bool("require-exists", false, "Fail instead of creating missing items")
	f.String("stamp", "", "Attribute set to the update time")
	f.IntP("jobs", "j", 0, "Number of concurrent updates")
	_ = updateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(updateCmd)
}
