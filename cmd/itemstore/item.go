/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/suparena/itemstore/errors"
	"github.com/suparena/itemstore/storagemodels"
)

var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Prints the item stored under KEY as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := newStore(cmd)
		if err != nil {
			return err
		}

		consistent := cfg.ConsistentRead
		if cmd.Flags().Changed("consistent") {
			consistent, _ = cmd.Flags().GetBool("consistent")
		}

		item, err := store.GetOne(cmd.Context(), args[0], storagemodels.WithConsistentRead(consistent))
		if err != nil {
			return err
		}
		if item == nil {
			return errors.NewNotFoundError("item", args[0])
		}
		return writeItems(cmd.OutOrStdout(), *item)
	},
}

var putCmd = &cobra.Command{
	Use:   "put -f FILE",
	Short: "Replaces whole items with the items in FILE",
	Long: `Replaces whole items with the items in FILE. Attributes that are null
are not stored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		files, _ := cmd.Flags().GetStringSlice("file")
		items, err := readItemFiles(files, cmd.InOrStdin())
		if err != nil {
			return err
		}

		store, _, err := newStore(cmd)
		if err != nil {
			return err
		}
		for i, item := range items {
			if err := store.Put(cmd.Context(), item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		slog.Info("Items stored", "count", len(items))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete KEY",
	Short: "Deletes the item stored under KEY",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := newStore(cmd)
		if err != nil {
			return err
		}
		return store.Delete(cmd.Context(), args[0])
	},
}

func init() {
	getCmd.Flags().Bool("consistent", true, "Use a strongly consistent read")
	putCmd.Flags().StringSliceP("file", "f", nil, "Item file, - for stdin (repeatable)")
	_ = putCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(getCmd, putCmd, deleteCmd)
}
