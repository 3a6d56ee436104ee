/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Creates and drops the configured table",
}

var tableCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates the table with the configured key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, _, err := newStore(cmd)
		if err != nil {
			return err
		}
		return store.CreateTable(cmd.Context())
	},
}

var tableDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Drops the table, succeeding if it does not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, _, err := newStore(cmd)
		if err != nil {
			return err
		}
		return store.DeleteTable(cmd.Context())
	},
}

var tableRecreateCmd = &cobra.Command{
	Use:   "recreate",
	Short: "Drops and creates the table, leaving it empty",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, _, err := newStore(cmd)
		if err != nil {
			return err
		}
		if err := store.RecreateTable(cmd.Context()); err != nil {
			return err
		}
		slog.Info("Table is empty", "table", store.TableName())
		return nil
	},
}

func init() {
	tableCmd.AddCommand(tableCreateCmd, tableDeleteCmd, tableRecreateCmd)
	rootCmd.AddCommand(tableCmd)
}
