/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/suparena/itemstore"
	"github.com/suparena/itemstore/config"
	"github.com/suparena/itemstore/datastore/ddb"
)

//go:embed itemstore.yaml
var configText string

var cfgFile string

type cfgData struct {
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Table        string
	KeyAttribute string
	KeyType      string
	MaxAttempts  int
	JobsNum      int

	// pointers tell an unset value from false
	ConsistentRead *bool
	IgnoreNulls    *bool
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "itemstore",
	Short: "Reads and writes items of a DynamoDB table",
	Long: `itemstore gets, puts, deletes and partially updates items of a DynamoDB
table keyed by a single attribute.

Item files are YAML or JSON objects. An attribute set to null is an explicit
null, an attribute left out is not touched by an update.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logLevel.Set(slog.LevelDebug)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := cmd.Flags().GetBool("version")
		if err != nil {
			return err
		}
		if version {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", itemstore.GetVersionInfo())
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().BoolP("version", "V", false, "Returns version and build date")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/itemstore.yaml)")
	pf.BoolP("verbose", "v", false, "Log debug messages")
	pf.StringP("table", "t", "", "Table name")
	pf.String("region", "", "AWS region")
	pf.String("endpoint", "", "DynamoDB endpoint override")
	pf.String("key-attr", "", "Name of the partition key attribute")
	pf.String("key-type", "", "Type of the partition key: S, N or B")

	for key, flag := range map[string]string{
		"Table":        "table",
		"Region":       "region",
		"Endpoint":     "endpoint",
		"KeyAttribute": "key-attr",
		"KeyType":      "key-type",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("itemstore")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			slog.Warn("Cannot find home dir", "error", err)
			return
		}
		cfgDir := filepath.Join(homeDir, ".config")
		viper.AddConfigPath(cfgDir)
		viper.SetConfigName("itemstore")
		touchConfigFile(filepath.Join(cfgDir, "itemstore.yaml"))
	}

	if err := viper.ReadInConfig(); err != nil {
		slog.Debug("No config file read", "error", err)
		return
	}
	slog.Debug("Using config file", "path", viper.ConfigFileUsed())
}

// getOpts layers the environment, the config file and the command line flags,
// later sources overriding earlier ones.
func getOpts() []config.Option {
	return append(config.FromEnv(), viperOpts(viper.GetViper())...)
}

// viperOpts turns the settings known to v into config options.
func viperOpts(v *viper.Viper) []config.Option {
	var opts []config.Option

	cfg := cfgData{}
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("Cannot unmarshal config file", "error", err)
	}

	if cfg.Region != "" {
		opts = append(opts, config.OptRegion(cfg.Region))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, config.OptEndpoint(cfg.Endpoint))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.OptCredentials(cfg.AccessKey, cfg.SecretKey))
	}
	if cfg.Table != "" {
		opts = append(opts, config.OptTableName(cfg.Table))
	}
	if cfg.KeyAttribute != "" || cfg.KeyType != "" {
		opts = append(opts, config.OptKey(cfg.KeyAttribute, cfg.KeyType))
	}
	if cfg.MaxAttempts != 0 {
		opts = append(opts, config.OptMaxAttempts(cfg.MaxAttempts))
	}
	if cfg.JobsNum != 0 {
		opts = append(opts, config.OptJobsNum(cfg.JobsNum))
	}
	if cfg.ConsistentRead != nil {
		opts = append(opts, config.OptConsistentRead(*cfg.ConsistentRead))
	}
	if cfg.IgnoreNulls != nil {
		opts = append(opts, config.OptIgnoreNulls(*cfg.IgnoreNulls))
	}
	return opts
}

// newStore builds the data store for the configured table.
func newStore(cmd *cobra.Command) (*ddb.DynamodbDataStore[map[string]any], config.Config, error) {
	cfg := config.New(getOpts()...)
	if cfg.TableName == "" {
		return nil, cfg, fmt.Errorf("no table given, use --table or set Table in the config file")
	}
	store, err := ddb.NewDynamodbDataStoreFromConfig[map[string]any](cmd.Context(), cfg)
	if err != nil {
		return nil, cfg, err
	}
	return store, cfg, nil
}

// touchConfigFile checks if config file exists, and if not, it gets created.
func touchConfigFile(configPath string) {
	if _, err := os.Stat(configPath); err == nil {
		return
	}

	slog.Info("Creating config file", "path", configPath)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		slog.Warn("Cannot create config dir", "error", err)
		return
	}
	if err := os.WriteFile(configPath, []byte(configText), 0o644); err != nil {
		slog.Warn("Cannot write to config file", "error", err)
	}
}
