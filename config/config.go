/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings needed to reach a DynamoDB table.
type Config struct {
	// Region is the AWS region of the table.
	Region string

	// AccessKey and SecretKey are static credentials. When empty the default
	// AWS credential chain is used.
	AccessKey string
	SecretKey string

	// Endpoint overrides the DynamoDB endpoint, e.g. for DynamoDB Local.
	Endpoint string

	// TableName is the table items are stored in.
	TableName string

	// KeyAttribute is the name of the table's partition key.
	KeyAttribute string

	// KeyType is the scalar type of the key: S, N or B.
	KeyType string

	// ConsistentRead selects strongly consistent reads by default.
	ConsistentRead bool

	// IgnoreNulls is the default null-handling policy of partial updates.
	IgnoreNulls bool

	// MaxAttempts bounds the SDK retryer, first attempt included.
	MaxAttempts int

	// TableWait bounds how long table creation or deletion is awaited.
	TableWait time.Duration

	// JobsNum is the number of concurrent updates in batch operations.
	JobsNum int
}

// Option type allows to change settings for Config.
type Option func(*Config)

// OptRegion sets the AWS region.
func OptRegion(r string) Option {
	return func(cfg *Config) {
		cfg.Region = r
	}
}

// OptCredentials sets static credentials.
func OptCredentials(accessKey, secretKey string) Option {
	return func(cfg *Config) {
		cfg.AccessKey = accessKey
		cfg.SecretKey = secretKey
	}
}

// OptEndpoint sets a custom DynamoDB endpoint.
func OptEndpoint(e string) Option {
	return func(cfg *Config) {
		cfg.Endpoint = e
	}
}

// OptTableName sets the table name.
func OptTableName(t string) Option {
	return func(cfg *Config) {
		cfg.TableName = t
	}
}

// OptKey sets the key attribute name and type. Empty values keep the
// current setting.
func OptKey(attribute, keyType string) Option {
	return func(cfg *Config) {
		if attribute != "" {
			cfg.KeyAttribute = attribute
		}
		if keyType != "" {
			cfg.KeyType = keyType
		}
	}
}

// OptConsistentRead sets the default read consistency.
func OptConsistentRead(b bool) Option {
	return func(cfg *Config) {
		cfg.ConsistentRead = b
	}
}

// OptIgnoreNulls sets the default null-handling policy.
func OptIgnoreNulls(b bool) Option {
	return func(cfg *Config) {
		cfg.IgnoreNulls = b
	}
}

// OptMaxAttempts sets the SDK retry bound.
func OptMaxAttempts(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxAttempts = n
		}
	}
}

// OptTableWait sets how long table lifecycle operations are awaited.
func OptTableWait(d time.Duration) Option {
	return func(cfg *Config) {
		if d > 0 {
			cfg.TableWait = d
		}
	}
}

// OptJobsNum sets parallelism for batch updates.
func OptJobsNum(j int) Option {
	return func(cfg *Config) {
		if j > 0 {
			cfg.JobsNum = j
		}
	}
}

// New creates a Config with defaults, modified by opts.
func New(opts ...Option) Config {
	cfg := Config{
		Region:         "us-east-2",
		KeyAttribute:   "id",
		KeyType:        "S",
		ConsistentRead: true,
		MaxAttempts:    3,
		TableWait:      2 * time.Minute,
		JobsNum:        4,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// FromEnv loads a .env file from the working directory, if there is one, and
// turns the environment into options. Variables that are not set produce no
// option, so defaults and later options still apply.
func FromEnv() []Option {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	var opts []Option
	if r := os.Getenv("AWS_REGION"); r != "" {
		opts = append(opts, OptRegion(r))
	}
	access := firstEnv("AWS_ACCESS_KEY", "AWS_ACCESS_KEY_ID")
	secret := firstEnv("AWS_SECRET_KEY", "AWS_SECRET_ACCESS_KEY")
	if access != "" && secret != "" {
		opts = append(opts, OptCredentials(access, secret))
	}
	if e := os.Getenv("DDB_ENDPOINT"); e != "" {
		opts = append(opts, OptEndpoint(e))
	}
	if t := firstEnv("AWS_DDB_TABLE", "DDB_TEST_TABLE_NAME"); t != "" {
		opts = append(opts, OptTableName(t))
	}
	if k := os.Getenv("DDB_KEY_ATTRIBUTE"); k != "" {
		opts = append(opts, OptKey(k, os.Getenv("DDB_KEY_TYPE")))
	}
	if v, err := strconv.Atoi(os.Getenv("DDB_MAX_ATTEMPTS")); err == nil {
		opts = append(opts, OptMaxAttempts(v))
	}
	if b, err := strconv.ParseBool(os.Getenv("DDB_CONSISTENT_READ")); err == nil {
		opts = append(opts, OptConsistentRead(b))
	}
	if b, err := strconv.ParseBool(os.Getenv("DDB_IGNORE_NULLS")); err == nil {
		opts = append(opts, OptIgnoreNulls(b))
	}
	return opts
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
