/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "id", cfg.KeyAttribute)
	assert.Equal(t, "S", cfg.KeyType)
	assert.True(t, cfg.ConsistentRead)
	assert.False(t, cfg.IgnoreNulls)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 4, cfg.JobsNum)
}

func TestOptions(t *testing.T) {
	cfg := New(
		OptRegion("eu-west-1"),
		OptCredentials("ak", "sk"),
		OptEndpoint("http://localhost:8000"),
		OptTableName("UpdateItem"),
		OptKey("pk", "N"),
		OptConsistentRead(false),
		OptIgnoreNulls(true),
		OptMaxAttempts(5),
		OptTableWait(time.Second),
		OptJobsNum(8),
	)

	assert.Equal(t, Config{
		Region:         "eu-west-1",
		AccessKey:      "ak",
		SecretKey:      "sk",
		Endpoint:       "http://localhost:8000",
		TableName:      "UpdateItem",
		KeyAttribute:   "pk",
		KeyType:        "N",
		ConsistentRead: false,
		IgnoreNulls:    true,
		MaxAttempts:    5,
		TableWait:      time.Second,
		JobsNum:        8,
	}, cfg)
}

func TestNonPositiveOptionsKeepDefaults(t *testing.T) {
	cfg := New(OptMaxAttempts(0), OptJobsNum(-1), OptTableWait(0), OptKey("pk", ""))
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 4, cfg.JobsNum)
	assert.Equal(t, 2*time.Minute, cfg.TableWait)
	assert.Equal(t, "S", cfg.KeyType)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("AWS_REGION", "ap-south-1")
	t.Setenv("AWS_ACCESS_KEY", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "id-from-standard-var")
	t.Setenv("AWS_SECRET_KEY", "secret")
	t.Setenv("AWS_DDB_TABLE", "items")
	t.Setenv("DDB_ENDPOINT", "")
	t.Setenv("DDB_KEY_ATTRIBUTE", "pk")
	t.Setenv("DDB_KEY_TYPE", "N")
	t.Setenv("DDB_MAX_ATTEMPTS", "7")
	t.Setenv("DDB_CONSISTENT_READ", "false")
	t.Setenv("DDB_IGNORE_NULLS", "true")

	cfg := New(FromEnv()...)
	assert.Equal(t, "ap-south-1", cfg.Region)
	assert.Equal(t, "id-from-standard-var", cfg.AccessKey)
	assert.Equal(t, "secret", cfg.SecretKey)
	assert.Equal(t, "items", cfg.TableName)
	assert.Equal(t, "", cfg.Endpoint)
	assert.Equal(t, "pk", cfg.KeyAttribute)
	assert.Equal(t, "N", cfg.KeyType)
	assert.Equal(t, 7, cfg.MaxAttempts)
	assert.False(t, cfg.ConsistentRead)
	assert.True(t, cfg.IgnoreNulls)
}
