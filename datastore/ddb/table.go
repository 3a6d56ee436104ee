/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	itemerrors "github.com/suparena/itemstore/errors"
)

// CreateTable creates the table with the store's key as hash key and
// on-demand billing, then waits until it is ACTIVE.
func (d *DynamodbDataStore[T]) CreateTable(ctx context.Context) error {
	keyAttr := d.schema.KeyAttribute
	_, err := d.client.CreateTable(ctx, &sdk.CreateTableInput{
		TableName: &d.tableName,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(keyAttr), AttributeType: d.schema.AttributeType()},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(keyAttr), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return fmt.Errorf("%w: %w", itemerrors.NewAlreadyExistsError("table", d.tableName), err)
		}
		return fmt.Errorf("CreateTable failed: %w", err)
	}

	waiter := sdk.NewTableExistsWaiter(d.client)
	if err := waiter.Wait(ctx, &sdk.DescribeTableInput{TableName: &d.tableName}, d.tableWait); err != nil {
		return fmt.Errorf("table %s did not become active: %w", d.tableName, err)
	}

	d.logger.Info("table created", "table", d.tableName, "key", keyAttr)
	return nil
}

// DeleteTable drops the table and waits until it is gone. A missing table is
// treated as already deleted.
func (d *DynamodbDataStore[T]) DeleteTable(ctx context.Context) error {
	_, err := d.client.DeleteTable(ctx, &sdk.DeleteTableInput{TableName: &d.tableName})
	if err != nil {
		if isResourceNotFound(err) {
			d.logger.Debug("table already absent", "table", d.tableName)
			return nil
		}
		return fmt.Errorf("DeleteTable failed: %w", err)
	}

	waiter := sdk.NewTableNotExistsWaiter(d.client)
	if err := waiter.Wait(ctx, &sdk.DescribeTableInput{TableName: &d.tableName}, d.tableWait); err != nil {
		return fmt.Errorf("table %s was not deleted: %w", d.tableName, err)
	}

	d.logger.Info("table deleted", "table", d.tableName)
	return nil
}

// RecreateTable drops the table if it exists and creates it empty.
func (d *DynamodbDataStore[T]) RecreateTable(ctx context.Context) error {
	if err := d.DeleteTable(ctx); err != nil {
		return err
	}
	return d.CreateTable(ctx)
}
