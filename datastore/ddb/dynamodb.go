/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/itemstore/config"
	"github.com/suparena/itemstore/datastore"
	itemerrors "github.com/suparena/itemstore/errors"
	"github.com/suparena/itemstore/registry"
	"github.com/suparena/itemstore/storagemodels"
	"github.com/suparena/itemstore/update"
)

var (
	_ datastore.DataStore[struct{}] = (*DynamodbDataStore[struct{}])(nil)
	_ datastore.TableManager        = (*DynamodbDataStore[struct{}])(nil)
)

// DynamodbDataStore implements datastore.DataStore[T] on a DynamoDB table
// with a single partition key.
type DynamodbDataStore[T any] struct {
	client    Client
	tableName string
	schema    registry.Schema
	writer    update.Writer
	logger    *slog.Logger
	now       func() time.Time
	tableWait time.Duration
}

type options struct {
	schema    *registry.Schema
	logger    *slog.Logger
	now       func() time.Time
	tableWait time.Duration
}

// Option configures a DynamodbDataStore.
type Option func(*options)

// WithSchema sets the table schema instead of looking it up in the registry.
func WithSchema(schema registry.Schema) Option {
	return func(o *options) {
		o.schema = &schema
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock sets the time source used for update timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithTableWait bounds how long table creation and deletion are awaited.
func WithTableWait(d time.Duration) Option {
	return func(o *options) {
		o.tableWait = d
	}
}

// NewDynamodbDataStore constructs a DynamodbDataStore for type T on tableName.
func NewDynamodbDataStore[T any](client Client, tableName string, opts ...Option) (*DynamodbDataStore[T], error) {
	o := options{
		logger:    slog.Default(),
		now:       time.Now,
		tableWait: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var schema registry.Schema
	if o.schema != nil {
		schema = *o.schema
	} else {
		s, ok := registry.GetSchema[T]()
		if !ok {
			var zero T
			return nil, fmt.Errorf("%w: %T", itemerrors.ErrNoSchema, zero)
		}
		schema = s
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if tableName == "" {
		return nil, itemerrors.NewValidationError("tableName", "must not be empty")
	}

	return &DynamodbDataStore[T]{
		client:    client,
		tableName: tableName,
		schema:    schema,
		writer:    update.NewWriter(schema.KeyAttribute),
		logger:    o.logger,
		now:       o.now,
		tableWait: o.tableWait,
	}, nil
}

// NewDynamodbDataStoreFromConfig creates the SDK client from cfg and wraps it.
// The schema registered for T wins over the key settings of cfg.
func NewDynamodbDataStoreFromConfig[T any](ctx context.Context, cfg config.Config, opts ...Option) (*DynamodbDataStore[T], error) {
	client, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	base := []Option{WithTableWait(cfg.TableWait)}
	if _, ok := registry.GetSchema[T](); !ok {
		base = append(base, WithSchema(registry.Schema{
			KeyAttribute: cfg.KeyAttribute,
			KeyType:      types.ScalarAttributeType(cfg.KeyType),
		}))
	}
	return NewDynamodbDataStore[T](client, cfg.TableName, append(base, opts...)...)
}

// TableName returns the name of the underlying table.
func (d *DynamodbDataStore[T]) TableName() string {
	return d.tableName
}

// Schema returns the table schema in use.
func (d *DynamodbDataStore[T]) Schema() registry.Schema {
	return d.schema
}

// GetOne retrieves a single item by key. It returns nil, nil when no item is
// stored under key.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key any, opts ...storagemodels.GetOption) (*T, error) {
	options := storagemodels.NewGetOptions(opts...)

	keyMap, err := d.keyFor(key)
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      &d.tableName,
		Key:            keyMap,
		ConsistentRead: aws.Bool(options.ConsistentRead),
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Put stores item, replacing any item with the same key. Explicit nulls are
// not written.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, item T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	// a put is an update over nothing with nulls ignored
	record, err := d.writer.Apply(nil, storagemodels.PartialRecord(av), update.Policy{IgnoreNulls: true})
	if err != nil {
		return err
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      record,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// UpdateItem writes the attributes of item that are present, following the
// null policy in opts, and returns the whole item as stored afterwards. The
// merge runs server side in a single UpdateItem call.
func (d *DynamodbDataStore[T]) UpdateItem(ctx context.Context, item T, opts ...storagemodels.UpdateOption) (*T, error) {
	options := storagemodels.NewUpdateOptions(opts...)

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}

	changes, err := d.writer.Changes(storagemodels.PartialRecord(av), update.PolicyFrom(options))
	if err != nil {
		return nil, err
	}
	if options.UpdatedAtAttribute != "" {
		if err := d.writer.StampUpdatedAt(changes, options.UpdatedAtAttribute, d.now()); err != nil {
			return nil, err
		}
	}

	input, err := d.buildUpdateInput(changes, options)
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	out, err := d.client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, itemerrors.NewConditionFailedError("update",
				fmt.Sprintf("attribute_exists(%s)", d.schema.KeyAttribute), err)
		}
		return nil, fmt.Errorf("UpdateItem failed: %w", err)
	}

	d.logger.Debug("item updated",
		"table", d.tableName,
		"attributes", len(changes)-1,
		"ignoreNulls", options.IgnoreNulls)

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Attributes, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// buildUpdateInput turns a change set into an UpdateItem call: one SET
// clause per non-key attribute. A change set holding only the key needs no
// expression; DynamoDB then creates the bare item if it is missing.
func (d *DynamodbDataStore[T]) buildUpdateInput(changes storagemodels.Record, options storagemodels.UpdateOptions) (*sdk.UpdateItemInput, error) {
	keyAttr := d.schema.KeyAttribute
	input := &sdk.UpdateItemInput{
		TableName:    &d.tableName,
		Key:          map[string]types.AttributeValue{keyAttr: changes[keyAttr]},
		ReturnValues: types.ReturnValueAllNew,
	}

	builder := expression.NewBuilder()
	hasExpr := false

	var set expression.UpdateBuilder
	for _, name := range slices.Sorted(maps.Keys(changes)) {
		if name == keyAttr {
			continue
		}
		set = set.Set(expression.NameNoDotSplit(name), expression.Value(rawValue{av: changes[name]}))
		hasExpr = true
	}
	if hasExpr {
		builder = builder.WithUpdate(set)
	}
	if options.RequireExists {
		builder = builder.WithCondition(expression.AttributeExists(expression.NameNoDotSplit(keyAttr)))
		hasExpr = true
	}
	if !hasExpr {
		return input, nil
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, err
	}
	input.UpdateExpression = expr.Update()
	input.ConditionExpression = expr.Condition()
	input.ExpressionAttributeNames = expr.Names()
	input.ExpressionAttributeValues = expr.Values()
	return input, nil
}

// Delete removes the item stored under key. Deleting a missing item is not
// an error.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key any) error {
	keyMap, err := d.keyFor(key)
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// keyFor builds the key map for a key value. Strings are converted when the
// schema declares a number or binary key, so CLI input works for any schema.
func (d *DynamodbDataStore[T]) keyFor(key any) (map[string]types.AttributeValue, error) {
	av, ok := key.(types.AttributeValue)
	if !ok {
		var err error
		av, err = attributevalue.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal key: %w", err)
		}
	}

	if str, isString := av.(*types.AttributeValueMemberS); isString {
		switch d.schema.AttributeType() {
		case types.ScalarAttributeTypeN:
			av = &types.AttributeValueMemberN{Value: str.Value}
		case types.ScalarAttributeTypeB:
			av = &types.AttributeValueMemberB{Value: []byte(str.Value)}
		}
	}

	if storagemodels.IsNull(av) || !matchesKeyType(av, d.schema.AttributeType()) {
		return nil, itemerrors.NewValidationError(d.schema.KeyAttribute,
			fmt.Sprintf("key must be of type %s", d.schema.AttributeType()))
	}
	return map[string]types.AttributeValue{d.schema.KeyAttribute: av}, nil
}

func matchesKeyType(av types.AttributeValue, t types.ScalarAttributeType) bool {
	switch av.(type) {
	case *types.AttributeValueMemberS:
		return t == types.ScalarAttributeTypeS
	case *types.AttributeValueMemberN:
		return t == types.ScalarAttributeTypeN
	case *types.AttributeValueMemberB:
		return t == types.ScalarAttributeTypeB
	default:
		return false
	}
}

// rawValue hands an already marshaled attribute value to the expression
// builder unchanged.
type rawValue struct {
	av types.AttributeValue
}

func (r rawValue) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return r.av, nil
}
