/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/itemstore/storagemodels"
)

type fakeTable struct {
	keyAttribute string
	items        map[string]map[string]types.AttributeValue
}

// fakeClient is an in-memory stand-in for DynamoDB covering the calls the
// store makes. Update expressions are limited to the SET clauses and the
// attribute_exists condition the store generates.
type fakeClient struct {
	mu     sync.Mutex
	tables map[string]*fakeTable

	getInputs    []*sdk.GetItemInput
	updateInputs []*sdk.UpdateItemInput
	scanCalls    int

	// scanErrs are returned, in order, by the next Scan calls
	scanErrs []error
}

func newFakeClient() *fakeClient {
	return &fakeClient{tables: make(map[string]*fakeTable)}
}

func (f *fakeClient) withTable(name, keyAttribute string) *fakeClient {
	f.tables[name] = &fakeTable{keyAttribute: keyAttribute, items: make(map[string]map[string]types.AttributeValue)}
	return f
}

func notFound() error {
	return &types.ResourceNotFoundException{Message: aws.String("Requested resource not found")}
}

func (f *fakeClient) lockedTable(name *string) (*fakeTable, error) {
	t, ok := f.tables[aws.ToString(name)]
	if !ok {
		return nil, notFound()
	}
	return t, nil
}

func (t *fakeTable) keyOf(item map[string]types.AttributeValue) (string, error) {
	av, ok := item[t.keyAttribute]
	if !ok {
		return "", fmt.Errorf("ValidationException: missing key %s", t.keyAttribute)
	}
	return storagemodels.KeyString(av)
}

func (f *fakeClient) GetItem(_ context.Context, params *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getInputs = append(f.getInputs, params)

	t, err := f.lockedTable(params.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	return &sdk.GetItemOutput{Item: maps.Clone(t.items[k])}, nil
}

func (f *fakeClient) PutItem(_ context.Context, params *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.lockedTable(params.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.keyOf(params.Item)
	if err != nil {
		return nil, err
	}
	t.items[k] = maps.Clone(params.Item)
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) UpdateItem(_ context.Context, params *sdk.UpdateItemInput, _ ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateInputs = append(f.updateInputs, params)

	t, err := f.lockedTable(params.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.keyOf(params.Key)
	if err != nil {
		return nil, err
	}

	existing, exists := t.items[k]
	if cond := aws.ToString(params.ConditionExpression); strings.Contains(cond, "attribute_exists") && !exists {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
	}

	item := maps.Clone(existing)
	if item == nil {
		item = maps.Clone(params.Key)
	}

	if expr := strings.TrimSpace(aws.ToString(params.UpdateExpression)); expr != "" {
		if !strings.HasPrefix(expr, "SET ") {
			return nil, fmt.Errorf("ValidationException: unsupported update expression %q", expr)
		}
		for _, clause := range strings.Split(strings.TrimPrefix(expr, "SET "), ",") {
			lhs, rhs, ok := strings.Cut(clause, "=")
			if !ok {
				return nil, fmt.Errorf("ValidationException: bad clause %q", clause)
			}
			name := strings.TrimSpace(lhs)
			if resolved, ok := params.ExpressionAttributeNames[name]; ok {
				name = resolved
			}
			value, ok := params.ExpressionAttributeValues[strings.TrimSpace(rhs)]
			if !ok {
				return nil, fmt.Errorf("ValidationException: unknown value %q", rhs)
			}
			item[name] = value
		}
	}

	t.items[k] = item
	return &sdk.UpdateItemOutput{Attributes: maps.Clone(item)}, nil
}

func (f *fakeClient) DeleteItem(_ context.Context, params *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.lockedTable(params.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	delete(t.items, k)
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeClient) Scan(_ context.Context, params *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scanCalls++

	if len(f.scanErrs) > 0 {
		err := f.scanErrs[0]
		f.scanErrs = f.scanErrs[1:]
		return nil, err
	}

	t, err := f.lockedTable(params.TableName)
	if err != nil {
		return nil, err
	}

	keys := slices.Sorted(maps.Keys(t.items))
	start := 0
	if params.ExclusiveStartKey != nil {
		after, err := t.keyOf(params.ExclusiveStartKey)
		if err != nil {
			return nil, err
		}
		start, _ = slices.BinarySearch(keys, after)
		if start < len(keys) && keys[start] == after {
			start++
		}
	}

	end := len(keys)
	if limit := int(aws.ToInt32(params.Limit)); limit > 0 && start+limit < end {
		end = start + limit
	}

	out := &sdk.ScanOutput{}
	for _, k := range keys[start:end] {
		out.Items = append(out.Items, maps.Clone(t.items[k]))
	}
	if end < len(keys) {
		last := t.items[keys[end-1]]
		out.LastEvaluatedKey = map[string]types.AttributeValue{t.keyAttribute: last[t.keyAttribute]}
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func (f *fakeClient) CreateTable(_ context.Context, params *sdk.CreateTableInput, _ ...func(*sdk.Options)) (*sdk.CreateTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.TableName)
	if _, ok := f.tables[name]; ok {
		return nil, &types.ResourceInUseException{Message: aws.String("Table already exists: " + name)}
	}

	keyAttribute := ""
	for _, el := range params.KeySchema {
		if el.KeyType == types.KeyTypeHash {
			keyAttribute = aws.ToString(el.AttributeName)
		}
	}
	if keyAttribute == "" {
		return nil, fmt.Errorf("ValidationException: KeySchema must have a HASH key")
	}

	f.withTable(name, keyAttribute)
	return &sdk.CreateTableOutput{TableDescription: &types.TableDescription{
		TableName:   params.TableName,
		TableStatus: types.TableStatusCreating,
	}}, nil
}

func (f *fakeClient) DeleteTable(_ context.Context, params *sdk.DeleteTableInput, _ ...func(*sdk.Options)) (*sdk.DeleteTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.lockedTable(params.TableName); err != nil {
		return nil, err
	}
	delete(f.tables, aws.ToString(params.TableName))
	return &sdk.DeleteTableOutput{}, nil
}

func (f *fakeClient) DescribeTable(_ context.Context, params *sdk.DescribeTableInput, _ ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.lockedTable(params.TableName)
	if err != nil {
		return nil, err
	}
	return &sdk.DescribeTableOutput{Table: &types.TableDescription{
		TableName:   params.TableName,
		TableStatus: types.TableStatusActive,
		ItemCount:   aws.Int64(int64(len(t.items))),
	}}, nil
}

func (f *fakeClient) itemCount(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tables[table]; ok {
		return len(t.items)
	}
	return 0
}

var _ Client = (*fakeClient)(nil)
