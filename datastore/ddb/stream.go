/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/itemstore/storagemodels"
)

// Stream scans the table page by page and delivers every item on the
// returned channel. The channel is closed when the scan ends, fails or ctx is
// cancelled.
func (d *DynamodbDataStore[T]) Stream(ctx context.Context, params *storagemodels.ScanParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if params == nil {
		params = &storagemodels.ScanParams{}
	}

	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)
	go d.streamWorker(ctx, params, options, resultCh)
	return resultCh
}

// streamWorker handles the actual scanning
func (d *DynamodbDataStore[T]) streamWorker(
	ctx context.Context,
	params *storagemodels.ScanParams,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	var itemIndex int64
	var pageNumber int
	startTime := time.Now()
	var errs []error

	reportProgress := func(lastKey map[string]types.AttributeValue) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: atomic.LoadInt64(&itemIndex),
			PagesProcessed: pageNumber,
			LastKey:        lastKey,
			Errors:         errs,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	fail := func(err error) {
		select {
		case <-ctx.Done():
		case resultCh <- storagemodels.StreamResult[T]{
			Error: err,
			Meta: storagemodels.StreamMeta{
				Index:      atomic.LoadInt64(&itemIndex),
				PageNumber: pageNumber,
				Timestamp:  time.Now(),
			},
		}:
		}
	}

	input := &sdk.ScanInput{
		TableName:                 &d.tableName,
		FilterExpression:          params.FilterExpression,
		ExpressionAttributeNames:  params.ExpressionAttributeNames,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		ConsistentRead:            aws.Bool(params.ConsistentRead),
		ExclusiveStartKey:         params.ExclusiveStartKey,
		Limit:                     aws.Int32(options.PageSize),
	}

	pageFailures := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		out, err := d.scanWithRetry(ctx, input, options)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			pageFailures++
			if options.ErrorHandler == nil || !options.ErrorHandler(err) || pageFailures > options.MaxRetries {
				fail(fmt.Errorf("scan failed: %w", err))
				return
			}
			// the handler chose to go on; retry the same page
			errs = append(errs, err)
			continue
		}

		pageFailures = 0
		pageNumber++

		for _, item := range out.Items {
			result := d.processItem(item, atomic.LoadInt64(&itemIndex), pageNumber)
			atomic.AddInt64(&itemIndex, 1)

			select {
			case <-ctx.Done():
				return
			case resultCh <- result:
			}

			if result.Error != nil {
				errs = append(errs, result.Error)
			}
		}

		reportProgress(out.LastEvaluatedKey)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	reportProgress(nil)
	d.logger.Debug("scan finished", "table", d.tableName, "items", itemIndex, "pages", pageNumber)
}

// scanWithRetry executes one scan page with linear backoff on retryable errors
func (d *DynamodbDataStore[T]) scanWithRetry(
	ctx context.Context,
	input *sdk.ScanInput,
	options storagemodels.StreamOptions,
) (*sdk.ScanOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		out, err := d.client.Scan(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			d.logger.Warn("scan page failed, retrying", "table", d.tableName, "attempt", attempt+1, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("scan failed after %d retries: %w", options.MaxRetries, lastErr)
}

// processItem converts a scanned item to a typed result
func (d *DynamodbDataStore[T]) processItem(
	item map[string]types.AttributeValue,
	index int64,
	pageNumber int,
) storagemodels.StreamResult[T] {
	meta := storagemodels.StreamMeta{
		Index:      index,
		PageNumber: pageNumber,
		Timestamp:  time.Now(),
	}

	raw := storagemodels.Record(item).Clone()

	var result T
	if err := attributevalue.UnmarshalMap(item, &result); err != nil {
		return storagemodels.StreamResult[T]{
			Error: fmt.Errorf("failed to unmarshal item to type %T: %w", result, err),
			Raw:   raw,
			Meta:  meta,
		}
	}
	return storagemodels.StreamResult[T]{
		Item: result,
		Raw:  raw,
		Meta: meta,
	}
}
