/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Scan defaults used by DefaultStreamOptions.
const (
	DefaultStreamBuffer   = 100
	DefaultStreamRetries  = 3
	DefaultStreamBackoff  = time.Second
	DefaultStreamPageSize = 100
)

// StreamResult is one scanned item. When Error is set, Item is the zero value
// and Raw may still hold the attributes that failed to decode.
type StreamResult[T any] struct {
	Item  T
	Raw   Record
	Error error
	Meta  StreamMeta
}

// StreamMeta locates a result within its scan.
type StreamMeta struct {
	// Index counts results from 0 across all pages.
	Index int64

	// PageNumber is the scan page the item came from, starting at 1.
	PageNumber int

	Timestamp time.Time
}

// StreamOptions tunes a scan. Build it with DefaultStreamOptions and the
// With... options.
type StreamOptions struct {
	// BufferSize is the capacity of the result channel.
	BufferSize int

	// MaxRetries bounds the retries of a page after a throttling or server
	// error. Backoff grows linearly from RetryBackoff.
	MaxRetries   int
	RetryBackoff time.Duration

	// PageSize is the Limit sent with every Scan call.
	PageSize int32

	// ProgressHandler, if set, is called after every page and once at the end.
	ProgressHandler func(StreamProgress)

	// ErrorHandler decides whether a failed page is retried (true) or ends
	// the scan (false). Without it the first failure ends the scan.
	ErrorHandler func(error) bool
}

// StreamProgress is the state of a scan passed to a progress handler.
type StreamProgress struct {
	ItemsProcessed int64
	PagesProcessed int

	// LastKey resumes the scan after the last page; nil once the scan is done.
	LastKey map[string]types.AttributeValue

	// Errors holds page and decode failures the scan went past.
	Errors []error

	StartTime   time.Time
	CurrentRate float64 // items per second since StartTime
}

// StreamOption changes StreamOptions.
type StreamOption func(*StreamOptions)

// DefaultStreamOptions returns the options a scan starts from.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		BufferSize:   DefaultStreamBuffer,
		MaxRetries:   DefaultStreamRetries,
		RetryBackoff: DefaultStreamBackoff,
		PageSize:     DefaultStreamPageSize,
	}
}

func WithBufferSize(size int) StreamOption {
	return func(o *StreamOptions) { o.BufferSize = size }
}

func WithMaxRetries(retries int) StreamOption {
	return func(o *StreamOptions) { o.MaxRetries = retries }
}

func WithRetryBackoff(backoff time.Duration) StreamOption {
	return func(o *StreamOptions) { o.RetryBackoff = backoff }
}

func WithPageSize(size int32) StreamOption {
	return func(o *StreamOptions) { o.PageSize = size }
}

func WithProgressHandler(handler func(StreamProgress)) StreamOption {
	return func(o *StreamOptions) { o.ProgressHandler = handler }
}

func WithErrorHandler(handler func(error) bool) StreamOption {
	return func(o *StreamOptions) { o.ErrorHandler = handler }
}
