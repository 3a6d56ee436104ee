/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// GetOptions configures a single-item read
type GetOptions struct {
	// ConsistentRead requests a strongly consistent read. Strongly consistent
	// reads observe the most recent completed write.
	ConsistentRead bool
}

// GetOption is a functional option for configuring reads
type GetOption func(*GetOptions)

// WithConsistentRead selects strong (true) or eventual (false) consistency
func WithConsistentRead(consistent bool) GetOption {
	return func(opts *GetOptions) {
		opts.ConsistentRead = consistent
	}
}

// NewGetOptions applies opts over the defaults (eventually consistent)
func NewGetOptions(opts ...GetOption) GetOptions {
	var options GetOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// UpdateOptions configures a partial update
type UpdateOptions struct {
	// IgnoreNulls skips explicit nulls in the payload instead of rejecting them.
	IgnoreNulls bool
	// RequireExists makes the update fail with a condition error when no item
	// exists for the key, instead of creating it.
	RequireExists bool
	// UpdatedAtAttribute, when set, receives the time of the update.
	UpdatedAtAttribute string
}

// UpdateOption is a functional option for configuring partial updates
type UpdateOption func(*UpdateOptions)

// WithIgnoreNulls sets the null-handling policy
func WithIgnoreNulls(ignore bool) UpdateOption {
	return func(opts *UpdateOptions) {
		opts.IgnoreNulls = ignore
	}
}

// WithRequireExists restricts the update to existing items
func WithRequireExists() UpdateOption {
	return func(opts *UpdateOptions) {
		opts.RequireExists = true
	}
}

// WithUpdatedAt stamps attribute with the update time
func WithUpdatedAt(attribute string) UpdateOption {
	return func(opts *UpdateOptions) {
		opts.UpdatedAtAttribute = attribute
	}
}

// NewUpdateOptions applies opts over the defaults (nulls rejected, upsert)
func NewUpdateOptions(opts ...UpdateOption) UpdateOptions {
	var options UpdateOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
