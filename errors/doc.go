/*
Package errors provides semantic error types for the ItemStore library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound              = errors.New("item not found")
	    ErrAlreadyExists         = errors.New("item already exists")
	    ErrInvalidInput          = errors.New("invalid input")
	    ErrConditionFailed       = errors.New("condition check failed")
	    ErrNoSchema              = errors.New("no table schema found for type")
	    ErrNullAttributeRejected = errors.New("null attribute rejected")
	    ErrMissingKeyAttribute   = errors.New("missing key attribute")
	)

Partial updates fail with one of two payload errors, which callers can tell
apart from storage failures:

	item, err := store.UpdateItem(ctx, bean, storagemodels.WithIgnoreNulls(false))
	if err != nil {
	    if errors.IsPolicyViolation(err) {
	        // fix the payload, retrying will not help
	        return nil, err
	    }
	    // storage failure: the AWS error is still reachable with errors.As
	    return nil, err
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
