/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an item or table is not found
	ErrNotFound = errors.New("item not found")

	// ErrAlreadyExists is returned when attempting to create something that already exists
	ErrAlreadyExists = errors.New("item already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConditionFailed is returned when a conditional write fails
	ErrConditionFailed = errors.New("condition check failed")

	// ErrNoSchema is returned when no table schema is known for a type
	ErrNoSchema = errors.New("no table schema found for type")

	// ErrNullAttributeRejected is returned when an update carries an explicit
	// null while the update policy does not ignore nulls
	ErrNullAttributeRejected = errors.New("null attribute rejected")

	// ErrMissingKeyAttribute is returned when an update does not carry the key attribute
	ErrMissingKeyAttribute = errors.New("missing key attribute")
)

// NotFoundError represents an error when an item is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when an item already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConditionFailedError represents a failed conditional operation.
// Err holds the storage error that reported the failure, if any.
type ConditionFailedError struct {
	Operation string
	Condition string
	Err       error
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("condition check failed for %s operation: %s", e.Operation, e.Condition)
}

func (e *ConditionFailedError) Is(target error) bool {
	return target == ErrConditionFailed
}

func (e *ConditionFailedError) Unwrap() error {
	return e.Err
}

// NullAttributeRejectedError is returned by a partial update whose payload
// holds an explicit null for Attribute while nulls are not ignored.
type NullAttributeRejectedError struct {
	Attribute string
}

func (e *NullAttributeRejectedError) Error() string {
	return fmt.Sprintf("attribute %q is null and nulls are not ignored", e.Attribute)
}

func (e *NullAttributeRejectedError) Is(target error) bool {
	return target == ErrNullAttributeRejected
}

// MissingKeyAttributeError is returned when a payload lacks its key attribute
// or carries it as null.
type MissingKeyAttributeError struct {
	Attribute string
}

func (e *MissingKeyAttributeError) Error() string {
	return fmt.Sprintf("key attribute %q is missing", e.Attribute)
}

func (e *MissingKeyAttributeError) Is(target error) bool {
	return target == ErrMissingKeyAttribute
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(itemType, key string) error {
	return &NotFoundError{Type: itemType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(itemType, key string) error {
	return &AlreadyExistsError{Type: itemType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConditionFailedError creates a new ConditionFailedError
func NewConditionFailedError(operation, condition string, cause error) error {
	return &ConditionFailedError{Operation: operation, Condition: condition, Err: cause}
}

// NewNullAttributeRejectedError creates a new NullAttributeRejectedError
func NewNullAttributeRejectedError(attribute string) error {
	return &NullAttributeRejectedError{Attribute: attribute}
}

// NewMissingKeyAttributeError creates a new MissingKeyAttributeError
func NewMissingKeyAttributeError(attribute string) error {
	return &MissingKeyAttributeError{Attribute: attribute}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsNullAttributeRejected checks if an error is a rejected null attribute
func IsNullAttributeRejected(err error) bool {
	return errors.Is(err, ErrNullAttributeRejected)
}

// IsMissingKeyAttribute checks if an error is a missing key attribute
func IsMissingKeyAttribute(err error) bool {
	return errors.Is(err, ErrMissingKeyAttribute)
}

// IsPolicyViolation reports whether err was raised by the update payload
// itself rather than by storage. Such errors are never worth retrying.
func IsPolicyViolation(err error) bool {
	return IsNullAttributeRejected(err) || IsMissingKeyAttribute(err)
}
