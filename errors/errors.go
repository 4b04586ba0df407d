/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when the addressed resource does not exist (HTTP 404)
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when creating a resource whose id already exists (HTTP 409)
	ErrConflict = errors.New("resource already exists")

	// ErrPreconditionFailed is returned when a conditional request fails (HTTP 412)
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidKeyType is returned when a partition key value has an unsupported shape
	ErrInvalidKeyType = errors.New("unsupported partition key type")

	// ErrBadCredential is returned when a client is constructed with a missing or malformed credential
	ErrBadCredential = errors.New("bad credential")

	// ErrNotImplemented is returned for operation families the SDK does not support
	ErrNotImplemented = errors.New("not implemented")
)

// StatusError carries the raw outcome of a remote operation. Its Is method
// maps 404, 409 and 412 onto the matching sentinels; every other status
// behaves as a generic HTTP error.
type StatusError struct {
	StatusCode int
	ActivityID string
	Message    string
}

func (e *StatusError) Error() string {
	if e.ActivityID != "" {
		return fmt.Sprintf("request failed with status %d (activity id %s): %s", e.StatusCode, e.ActivityID, e.Message)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Is(target error) bool {
	switch e.StatusCode {
	case 404:
		return target == ErrNotFound
	case 409:
		return target == ErrConflict
	case 412:
		return target == ErrPreconditionFailed
	}
	return false
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

// KeyTypeError represents a partition key value of an unsupported shape
type KeyTypeError struct {
	Value any
}

func (e *KeyTypeError) Error() string {
	return fmt.Sprintf("unsupported partition key type %T", e.Value)
}

func (e *KeyTypeError) Is(target error) bool {
	return target == ErrInvalidKeyType
}

// CredentialError represents a construction-time credential failure
type CredentialError struct {
	Reason string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("bad credential: %s", e.Reason)
}

func (e *CredentialError) Is(target error) bool {
	return target == ErrBadCredential
}

// NotImplementedError represents an explicitly unsupported operation family
type NotImplementedError struct {
	Operation string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s is not implemented", e.Operation)
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// Helper functions for creating errors

// NewStatusError creates a new StatusError
func NewStatusError(statusCode int, activityID, message string) error {
	return &StatusError{StatusCode: statusCode, ActivityID: activityID, Message: message}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewKeyTypeError creates a new KeyTypeError
func NewKeyTypeError(value any) error {
	return &KeyTypeError{Value: value}
}

// NewCredentialError creates a new CredentialError
func NewCredentialError(reason string) error {
	return &CredentialError{Reason: reason}
}

// NewNotImplementedError creates a new NotImplementedError
func NewNotImplementedError(operation string) error {
	return &NotImplementedError{Operation: operation}
}

// markerCodes are the status codes Classify searches error text for.
// The order only matters for pathological messages carrying more than
// one marker.
var markerCodes = []int{404, 409, 412}

// Classify maps a transport or service failure onto the taxonomy.
// A *StatusError passes through untouched. Anything else is inspected
// for a status-code marker in its text; this is best effort, and a
// message-format change in the transport beneath can misclassify.
// Errors with no recognizable marker are returned as-is.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var se *StatusError
	if errors.As(err, &se) {
		return err
	}
	msg := err.Error()
	for _, code := range markerCodes {
		if strings.Contains(msg, strconv.Itoa(code)) {
			return &StatusError{StatusCode: code, Message: msg}
		}
	}
	return err
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is an already-exists conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsPreconditionFailed checks if an error is a failed precondition
func IsPreconditionFailed(err error) bool {
	return errors.Is(err, ErrPreconditionFailed)
}

// IsInvalidInput checks if an error is a validation error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvalidKeyType checks if an error is an unsupported partition key shape
func IsInvalidKeyType(err error) bool {
	return errors.Is(err, ErrInvalidKeyType)
}

// IsBadCredential checks if an error is a construction-time credential failure
func IsBadCredential(err error) bool {
	return errors.Is(err, ErrBadCredential)
}

// IsNotImplemented checks if an error is an unsupported operation
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}
