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
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when putting a record whose key already exists
	ErrConflict = errors.New("record already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration is returned when a declared column or relationship
	// reference cannot be resolved at construction time
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUnknownSortKey is returned when an order_by token is not in the
	// order specification
	ErrUnknownSortKey = errors.New("unknown sort key")

	// ErrInvalidFilterValue is returned when a null-filter value is not one
	// of the configured sentinel strings
	ErrInvalidFilterValue = errors.New("invalid filter value")

	// ErrInvalidPagination is returned when a pagination payload is malformed
	ErrInvalidPagination = errors.New("invalid pagination")

	// ErrQueryExecution is returned when the underlying engine rejects a statement
	ErrQueryExecution = errors.New("query execution failed")

	// ErrNoModel is returned when no model is registered for a type
	ErrNoModel = errors.New("no model registered for type")
)

// NotFoundError represents an error when a record is not found
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

// ConflictError represents an error when a record already exists
type ConflictError struct {
	Type string
	Key  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
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

// ConfigurationError represents an unresolvable column or relationship
// reference detected while constructing a mapping component
type ConfigurationError struct {
	Ref     string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("configuration error for %q: %s", e.Ref, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// UnknownSortKeyError represents an order_by token that is not configured
type UnknownSortKeyError struct {
	Key string
}

func (e *UnknownSortKeyError) Error() string {
	return fmt.Sprintf("unknown order_by attribute: %s", e.Key)
}

func (e *UnknownSortKeyError) Is(target error) bool {
	return target == ErrUnknownSortKey
}

// InvalidFilterValueError represents a null-filter value that matches
// neither of the configured sentinel strings
type InvalidFilterValueError struct {
	Param string
	Value string
}

func (e *InvalidFilterValueError) Error() string {
	return fmt.Sprintf("unknown filter value: %q for `%s`", e.Value, e.Param)
}

func (e *InvalidFilterValueError) Is(target error) bool {
	return target == ErrInvalidFilterValue
}

// InvalidPaginationError represents a malformed pagination payload
type InvalidPaginationError struct {
	Param   string
	Message string
}

func (e *InvalidPaginationError) Error() string {
	return fmt.Sprintf("invalid pagination for %q: %s", e.Param, e.Message)
}

func (e *InvalidPaginationError) Is(target error) bool {
	return target == ErrInvalidPagination
}

// QueryExecutionError wraps a failure reported by the underlying engine
type QueryExecutionError struct {
	Operation string
	Err       error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("query execution failed during %s: %v", e.Operation, e.Err)
}

func (e *QueryExecutionError) Is(target error) bool {
	return target == ErrQueryExecution
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(recordType, key string) error {
	return &NotFoundError{Type: recordType, Key: key}
}

// NewConflictError creates a new ConflictError
func NewConflictError(recordType, key string) error {
	return &ConflictError{Type: recordType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(ref, message string) error {
	return &ConfigurationError{Ref: ref, Message: message}
}

// NewUnknownSortKeyError creates a new UnknownSortKeyError
func NewUnknownSortKeyError(key string) error {
	return &UnknownSortKeyError{Key: key}
}

// NewInvalidFilterValueError creates a new InvalidFilterValueError
func NewInvalidFilterValueError(param, value string) error {
	return &InvalidFilterValueError{Param: param, Value: value}
}

// NewInvalidPaginationError creates a new InvalidPaginationError
func NewInvalidPaginationError(param, message string) error {
	return &InvalidPaginationError{Param: param, Message: message}
}

// NewQueryExecutionError creates a new QueryExecutionError wrapping err
func NewQueryExecutionError(operation string, err error) error {
	return &QueryExecutionError{Operation: operation, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsUnknownSortKey checks if an error is an unknown sort key error
func IsUnknownSortKey(err error) bool {
	return errors.Is(err, ErrUnknownSortKey)
}

// IsInvalidFilterValue checks if an error is an invalid filter value error
func IsInvalidFilterValue(err error) bool {
	return errors.Is(err, ErrInvalidFilterValue)
}

// IsInvalidPagination checks if an error is an invalid pagination error
func IsInvalidPagination(err error) bool {
	return errors.Is(err, ErrInvalidPagination)
}

// IsQueryExecution checks if an error is a query execution error
func IsQueryExecution(err error) bool {
	return errors.Is(err, ErrQueryExecution)
}
