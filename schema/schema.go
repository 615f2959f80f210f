/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-openapi/strfmt"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	storageerrors "github.com/Aesonus/alchemical-storage/errors"
)

// Schema converts between raw attribute maps and entity values, validating
// on the way in. It is the contract DatabaseStorage uses to load request
// payloads into records and dump records into transport representations.
type Schema[T any] interface {
	// Load validates data and constructs a new record from it.
	Load(data map[string]any) (*T, error)

	// LoadPartial validates data merged into an existing record, updating
	// it in place. Attributes absent from data keep their current values.
	LoadPartial(data map[string]any, record *T) error

	// Dump converts a record into a raw attribute map.
	Dump(record *T) (map[string]any, error)
}

// MapSchema is the default Schema implementation. Attribute names follow
// the record's json tags; values are decoded weakly (numeric strings into
// numbers, database byte slices into strings, RFC3339 strings into
// strfmt.DateTime) and the result is validated against the record's
// `validate` tags.
type MapSchema[T any] struct {
	validate *validator.Validate
	tagName  string
}

// MapSchemaOption configures a MapSchema.
type MapSchemaOption[T any] func(*MapSchema[T])

// WithTagName overrides the struct tag consulted for attribute names.
func WithTagName[T any](tag string) MapSchemaOption[T] {
	return func(s *MapSchema[T]) { s.tagName = tag }
}

// WithValidator supplies a pre-configured validator instance.
func WithValidator[T any](v *validator.Validate) MapSchemaOption[T] {
	return func(s *MapSchema[T]) { s.validate = v }
}

// NewMapSchema creates a schema for record type T.
func NewMapSchema[T any](opts ...MapSchemaOption[T]) *MapSchema[T] {
	s := &MapSchema[T]{
		validate: validator.New(),
		tagName:  "json",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load implements Schema.
func (s *MapSchema[T]) Load(data map[string]any) (*T, error) {
	record := new(T)
	if err := s.decode(data, record); err != nil {
		return nil, err
	}
	if err := s.check(record); err != nil {
		return nil, err
	}
	return record, nil
}

// LoadPartial implements Schema.
func (s *MapSchema[T]) LoadPartial(data map[string]any, record *T) error {
	if err := s.decode(data, record); err != nil {
		return err
	}
	return s.check(record)
}

// Dump implements Schema.
func (s *MapSchema[T]) Dump(record *T) (map[string]any, error) {
	out := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: s.tagName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build dump decoder: %w", err)
	}
	if err := decoder.Decode(record); err != nil {
		return nil, fmt.Errorf("failed to dump record: %w", err)
	}
	return out, nil
}

func (s *MapSchema[T]) decode(data map[string]any, record *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           record,
		TagName:          s.tagName,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			byteSliceToStringHook,
			stringToDateTimeHook,
		),
	})
	if err != nil {
		return fmt.Errorf("failed to build load decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return storageerrors.NewValidationError("", err.Error())
	}
	return nil
}

func (s *MapSchema[T]) check(record *T) error {
	err := s.validate.Struct(record)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return storageerrors.NewValidationError(first.Field(), fmt.Sprintf("failed on the %q rule", first.Tag()))
	}
	return storageerrors.NewValidationError("", err.Error())
}

var dateTimeType = reflect.TypeOf(strfmt.DateTime{})

// byteSliceToStringHook converts raw database byte slices into strings so
// text columns scan cleanly into string fields.
func byteSliceToStringHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from != reflect.TypeOf([]byte(nil)) || to.Kind() != reflect.String {
		return data, nil
	}
	return string(data.([]byte)), nil
}

// stringToDateTimeHook parses RFC3339 strings into strfmt.DateTime fields.
func stringToDateTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != dateTimeType {
		return data, nil
	}
	parsed, err := strfmt.ParseDateTime(data.(string))
	if err != nil {
		return nil, fmt.Errorf("invalid date-time %q: %w", data.(string), err)
	}
	return parsed, nil
}
