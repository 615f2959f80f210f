/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pagination

import (
	"fmt"
	"reflect"

	sq "github.com/Masterminds/squirrel"

	storageerrors "github.com/Aesonus/alchemical-storage/errors"
	"github.com/Aesonus/alchemical-storage/visitor"
)

// Default attribute and key names for pagination payloads.
const (
	DefaultPageSizeField  = "PageSize"
	DefaultFirstItemField = "FirstItem"
	DefaultPageSizeKey    = "page_size"
	DefaultFirstItemKey   = "first_item"
)

// Page is the canonical pagination payload: how many records to return and
// the offset of the first one.
type Page struct {
	PageSize  int
	FirstItem int
}

// Accessor extracts the page size and first item from a pagination payload.
// The accessor abstracts attribute-style versus mapping-style payloads; it
// is chosen when the PaginationMap is constructed, not probed per request.
type Accessor func(value any) (pageSize, firstItem int, err error)

// StructAccessor reads the payload's exported fields by name. Pointer
// payloads are dereferenced.
func StructAccessor(pageSizeField, firstItemField string) Accessor {
	return func(value any) (int, int, error) {
		rv := reflect.Indirect(reflect.ValueOf(value))
		if !rv.IsValid() || rv.Kind() != reflect.Struct {
			return 0, 0, fmt.Errorf("payload %T is not a struct", value)
		}
		pageSize, err := intField(rv, pageSizeField)
		if err != nil {
			return 0, 0, err
		}
		firstItem, err := intField(rv, firstItemField)
		if err != nil {
			return 0, 0, err
		}
		return pageSize, firstItem, nil
	}
}

// MapAccessor reads the payload as a map keyed by strings.
func MapAccessor(pageSizeKey, firstItemKey string) Accessor {
	return func(value any) (int, int, error) {
		rv := reflect.ValueOf(value)
		if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return 0, 0, fmt.Errorf("payload %T is not a string-keyed map", value)
		}
		pageSize, err := intKey(rv, pageSizeKey)
		if err != nil {
			return 0, 0, err
		}
		firstItem, err := intKey(rv, firstItemKey)
		if err != nil {
			return 0, 0, err
		}
		return pageSize, firstItem, nil
	}
}

func intField(rv reflect.Value, name string) (int, error) {
	field := rv.FieldByName(name)
	if !field.IsValid() {
		return 0, fmt.Errorf("payload %s has no field %s", rv.Type(), name)
	}
	return asInt(field.Interface(), name)
}

func intKey(rv reflect.Value, key string) (int, error) {
	entry := rv.MapIndex(reflect.ValueOf(key))
	if !entry.IsValid() {
		return 0, fmt.Errorf("payload has no key %q", key)
	}
	return asInt(entry.Interface(), key)
}

func asInt(value any, name string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be an integer, got %v", name, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", name, value)
	}
}

// Option configures a PaginationMap.
type Option func(*PaginationMap)

// WithAccessor overrides the payload accessor.
func WithAccessor(accessor Accessor) Option {
	return func(pm *PaginationMap) { pm.accessor = accessor }
}

// PaginationMap attaches LIMIT/OFFSET clauses from the payload carried by
// one designated parameter.
type PaginationMap struct {
	param    string
	accessor Accessor
}

// NewPaginationMap creates a pagination visitor for the named parameter.
// The default accessor reads the PageSize and FirstItem fields of a struct
// payload; use WithAccessor(MapAccessor(...)) for mapping-style payloads.
func NewPaginationMap(param string, opts ...Option) *PaginationMap {
	pm := &PaginationMap{
		param:    param,
		accessor: StructAccessor(DefaultPageSizeField, DefaultFirstItemField),
	}
	for _, opt := range opts {
		opt(pm)
	}
	return pm
}

// Visit attaches LIMIT and OFFSET when the pagination parameter is present.
// Both values must be non-negative integers; anything else is a usage error.
func (pm *PaginationMap) Visit(stmt sq.SelectBuilder, params visitor.Params) (sq.SelectBuilder, error) {
	value, ok := params[pm.param]
	if !ok {
		return stmt, nil
	}
	pageSize, firstItem, err := pm.accessor(value)
	if err != nil {
		return sq.SelectBuilder{}, storageerrors.NewInvalidPaginationError(pm.param, err.Error())
	}
	if pageSize < 0 {
		return sq.SelectBuilder{}, storageerrors.NewInvalidPaginationError(pm.param, fmt.Sprintf("page size must be non-negative, got %d", pageSize))
	}
	if firstItem < 0 {
		return sq.SelectBuilder{}, storageerrors.NewInvalidPaginationError(pm.param, fmt.Sprintf("first item must be non-negative, got %d", firstItem))
	}
	return stmt.Limit(uint64(pageSize)).Offset(uint64(firstItem)), nil
}
