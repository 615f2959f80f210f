/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filter

import (
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"

	storageerrors "github.com/Aesonus/alchemical-storage/errors"
	"github.com/Aesonus/alchemical-storage/registry"
	"github.com/Aesonus/alchemical-storage/visitor"
)

// Default sentinel values selecting IS NULL and IS NOT NULL.
const (
	DefaultNullIdentifier    = "null"
	DefaultNotNullIdentifier = "not-null"
)

// NullFilterOption configures a NullFilterMap.
type NullFilterOption func(*NullFilterMap)

// WithNullIdentifiers overrides the sentinel strings selecting IS NULL and
// IS NOT NULL.
func WithNullIdentifiers(null, notNull string) NullFilterOption {
	return func(nf *NullFilterMap) {
		nf.null = null
		nf.notNull = notNull
	}
}

type boundNullFilter struct {
	param  string
	column string
}

// NullFilterMap attaches IS NULL / IS NOT NULL predicates for recognized
// parameters whose value matches one of the two sentinel strings.
type NullFilterMap struct {
	filters []boundNullFilter
	null    string
	notNull string
}

// NewNullFilterMap resolves every column reference in filters against the
// namespace. The two sentinel strings must differ.
func NewNullFilterMap(ns registry.Namespace, filters map[string]string, opts ...NullFilterOption) (*NullFilterMap, error) {
	nf := &NullFilterMap{
		filters: make([]boundNullFilter, 0, len(filters)),
		null:    DefaultNullIdentifier,
		notNull: DefaultNotNullIdentifier,
	}
	for _, opt := range opts {
		opt(nf)
	}
	if nf.null == nf.notNull {
		return nil, storageerrors.NewConfigurationError("", fmt.Sprintf("null identifiers must differ, both are %q", nf.null))
	}
	for param, ref := range filters {
		column, err := ns.ResolveColumn(ref)
		if err != nil {
			return nil, err
		}
		nf.filters = append(nf.filters, boundNullFilter{param: param, column: column})
	}
	sort.Slice(nf.filters, func(i, j int) bool { return nf.filters[i].param < nf.filters[j].param })
	return nf, nil
}

// Visit attaches an IS NULL or IS NOT NULL predicate for each configured
// parameter present in params. A present value that matches neither
// sentinel is a usage error.
func (nf *NullFilterMap) Visit(stmt sq.SelectBuilder, params visitor.Params) (sq.SelectBuilder, error) {
	for _, f := range nf.filters {
		value, ok := params[f.param]
		if !ok {
			continue
		}
		switch value {
		case nf.null:
			stmt = stmt.Where(f.column + " IS NULL")
		case nf.notNull:
			stmt = stmt.Where(f.column + " IS NOT NULL")
		default:
			return sq.SelectBuilder{}, storageerrors.NewInvalidFilterValueError(f.param, fmt.Sprintf("%v", value))
		}
	}
	return stmt, nil
}
