/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filter

import (
	"sort"

	sq "github.com/Masterminds/squirrel"

	"github.com/Aesonus/alchemical-storage/registry"
	"github.com/Aesonus/alchemical-storage/visitor"
)

// Spec declares one filter parameter: the column reference it applies to and
// the comparison operator. A nil Op means equality.
type Spec struct {
	Column string
	Op     Operator
}

// boundFilter is a Spec with its column resolved and its operator bound.
type boundFilter struct {
	param string
	apply func(value any) sq.Sqlizer
}

// FilterMap attaches WHERE predicates for every recognized parameter present
// in the request. Predicates are combined by conjunction with whatever the
// statement already carries.
type FilterMap struct {
	filters []boundFilter
}

// NewFilterMap resolves every column reference in filters against the
// namespace. An unresolvable reference fails immediately with a
// ConfigurationError.
func NewFilterMap(ns registry.Namespace, filters map[string]Spec) (*FilterMap, error) {
	fm := &FilterMap{filters: make([]boundFilter, 0, len(filters))}
	for param, spec := range filters {
		column, err := ns.ResolveColumn(spec.Column)
		if err != nil {
			return nil, err
		}
		op := spec.Op
		if op == nil {
			op = Eq
		}
		fm.filters = append(fm.filters, boundFilter{
			param: param,
			apply: func(value any) sq.Sqlizer { return op(column, value) },
		})
	}
	// Attachment order does not change query semantics, but a stable order
	// keeps generated SQL deterministic.
	sort.Slice(fm.filters, func(i, j int) bool { return fm.filters[i].param < fm.filters[j].param })
	return fm, nil
}

// Visit attaches one predicate per configured parameter present in params.
// Presence is key membership: zero values, empty strings and false all
// count as given. Unrecognized parameters are ignored.
func (fm *FilterMap) Visit(stmt sq.SelectBuilder, params visitor.Params) (sq.SelectBuilder, error) {
	for _, f := range fm.filters {
		if value, ok := params[f.param]; ok {
			stmt = stmt.Where(f.apply(value))
		}
	}
	return stmt, nil
}
