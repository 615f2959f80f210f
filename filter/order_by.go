/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filter

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	storageerrors "github.com/Aesonus/alchemical-storage/errors"
	"github.com/Aesonus/alchemical-storage/registry"
	"github.com/Aesonus/alchemical-storage/visitor"
)

// DefaultOrderByParam is the parameter carrying the sort expression.
const DefaultOrderByParam = "order_by"

// DescPrefix marks a sort key as descending.
const DescPrefix = "-"

// OrderByOption configures an OrderByMap.
type OrderByOption func(*OrderByMap)

// WithOrderByParam overrides the parameter name carrying the sort expression.
func WithOrderByParam(name string) OrderByOption {
	return func(ob *OrderByMap) { ob.param = name }
}

// OrderByMap translates a comma-separated sort expression such as
// "name,-price" into a multi-key ORDER BY clause, preserving the caller's
// key order.
type OrderByMap struct {
	param      string
	attributes map[string]string
}

// NewOrderByMap resolves the configured sort keys against the namespace.
// Dotted values are column references and must resolve; values without a
// separator are taken verbatim, so selection labels and raw expressions can
// be sorted on.
func NewOrderByMap(ns registry.Namespace, attributes map[string]string, opts ...OrderByOption) (*OrderByMap, error) {
	ob := &OrderByMap{
		param:      DefaultOrderByParam,
		attributes: make(map[string]string, len(attributes)),
	}
	for _, opt := range opts {
		opt(ob)
	}
	for attr, ref := range attributes {
		if strings.Contains(ref, registry.RefSeparator) {
			column, err := ns.ResolveColumn(ref)
			if err != nil {
				return nil, err
			}
			ob.attributes[attr] = column
		} else {
			ob.attributes[attr] = ref
		}
	}
	return ob, nil
}

// Visit attaches an ordering clause per sort token, left to right; later
// tokens become secondary sort keys. Absence of the order parameter is a
// no-op; an unknown sort key is a usage error.
func (ob *OrderByMap) Visit(stmt sq.SelectBuilder, params visitor.Params) (sq.SelectBuilder, error) {
	value, ok := params[ob.param]
	if !ok {
		return stmt, nil
	}
	expr, ok := value.(string)
	if !ok {
		expr = fmt.Sprintf("%v", value)
	}
	for _, token := range strings.Split(expr, ",") {
		descending := strings.HasPrefix(token, DescPrefix)
		attr := strings.TrimPrefix(token, DescPrefix)
		column, ok := ob.attributes[attr]
		if !ok {
			return sq.SelectBuilder{}, storageerrors.NewUnknownSortKeyError(attr)
		}
		if descending {
			stmt = stmt.OrderBy(column + " DESC")
		} else {
			stmt = stmt.OrderBy(column)
		}
	}
	return stmt, nil
}
