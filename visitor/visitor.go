/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package visitor

import (
	sq "github.com/Masterminds/squirrel"
)

// Params is the request parameter bag inspected by statement visitors.
// A parameter counts as given when its key is present, regardless of how
// falsy its value is.
type Params map[string]any

// Has reports whether the parameter is present.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// StatementVisitor inspects the parameter bag and conditionally attaches
// clauses to a select statement.
//
// Implementations must be pure functions of their two inputs plus their own
// immutable configuration: they ignore parameters they do not recognize, and
// the absence of a recognized parameter is a no-op, never an error.
type StatementVisitor interface {
	Visit(stmt sq.SelectBuilder, params Params) (sq.SelectBuilder, error)
}

// Func adapts an ordinary function to the StatementVisitor interface.
type Func func(stmt sq.SelectBuilder, params Params) (sq.SelectBuilder, error)

// Visit implements StatementVisitor.
func (f Func) Visit(stmt sq.SelectBuilder, params Params) (sq.SelectBuilder, error) {
	return f(stmt, params)
}

// Pipeline is an ordered sequence of statement visitors applied
// left-to-right to one statement per request.
//
// Ordering is the caller's responsibility: a join visitor must precede any
// filter visitor that references a joined table's columns. The pipeline
// never reorders its stages.
type Pipeline []StatementVisitor

// Apply folds the statement through every visitor in order. Each stage
// receives the statement as returned by the previous one. The first visitor
// error aborts the fold; a partially modified statement is never returned.
func (p Pipeline) Apply(stmt sq.SelectBuilder, params Params) (sq.SelectBuilder, error) {
	for _, v := range p {
		next, err := v.Visit(stmt, params)
		if err != nil {
			return sq.SelectBuilder{}, err
		}
		stmt = next
	}
	return stmt, nil
}
