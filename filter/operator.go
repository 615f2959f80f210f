/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filter

import (
	sq "github.com/Masterminds/squirrel"
)

// Operator builds a predicate expression from a resolved column and the
// request-supplied value. Operators are bound to columns when a FilterMap is
// constructed, never at request time.
type Operator func(column string, value any) sq.Sqlizer

// Comparison operators usable in filter specifications.
var (
	// Eq is the default operator: column = value.
	Eq Operator = func(column string, value any) sq.Sqlizer {
		return sq.Eq{column: value}
	}

	// NotEq builds column <> value.
	NotEq Operator = func(column string, value any) sq.Sqlizer {
		return sq.NotEq{column: value}
	}

	// Gt builds column > value.
	Gt Operator = func(column string, value any) sq.Sqlizer {
		return sq.Gt{column: value}
	}

	// GtEq builds column >= value.
	GtEq Operator = func(column string, value any) sq.Sqlizer {
		return sq.GtOrEq{column: value}
	}

	// Lt builds column < value.
	Lt Operator = func(column string, value any) sq.Sqlizer {
		return sq.Lt{column: value}
	}

	// LtEq builds column <= value.
	LtEq Operator = func(column string, value any) sq.Sqlizer {
		return sq.LtOrEq{column: value}
	}

	// Like builds column LIKE value.
	Like Operator = func(column string, value any) sq.Sqlizer {
		return sq.Like{column: value}
	}

	// ILike builds a case-insensitive LIKE. It lowers both sides rather
	// than emitting the ILIKE keyword so the predicate works on engines
	// that lack it.
	ILike Operator = func(column string, value any) sq.Sqlizer {
		return sq.Expr("LOWER("+column+") LIKE LOWER(?)", value)
	}
)
