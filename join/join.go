/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package join

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/Aesonus/alchemical-storage/registry"
	"github.com/Aesonus/alchemical-storage/visitor"
)

// Spec declares one join rule: when any trigger parameter is present in the
// request, every listed relationship is joined.
type Spec struct {
	// Triggers are the parameter names whose presence activates the joins.
	// The parameter values are never inspected.
	Triggers []string
	// Relationships are "Model.Relation" references resolved at
	// construction time, joined in declaration order.
	Relationships []string
}

type boundJoin struct {
	triggers []string
	clauses  []string
}

// JoinMap attaches join clauses when trigger parameters are present. A
// JoinMap usually runs before the filter visitors that reference the joined
// tables; that ordering is the pipeline owner's responsibility.
type JoinMap struct {
	joins []boundJoin
}

// NewJoinMap resolves every relationship reference in the specs against the
// namespace, failing with a ConfigurationError on the first bad reference.
func NewJoinMap(ns registry.Namespace, specs []Spec) (*JoinMap, error) {
	jm := &JoinMap{joins: make([]boundJoin, 0, len(specs))}
	for _, spec := range specs {
		clauses := make([]string, 0, len(spec.Relationships))
		for _, ref := range spec.Relationships {
			rel, err := ns.ResolveRelationship(ref)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, rel.JoinClause())
		}
		jm.joins = append(jm.joins, boundJoin{triggers: spec.Triggers, clauses: clauses})
	}
	return jm, nil
}

// Visit attaches the configured joins of every spec with at least one
// trigger present in params. Presence alone triggers: falsy values count.
// Each activated spec attaches its join set exactly once.
func (jm *JoinMap) Visit(stmt sq.SelectBuilder, params visitor.Params) (sq.SelectBuilder, error) {
	for _, j := range jm.joins {
		if !triggered(j.triggers, params) {
			continue
		}
		for _, clause := range j.clauses {
			stmt = stmt.Join(clause)
		}
	}
	return stmt, nil
}

func triggered(triggers []string, params visitor.Params) bool {
	for _, t := range triggers {
		if params.Has(t) {
			return true
		}
	}
	return false
}
