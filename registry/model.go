/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"strings"

	storageerrors "github.com/Aesonus/alchemical-storage/errors"
)

// RefSeparator splits a column reference into model name and attribute name.
const RefSeparator = "."

// Column maps an entity attribute to its SQL column.
type Column struct {
	// Name is the attribute name used in references and record maps.
	Name string
	// SQL is the column name in the table. Defaults to Name when empty.
	SQL string
}

// Relationship describes a joinable relationship of a model.
type Relationship struct {
	// Target is the table (optionally aliased) to join.
	Target string
	// On is the join condition, e.g. "departments.id = items.department_id".
	On string
}

// JoinClause renders the relationship as a statement builder join clause.
func (r Relationship) JoinClause() string {
	return r.Target + " ON " + r.On
}

// Model describes one entity: its table, columns, relationships and primary key.
// Columns are ordered; the order is used for SELECT lists and INSERT column
// lists so generated statements are deterministic.
type Model struct {
	Name          string
	Table         string
	Columns       []Column
	Relationships map[string]Relationship
	PrimaryKey    []string
}

// Column returns the column definition for the given attribute name.
func (m *Model) Column(name string) (Column, bool) {
	for _, c := range m.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnSQL returns the unqualified SQL column name for an attribute.
func (m *Model) ColumnSQL(name string) (string, bool) {
	c, ok := m.Column(name)
	if !ok {
		return "", false
	}
	if c.SQL == "" {
		return c.Name, true
	}
	return c.SQL, true
}

// Qualified returns the table-qualified SQL column for an attribute.
func (m *Model) Qualified(name string) (string, bool) {
	sqlName, ok := m.ColumnSQL(name)
	if !ok {
		return "", false
	}
	return m.Table + "." + sqlName, true
}

// SelectColumns returns the full table-qualified SELECT list in column order.
func (m *Model) SelectColumns() []string {
	cols := make([]string, 0, len(m.Columns))
	for _, c := range m.Columns {
		sqlName := c.SQL
		if sqlName == "" {
			sqlName = c.Name
		}
		cols = append(cols, m.Table+"."+sqlName)
	}
	return cols
}

// Namespace maps model names to model definitions. Mapping components
// resolve their column references against a Namespace once, when they are
// constructed.
type Namespace map[string]*Model

// splitRef splits "Model.attr" into its two parts.
func splitRef(ref string) (model, attr string, ok bool) {
	parts := strings.SplitN(ref, RefSeparator, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// ResolveColumn resolves a "Model.attr" reference into a table-qualified
// SQL column. Resolution fails with a ConfigurationError if the model or
// the attribute does not exist.
func (ns Namespace) ResolveColumn(ref string) (string, error) {
	modelName, attr, ok := splitRef(ref)
	if !ok {
		return "", storageerrors.NewConfigurationError(ref, "column reference must be of the form Model.attr")
	}
	model, ok := ns[modelName]
	if !ok {
		return "", storageerrors.NewConfigurationError(ref, "unknown model "+modelName)
	}
	qualified, ok := model.Qualified(attr)
	if !ok {
		return "", storageerrors.NewConfigurationError(ref, "model "+modelName+" has no column "+attr)
	}
	return qualified, nil
}

// ResolveRelationship resolves a "Model.Relation" reference into the
// relationship declared on the model. Resolution fails with a
// ConfigurationError if the model or the relationship does not exist.
func (ns Namespace) ResolveRelationship(ref string) (Relationship, error) {
	modelName, attr, ok := splitRef(ref)
	if !ok {
		return Relationship{}, storageerrors.NewConfigurationError(ref, "relationship reference must be of the form Model.Relation")
	}
	model, ok := ns[modelName]
	if !ok {
		return Relationship{}, storageerrors.NewConfigurationError(ref, "unknown model "+modelName)
	}
	rel, ok := model.Relationships[attr]
	if !ok {
		return Relationship{}, storageerrors.NewConfigurationError(ref, "model "+modelName+" has no relationship "+attr)
	}
	return rel, nil
}
