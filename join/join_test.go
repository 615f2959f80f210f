/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package join

import (
	"testing"

	sq "github.com/Masterminds/squirrel"

	storageerrors "github.com/Aesonus/alchemical-storage/errors"
	"github.com/Aesonus/alchemical-storage/registry"
	"github.com/Aesonus/alchemical-storage/visitor"
)

func testNamespace() registry.Namespace {
	return registry.Namespace{
		"Item": {
			Name:  "Item",
			Table: "items",
			Columns: []registry.Column{
				{Name: "id"},
				{Name: "department_id"},
			},
			Relationships: map[string]registry.Relationship{
				"Department": {Target: "departments", On: "departments.id = items.department_id"},
				"Supplier":   {Target: "suppliers", On: "suppliers.id = items.supplier_id"},
			},
			PrimaryKey: []string{"id"},
		},
	}
}

func baseSelect() sq.SelectBuilder {
	return sq.Select("items.id").From("items")
}

func TestNewJoinMap(t *testing.T) {
	t.Run("ResolvesRelationships", func(t *testing.T) {
		_, err := NewJoinMap(testNamespace(), []Spec{
			{Triggers: []string{"department"}, Relationships: []string{"Item.Department"}},
		})
		if err != nil {
			t.Fatalf("Failed to create join map: %v", err)
		}
	})

	t.Run("FailsFastOnBadReference", func(t *testing.T) {
		_, err := NewJoinMap(testNamespace(), []Spec{
			{Triggers: []string{"department"}, Relationships: []string{"Item.Warehouse"}},
		})
		if !storageerrors.IsConfigurationError(err) {
			t.Errorf("Expected configuration error, got %v", err)
		}
	})
}

func TestJoinMapVisit(t *testing.T) {
	jm, err := NewJoinMap(testNamespace(), []Spec{
		{
			Triggers:      []string{"department", "department_name"},
			Relationships: []string{"Item.Department"},
		},
		{
			Triggers:      []string{"supplier"},
			Relationships: []string{"Item.Supplier"},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create join map: %v", err)
	}

	t.Run("TriggerAttachesJoin", func(t *testing.T) {
		stmt, err := jm.Visit(baseSelect(), visitor.Params{"department": 3})
		if err != nil {
			t.Fatalf("Visit failed: %v", err)
		}
		query, _, err := stmt.ToSql()
		if err != nil {
			t.Fatalf("ToSql failed: %v", err)
		}
		expected := "SELECT items.id FROM items JOIN departments ON departments.id = items.department_id"
		if query != expected {
			t.Errorf("Expected %q, got %q", expected, query)
		}
	})

	t.Run("FalsyTriggerStillFires", func(t *testing.T) {
		// Trigger values are never inspected; presence alone activates the join
		stmt, err := jm.Visit(baseSelect(), visitor.Params{"department": nil})
		if err != nil {
			t.Fatalf("Visit failed: %v", err)
		}
		query, _, err := stmt.ToSql()
		if err != nil {
			t.Fatalf("ToSql failed: %v", err)
		}
		expected := "SELECT items.id FROM items JOIN departments ON departments.id = items.department_id"
		if query != expected {
			t.Errorf("Expected %q, got %q", expected, query)
		}
	})

	t.Run("MultipleTriggersJoinOnce", func(t *testing.T) {
		// Both triggers of the same spec present: one join, not two
		stmt, err := jm.Visit(baseSelect(), visitor.Params{"department": 3, "department_name": "Produce"})
		if err != nil {
			t.Fatalf("Visit failed: %v", err)
		}
		query, _, err := stmt.ToSql()
		if err != nil {
			t.Fatalf("ToSql failed: %v", err)
		}
		expected := "SELECT items.id FROM items JOIN departments ON departments.id = items.department_id"
		if query != expected {
			t.Errorf("Expected %q, got %q", expected, query)
		}
	})

	t.Run("IndependentSpecsJoinInDeclarationOrder", func(t *testing.T) {
		stmt, err := jm.Visit(baseSelect(), visitor.Params{"department": 3, "supplier": 7})
		if err != nil {
			t.Fatalf("Visit failed: %v", err)
		}
		query, _, err := stmt.ToSql()
		if err != nil {
			t.Fatalf("ToSql failed: %v", err)
		}
		expected := "SELECT items.id FROM items " +
			"JOIN departments ON departments.id = items.department_id " +
			"JOIN suppliers ON suppliers.id = items.supplier_id"
		if query != expected {
			t.Errorf("Expected %q, got %q", expected, query)
		}
	})

	t.Run("NoTriggerIsNoOp", func(t *testing.T) {
		stmt, err := jm.Visit(baseSelect(), visitor.Params{"unrelated": 1})
		if err != nil {
			t.Fatalf("Visit failed: %v", err)
		}
		query, _, err := stmt.ToSql()
		if err != nil {
			t.Fatalf("ToSql failed: %v", err)
		}
		if query != "SELECT items.id FROM items" {
			t.Errorf("Expected unchanged statement, got %q", query)
		}
	})
}
