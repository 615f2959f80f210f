/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filter

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
				{Name: "name"},
				{Name: "price"},
				{Name: "deleted_at"},
			},
			PrimaryKey: []string{"id"},
		},
	}
}

func baseSelect() sq.SelectBuilder {
	return sq.Select("items.id").From("items")
}

func mustSQL(t *testing.T, stmt sq.SelectBuilder) (string, []any) {
	t.Helper()
	query, args, err := stmt.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}
	return query, args
}

func TestNewFilterMap(t *testing.T) {
	t.Run("ResolvesColumnsAtConstruction", func(t *testing.T) {
		_, err := NewFilterMap(testNamespace(), map[string]Spec{
			"name":     {Column: "Item.name"},
			"price_gt": {Column: "Item.price", Op: Gt},
		})
		if err != nil {
			t.Fatalf("Failed to create filter map: %v", err)
		}
	})

	t.Run("FailsFastOnBadReference", func(t *testing.T) {
		_, err := NewFilterMap(testNamespace(), map[string]Spec{
			"bad": {Column: "Item.bogus"},
		})
		if !storageerrors.IsConfigurationError(err) {
			t.Errorf("Expected configuration error, got %v", err)
		}
	})
}

func TestFilterMapVisit(t *testing.T) {
	fm, err := NewFilterMap(testNamespace(), map[string]Spec{
		"name":     {Column: "Item.name", Op: ILike},
		"price_gt": {Column: "Item.price", Op: Gt},
		"price":    {Column: "Item.price"},
	})
	if err != nil {
		t.Fatalf("Failed to create filter map: %v", err)
	}

	t.Run("AppliesPresentKeys", func(t *testing.T) {
		stmt, err := fm.Visit(baseSelect(), visitor.Params{
			"name":     "%apple%",
			"price_gt": 1.0,
		})
		if err != nil {
			t.Fatalf("Visit failed: %v", err)
		}
		query, args := mustSQL(t, stmt)
		expected := "SELECT items.id FROM items WHERE LOWER(items.name) LIKE LOWER(?) AND items.price > ?"
		if query != expected {
			t.Errorf("Expected %q, got %q", expected, query)
		}
		if len(args) != 2 || args[0] != "%apple%" || args[1] != 1.0 {
			t.Errorf("Unexpected args: %v", args)
		}
	})

	t.Run("DefaultOperatorIsEquality", func(t *testing.T) {
		stmt, err := fm.Visit(baseSelect(), visitor.Params{"price": 2.5})
		if err != nil {
			t.Fatalf("Visit failed: %v", err)
		}
		query, args := mustSQL(t, stmt)
		expected := "SELECT items.id FROM items WHERE items.price = ?"
		if query != expected {
			t.Errorf("Expected %q, got %q", expected, query)
		}
		if len(args) != 1 || args[0] != 2.5 {
			t.Errorf("Unexpected args: %v", args)
		}
	})

	t.Run("IgnoresUnrecognizedKeys", func(t *testing.T) {
		stmt, err := fm.Visit(baseSelect(), visitor.Params{"unrelated": "x"})
		if err != nil {
			t.Fatalf("Visit failed: %v", err)
		}
		query, _ := mustSQL(t, stmt)
		if query != "SELECT items.id FROM items" {
			t.Errorf("Expected unchanged statement, got %q", query)
		}
	})

	t.Run("AbsentKeysAreNoOp", func(t *testing.T) {
		stmt, err := fm.Visit(baseSelect(), visitor.Params{})
		if err != nil {
			t.Fatalf("Visit failed: %v", err)
		}
		query, _ := mustSQL(t, stmt)
		if query != "SELECT items.id FROM items" {
			t.Errorf("Expected unchanged statement, got %q", query)
		}
	})

	t.Run("ZeroValuesStillApply", func(t *testing.T) {
		// Presence is key membership, not truthiness.
		for name, value := range map[string]any{"zero": 0, "empty": "", "false": false} {
			t.Run(name, func(t *testing.T) {
				stmt, err := fm.Visit(baseSelect(), visitor.Params{"price": value})
				if err != nil {
					t.Fatalf("Visit failed: %v", err)
				}
				query, args := mustSQL(t, stmt)
				expected := "SELECT items.id FROM items WHERE items.price = ?"
				if query != expected {
					t.Errorf("Expected %q, got %q", expected, query)
				}
				if len(args) != 1 || args[0] != value {
					t.Errorf("Unexpected args: %v", args)
				}
			})
		}
	})
}

func TestOperators(t *testing.T) {
	tests := []struct {
		name     string
		op       Operator
		expected string
	}{
		{"Eq", Eq, "items.price = ?"},
		{"NotEq", NotEq, "items.price <> ?"},
		{"Gt", Gt, "items.price > ?"},
		{"GtEq", GtEq, "items.price >= ?"},
		{"Lt", Lt, "items.price < ?"},
		{"LtEq", LtEq, "items.price <= ?"},
		{"Like", Like, "items.price LIKE ?"},
		{"ILike", ILike, "LOWER(items.price) LIKE LOWER(?)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.op("items.price", 1).ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}
			if query != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, query)
			}
			if len(args) != 1 {
				t.Errorf("Expected one arg, got %v", args)
			}
		})
	}
}
