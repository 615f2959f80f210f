/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlstore

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	storageerrors "github.com/Aesonus/alchemical-storage/errors"
	"github.com/Aesonus/alchemical-storage/filter"
	"github.com/Aesonus/alchemical-storage/join"
	"github.com/Aesonus/alchemical-storage/pagination"
	"github.com/Aesonus/alchemical-storage/schema"
	"github.com/Aesonus/alchemical-storage/storage/testmodels"
	"github.com/Aesonus/alchemical-storage/visitor"
)

const integrationDDL = `
CREATE TABLE departments (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE items (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	price REAL NOT NULL,
	department_id INTEGER REFERENCES departments(id),
	deleted_at TEXT
);
`

func setupEngine(t *testing.T) *sql.DB {
	t.Helper()
	_ = godotenv.Load("../../.env")
	if os.Getenv("SKIP_INTEGRATION_TESTS") != "" {
		t.Skip("Skipping integration tests (SKIP_INTEGRATION_TESTS is set)")
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	// A fresh connection would see a fresh in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(integrationDDL); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}
	return db
}

func itemPipeline(t *testing.T) visitor.Pipeline {
	t.Helper()
	ns := testmodels.Namespace()

	jm, err := join.NewJoinMap(ns, []join.Spec{
		{Triggers: []string{"department_name"}, Relationships: []string{"Item.Department"}},
	})
	if err != nil {
		t.Fatalf("Failed to create join map: %v", err)
	}
	fm, err := filter.NewFilterMap(ns, map[string]filter.Spec{
		"price_gt":        {Column: "Item.price", Op: filter.Gt},
		"name_like":       {Column: "Item.name", Op: filter.ILike},
		"department_name": {Column: "Department.name"},
	})
	if err != nil {
		t.Fatalf("Failed to create filter map: %v", err)
	}
	nf, err := filter.NewNullFilterMap(ns, map[string]string{
		"deleted": "Item.deleted_at",
	})
	if err != nil {
		t.Fatalf("Failed to create null filter map: %v", err)
	}
	ob, err := filter.NewOrderByMap(ns, map[string]string{
		"name":  "Item.name",
		"price": "Item.price",
	})
	if err != nil {
		t.Fatalf("Failed to create order by map: %v", err)
	}
	return visitor.Pipeline{jm, fm, nf, ob, pagination.NewPaginationMap("page")}
}

func seedIntegration(t *testing.T, db *sql.DB) (*DatabaseStorage[testmodels.Item], *DatabaseStorage[testmodels.Department]) {
	t.Helper()
	ctx := context.Background()

	departments, err := NewDatabaseStorage[testmodels.Department](db, schema.NewMapSchema[testmodels.Department]())
	if err != nil {
		t.Fatalf("Failed to create department storage: %v", err)
	}
	items, err := NewDatabaseStorage[testmodels.Item](db, schema.NewMapSchema[testmodels.Item](),
		WithVisitors[testmodels.Item](itemPipeline(t)))
	if err != nil {
		t.Fatalf("Failed to create item storage: %v", err)
	}

	if _, err := departments.Put(ctx, int64(1), map[string]any{"name": "Produce"}); err != nil {
		t.Fatalf("Failed to seed department: %v", err)
	}
	if _, err := departments.Put(ctx, int64(2), map[string]any{"name": "Bakery"}); err != nil {
		t.Fatalf("Failed to seed department: %v", err)
	}

	seed := []struct {
		id   int64
		data map[string]any
	}{
		{1, map[string]any{"name": "Apple", "price": 1.5, "department_id": 1}},
		{2, map[string]any{"name": "Banana", "price": 0.25, "department_id": 1}},
		{3, map[string]any{"name": "Bread", "price": 3.0, "department_id": 2}},
		{4, map[string]any{"name": "Bagel", "price": 1.0, "department_id": 2, "deleted_at": "2025-06-01T12:00:00.000Z"}},
	}
	for _, s := range seed {
		if _, err := items.Put(ctx, s.id, s.data); err != nil {
			t.Fatalf("Failed to seed item %d: %v", s.id, err)
		}
	}
	return items, departments
}

func TestIntegrationCRUD(t *testing.T) {
	db := setupEngine(t)
	items, _ := seedIntegration(t, db)
	ctx := context.Background()

	t.Run("Get", func(t *testing.T) {
		record, err := items.Get(ctx, int64(1))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if record.Name == nil || *record.Name != "Apple" || record.Price != 1.5 {
			t.Errorf("Unexpected record: %+v", record)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := items.Get(ctx, int64(999))
		if !storageerrors.IsNotFound(err) {
			t.Errorf("Expected not found error, got %v", err)
		}
	})

	t.Run("PutConflict", func(t *testing.T) {
		_, err := items.Put(ctx, int64(1), map[string]any{"name": "Duplicate", "price": 1.0})
		if !storageerrors.IsConflict(err) {
			t.Errorf("Expected conflict error, got %v", err)
		}
	})

	t.Run("PutAutoKey", func(t *testing.T) {
		record, err := items.Put(ctx, nil, map[string]any{"name": "Cherry", "price": 4.0, "department_id": 1})
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if record.ID == 0 {
			t.Error("Expected a generated key")
		}
		if record.Name == nil || *record.Name != "Cherry" {
			t.Errorf("Unexpected record: %+v", record)
		}
		// The generated key addresses the record from now on
		got, err := items.Get(ctx, record.ID)
		if err != nil {
			t.Fatalf("Get of generated key failed: %v", err)
		}
		if got.Price != 4.0 {
			t.Errorf("Unexpected record: %+v", got)
		}
	})

	t.Run("Patch", func(t *testing.T) {
		record, err := items.Patch(ctx, int64(2), map[string]any{"price": 0.35})
		if err != nil {
			t.Fatalf("Patch failed: %v", err)
		}
		if record.Price != 0.35 {
			t.Errorf("Expected price 0.35, got %v", record.Price)
		}
		if record.Name == nil || *record.Name != "Banana" {
			t.Errorf("Expected name to be retained, got %v", record.Name)
		}
	})

	t.Run("PatchRejectsInvalidMerge", func(t *testing.T) {
		_, err := items.Patch(ctx, int64(2), map[string]any{"price": -1.0})
		if !storageerrors.IsValidationError(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
		// The record is untouched after the rejected merge
		record, err := items.Get(ctx, int64(2))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if record.Price < 0 {
			t.Errorf("Expected price to be unchanged, got %v", record.Price)
		}
	})

	t.Run("DeleteReturnsRecord", func(t *testing.T) {
		record, err := items.Delete(ctx, int64(3))
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if record.Name == nil || *record.Name != "Bread" {
			t.Errorf("Unexpected record: %+v", record)
		}
		exists, err := items.Contains(ctx, int64(3))
		if err != nil {
			t.Fatalf("Contains failed: %v", err)
		}
		if exists {
			t.Error("Expected record to be gone after delete")
		}
	})
}

func TestIntegrationIndex(t *testing.T) {
	db := setupEngine(t)
	items, _ := seedIntegration(t, db)
	ctx := context.Background()

	t.Run("Filter", func(t *testing.T) {
		rows, err := items.Index(ctx, visitor.Params{"price_gt": 1.0})
		if err != nil {
			t.Fatalf("Index failed: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(rows))
		}
	})

	t.Run("CaseInsensitiveLike", func(t *testing.T) {
		rows, err := items.Index(ctx, visitor.Params{"name_like": "ba%"})
		if err != nil {
			t.Fatalf("Index failed: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected Banana and Bagel, got %d rows", len(rows))
		}
	})

	t.Run("OrderBy", func(t *testing.T) {
		rows, err := items.Index(ctx, visitor.Params{"order_by": "-price,name"})
		if err != nil {
			t.Fatalf("Index failed: %v", err)
		}
		if len(rows) != 4 {
			t.Fatalf("Expected 4 rows, got %d", len(rows))
		}
		first, ok := rows[0]["name"].(*string)
		if !ok || first == nil || *first != "Bread" {
			t.Errorf("Expected Bread first, got %v", rows[0]["name"])
		}
	})

	t.Run("Pagination", func(t *testing.T) {
		rows, err := items.Index(ctx, visitor.Params{
			"order_by": "name",
			"page":     pagination.Page{PageSize: 2, FirstItem: 1},
		})
		if err != nil {
			t.Fatalf("Index failed: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(rows))
		}
		first, ok := rows[0]["name"].(*string)
		if !ok || first == nil || *first != "Bagel" {
			t.Errorf("Expected Bagel first on page, got %v", rows[0]["name"])
		}
	})

	t.Run("JoinTrigger", func(t *testing.T) {
		rows, err := items.Index(ctx, visitor.Params{"department_name": "Produce"})
		if err != nil {
			t.Fatalf("Index failed: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected 2 produce items, got %d", len(rows))
		}
	})

	t.Run("NullFilter", func(t *testing.T) {
		rows, err := items.Index(ctx, visitor.Params{"deleted": "not-null"})
		if err != nil {
			t.Fatalf("Index failed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("Expected 1 soft-deleted item, got %d", len(rows))
		}
		rows, err = items.Index(ctx, visitor.Params{"deleted": "null"})
		if err != nil {
			t.Fatalf("Index failed: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("Expected 3 live items, got %d", len(rows))
		}
	})

	t.Run("Count", func(t *testing.T) {
		count, err := items.Count(ctx, visitor.Params{"price_gt": 1.0})
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 2 {
			t.Errorf("Expected count 2, got %d", count)
		}
	})

	t.Run("CountIgnoresPageWindow", func(t *testing.T) {
		// LIMIT attaches but does not window the aggregate itself
		count, err := items.Count(ctx, visitor.Params{
			"page": pagination.Page{PageSize: 3, FirstItem: 0},
		})
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 4 {
			t.Errorf("Expected full count 4, got %d", count)
		}
	})
}
