/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels provides the record types and model definitions used
// by the storage tests.
package testmodels

import (
	"sync"

	"github.com/go-openapi/strfmt"

	"github.com/Aesonus/alchemical-storage/registry"
)

// Item is the primary test record.
type Item struct {

	// Unique identifier for the item.
	ID int64 `json:"id"`

	// Name of the item.
	// Required: true
	Name *string `json:"name" validate:"required"`

	// Unit price of the item.
	Price float64 `json:"price" validate:"gte=0"`

	// Department the item belongs to.
	DepartmentID *int64 `json:"department_id"`

	// Timestamp when the item was soft-deleted.
	// Format: date-time
	DeletedAt *strfmt.DateTime `json:"deleted_at,omitempty"`
}

// Department is the join target for Item.
type Department struct {

	// Unique identifier for the department.
	ID int64 `json:"id"`

	// Name of the department.
	// Required: true
	Name *string `json:"name" validate:"required"`
}

// CompositeKeyModel exercises composite primary keys.
type CompositeKeyModel struct {
	Attr  int64  `json:"attr"`
	Attr2 int64  `json:"attr2"`
	Attr3 string `json:"attr3"`
}

// ItemModel returns the model definition for Item.
func ItemModel() *registry.Model {
	return &registry.Model{
		Name:  "Item",
		Table: "items",
		Columns: []registry.Column{
			{Name: "id"},
			{Name: "name"},
			{Name: "price"},
			{Name: "department_id"},
			{Name: "deleted_at"},
		},
		Relationships: map[string]registry.Relationship{
			"Department": {Target: "departments", On: "departments.id = items.department_id"},
		},
		PrimaryKey: []string{"id"},
	}
}

// DepartmentModel returns the model definition for Department.
func DepartmentModel() *registry.Model {
	return &registry.Model{
		Name:  "Department",
		Table: "departments",
		Columns: []registry.Column{
			{Name: "id"},
			{Name: "name"},
		},
		PrimaryKey: []string{"id"},
	}
}

// CompositeKeyModelDef returns the model definition for CompositeKeyModel.
func CompositeKeyModelDef() *registry.Model {
	return &registry.Model{
		Name:  "CompositeKeyModel",
		Table: "composite_key_models",
		Columns: []registry.Column{
			{Name: "attr"},
			{Name: "attr2"},
			{Name: "attr3"},
		},
		PrimaryKey: []string{"attr", "attr2"},
	}
}

// Namespace returns a namespace holding all test models.
func Namespace() registry.Namespace {
	return registry.Namespace{
		"Item":              ItemModel(),
		"Department":        DepartmentModel(),
		"CompositeKeyModel": CompositeKeyModelDef(),
	}
}

var registerOnce sync.Once

// Register registers the test models with the global model registry.
// Safe to call from multiple tests in one binary.
func Register() {
	registerOnce.Do(func() {
		registry.RegisterModel[Item](ItemModel())
		registry.RegisterModel[Department](DepartmentModel())
		registry.RegisterModel[CompositeKeyModel](CompositeKeyModelDef())
	})
}
