/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlstore

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	storageerrors "github.com/Aesonus/alchemical-storage/errors"
	"github.com/Aesonus/alchemical-storage/registry"
	"github.com/Aesonus/alchemical-storage/schema"
	"github.com/Aesonus/alchemical-storage/visitor"
)

// DBTX is the narrow engine capability the store needs. Both *sql.DB and
// *sql.Tx satisfy it, so transaction discipline stays with the caller.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RowMapper converts one scanned row into a record.
type RowMapper[T any] func(row map[string]any) (*T, error)

// DatabaseIndex answers "get matching records" and "count matching records"
// by folding the request parameters through its visitor pipeline against a
// base select statement.
//
// The pipeline applies identically to Get and Count, so the same parameter
// bag always yields the same filter and join clauses on both paths.
// Pagination and ordering parameters attach their clauses to the count
// statement too; since LIMIT does not window an aggregate, callers normally
// omit them from Count calls.
type DatabaseIndex[T any] struct {
	db          DBTX
	model       *registry.Model
	countColumn string
	pipeline    visitor.Pipeline
	mapRow      RowMapper[T]
}

// IndexOption configures a DatabaseIndex.
type IndexOption[T any] func(*DatabaseIndex[T]) error

// WithPipeline sets the visitor pipeline, applied in the given order.
func WithPipeline[T any](pipeline visitor.Pipeline) IndexOption[T] {
	return func(idx *DatabaseIndex[T]) error {
		idx.pipeline = pipeline
		return nil
	}
}

// WithCountColumn sets the model attribute counted by Count. Defaults to
// the first primary key attribute.
func WithCountColumn[T any](attr string) IndexOption[T] {
	return func(idx *DatabaseIndex[T]) error {
		qualified, ok := idx.model.Qualified(attr)
		if !ok {
			return storageerrors.NewConfigurationError(idx.model.Name+registry.RefSeparator+attr, "unknown count column")
		}
		idx.countColumn = qualified
		return nil
	}
}

// WithRowMapper overrides how scanned rows become records. The default
// mapper loads rows through a MapSchema for T.
func WithRowMapper[T any](mapRow RowMapper[T]) IndexOption[T] {
	return func(idx *DatabaseIndex[T]) error {
		idx.mapRow = mapRow
		return nil
	}
}

// NewDatabaseIndex creates an index for the model registered for type T.
func NewDatabaseIndex[T any](db DBTX, opts ...IndexOption[T]) (*DatabaseIndex[T], error) {
	model, err := registry.ModelFor[T]()
	if err != nil {
		return nil, err
	}
	return newDatabaseIndex(db, model, opts...)
}

func newDatabaseIndex[T any](db DBTX, model *registry.Model, opts ...IndexOption[T]) (*DatabaseIndex[T], error) {
	if len(model.PrimaryKey) == 0 {
		return nil, storageerrors.NewConfigurationError(model.Name, "model has no primary key")
	}
	countColumn, ok := model.Qualified(model.PrimaryKey[0])
	if !ok {
		return nil, storageerrors.NewConfigurationError(model.Name+registry.RefSeparator+model.PrimaryKey[0], "primary key attribute has no column")
	}
	recordSchema := schema.NewMapSchema[T]()
	idx := &DatabaseIndex[T]{
		db:          db,
		model:       model,
		countColumn: countColumn,
		mapRow:      recordSchema.Load,
	}
	for _, opt := range opts {
		if err := opt(idx); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// Get builds the base select-all statement for the model, folds it through
// the pipeline and executes it. No matches yields an empty slice.
func (idx *DatabaseIndex[T]) Get(ctx context.Context, params visitor.Params) ([]*T, error) {
	stmt := sq.Select(idx.model.SelectColumns()...).From(idx.model.Table)
	stmt, err := idx.pipeline.Apply(stmt, params)
	if err != nil {
		return nil, err
	}
	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, storageerrors.NewQueryExecutionError("index", err)
	}
	rows, err := idx.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageerrors.NewQueryExecutionError("index", err)
	}
	defer rows.Close()

	records := make([]*T, 0)
	for rows.Next() {
		row, err := idx.scanRow(rows)
		if err != nil {
			return nil, err
		}
		record, err := idx.mapRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storageerrors.NewQueryExecutionError("index", err)
	}
	return records, nil
}

// Count builds a select count statement for the configured count column,
// folds it through the same pipeline as Get and returns the scalar result.
func (idx *DatabaseIndex[T]) Count(ctx context.Context, params visitor.Params) (int64, error) {
	stmt := sq.Select("count(" + idx.countColumn + ")").From(idx.model.Table)
	stmt, err := idx.pipeline.Apply(stmt, params)
	if err != nil {
		return 0, err
	}
	query, args, err := stmt.ToSql()
	if err != nil {
		return 0, storageerrors.NewQueryExecutionError("count", err)
	}
	var count int64
	if err := idx.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, storageerrors.NewQueryExecutionError("count", err)
	}
	return count, nil
}

// scanRow scans the current row into an attribute map keyed by the model's
// attribute names. The select list is built from the model's column order,
// so positions line up.
func (idx *DatabaseIndex[T]) scanRow(rows *sql.Rows) (map[string]any, error) {
	values := make([]any, len(idx.model.Columns))
	targets := make([]any, len(idx.model.Columns))
	for i := range values {
		targets[i] = &values[i]
	}
	if err := rows.Scan(targets...); err != nil {
		return nil, storageerrors.NewQueryExecutionError("index", err)
	}
	row := make(map[string]any, len(idx.model.Columns))
	for i, col := range idx.model.Columns {
		row[col.Name] = values[i]
	}
	return row, nil
}
