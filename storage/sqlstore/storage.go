/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlstore

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	sq "github.com/Masterminds/squirrel"

	storageerrors "github.com/Aesonus/alchemical-storage/errors"
	"github.com/Aesonus/alchemical-storage/registry"
	"github.com/Aesonus/alchemical-storage/schema"
	"github.com/Aesonus/alchemical-storage/visitor"
)

// DatabaseStorage implements storage.Storage[T] against a relational engine.
// It is thin glue: single-record operations key off the model's primary key
// columns, record conversion goes through the schema, and Index/Count
// delegate to the embedded DatabaseIndex.
type DatabaseStorage[T any] struct {
	index  *DatabaseIndex[T]
	db     DBTX
	model  *registry.Model
	schema schema.Schema[T]
	pk     []string
}

// StorageOption configures a DatabaseStorage.
type StorageOption[T any] func(*DatabaseStorage[T]) error

// WithVisitors sets the statement visitor pipeline used by Get, Index and
// Count, applied in the given order.
func WithVisitors[T any](pipeline visitor.Pipeline) StorageOption[T] {
	return func(s *DatabaseStorage[T]) error {
		idx, err := newDatabaseIndex(s.db, s.model, WithPipeline[T](pipeline), WithRowMapper(s.schema.Load))
		if err != nil {
			return err
		}
		s.index = idx
		return nil
	}
}

// WithPrimaryKey overrides the key attributes used for single-record
// operations. Defaults to the model's primary key.
func WithPrimaryKey[T any](attrs ...string) StorageOption[T] {
	return func(s *DatabaseStorage[T]) error {
		for _, attr := range attrs {
			if _, ok := s.model.Column(attr); !ok {
				return storageerrors.NewConfigurationError(s.model.Name+registry.RefSeparator+attr, "unknown primary key attribute")
			}
		}
		s.pk = attrs
		return nil
	}
}

// NewDatabaseStorage creates a storage for the model registered for type T.
// The session handle is externally owned; pass a *sql.Tx to scope the
// storage to a transaction.
func NewDatabaseStorage[T any](db DBTX, recordSchema schema.Schema[T], opts ...StorageOption[T]) (*DatabaseStorage[T], error) {
	model, err := registry.ModelFor[T]()
	if err != nil {
		return nil, err
	}
	idx, err := newDatabaseIndex(db, model, WithRowMapper(recordSchema.Load))
	if err != nil {
		return nil, err
	}
	s := &DatabaseStorage[T]{
		index:  idx,
		db:     db,
		model:  model,
		schema: recordSchema,
		pk:     model.PrimaryKey,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Get returns the record with the given identity.
func (s *DatabaseStorage[T]) Get(ctx context.Context, identity any) (*T, error) {
	ident, err := s.identityValues(identity)
	if err != nil {
		return nil, err
	}
	stmt := sq.Select(s.model.SelectColumns()...).From(s.model.Table)
	for i, attr := range s.pk {
		qualified, _ := s.model.Qualified(attr)
		stmt = stmt.Where(sq.Eq{qualified: ident[i]})
	}
	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, storageerrors.NewQueryExecutionError("get", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageerrors.NewQueryExecutionError("get", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, storageerrors.NewQueryExecutionError("get", err)
		}
		return nil, storageerrors.NewNotFoundError(s.model.Name, identityString(ident))
	}
	row, err := s.index.scanRow(rows)
	if err != nil {
		return nil, err
	}
	return s.schema.Load(row)
}

// Put creates a new record from data. With a nil identity the engine
// generates the key and the returned record carries it; this requires a
// single-column key. With an explicit identity the key columns are merged
// into data, and an already existing identity is a ConflictError.
func (s *DatabaseStorage[T]) Put(ctx context.Context, identity any, data map[string]any) (*T, error) {
	autoKey := isNilIdentity(identity)

	payload := make(map[string]any, len(data)+len(s.pk))
	for attr, value := range data {
		payload[attr] = value
	}

	var ident []any
	if !autoKey {
		var err error
		ident, err = s.identityValues(identity)
		if err != nil {
			return nil, err
		}
		exists, err := s.Contains(ctx, identity)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, storageerrors.NewConflictError(s.model.Name, identityString(ident))
		}
		for i, attr := range s.pk {
			payload[attr] = ident[i]
		}
	} else if len(s.pk) != 1 {
		return nil, storageerrors.NewValidationError("identity", "auto-generated keys require a single-column primary key")
	}

	record, err := s.schema.Load(payload)
	if err != nil {
		return nil, err
	}
	dumped, err := s.schema.Dump(record)
	if err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(s.model.Columns))
	values := make([]any, 0, len(s.model.Columns))
	for _, col := range s.model.Columns {
		if autoKey && s.isKeyAttr(col.Name) {
			continue
		}
		if _, given := payload[col.Name]; !given {
			continue
		}
		sqlName, _ := s.model.ColumnSQL(col.Name)
		columns = append(columns, sqlName)
		values = append(values, dumped[col.Name])
	}

	query, args, err := sq.Insert(s.model.Table).Columns(columns...).Values(values...).ToSql()
	if err != nil {
		return nil, storageerrors.NewQueryExecutionError("put", err)
	}
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, storageerrors.NewQueryExecutionError("put", err)
	}

	if autoKey {
		generated, err := result.LastInsertId()
		if err != nil {
			return nil, storageerrors.NewQueryExecutionError("put", err)
		}
		return s.Get(ctx, generated)
	}
	return s.Get(ctx, identity)
}

// Patch applies a partial update to an existing record. Only the attributes
// present in data are written; the merged record is validated first.
func (s *DatabaseStorage[T]) Patch(ctx context.Context, identity any, data map[string]any) (*T, error) {
	ident, err := s.identityValues(identity)
	if err != nil {
		return nil, err
	}
	record, err := s.Get(ctx, identity)
	if err != nil {
		return nil, err
	}
	if err := s.schema.LoadPartial(data, record); err != nil {
		return nil, err
	}
	dumped, err := s.schema.Dump(record)
	if err != nil {
		return nil, err
	}

	stmt := sq.Update(s.model.Table)
	touched := 0
	for _, col := range s.model.Columns {
		if s.isKeyAttr(col.Name) {
			continue
		}
		if _, given := data[col.Name]; !given {
			continue
		}
		sqlName, _ := s.model.ColumnSQL(col.Name)
		stmt = stmt.Set(sqlName, dumped[col.Name])
		touched++
	}
	if touched == 0 {
		return record, nil
	}
	for i, attr := range s.pk {
		sqlName, _ := s.model.ColumnSQL(attr)
		stmt = stmt.Where(sq.Eq{sqlName: ident[i]})
	}
	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, storageerrors.NewQueryExecutionError("patch", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, storageerrors.NewQueryExecutionError("patch", err)
	}
	return s.Get(ctx, identity)
}

// Delete removes a record and returns it.
func (s *DatabaseStorage[T]) Delete(ctx context.Context, identity any) (*T, error) {
	ident, err := s.identityValues(identity)
	if err != nil {
		return nil, err
	}
	record, err := s.Get(ctx, identity)
	if err != nil {
		return nil, err
	}
	stmt := sq.Delete(s.model.Table)
	for i, attr := range s.pk {
		sqlName, _ := s.model.ColumnSQL(attr)
		stmt = stmt.Where(sq.Eq{sqlName: ident[i]})
	}
	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, storageerrors.NewQueryExecutionError("delete", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, storageerrors.NewQueryExecutionError("delete", err)
	}
	return record, nil
}

// Contains reports whether a record with the given identity exists.
func (s *DatabaseStorage[T]) Contains(ctx context.Context, identity any) (bool, error) {
	ident, err := s.identityValues(identity)
	if err != nil {
		return false, err
	}
	first, _ := s.model.Qualified(s.pk[0])
	stmt := sq.Select("count(" + first + ")").From(s.model.Table)
	for i, attr := range s.pk {
		qualified, _ := s.model.Qualified(attr)
		stmt = stmt.Where(sq.Eq{qualified: ident[i]})
	}
	query, args, err := stmt.ToSql()
	if err != nil {
		return false, storageerrors.NewQueryExecutionError("contains", err)
	}
	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, storageerrors.NewQueryExecutionError("contains", err)
	}
	return count > 0, nil
}

// Index returns the matching records dumped through the schema.
func (s *DatabaseStorage[T]) Index(ctx context.Context, params visitor.Params) ([]map[string]any, error) {
	records, err := s.index.Get(ctx, params)
	if err != nil {
		return nil, err
	}
	dumped := make([]map[string]any, 0, len(records))
	for _, record := range records {
		row, err := s.schema.Dump(record)
		if err != nil {
			return nil, err
		}
		dumped = append(dumped, row)
	}
	return dumped, nil
}

// Count returns the number of matching records.
func (s *DatabaseStorage[T]) Count(ctx context.Context, params visitor.Params) (int64, error) {
	return s.index.Count(ctx, params)
}

func (s *DatabaseStorage[T]) isKeyAttr(attr string) bool {
	for _, pk := range s.pk {
		if pk == attr {
			return true
		}
	}
	return false
}

// identityValues normalizes a bare scalar or an ordered sequence into one
// value per key column.
func (s *DatabaseStorage[T]) identityValues(identity any) ([]any, error) {
	values := flattenIdentity(identity)
	if len(values) != len(s.pk) {
		return nil, storageerrors.NewValidationError("identity",
			fmt.Sprintf("expected %d key value(s), got %d", len(s.pk), len(values)))
	}
	return values, nil
}

func flattenIdentity(identity any) []any {
	rv := reflect.ValueOf(identity)
	if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		values := make([]any, rv.Len())
		for i := range values {
			values[i] = rv.Index(i).Interface()
		}
		return values
	}
	return []any{identity}
}

// isNilIdentity reports whether the identity asks for an auto-generated
// key: nil itself, or a sequence of all nils for composite keys.
func isNilIdentity(identity any) bool {
	if identity == nil {
		return true
	}
	rv := reflect.ValueOf(identity)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		if rv.Len() == 0 {
			return true
		}
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			if elem.Kind() == reflect.Interface && elem.IsNil() {
				continue
			}
			return false
		}
		return true
	}
	return false
}

func identityString(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, ",")
}
