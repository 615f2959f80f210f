/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a mock implementation of the Storage interface for testing
package mock

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/Aesonus/alchemical-storage/errors"
	"github.com/Aesonus/alchemical-storage/schema"
	"github.com/Aesonus/alchemical-storage/visitor"
)

// Storage is an in-memory mock implementation of storage.Storage[T] for
// testing consumers without a database. Records are kept in a map keyed by
// the rendered identity; Index and Count ignore the parameter bag and
// operate on the full record set.
type Storage[T any] struct {
	mu         sync.RWMutex
	data       map[string]*T
	schema     schema.Schema[T]
	nextKey    int64
	putError   error
	patchError error
	indexFunc  func(ctx context.Context, params visitor.Params) ([]map[string]any, error)
}

// New creates a new mock Storage backed by the given schema.
func New[T any](recordSchema schema.Schema[T]) *Storage[T] {
	return &Storage[T]{
		data:   make(map[string]*T),
		schema: recordSchema,
	}
}

// WithPutError makes Put operations return an error
func (m *Storage[T]) WithPutError(err error) *Storage[T] {
	m.putError = err
	return m
}

// WithPatchError makes Patch operations return an error
func (m *Storage[T]) WithPatchError(err error) *Storage[T] {
	m.patchError = err
	return m
}

// WithIndexFunc sets a custom index function for testing
func (m *Storage[T]) WithIndexFunc(f func(ctx context.Context, params visitor.Params) ([]map[string]any, error)) *Storage[T] {
	m.indexFunc = f
	return m
}

// Get retrieves a record by identity
func (m *Storage[T]) Get(ctx context.Context, identity any) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if record, exists := m.data[renderIdentity(identity)]; exists {
		return record, nil
	}
	var zero T
	return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), renderIdentity(identity))
}

// Put stores a new record
func (m *Storage[T]) Put(ctx context.Context, identity any, data map[string]any) (*T, error) {
	if m.putError != nil {
		return nil, m.putError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if identity == nil {
		m.nextKey++
		identity = m.nextKey
	}
	key := renderIdentity(identity)
	if _, exists := m.data[key]; exists {
		var zero T
		return nil, errors.NewConflictError(fmt.Sprintf("%T", zero), key)
	}
	record, err := m.schema.Load(data)
	if err != nil {
		return nil, err
	}
	m.data[key] = record
	return record, nil
}

// Patch updates an existing record
func (m *Storage[T]) Patch(ctx context.Context, identity any, data map[string]any) (*T, error) {
	if m.patchError != nil {
		return nil, m.patchError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := renderIdentity(identity)
	record, exists := m.data[key]
	if !exists {
		var zero T
		return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}
	if err := m.schema.LoadPartial(data, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a record and returns it
func (m *Storage[T]) Delete(ctx context.Context, identity any) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := renderIdentity(identity)
	record, exists := m.data[key]
	if !exists {
		var zero T
		return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}
	delete(m.data, key)
	return record, nil
}

// Contains reports whether a record exists
func (m *Storage[T]) Contains(ctx context.Context, identity any) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.data[renderIdentity(identity)]
	return exists, nil
}

// Index returns all stored records dumped through the schema, in key order
func (m *Storage[T]) Index(ctx context.Context, params visitor.Params) ([]map[string]any, error) {
	if m.indexFunc != nil {
		return m.indexFunc(ctx, params)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	dumped := make([]map[string]any, 0, len(keys))
	for _, key := range keys {
		row, err := m.schema.Dump(m.data[key])
		if err != nil {
			return nil, err
		}
		dumped = append(dumped, row)
	}
	return dumped, nil
}

// Count returns the number of stored records
func (m *Storage[T]) Count(ctx context.Context, params visitor.Params) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.data)), nil
}

func renderIdentity(identity any) string {
	rv := reflect.ValueOf(identity)
	if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = fmt.Sprintf("%v", rv.Index(i).Interface())
		}
		return strings.Join(parts, "|")
	}
	return fmt.Sprintf("%v", identity)
}
