/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package alchemical

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/Aesonus/alchemical-storage/storage"
)

// TypedStores provides type-safe access to the storages registered for a
// specific record type T, keyed by resource name.
type TypedStores[T any] struct {
	mu     sync.RWMutex
	stores map[string]storage.Storage[T]
}

// NewTypedStores creates a new TypedStores for record type T.
func NewTypedStores[T any]() *TypedStores[T] {
	return &TypedStores[T]{
		stores: make(map[string]storage.Storage[T]),
	}
}

// Register adds a storage under the given resource name.
func (ts *TypedStores[T]) Register(name string, s storage.Storage[T]) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.stores[name]; exists {
		return fmt.Errorf("storage with name %q already registered", name)
	}

	ts.stores[name] = s
	return nil
}

// Get retrieves a storage by resource name.
func (ts *TypedStores[T]) Get(name string) (storage.Storage[T], error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	s, exists := ts.stores[name]
	if !exists {
		return nil, fmt.Errorf("storage with name %q not found", name)
	}

	return s, nil
}

// Remove deletes a storage by resource name.
func (ts *TypedStores[T]) Remove(name string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.stores[name]; !exists {
		return fmt.Errorf("storage with name %q not found", name)
	}

	delete(ts.stores, name)
	return nil
}

// List returns all registered resource names.
func (ts *TypedStores[T]) List() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	names := make([]string, 0, len(ts.stores))
	for name := range ts.stores {
		names = append(names, name)
	}
	return names
}

// MultiTypeStores manages TypedStores instances for different record types.
type MultiTypeStores struct {
	mu       sync.RWMutex
	storages map[reflect.Type]interface{}
}

// NewMultiTypeStores creates a new MultiTypeStores.
func NewMultiTypeStores() *MultiTypeStores {
	return &MultiTypeStores{
		storages: make(map[reflect.Type]interface{}),
	}
}

// GetTypedStores returns the TypedStores for record type T, creating it if
// necessary.
func GetTypedStores[T any](mts *MultiTypeStores) *TypedStores[T] {
	mts.mu.Lock()
	defer mts.mu.Unlock()

	var zero T
	typ := reflect.TypeOf(zero)

	if stores, exists := mts.storages[typ]; exists {
		return stores.(*TypedStores[T])
	}

	newStores := NewTypedStores[T]()
	mts.storages[typ] = newStores
	return newStores
}

// RegisterStorage is a convenience function to register a storage for type T.
func RegisterStorage[T any](mts *MultiTypeStores, name string, s storage.Storage[T]) error {
	return GetTypedStores[T](mts).Register(name, s)
}

// GetStorage is a convenience function to get a storage for type T.
func GetStorage[T any](mts *MultiTypeStores, name string) (storage.Storage[T], error) {
	return GetTypedStores[T](mts).Get(name)
}

// RemoveStorage is a convenience function to remove a storage for type T.
func RemoveStorage[T any](mts *MultiTypeStores, name string) error {
	return GetTypedStores[T](mts).Remove(name)
}

// ListStorages is a convenience function to list all storages for type T.
func ListStorages[T any](mts *MultiTypeStores) []string {
	return GetTypedStores[T](mts).List()
}
