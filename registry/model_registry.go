/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sync"

	storageerrors "github.com/Aesonus/alchemical-storage/errors"
)

// modelRegistry associates Go entity types with their model definitions.

var (
	modelsByType = make(map[reflect.Type]*Model)
	modelsByName = make(map[string]*Model)
	mu           sync.RWMutex
)

// RegisterModel associates a Go type T with a model definition.
// If a model is already registered for the type or the model name, it panics
// to prevent accidental overrides.
func RegisterModel[T any](m *Model) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.Lock()
	defer mu.Unlock()
	if _, exists := modelsByType[t]; exists {
		panic(fmt.Sprintf("model registry: model for type %v already registered", t))
	}
	if _, exists := modelsByName[m.Name]; exists {
		panic(fmt.Sprintf("model registry: model named %q already registered", m.Name))
	}
	modelsByType[t] = m
	modelsByName[m.Name] = m
}

// ModelFor retrieves the model registered for type T.
func ModelFor[T any]() (*Model, error) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.RLock()
	defer mu.RUnlock()
	m, ok := modelsByType[t]
	if !ok {
		return nil, fmt.Errorf("%w: %v", storageerrors.ErrNoModel, t)
	}
	return m, nil
}

// GlobalNamespace returns a Namespace containing every registered model.
// The returned map is a copy; mutating it does not affect the registry.
func GlobalNamespace() Namespace {
	mu.RLock()
	defer mu.RUnlock()
	ns := make(Namespace, len(modelsByName))
	for name, m := range modelsByName {
		ns[name] = m
	}
	return ns
}
