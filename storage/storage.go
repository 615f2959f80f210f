/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storage

import (
	"context"

	"github.com/Aesonus/alchemical-storage/visitor"
)

// Storage is the record persistence contract exposed to application callers.
//
// The identity argument is the record's primary key: a bare scalar for
// single-column keys, or an ordered slice matching the configured key
// columns for composite keys.
type Storage[T any] interface {
	// Get returns the record with the given identity, or a NotFoundError.
	Get(ctx context.Context, identity any) (*T, error)

	// Put creates a new record from data under the given identity and
	// returns it. A nil identity means the engine generates the key; the
	// returned record carries the generated key. Putting an existing
	// identity is a ConflictError.
	Put(ctx context.Context, identity any, data map[string]any) (*T, error)

	// Patch applies a partial update to an existing record and returns the
	// updated record, or a NotFoundError.
	Patch(ctx context.Context, identity any, data map[string]any) (*T, error)

	// Delete removes a record and returns it, or a NotFoundError.
	Delete(ctx context.Context, identity any) (*T, error)

	// Contains reports whether a record with the given identity exists.
	Contains(ctx context.Context, identity any) (bool, error)

	// Index returns the matching records as dumped attribute maps. The
	// params bag feeds the configured statement visitor pipeline.
	Index(ctx context.Context, params visitor.Params) ([]map[string]any, error)

	// Count returns the number of matching records. The params bag feeds
	// the same pipeline as Index.
	Count(ctx context.Context, params visitor.Params) (int64, error)
}
