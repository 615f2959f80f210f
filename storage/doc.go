/*
Package storage defines the persistence contract for alchemical-storage.

The main interface is Storage[T], which provides schema-validated CRUD
operations plus parameter-driven index and count queries for any record
type T:

	type Storage[T any] interface {
	    Get(ctx context.Context, identity any) (*T, error)
	    Put(ctx context.Context, identity any, data map[string]any) (*T, error)
	    Patch(ctx context.Context, identity any, data map[string]any) (*T, error)
	    Delete(ctx context.Context, identity any) (*T, error)
	    Contains(ctx context.Context, identity any) (bool, error)
	    Index(ctx context.Context, params visitor.Params) ([]map[string]any, error)
	    Count(ctx context.Context, params visitor.Params) (int64, error)
	}

Implementations:
  - sqlstore: relational implementation over database/sql, driving the
    statement visitor pipeline
  - mock: in-memory implementation for testing

Sessions and transactions stay caller-owned: the sqlstore implementation
accepts either a *sql.DB or a *sql.Tx and never commits or rolls back on
its own.
*/
package storage
