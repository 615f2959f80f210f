/*
Package errors provides semantic error types for the alchemical-storage library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound           = errors.New("record not found")
	    ErrConflict           = errors.New("record already exists")
	    ErrInvalidInput       = errors.New("invalid input")
	    ErrConfiguration      = errors.New("invalid configuration")
	    ErrUnknownSortKey     = errors.New("unknown sort key")
	    ErrInvalidFilterValue = errors.New("invalid filter value")
	    ErrInvalidPagination  = errors.New("invalid pagination")
	    ErrQueryExecution     = errors.New("query execution failed")
	    ErrNoModel            = errors.New("no model registered for type")
	)

Configuration errors are raised while a mapping component is being
constructed, never at request time. The request-time errors
(UnknownSortKeyError, InvalidFilterValueError, InvalidPaginationError)
are raised by statement visitors while a pipeline is applied, and
QueryExecutionError wraps whatever the underlying engine reports during
execution.

Usage:

	// Check error type
	record, err := store.Get(ctx, 123)
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle not found case
	        return nil, fmt.Errorf("item %d does not exist", 123)
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("Item", "123")
	err := errors.NewConfigurationError("Item.bogus", "no such column")
	err := errors.NewQueryExecutionError("index", driverErr)

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
