/*
Package pagination provides the statement visitor that attaches LIMIT and
OFFSET clauses.

The visitor watches one designated parameter whose value is a pagination
payload. How the page size and first item are read off the payload is an
accessor chosen at construction time:

	// attribute-style payload (default): reads PageSize / FirstItem fields
	pm := pagination.NewPaginationMap("page")
	params := visitor.Params{"page": pagination.Page{PageSize: 10, FirstItem: 0}}

	// mapping-style payload
	pm := pagination.NewPaginationMap("page",
	    pagination.WithAccessor(pagination.MapAccessor("page_size", "first_item")))
	params := visitor.Params{"page": map[string]any{"page_size": 10, "first_item": 0}}

Both payloads above yield LIMIT 10 OFFSET 0. Negative or non-integer values
surface as an InvalidPaginationError.
*/
package pagination
