/*
Package filter provides the statement visitors that translate request
parameters into WHERE and ORDER BY clauses.

FilterMap applies comparison predicates for every recognized parameter
present in the request:

	fm, err := filter.NewFilterMap(ns, map[string]filter.Spec{
	    "name":     {Column: "Item.name", Op: filter.ILike},
	    "price_gt": {Column: "Item.price", Op: filter.Gt},
	    "dept":     {Column: "Item.department_id"}, // defaults to Eq
	})

NullFilterMap maps sentinel string values ("null"/"not-null" by default) to
IS NULL and IS NOT NULL predicates. OrderByMap translates a comma-separated
sort expression, with a leading "-" marking descending order:

	ob, err := filter.NewOrderByMap(ns, map[string]string{
	    "name":  "Item.name",
	    "price": "Item.price",
	})
	// params: {"order_by": "name,-price"} -> ORDER BY items.name, items.price DESC

All column references are resolved against the namespace when the map is
constructed; a bad reference is a ConfigurationError at setup, never a
request-time surprise.
*/
package filter
