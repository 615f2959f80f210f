/*
Package alchemical provides declarative, composable query construction over
a relational engine, plus thin schema-validated CRUD storage on top of it.

The core is the statement visitor pipeline: small, independent mapping
components (filters, null filters, order by, joins, pagination) that each
inspect a shared request parameter bag and conditionally attach clauses to
one in-flight SELECT statement, in a caller-specified order:

	ns := registry.Namespace{"Item": itemModel}

	filters, _ := filter.NewFilterMap(ns, map[string]filter.Spec{
	    "name":     {Column: "Item.name", Op: filter.ILike},
	    "price_gt": {Column: "Item.price", Op: filter.Gt},
	})
	joins, _ := join.NewJoinMap(ns, []join.Spec{
	    {Triggers: []string{"department_name"}, Relationships: []string{"Item.Department"}},
	})
	orderBy, _ := filter.NewOrderByMap(ns, map[string]string{
	    "name": "Item.name", "price": "Item.price",
	})
	pages := pagination.NewPaginationMap("page")

	pipeline := visitor.Pipeline{joins, filters, orderBy, pages}

Column references are plain strings ("Item.price") resolved against a model
namespace when each component is constructed, so misconfiguration fails at
startup rather than on the first request.

The storage layer executes the pipeline and adds keyed CRUD:

	store, _ := sqlstore.NewDatabaseStorage[Item](db, schema.NewMapSchema[Item](),
	    sqlstore.WithVisitors[Item](pipeline))

	items, _ := store.Index(ctx, visitor.Params{"name": "%apple%", "price_gt": 1.0})
	item, _ := store.Put(ctx, nil, map[string]any{"name": "apple", "price": 1.5})

This package itself holds the store managers that let an application
register and look up its storages by resource name and record type.

For more information, see the documentation at
https://github.com/Aesonus/alchemical-storage
*/
package alchemical
