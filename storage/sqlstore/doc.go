/*
Package sqlstore implements storage.Storage against a relational engine
reached through database/sql.

DatabaseIndex answers list and count queries by folding the request
parameter bag through a visitor pipeline against a base select statement:

	idx, err := sqlstore.NewDatabaseIndex[Item](db,
	    sqlstore.WithPipeline[Item](visitor.Pipeline{joins, filters, orderBy, pages}),
	)
	items, err := idx.Get(ctx, visitor.Params{"price_gt": 1.0})
	total, err := idx.Count(ctx, visitor.Params{"price_gt": 1.0})

The pipeline applies identically to Get and Count. A pagination parameter
therefore bounds the count as well ("count of a page"); omit order_by
parameters from Count calls since ordering a scalar is meaningless.

DatabaseStorage layers keyed CRUD on top, converting records through a
schema.Schema:

	store, err := sqlstore.NewDatabaseStorage[Item](db, schema.NewMapSchema[Item]())
	item, err := store.Put(ctx, nil, map[string]any{"name": "apple", "price": 1.5})
	item, err = store.Get(ctx, item.ID)

Both accept anything satisfying DBTX, so callers scope operations to a
transaction by passing a *sql.Tx. The store itself never opens, commits or
rolls back transactions.

Pipeline ordering is the caller's responsibility: visitors run strictly in
the configured order, so a JoinMap must precede any FilterMap that
references a joined table.
*/
package sqlstore
