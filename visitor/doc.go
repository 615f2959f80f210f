/*
Package visitor defines the statement visitor contract and the pipeline that
composes visitors into one statement transformation.

A visitor receives an in-flight SELECT statement and the request parameter
bag, and returns a possibly modified statement:

	type StatementVisitor interface {
	    Visit(stmt sq.SelectBuilder, params Params) (sq.SelectBuilder, error)
	}

Visitors act only on the parameters they recognize and leave the statement
untouched otherwise, so independent concerns (filtering, ordering, joining,
pagination) compose freely:

	pipeline := visitor.Pipeline{joinMap, filterMap, orderByMap, pageMap}
	stmt, err := pipeline.Apply(sq.Select("items.id").From("items"), params)

The statement builder has value semantics: every stage binds to the return
value of the previous one, never to a shared mutable statement.
*/
package visitor
