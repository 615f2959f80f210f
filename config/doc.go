/*
Package config loads model namespaces and visitor pipelines from YAML
documents, so query surfaces can be declared next to the service that
exposes them:

	models:
	  Item:
	    table: items
	    columns: [id, name, price, department_id, deleted_at]
	    relationships:
	      Department:
	        target: departments
	        on: departments.id = items.department_id
	    primary_key: [id]

	pipeline:
	  joins:
	    - triggers: [department_name]
	      relationships: [Item.Department]
	  filters:
	    name: {column: Item.name, op: ilike}
	    price_gt: {column: Item.price, op: gt}
	  null_filters:
	    deleted: Item.deleted_at
	  order_by:
	    keys: {name: Item.name, price: Item.price}
	  pagination:
	    param: page
	    style: map

	cfg, err := config.LoadFile("storage.yaml")
	ns, err := cfg.Namespace()
	pipeline, err := cfg.BuildPipeline(ns)

BuildPipeline resolves every declared reference immediately; a typo in a
column or relationship reference fails at startup, not on the first request.
The fixed build order (joins, filters, null filters, order by, pagination)
keeps joins ahead of the filters that may depend on them.
*/
package config
