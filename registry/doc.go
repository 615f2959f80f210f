/*
Package registry defines model metadata and the namespace that string column
references are resolved against.

A Model describes one entity: its table, its ordered column list, its
joinable relationships and its primary key attributes. A Namespace maps
model names to models and resolves dotted string references:

	ns := registry.Namespace{
	    "Item": {
	        Name:  "Item",
	        Table: "items",
	        Columns: []registry.Column{
	            {Name: "id"}, {Name: "name"}, {Name: "price"},
	        },
	        Relationships: map[string]registry.Relationship{
	            "Department": {Target: "departments", On: "departments.id = items.department_id"},
	        },
	        PrimaryKey: []string{"id"},
	    },
	}

	col, err := ns.ResolveColumn("Item.price")        // "items.price"
	rel, err := ns.ResolveRelationship("Item.Department")

Mapping components resolve their references once, at construction time, so
a misconfigured reference fails fast with a ConfigurationError instead of
surfacing on the first request.

The package also keeps a process-wide registry keyed by Go type, mirroring
how stores look up their metadata:

	registry.RegisterModel[Item](itemModel)
	m, err := registry.ModelFor[Item]()
	ns := registry.GlobalNamespace()
*/
package registry
