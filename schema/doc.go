/*
Package schema converts between raw attribute maps and typed records.

DatabaseStorage speaks to records exclusively through the Schema interface:
Load turns a validated request payload into a new record, LoadPartial
merges a patch into an existing record, and Dump flattens a record back
into a map for transport.

MapSchema is the stock implementation. It decodes by json tag, accepts the
loosely typed values real drivers and request decoders produce (byte
slices for text, strings for timestamps), and validates the result with
`validate` struct tags:

	type Item struct {
	    ID    int64   `json:"id"`
	    Name  *string `json:"name" validate:"required"`
	    Price float64 `json:"price" validate:"gte=0"`
	}

	s := schema.NewMapSchema[Item]()
	item, err := s.Load(map[string]any{"name": "apple", "price": 1.5})

Validation failures surface as the errors package's ValidationError.
*/
package schema
