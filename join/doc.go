/*
Package join provides the statement visitor that attaches JOIN clauses when
trigger parameters are present in a request.

	jm, err := join.NewJoinMap(ns, []join.Spec{
	    {
	        Triggers:      []string{"department_name"},
	        Relationships: []string{"Item.Department"},
	    },
	})

The mere presence of a trigger parameter activates the joins; its value is
irrelevant. Place a JoinMap before the filter visitors that reference the
joined tables — the pipeline applies visitors strictly in the order given.
*/
package join
