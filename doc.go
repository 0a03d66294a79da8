// Obligatory // comment

/*
Package nmutate builds state-update functions ("mutations") for
immutable-state update cycles.

State is a map from field name to value.  A mutation is bound to one
field when it is constructed and, when applied to a State, returns a new
State that contains only that field with its next value.  The input State
is never modified.

There are two kinds of mutations.  A Standalone mutation needs nothing but
the state:

	toggle := nmutate.Toggle("open")
	patch := toggle(nmutate.State{"open": true})
	// patch is State{"open": false}

An Argument mutation takes an argument first and then the state:

	add := nmutate.Append[int]("list")
	patch := add(4)(nmutate.State{"list": []int{1, 2, 3}})
	// patch is State{"list": []int{1, 2, 3, 4}}

New mutations are made by lifting a value transform through
MakeStandaloneMutation or MakeArgumentMutation:

	double := nmutate.MakeStandaloneMutation(func(v int) int { return v * 2 })
	patch := double("count")(nmutate.State{"count": 3})

The lifetimes are separate: the field is bound once when the mutation is
defined, the argument is bound once per action, and the state is supplied
once per update.

Combine merges mutations and plain State records into one transformation.
Arguments given to Bind are routed, in order, only to the Argument
mutations:

	combined := nmutate.Combine(
		nmutate.Append[int]("a"),
		nmutate.Decrement[int]("b"),
		nmutate.State{"c": "reset"},
	)
	next := combined.MustBind(4)(prev)

Each participant sees the result of the participants before it.  When two
participants write the same field, the later one wins.

By default Bind requires exactly one argument per Argument mutation.  Use
AllowMissingArguments to let missing arguments bind as zero values.

Mutations read field values with a type assertion.  A missing or nil field
reads as the zero value.  A field holding some other type is a programmer
error and panics.

Build with the debugNmutate tag to log Combine activity.
*/
package nmutate
