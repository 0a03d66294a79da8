package nmutate

// Decrement subtracts one from a numeric field.
func Decrement[N Number](field string) Standalone {
	return MakeStandaloneMutation(DecrementState[N])(field)
}

// Increment adds one to a numeric field.
func Increment[N Number](field string) Standalone {
	return MakeStandaloneMutation(IncrementState[N])(field)
}

// Toggle negates a boolean field.
func Toggle(field string) Standalone {
	return MakeStandaloneMutation(ToggleState)(field)
}

// Append adds its argument to the end of a slice field.
//
//	Append[int]("list")(4)(State{"list": []int{1, 2, 3}})
//	// State{"list": []int{1, 2, 3, 4}}
func Append[E any](field string) Argument[E] {
	return MakeArgumentMutation(AppendState[E])(field)
}

// Prepend adds its argument to the front of a slice field.
func Prepend[E any](field string) Argument[E] {
	return MakeArgumentMutation(PrependState[E])(field)
}

// Concat adds the elements of its argument to the end of a slice field.
func Concat[E any](field string) Argument[[]E] {
	return MakeArgumentMutation(ConcatState[E])(field)
}

// Cycle advances a field through the options given as its argument.
//
//	next := Cycle[string]("x")([]string{"a", "b", "c"})
//	next(State{"x": "c"}) // State{"x": "a"}
func Cycle[E comparable](field string) Argument[[]E] {
	return MakeArgumentMutation(CycleState[E])(field)
}

// Direct replaces a field with its argument.
func Direct[T any](field string) Argument[T] {
	return MakeArgumentMutation(DirectState[T])(field)
}

func Filter[E any](field string) Argument[func(E, int) bool] {
	return MakeArgumentMutation(FilterState[E])(field)
}

func Map[E any](field string) Argument[func(E, int) E] {
	return MakeArgumentMutation(MapState[E])(field)
}

// Mutate overlays its argument onto a map[string]any field.
//
//	Mutate("obj")(map[string]any{"a": "c"})(State{"obj": map[string]any{"a": "b", "d": 1}})
//	// State{"obj": map[string]any{"a": "c", "d": 1}}
func Mutate(field string) Argument[map[string]any] {
	return MakeArgumentMutation(MutateState[map[string]any])(field)
}
