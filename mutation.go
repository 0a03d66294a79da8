package nmutate

import (
	"github.com/pkg/errors"
)

// Mutation is implemented by Standalone, Argument, and State.  A State
// used as a mutation always returns itself: it sets its keys verbatim.
type Mutation interface {
	// IsStandalone is true when the mutation can be applied to a State
	// without first being given an argument.
	IsStandalone() bool
	mutation()
}

var (
	_ Mutation = Standalone(nil)
	_ Mutation = Argument[int](nil)
	_ Mutation = State{}
)

// Standalone computes a partial State from the current State.
type Standalone func(State) State

func (Standalone) IsStandalone() bool { return true }
func (Standalone) mutation()          {}

// Next applies the mutation and merges the result into state.
func (m Standalone) Next(state State) State {
	return state.Merge(m(state))
}

// Argument takes an argument and returns the Standalone mutation that
// uses it.
type Argument[A any] func(A) Standalone

func (Argument[A]) IsStandalone() bool { return false }
func (Argument[A]) mutation()          {}

// bindAny is how Combine passes untyped arguments through.  A nil
// argument binds the zero value of A.
func (m Argument[A]) bindAny(arg any) (Standalone, error) {
	if arg == nil {
		var zero A
		return m(zero), nil
	}
	a, ok := arg.(A)
	if !ok {
		return nil, ArgumentTypeError(errors.Errorf("argument is a %T, not a %s", arg, typeName[A]()))
	}
	return m(a), nil
}

type argumented interface {
	Mutation
	bindAny(any) (Standalone, error)
}

// MakeStandaloneMutation lifts a value transform into a constructor of
// Standalone mutations.
//
//	add := MakeStandaloneMutation(func(v int) int { return v + 10 })
//	mutation := add("addable")
//	mutation(State{"addable": 5}) // State{"addable": 15}
func MakeStandaloneMutation[T any](apply func(T) T) func(field string) Standalone {
	return func(field string) Standalone {
		return func(state State) State {
			return State{field: apply(valueOf[T](state, field))}
		}
	}
}

// MakeArgumentMutation lifts a curried value transform into a constructor
// of Argument mutations.  The transform is given the argument first and
// then the current value.
//
//	add := MakeArgumentMutation(func(n int) func(int) int {
//		return func(v int) int { return v + n }
//	})
//	mutation := add("addable")
//	mutation(10)(State{"addable": 5}) // State{"addable": 15}
func MakeArgumentMutation[A, T any](apply func(A) func(T) T) func(field string) Argument[A] {
	return func(field string) Argument[A] {
		return func(arg A) Standalone {
			transform := apply(arg)
			return func(state State) State {
				return State{field: transform(valueOf[T](state, field))}
			}
		}
	}
}
