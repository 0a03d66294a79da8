package nmutate

import (
	"golang.org/x/exp/constraints"
)

// Number is the value type accepted by Increment and Decrement
type Number interface {
	constraints.Integer | constraints.Float
}

func DecrementState[N Number](value N) N { return value - 1 }
func IncrementState[N Number](value N) N { return value + 1 }
func ToggleState(value bool) bool        { return !value }

// AppendState returns a transform that adds item to the end of a slice.
// The slice it is given is not modified.
func AppendState[E any](item E) func([]E) []E {
	return func(value []E) []E {
		n := make([]E, len(value), len(value)+1)
		copy(n, value)
		return append(n, item)
	}
}

// PrependState returns a transform that adds item to the front of a slice.
func PrependState[E any](item E) func([]E) []E {
	return func(value []E) []E {
		n := make([]E, 1, len(value)+1)
		n[0] = item
		return append(n, value...)
	}
}

// ConcatState returns a transform that adds items to the end of a slice.
// To add a single element, use AppendState.
func ConcatState[E any](items []E) func([]E) []E {
	return func(value []E) []E {
		n := make([]E, len(value), len(value)+len(items))
		copy(n, value)
		return append(n, items...)
	}
}

// CycleState returns a transform that advances a value to the option
// after it, wrapping from the last option back to the first.  A value
// that is not one of the options advances to options[0].  With no options
// at all, the result is the zero value.
func CycleState[E comparable](options []E) func(E) E {
	return func(value E) E {
		if len(options) == 0 {
			var zero E
			return zero
		}
		index := -1
		for i, o := range options {
			if o == value {
				index = i
				break
			}
		}
		return options[(index+1)%len(options)]
	}
}

// DirectState ignores the current value and replaces it.
func DirectState[T any](replacement T) func(T) T {
	return func(T) T {
		return replacement
	}
}

// FilterState keeps the elements for which predicate returns true.  The
// predicate receives each element and its index.
func FilterState[E any](predicate func(E, int) bool) func([]E) []E {
	return func(value []E) []E {
		n := make([]E, 0, len(value))
		for i, e := range value {
			if predicate(e, i) {
				n = append(n, e)
			}
		}
		return n
	}
}

// MapState replaces each element with the result of transform, which
// receives the element and its index.
func MapState[E any](transform func(E, int) E) func([]E) []E {
	return func(value []E) []E {
		n := make([]E, len(value))
		for i, e := range value {
			n[i] = transform(e, i)
		}
		return n
	}
}

// MutateState returns a transform that overlays patch onto a map.  Keys
// that are not in patch are kept.  Nested maps are replaced, not merged.
func MutateState[M ~map[K]V, K comparable, V any](patch M) func(M) M {
	return func(value M) M {
		n := make(M, len(value)+len(patch))
		for k, v := range value {
			n[k] = v
		}
		for k, v := range patch {
			n[k] = v
		}
		return n
	}
}
