/*
Package hook binds nmutate's value transforms to a Cell so that a
caller can hold a current value and a trigger that advances it.

	cell, onIncrement := hook.UseIncrement()
	cell.Subscribe(func(n int) { render(n) })
	onIncrement() // cell.Get() == 1

The transforms are the same ones that nmutate's mutations wrap.
*/
package hook

import (
	"github.com/muir/nmutate"
)

// MakeStandaloneHook returns a constructor for a Cell and a trigger
// that replaces the cell's value with apply of it.  The constructor takes
// an optional initial value; without one the cell starts at defaultValue.
func MakeStandaloneHook[T any](apply func(T) T, defaultValue T) func(initial ...T) (*Cell[T], func()) {
	return func(initial ...T) (*Cell[T], func()) {
		cell := NewCell(initialOr(initial, defaultValue))
		return cell, func() {
			cell.Update(apply)
		}
	}
}

// MakeArgumentHook is MakeStandaloneHook for transforms that take an
// argument.  The trigger takes the argument.
func MakeArgumentHook[A, T any](apply func(A) func(T) T, defaultValue T) func(initial ...T) (*Cell[T], func(A)) {
	return func(initial ...T) (*Cell[T], func(A)) {
		cell := NewCell(initialOr(initial, defaultValue))
		return cell, func(arg A) {
			cell.Update(apply(arg))
		}
	}
}

func initialOr[T any](initial []T, defaultValue T) T {
	if len(initial) > 0 {
		return initial[0]
	}
	return defaultValue
}

var (
	UseIncrement = MakeStandaloneHook(nmutate.IncrementState[int], 0)
	UseDecrement = MakeStandaloneHook(nmutate.DecrementState[int], 0)
	UseToggle    = MakeStandaloneHook(nmutate.ToggleState, true)
)

func UseAppend[E any](initial ...[]E) (*Cell[[]E], func(E)) {
	return MakeArgumentHook(nmutate.AppendState[E], []E{})(initial...)
}

func UsePrepend[E any](initial ...[]E) (*Cell[[]E], func(E)) {
	return MakeArgumentHook(nmutate.PrependState[E], []E{})(initial...)
}

func UseConcat[E any](initial ...[]E) (*Cell[[]E], func([]E)) {
	return MakeArgumentHook(nmutate.ConcatState[E], []E{})(initial...)
}

func UseFilter[E any](initial ...[]E) (*Cell[[]E], func(func(E, int) bool)) {
	return MakeArgumentHook(nmutate.FilterState[E], []E{})(initial...)
}

func UseMap[E any](initial ...[]E) (*Cell[[]E], func(func(E, int) E)) {
	return MakeArgumentHook(nmutate.MapState[E], []E{})(initial...)
}

// UseCycle starts a cell at options[0] and returns a trigger that
// advances it through options.
func UseCycle[E comparable](options []E) (*Cell[E], func()) {
	var first E
	if len(options) > 0 {
		first = options[0]
	}
	return MakeStandaloneHook(nmutate.CycleState(options), first)()
}
