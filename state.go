package nmutate

import (
	"maps"
	"reflect"

	"github.com/muir/commonerrors"
	"github.com/pkg/errors"
)

// State is a keyed state container.  States are treated as immutable:
// nothing in this package writes to a State it was given.
type State map[string]any

// Merge returns a new State holding the keys of s overlaid, in order,
// by the keys of each patch.  It is a single-level merge.
func (s State) Merge(patches ...State) State {
	size := len(s)
	for _, p := range patches {
		size += len(p)
	}
	n := make(State, size)
	for k, v := range s {
		n[k] = v
	}
	for _, p := range patches {
		for k, v := range p {
			n[k] = v
		}
	}
	return n
}

// Clone is a shallow copy
func (s State) Clone() State {
	if s == nil {
		return State{}
	}
	return maps.Clone(s)
}

func (State) IsStandalone() bool { return true }
func (State) mutation()          {}

func valueOf[T any](state State, field string) T {
	raw, ok := state[field]
	if !ok || raw == nil {
		var zero T
		return zero
	}
	v, ok := raw.(T)
	if !ok {
		panic(commonerrors.ProgrammerError(errors.Errorf(
			"field %q holds a %T, not a %s", field, raw, typeName[T]())))
	}
	return v
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
