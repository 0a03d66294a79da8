package main

import (
	"reflect"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/muir/commonerrors"
	"github.com/muir/nmutate"
	"github.com/muir/nmutate/statefile"
	"github.com/pkg/errors"
)

type op struct {
	name     string
	field    string
	value    string
	hasValue bool
}

func parseOp(spec string) (op, error) {
	name, rest, ok := strings.Cut(spec, ":")
	if !ok || name == "" || rest == "" {
		return op{}, errors.Errorf("op %q is not name:field or name:field=value", spec)
	}
	o := op{name: name}
	o.field, o.value, o.hasValue = strings.Cut(rest, "=")
	if o.field == "" {
		return op{}, errors.Errorf("op %q has no field", spec)
	}
	return o, nil
}

func parseOps(specs []string) ([]op, error) {
	ops := make([]op, len(specs))
	for i, spec := range specs {
		o, err := parseOp(spec)
		if err != nil {
			return nil, err
		}
		ops[i] = o
	}
	return ops, nil
}

// plan is a Combined mutation and the arguments to bind it with.  Errors
// from evaluating filter and map expressions are kept in evalErr.
type plan struct {
	combined *nmutate.Combined
	args     []any
	evalErr  error
}

// takesValue is keyed by every known op
var takesValue = map[string]bool{
	"increment": false,
	"decrement": false,
	"toggle":    false,
	"append":    true,
	"prepend":   true,
	"concat":    true,
	"cycle":     true,
	"direct":    true,
	"set":       true,
	"merge":     true,
	"filter":    true,
	"map":       true,
}

// buildPlan turns ops into participants.  Each op is checked against the
// state as the ops before it leave it, which is also what it will see when
// the combined mutation is applied.
func buildPlan(ops []op, state nmutate.State) (*plan, error) {
	p := &plan{}
	participants := make([]nmutate.Mutation, 0, len(ops))
	running := state
	for _, o := range ops {
		wantValue, known := takesValue[o.name]
		switch {
		case !known:
			return nil, errors.Errorf("unknown op %q", o.name)
		case wantValue && !o.hasValue:
			return nil, errors.Errorf("%s:%s needs a value", o.name, o.field)
		case !wantValue && o.hasValue:
			return nil, errors.Errorf("%s:%s does not take a value", o.name, o.field)
		}
		m, arg, err := p.participant(o, running)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%s", o.name, o.field)
		}
		var args []any
		if !m.IsStandalone() {
			args = []any{arg}
		}
		running, err = applyOne(m, args, running)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%s", o.name, o.field)
		}
		participants = append(participants, m)
		p.args = append(p.args, args...)
	}
	p.combined = nmutate.Combine(participants...)
	return p, nil
}

func applyOne(m nmutate.Mutation, args []any, state nmutate.State) (nmutate.State, error) {
	mutation, err := nmutate.Combine(m).Bind(args...)
	if err != nil {
		return nil, err
	}
	return applySafely(mutation, state)
}

// applySafely turns a ProgrammerError panic, which a mutation raises when
// a field holds the wrong type, into an error.
func applySafely(mutation nmutate.Standalone, state nmutate.State) (next nmutate.State, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(error)
		if !ok || !commonerrors.IsProgrammerError(e) {
			panic(r)
		}
		next, err = nil, e
	}()
	return mutation(state), nil
}

func (p *plan) participant(o op, state nmutate.State) (nmutate.Mutation, any, error) {
	current := state[o.field]
	switch o.name {
	case "increment", "decrement":
		switch current.(type) {
		case nil, int:
			if o.name == "increment" {
				return nmutate.Increment[int](o.field), nil, nil
			}
			return nmutate.Decrement[int](o.field), nil, nil
		case float64:
			if o.name == "increment" {
				return nmutate.Increment[float64](o.field), nil, nil
			}
			return nmutate.Decrement[float64](o.field), nil, nil
		default:
			return nil, nil, errors.Errorf("field is a %T, not a number", current)
		}
	case "toggle":
		if _, ok := current.(bool); !ok && current != nil {
			return nil, nil, errors.Errorf("field is a %T, not a boolean", current)
		}
		return nmutate.Toggle(o.field), nil, nil
	case "filter":
		program, err := expr.Compile(o.value, expr.AsBool())
		if err != nil {
			return nil, nil, errors.Wrap(err, "compile")
		}
		if err := requireList(current); err != nil {
			return nil, nil, err
		}
		return nmutate.Filter[any](o.field), func(item any, index int) bool {
			out, ok := p.eval(program, item, index).(bool)
			return ok && out
		}, nil
	case "map":
		program, err := expr.Compile(o.value)
		if err != nil {
			return nil, nil, errors.Wrap(err, "compile")
		}
		if err := requireList(current); err != nil {
			return nil, nil, err
		}
		return nmutate.Map[any](o.field), func(item any, index int) any {
			return p.eval(program, item, index)
		}, nil
	}

	value, err := statefile.ParseValue(o.value)
	if err != nil {
		return nil, nil, err
	}
	switch o.name {
	case "set":
		return nmutate.State{o.field: value}, nil, nil
	case "direct":
		return nmutate.Direct[any](o.field), value, nil
	case "append", "prepend", "concat":
		if err := requireList(current); err != nil {
			return nil, nil, err
		}
		switch o.name {
		case "append":
			return nmutate.Append[any](o.field), value, nil
		case "prepend":
			return nmutate.Prepend[any](o.field), value, nil
		}
		items, ok := value.([]any)
		if !ok {
			items = []any{value}
		}
		return nmutate.Concat[any](o.field), items, nil
	case "cycle":
		options, ok := value.([]any)
		if !ok {
			return nil, nil, errors.Errorf("cycle options must be a list, not %T", value)
		}
		for _, option := range options {
			if option != nil && !reflect.TypeOf(option).Comparable() {
				return nil, nil, errors.Errorf("cycle option %v is a %T, which cannot be compared", option, option)
			}
		}
		if current != nil && !reflect.TypeOf(current).Comparable() {
			return nil, nil, errors.Errorf("field is a %T, which cannot be compared", current)
		}
		return nmutate.Cycle[any](o.field), options, nil
	case "merge":
		patch, ok := value.(map[string]any)
		if !ok {
			return nil, nil, errors.Errorf("merge value must be a map, not %T", value)
		}
		if _, ok := current.(map[string]any); !ok && current != nil {
			return nil, nil, errors.Errorf("field is a %T, not a map", current)
		}
		return nmutate.Mutate(o.field), patch, nil
	default:
		return nil, nil, errors.Errorf("unknown op %q", o.name)
	}
}

func requireList(current any) error {
	if _, ok := current.([]any); !ok && current != nil {
		return errors.Errorf("field is a %T, not a list", current)
	}
	return nil
}

func exprEnv(item any, index int) map[string]any {
	return map[string]any{
		"item":  item,
		"index": index,
	}
}

// eval runs program and records the first error.  Evaluation continues
// after an error so the mutation can finish; run reports it afterwards.
func (p *plan) eval(program *vm.Program, item any, index int) any {
	out, err := expr.Run(program, exprEnv(item, index))
	if err != nil {
		if p.evalErr == nil {
			p.evalErr = errors.Wrapf(err, "item %d", index)
		}
		return item
	}
	return out
}
