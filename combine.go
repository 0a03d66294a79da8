package nmutate

import (
	"fmt"

	"github.com/pkg/errors"
)

// Combined is a set of participants merged into one transformation.  Build
// one with Combine.
type Combined struct {
	steps   []step
	arity   int
	lenient bool
}

// step holds exactly one of standalone or argument
type step struct {
	standalone Standalone
	argument   argumented
}

type CombineOpt func(*Combined)

// AllowMissingArguments makes Bind accept any number of arguments.
// Argument mutations that are not given an argument bind the zero value
// of their argument type.  Extra arguments are ignored.
func AllowMissingArguments() CombineOpt {
	return func(c *Combined) {
		c.lenient = true
	}
}

// Combine normalizes participants into a single transformation.  They are
// applied in the order given.  Each participant is applied to the
// accumulated state, so it can observe what earlier participants did.
// A *Combined participant contributes its participants in place; its
// options are not carried over.
func Combine(participants ...Mutation) *Combined {
	c := &Combined{
		steps: make([]step, 0, len(participants)),
	}
	for _, p := range participants {
		switch m := p.(type) {
		case *Combined:
			c.steps = append(c.steps, m.steps...)
			c.arity += m.arity
		case State:
			record := m
			c.steps = append(c.steps, step{
				standalone: func(State) State { return record },
			})
		case Standalone:
			c.steps = append(c.steps, step{standalone: m})
		case argumented:
			c.steps = append(c.steps, step{argument: m})
			c.arity++
		default:
			panic(fmt.Sprintf("unexpected mutation type %T", p))
		}
	}
	debugf("combine: %d participants, arity %d", len(c.steps), c.arity)
	return c
}

// With returns a copy of c with options applied.
func (c *Combined) With(opts ...CombineOpt) *Combined {
	n := *c
	for _, f := range opts {
		f(&n)
	}
	return &n
}

// Arity is the number of Argument participants
func (c *Combined) Arity() int { return c.arity }

func (c *Combined) IsStandalone() bool { return c.arity == 0 }
func (c *Combined) mutation()          {}

// Standalone returns the state-only form of c.  The boolean is false if
// any participant needs an argument.
func (c *Combined) Standalone() (Standalone, bool) {
	if c.arity != 0 {
		return nil, false
	}
	return c.apply(make([]Standalone, len(c.steps))), true
}

// Bind routes args, in order, to the Argument participants and returns a
// function from the previous State to the next State.  The returned
// function does not modify the State it is given and can be applied to
// any number of states.
func (c *Combined) Bind(args ...any) (Standalone, error) {
	if !c.lenient && len(args) != c.arity {
		return nil, ArityError(errors.Errorf("combined mutation takes %d arguments, got %d", c.arity, len(args)))
	}
	bound := make([]Standalone, len(c.steps))
	argIndex := -1
	for i, s := range c.steps {
		if s.argument == nil {
			continue
		}
		argIndex++
		var arg any
		if argIndex < len(args) {
			arg = args[argIndex]
		}
		m, err := s.argument.bindAny(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", argIndex)
		}
		bound[i] = m
	}
	debugf("combine: bound %d of %d arguments", len(args), c.arity)
	return c.apply(bound), nil
}

// MustBind is Bind, but it panics on error
func (c *Combined) MustBind(args ...any) Standalone {
	m, err := c.Bind(args...)
	if err != nil {
		panic(err)
	}
	return m
}

func (c *Combined) apply(bound []Standalone) Standalone {
	steps := c.steps
	return func(state State) State {
		next := state.Clone()
		for i, s := range steps {
			m := s.standalone
			if m == nil {
				m = bound[i]
			}
			next = next.Merge(m(next))
		}
		return next
	}
}
