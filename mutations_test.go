package nmutate

import (
	"testing"

	"github.com/mohae/deepcopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeStandaloneMutation(t *testing.T) {
	mutation := MakeStandaloneMutation(func(v int) int { return v + 50 })("object")
	prevState := State{"object": 1}
	nextState := mutation(prevState)

	assert.Equal(t, State{"object": 51}, nextState)
	assert.Equal(t, 1, prevState["object"])
	assert.True(t, mutation.IsStandalone())
}

func TestMakeArgumentMutation(t *testing.T) {
	add := MakeArgumentMutation(func(n int) func(int) int {
		return func(v int) int { return v + n }
	})("object")
	prevState := State{"object": 1}
	nextState := add(50)(prevState)

	assert.Equal(t, State{"object": 51}, nextState)
	assert.Equal(t, 1, prevState["object"])
	assert.False(t, add.IsStandalone())
}

func TestOnlyBoundFieldReturned(t *testing.T) {
	prevState := State{"a": 1, "b": true, "c": "x"}
	assert.Equal(t, State{"a": 2}, Increment[int]("a")(prevState))
	assert.Equal(t, State{"b": false}, Toggle("b")(prevState))
	assert.Equal(t, State{"c": "y"}, Direct[string]("c")("y")(prevState))
}

func TestNext(t *testing.T) {
	prevState := State{"count": 3, "other": "kept"}
	nextState := Decrement[int]("count").Next(prevState)
	assert.Equal(t, State{"count": 2, "other": "kept"}, nextState)
	assert.Equal(t, 3, prevState["count"])
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, State{"n": 0}, Decrement[int]("n")(State{"n": 1}))
	assert.Equal(t, State{"n": 2}, Increment[int]("n")(State{"n": 1}))
	assert.Equal(t, State{"n": 1.5}, Increment[float64]("n")(State{"n": 0.5}))
	assert.Equal(t, State{"n": uint8(0)}, Increment[uint8]("n")(State{"n": uint8(255)}))
}

func TestToggle(t *testing.T) {
	mutation := Toggle("open")
	s := State{"open": true}
	s = s.Merge(mutation(s))
	assert.Equal(t, false, s["open"])
	s = s.Merge(mutation(s))
	assert.Equal(t, true, s["open"])
}

func TestAppend(t *testing.T) {
	list := []int{1, 2, 3}
	prevState := State{"list": list}
	nextState := Append[int]("list")(4)(prevState)

	assert.Equal(t, State{"list": []int{1, 2, 3, 4}}, nextState)
	assert.Len(t, prevState["list"], 3)
	assert.Equal(t, []int{1, 2, 3}, list)
}

func TestAppendDoesNotShareBacking(t *testing.T) {
	list := make([]int, 3, 10)
	copy(list, []int{1, 2, 3})
	a := Append[int]("list")(4)(State{"list": list})
	b := Append[int]("list")(5)(State{"list": list})
	assert.Equal(t, []int{1, 2, 3, 4}, a["list"])
	assert.Equal(t, []int{1, 2, 3, 5}, b["list"])
}

func TestPrepend(t *testing.T) {
	prevState := State{"list": []int{1, 2, 3}}
	nextState := Prepend[int]("list")(0)(prevState)

	assert.Equal(t, State{"list": []int{0, 1, 2, 3}}, nextState)
	assert.Equal(t, []int{1, 2, 3}, prevState["list"])
}

func TestConcat(t *testing.T) {
	prevState := State{"list": []int{1, 2, 3}}
	nextState := Concat[int]("list")([]int{4, 5, 6})(prevState)

	assert.Equal(t, State{"list": []int{1, 2, 3, 4, 5, 6}}, nextState)
	assert.Len(t, prevState["list"], 3)
}

func TestCycle(t *testing.T) {
	options := []string{"a", "b", "c"}
	mutation := Cycle[string]("x")(options)
	s := State{"x": "a"}
	want := []string{"b", "c", "a", "b"}
	for i, w := range want {
		s = s.Merge(mutation(s))
		assert.Equal(t, w, s["x"], "step %d", i)
	}
}

func TestCycleFullPeriod(t *testing.T) {
	for _, options := range [][]int{{7}, {1, 2}, {3, 1, 4, 5, 9}, {0, 10, 20, 30, 40, 50, 60}} {
		mutation := Cycle[int]("x")(options)
		s := State{"x": options[0]}
		for i := 1; i <= len(options)+1; i++ {
			s = s.Merge(mutation(s))
			assert.Equal(t, options[i%len(options)], s["x"], "options %v step %d", options, i)
		}
	}
}

func TestCycleMissingValueWrapsToFirst(t *testing.T) {
	mutation := Cycle[string]("x")([]string{"a", "b"})
	assert.Equal(t, State{"x": "a"}, mutation(State{"x": "zzz"}))
	assert.Equal(t, State{"x": "a"}, mutation(State{}))
}

func TestDirect(t *testing.T) {
	prevState := State{"value": "old"}
	assert.Equal(t, State{"value": "new"}, Direct[string]("value")("new")(prevState))
	assert.Equal(t, "old", prevState["value"])
}

func TestFilter(t *testing.T) {
	prevState := State{"list": []int{1, 2, 3, 4, 5}}
	odd := Filter[int]("list")(func(v, _ int) bool { return v%2 == 1 })
	assert.Equal(t, State{"list": []int{1, 3, 5}}, odd(prevState))

	firstTwo := Filter[int]("list")(func(_, i int) bool { return i < 2 })
	assert.Equal(t, State{"list": []int{1, 2}}, firstTwo(prevState))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, prevState["list"])
}

func TestMap(t *testing.T) {
	prevState := State{"list": []int{1, 2, 3}}
	mutation := Map[int]("list")(func(v, i int) int { return v * 10 * (i + 1) })
	assert.Equal(t, State{"list": []int{10, 40, 90}}, mutation(prevState))
	assert.Equal(t, []int{1, 2, 3}, prevState["list"])
}

func TestMutate(t *testing.T) {
	prevState := State{"obj": map[string]any{"a": "b", "d": 1}}
	nextState := Mutate("obj")(map[string]any{"a": "c"})(prevState)

	assert.Equal(t, State{"obj": map[string]any{"a": "c", "d": 1}}, nextState)
	assert.Equal(t, map[string]any{"a": "b", "d": 1}, prevState["obj"])
}

func TestMutateIsShallow(t *testing.T) {
	prevState := State{"obj": map[string]any{"inner": map[string]any{"x": 1, "y": 2}}}
	nextState := Mutate("obj")(map[string]any{"inner": map[string]any{"x": 3}})(prevState)
	assert.Equal(t, map[string]any{"inner": map[string]any{"x": 3}}, nextState["obj"])
}

func TestMissingFieldReadsZero(t *testing.T) {
	assert.Equal(t, State{"n": 1}, Increment[int]("n")(State{}))
	assert.Equal(t, State{"b": true}, Toggle("b")(State{"b": nil}))
	assert.Equal(t, State{"list": []string{"x"}}, Append[string]("list")("x")(State{}))
	assert.Equal(t, State{"obj": map[string]any{"a": 1}}, Mutate("obj")(map[string]any{"a": 1})(State{}))
}

func TestWrongTypePanics(t *testing.T) {
	require.Panics(t, func() { Increment[int]("n")(State{"n": "one"}) })
	require.Panics(t, func() { Append[int]("list")(1)(State{"list": []string{"a"}}) })
	require.Panics(t, func() { Toggle("b")(State{"b": 1}) })
}

func TestMutationsNeverModifyInput(t *testing.T) {
	prevState := State{
		"n":    5,
		"b":    true,
		"list": []int{3, 1, 2},
		"x":    "a",
		"obj":  map[string]any{"k": "v"},
	}
	snapshot := deepcopy.Copy(prevState).(State)
	standalone := []Standalone{
		Increment[int]("n"),
		Decrement[int]("n"),
		Toggle("b"),
		Append[int]("list")(9),
		Prepend[int]("list")(0),
		Concat[int]("list")([]int{7, 8}),
		Cycle[string]("x")([]string{"a", "b"}),
		Direct[int]("n")(100),
		Filter[int]("list")(func(v, _ int) bool { return v > 1 }),
		Map[int]("list")(func(v, _ int) int { return -v }),
		Mutate("obj")(map[string]any{"k": "w", "z": 1}),
	}
	for i, m := range standalone {
		patch := m(prevState)
		assert.Len(t, patch, 1, "mutation %d", i)
		assert.Equal(t, snapshot, prevState, "mutation %d", i)
	}
}
