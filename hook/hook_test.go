package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeStandaloneHook(t *testing.T) {
	useDouble := MakeStandaloneHook(func(v int) int { return v * 2 }, 0)
	count, onDouble := useDouble(1)
	assert.Equal(t, 1, count.Get())

	onDouble()
	assert.Equal(t, 2, count.Get())

	onDouble()
	assert.Equal(t, 4, count.Get())
}

func TestMakeArgumentHook(t *testing.T) {
	useAdd := MakeArgumentHook(func(n int) func(int) int {
		return func(v int) int { return v + n }
	}, 0)
	count, onAdd := useAdd()
	assert.Equal(t, 0, count.Get())

	onAdd(10)
	assert.Equal(t, 10, count.Get())

	onAdd(20)
	assert.Equal(t, 30, count.Get())
}

func TestUseIncrementDecrement(t *testing.T) {
	up, onIncrement := UseIncrement()
	onIncrement()
	onIncrement()
	assert.Equal(t, 2, up.Get())

	down, onDecrement := UseDecrement(10)
	onDecrement()
	assert.Equal(t, 9, down.Get())
}

func TestUseToggle(t *testing.T) {
	value, onToggle := UseToggle()
	assert.True(t, value.Get())
	onToggle()
	assert.False(t, value.Get())
	onToggle()
	assert.True(t, value.Get())
}

func TestUseAppend(t *testing.T) {
	value, onAppend := UseAppend([]int{1})
	assert.Equal(t, []int{1}, value.Get())

	onAppend(2)
	assert.Equal(t, []int{1, 2}, value.Get())

	onAppend(3)
	assert.Equal(t, []int{1, 2, 3}, value.Get())
}

func TestUsePrepend(t *testing.T) {
	value, onPrepend := UsePrepend[string]()
	assert.Equal(t, []string{}, value.Get())
	onPrepend("b")
	onPrepend("a")
	assert.Equal(t, []string{"a", "b"}, value.Get())
}

func TestUseConcat(t *testing.T) {
	value, onConcat := UseConcat([]int{1})
	onConcat([]int{2, 3})
	assert.Equal(t, []int{1, 2, 3}, value.Get())
	onConcat([]int{4, 5})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, value.Get())
}

func TestUseFilter(t *testing.T) {
	value, onFilter := UseFilter([]int{1, 2, 3, 4, 5, 6})
	onFilter(func(v, _ int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4, 6}, value.Get())
	onFilter(func(_, i int) bool { return i > 0 })
	assert.Equal(t, []int{4, 6}, value.Get())
}

func TestUseMap(t *testing.T) {
	value, onMap := UseMap([]int{1, 2, 3})
	onMap(func(v, _ int) int { return v + 1 })
	assert.Equal(t, []int{2, 3, 4}, value.Get())
}

func TestUseCycle(t *testing.T) {
	value, onCycle := UseCycle([]string{"a", "b", "c"})
	assert.Equal(t, "a", value.Get())
	for _, want := range []string{"b", "c", "a", "b"} {
		onCycle()
		assert.Equal(t, want, value.Get())
	}

	empty, onEmpty := UseCycle[string](nil)
	onEmpty()
	assert.Equal(t, "", empty.Get())
}

func TestCellSubscribe(t *testing.T) {
	cell := NewCell(0)
	var a, b []int
	stopA := cell.Subscribe(func(v int) { a = append(a, v) })
	cell.Subscribe(func(v int) { b = append(b, v) })

	cell.Set(1)
	stopA()
	stopA()
	cell.Update(func(v int) int { return v + 10 })

	assert.Equal(t, []int{1}, a)
	assert.Equal(t, []int{1, 11}, b)
}

func TestCellSubscriberMayUpdate(t *testing.T) {
	cell := NewCell(0)
	cell.Subscribe(func(v int) {
		if v < 3 {
			cell.Update(func(v int) int { return v + 1 })
		}
	})
	cell.Set(1)
	assert.Equal(t, 3, cell.Get())
}

func TestCellSnapshot(t *testing.T) {
	cell := NewCell(map[string][]int{"a": {1, 2}})
	snapshot := cell.Snapshot()
	snapshot["a"][0] = 100
	snapshot["b"] = nil
	require.Equal(t, map[string][]int{"a": {1, 2}}, cell.Get())
}

func TestCellUpdateMayGet(t *testing.T) {
	cell := NewCell(1)
	assert.Equal(t, 2, cell.Update(func(v int) int { return v + cell.Get() }))

	value, onFilter := UseFilter([]int{1, 2, 3})
	onFilter(func(v, _ int) bool { return v < len(value.Get()) })
	assert.Equal(t, []int{1, 2}, value.Get())
}
