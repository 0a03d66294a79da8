package hook

import (
	"sync"

	"github.com/mohae/deepcopy"
)

// Cell owns a value that changes over time.  It is the storage that a
// hook's trigger writes to.  Subscribers are called after every change,
// outside of the cell's lock, in the order they subscribed.
type Cell[T any] struct {
	updating    sync.Mutex // held while an Update computes its value
	lock        sync.Mutex
	value       T
	nextID      int
	subscribers map[int]func(T)
	order       []int
}

func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value:       initial,
		subscribers: make(map[int]func(T)),
	}
}

// Get returns the current value.  Slices and maps are shared with
// the cell; use Snapshot to get a copy that can be changed freely.
func (c *Cell[T]) Get() T {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.value
}

// Snapshot returns a deep copy of the current value.
func (c *Cell[T]) Snapshot() T {
	v := c.Get()
	copied, ok := deepcopy.Copy(v).(T)
	if !ok {
		return v
	}
	return copied
}

func (c *Cell[T]) Set(value T) {
	c.Update(func(T) T { return value })
}

// Update computes the next value from the current one, stores it, and
// then notifies subscribers.  The result is returned.  Updates are
// serialized.  next may call Get but must not call Set or Update.
func (c *Cell[T]) Update(next func(T) T) T {
	c.updating.Lock()
	value := next(c.Get())
	c.lock.Lock()
	c.updating.Unlock()
	c.value = value
	subscribers := make([]func(T), 0, len(c.order))
	for _, id := range c.order {
		subscribers = append(subscribers, c.subscribers[id])
	}
	c.lock.Unlock()
	for _, f := range subscribers {
		f(value)
	}
	return value
}

// Subscribe registers f to be called with each new value.  Call the
// returned function to stop.
func (c *Cell[T]) Subscribe(f func(T)) (unsubscribe func()) {
	c.lock.Lock()
	defer c.lock.Unlock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = f
	c.order = append(c.order, id)
	return func() {
		c.lock.Lock()
		defer c.lock.Unlock()
		if _, ok := c.subscribers[id]; !ok {
			return
		}
		delete(c.subscribers, id)
		for i, o := range c.order {
			if o == id {
				c.order = append(c.order[:i:i], c.order[i+1:]...)
				break
			}
		}
	}
}
