package generic

// Handle addresses a slot of an Arena. The generation guards against using a
// handle after its slot has been freed and reused.
type Handle struct {
	Index      uint32
	Generation uint32
}

type slot[T any] struct {
	value      T
	generation uint32
	live       bool
}

// Arena stores values in a slice and hands out generational handles to them.
// It is not safe for concurrent use.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{slots: make([]slot[T], 0, capacity)}
}

// Insert stores value and returns its handle. Freed slots are reused first.
func (a *Arena[T]) Insert(value T) Handle {
	a.live++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = value
		s.live = true
		return Handle{Index: idx, Generation: s.generation}
	}
	a.slots = append(a.slots, slot[T]{value: value, live: true})
	return Handle{Index: uint32(len(a.slots) - 1)}
}

// Get returns the value behind h, or false if h was never issued or has been removed.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	if int(h.Index) >= len(a.slots) {
		var zero T
		return zero, false
	}
	s := &a.slots[h.Index]
	if !s.live || s.generation != h.Generation {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Remove frees the slot behind h and returns the value it held.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	value, ok := a.Get(h)
	if !ok {
		return value, false
	}
	s := &a.slots[h.Index]
	var zero T
	s.value = zero
	s.live = false
	s.generation++
	a.free = append(a.free, h.Index)
	a.live--
	return value, true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.live
}
