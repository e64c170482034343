// Package ringbuf provides the fixed-capacity FIFO used by every bounded
// window and log in the engine.
package ringbuf

// Ring holds at most Cap() items. Pushing onto a full ring evicts the
// oldest item. Not safe for concurrent use.
type Ring[T any] struct {
	items []T
	head  int
	size  int
}

func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Push appends v and reports the evicted item, if any.
func (r *Ring[T]) Push(v T) (evicted T, didEvict bool) {
	capacity := len(r.items)
	if r.size < capacity {
		r.items[(r.head+r.size)%capacity] = v
		r.size++
		return evicted, false
	}

	evicted = r.items[r.head]
	r.items[r.head] = v
	r.head = (r.head + 1) % capacity
	return evicted, true
}

func (r *Ring[T]) Len() int {
	return r.size
}

func (r *Ring[T]) Cap() int {
	return len(r.items)
}

// At returns the i-th item, oldest first.
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= r.size {
		panic("ringbuf: index out of range")
	}
	return r.items[(r.head+i)%len(r.items)]
}

// Slice copies the contents, oldest first.
func (r *Ring[T]) Slice() []T {
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.items[(r.head+i)%len(r.items)]
	}
	return out
}

// Contains reports whether any item satisfies match.
func (r *Ring[T]) Contains(match func(T) bool) bool {
	for i := 0; i < r.size; i++ {
		if match(r.items[(r.head+i)%len(r.items)]) {
			return true
		}
	}
	return false
}
