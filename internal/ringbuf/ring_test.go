package ringbuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/host-sentinel/internal/ringbuf"
)

func TestRing_PushEvictsOldest(t *testing.T) {
	r := ringbuf.New[int](3)

	for i := 1; i <= 3; i++ {
		_, evicted := r.Push(i)
		assert.False(t, evicted)
	}

	old, evicted := r.Push(4)
	require.True(t, evicted)
	assert.Equal(t, 1, old)
	assert.Equal(t, []int{2, 3, 4}, r.Slice())
	assert.Equal(t, 2, r.At(0))
	assert.Equal(t, 4, r.At(2))
}

func TestRing_SliceIsCopy(t *testing.T) {
	r := ringbuf.New[string](2)
	r.Push("a")

	out := r.Slice()
	out[0] = "mutated"

	assert.Equal(t, []string{"a"}, r.Slice())
}

func TestRing_Contains(t *testing.T) {
	r := ringbuf.New[string](2)
	r.Push("a")
	r.Push("b")
	r.Push("c")

	assert.False(t, r.Contains(func(s string) bool { return s == "a" }))
	assert.True(t, r.Contains(func(s string) bool { return s == "c" }))
}

func TestRing_NonPositiveCapacity(t *testing.T) {
	r := ringbuf.New[int](0)
	r.Push(1)
	r.Push(2)

	assert.Equal(t, 1, r.Cap())
	assert.Equal(t, []int{2}, r.Slice())
}
