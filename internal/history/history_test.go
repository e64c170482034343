package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OldStager01/host-sentinel/internal/history"
)

func TestBuffer_BoundedFIFO(t *testing.T) {
	b := history.New(30)

	var pushed []float64
	for i := 0; i < 35; i++ {
		v := float64(i) * 1.5
		b.Push("cpu", v)
		pushed = append(pushed, v)
	}

	window := b.Window("cpu")
	assert.Len(t, window, 30)
	assert.Equal(t, pushed[5:], window)
}

func TestBuffer_IndependentMetrics(t *testing.T) {
	b := history.New(3)
	b.Push("cpu", 10)
	b.Push("ram", 50)
	b.Push("cpu", 20)

	assert.Equal(t, []float64{10, 20}, b.Window("cpu"))
	assert.Equal(t, []float64{50}, b.Window("ram"))
	assert.Equal(t, []string{"cpu", "ram"}, b.Metrics())
}

func TestBuffer_WindowDoesNotMutate(t *testing.T) {
	b := history.New(5)
	b.Push("disk", 1)

	w := b.Window("disk")
	w[0] = 99

	assert.Equal(t, []float64{1}, b.Window("disk"))
	assert.Equal(t, 1, b.Len("disk"))
}

func TestBuffer_UnknownMetric(t *testing.T) {
	b := history.New(0)

	assert.Empty(t, b.Window("network"))
	assert.Equal(t, history.DefaultSize, b.Size())
}

func TestBuffer_Snapshot(t *testing.T) {
	b := history.New(2)
	b.Push("cpu", 1)
	b.Push("network", 2048)

	snap := b.Snapshot()
	snap["cpu"][0] = 42

	assert.Equal(t, []float64{1}, b.Window("cpu"))
	assert.Equal(t, []float64{2048}, snap["network"])
}
