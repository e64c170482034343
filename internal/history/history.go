package history

import (
	"sort"

	"github.com/OldStager01/host-sentinel/internal/ringbuf"
)

const DefaultSize = 30

// Buffer keeps an independent rolling window per metric name.
type Buffer struct {
	size    int
	windows map[string]*ringbuf.Ring[float64]
}

func New(size int) *Buffer {
	if size <= 0 {
		size = DefaultSize
	}
	return &Buffer{
		size:    size,
		windows: make(map[string]*ringbuf.Ring[float64]),
	}
}

func (b *Buffer) Push(metric string, value float64) {
	w, ok := b.windows[metric]
	if !ok {
		w = ringbuf.New[float64](b.size)
		b.windows[metric] = w
	}
	w.Push(value)
}

// Window returns the last readings of metric, oldest first.
func (b *Buffer) Window(metric string) []float64 {
	w, ok := b.windows[metric]
	if !ok {
		return []float64{}
	}
	return w.Slice()
}

func (b *Buffer) Len(metric string) int {
	if w, ok := b.windows[metric]; ok {
		return w.Len()
	}
	return 0
}

func (b *Buffer) Size() int {
	return b.size
}

// Metrics lists tracked metric names in sorted order.
func (b *Buffer) Metrics() []string {
	names := make([]string, 0, len(b.windows))
	for name := range b.windows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies every window.
func (b *Buffer) Snapshot() map[string][]float64 {
	out := make(map[string][]float64, len(b.windows))
	for name, w := range b.windows {
		out[name] = w.Slice()
	}
	return out
}
