package events

import (
	"sync"
	"sync/atomic"

	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

// EventBus fans events out to buffered subscriber channels. A full
// subscriber loses the event; Publish never blocks the pipeline.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[models.EventType][]chan *models.Event
	allChans    []chan *models.Event
	bufferSize  int
	closed      bool
	dropped     atomic.Uint64
}

func NewEventBus(bufferSize int) *EventBus {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	return &EventBus{
		subscribers: make(map[models.EventType][]chan *models.Event),
		bufferSize:  bufferSize,
	}
}

func (b *EventBus) Subscribe(types ...models.EventType) <-chan *models.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan *models.Event, b.bufferSize)
	for _, t := range types {
		b.subscribers[t] = append(b.subscribers[t], ch)
	}
	return ch
}

func (b *EventBus) SubscribeAll() <-chan *models.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan *models.Event, b.bufferSize)
	b.allChans = append(b.allChans, ch)
	return ch
}

func (b *EventBus) Publish(event *models.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	deliver := func(ch chan *models.Event) {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
			logger.Warnf("Event channel full, dropping event: %s", event.Type)
		}
	}

	for _, ch := range b.subscribers[event.Type] {
		deliver(ch)
	}
	for _, ch := range b.allChans {
		deliver(ch)
	}
}

// Dropped counts events lost to full subscriber buffers.
func (b *EventBus) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *EventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	closed := make(map[chan *models.Event]bool)
	closeOnce := func(ch chan *models.Event) {
		if !closed[ch] {
			close(ch)
			closed[ch] = true
		}
	}

	for _, ch := range b.allChans {
		closeOnce(ch)
	}
	for _, subs := range b.subscribers {
		for _, ch := range subs {
			closeOnce(ch)
		}
	}

	b.subscribers = make(map[models.EventType][]chan *models.Event)
	b.allChans = nil
}
