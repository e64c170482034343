package rates

import (
	"time"
)

// CounterPair is the last cumulative value seen for one counter.
type CounterPair struct {
	Value uint64
	At    time.Time
}

// Calculator turns cumulative counters into per-second rates. The first
// sample of a counter only primes it; a counter that goes backwards
// (wraparound, reset) yields 0 for that tick.
type Calculator struct {
	pairs map[string]CounterPair
}

func New() *Calculator {
	return &Calculator{
		pairs: make(map[string]CounterPair),
	}
}

// Rate computes the per-second rate over elapsedSeconds and stores current
// as the new previous value.
func (c *Calculator) Rate(name string, current uint64, elapsedSeconds float64) float64 {
	prev, seen := c.pairs[name]
	// Advance the stored clock by the supplied interval so Observe stays
	// consistent when both are used on one counter.
	at := prev.At
	if seen && elapsedSeconds > 0 {
		at = prev.At.Add(time.Duration(elapsedSeconds * float64(time.Second)))
	}
	c.pairs[name] = CounterPair{Value: current, At: at}

	if !seen {
		return 0
	}
	return perSecond(prev.Value, current, elapsedSeconds)
}

// Observe is Rate with the elapsed time taken from the stored pair, so a
// counter skipped for a few ticks is differenced over the real gap.
func (c *Calculator) Observe(name string, current uint64, at time.Time) float64 {
	prev, seen := c.pairs[name]
	c.pairs[name] = CounterPair{Value: current, At: at}

	if !seen {
		return 0
	}
	return perSecond(prev.Value, current, at.Sub(prev.At).Seconds())
}

func perSecond(prev, current uint64, elapsedSeconds float64) float64 {
	if current < prev || elapsedSeconds <= 0 {
		return 0
	}
	return float64(current-prev) / elapsedSeconds
}

// Previous returns the stored pair for name.
func (c *Calculator) Previous(name string) (CounterPair, bool) {
	p, ok := c.pairs[name]
	return p, ok
}

func (c *Calculator) Reset(name string) {
	delete(c.pairs, name)
}

func (c *Calculator) Len() int {
	return len(c.pairs)
}
