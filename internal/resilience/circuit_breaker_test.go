package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newBreaker(clock *fakeClock) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		Name:        "test",
		MaxFailures: 3,
		Timeout:     10 * time.Second,
		HalfOpenMax: 2,
		Now:         clock.Now,
	})
}

func fail() error    { return errBoom }
func succeed() error { return nil }

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	cb := newBreaker(clock)

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errBoom)
		assert.Equal(t, StateClosed, cb.State())
	}
	assert.ErrorIs(t, cb.Execute(fail), errBoom)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	cb := newBreaker(clock)

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, 0, cb.Snapshot().Failures)

	_ = cb.Execute(fail)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	tests := []struct {
		name     string
		trials   []func() error
		expected State
	}{
		{name: "closes after enough successes", trials: []func() error{succeed, succeed}, expected: StateClosed},
		{name: "stays half-open on one success", trials: []func() error{succeed}, expected: StateHalfOpen},
		{name: "reopens on failure", trials: []func() error{succeed, fail}, expected: StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: time.Unix(0, 0)}
			cb := newBreaker(clock)
			for i := 0; i < 3; i++ {
				_ = cb.Execute(fail)
			}
			require.Equal(t, StateOpen, cb.State())

			clock.Advance(5 * time.Second)
			assert.ErrorIs(t, cb.Execute(succeed), ErrCircuitOpen)

			clock.Advance(6 * time.Second)
			for _, trial := range tt.trials {
				_ = cb.Execute(trial)
			}
			assert.Equal(t, tt.expected, cb.State())
		})
	}
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	changes := make(chan [2]State, 4)
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures: 1,
		OnStateChange: func(_ string, from, to State) {
			changes <- [2]State{from, to}
		},
	})

	_ = cb.Execute(fail)

	select {
	case change := <-changes:
		assert.Equal(t, [2]State{StateClosed, StateOpen}, change)
	case <-time.After(time.Second):
		t.Fatal("state change not reported")
	}
}

func TestCircuitBreaker_Reset(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	cb := newBreaker(clock)
	for i := 0; i < 3; i++ {
		_ = cb.Execute(fail)
	}

	cb.Reset()
	assert.Equal(t, StateClosed, cb.State())
	assert.NoError(t, cb.Execute(succeed))
}
