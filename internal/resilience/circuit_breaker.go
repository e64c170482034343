package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker stops calling a failing source for Timeout after
// MaxFailures consecutive failures, then lets trial calls through.
// HalfOpenMax consecutive successes close it again; any failure reopens it.
type CircuitBreaker struct {
	name          string
	maxFailures   int
	timeout       time.Duration
	halfOpenMax   int
	now           func() time.Time
	onStateChange func(name string, from, to State)

	mu           sync.Mutex
	state        State
	failures     int
	successes    int
	lastFailTime time.Time
}

type CircuitBreakerConfig struct {
	Name          string
	MaxFailures   int
	Timeout       time.Duration
	HalfOpenMax   int
	Now           func() time.Time
	OnStateChange func(name string, from, to State)
}

type Snapshot struct {
	State    State
	Failures int
	LastFail time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.HalfOpenMax <= 0 {
		cfg.HalfOpenMax = 3
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &CircuitBreaker{
		name:          cfg.Name,
		maxFailures:   cfg.MaxFailures,
		timeout:       cfg.Timeout,
		halfOpenMax:   cfg.HalfOpenMax,
		now:           cfg.Now,
		onStateChange: cfg.OnStateChange,
		state:         StateClosed,
	}
}

func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allow() {
		return ErrCircuitOpen
	}

	err := fn()
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.lastFailTime) <= cb.timeout {
			return false
		}
		cb.transitionTo(StateHalfOpen)
	}
	return true
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.lastFailTime = cb.now()
		switch cb.state {
		case StateClosed:
			cb.failures++
			if cb.failures >= cb.maxFailures {
				cb.transitionTo(StateOpen)
			}
		case StateHalfOpen:
			cb.transitionTo(StateOpen)
		}
		return
	}

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.halfOpenMax {
			cb.transitionTo(StateClosed)
		}
	}
}

// transitionTo must be called with mu held. The callback runs on its own
// goroutine so it may call back into the breaker.
func (cb *CircuitBreaker) transitionTo(next State) {
	prev := cb.state
	cb.state = next
	cb.failures = 0
	cb.successes = 0

	if cb.onStateChange != nil && prev != next {
		go cb.onStateChange(cb.name, prev, next)
	}
}

func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.transitionTo(StateClosed)
}

func (cb *CircuitBreaker) Snapshot() Snapshot {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return Snapshot{State: cb.state, Failures: cb.failures, LastFail: cb.lastFailTime}
}
