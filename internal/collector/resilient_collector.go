package collector

import (
	"context"
	"time"

	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/internal/resilience"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

// ResilientCollector retries a flaky collector within one tick and trips a
// circuit breaker when the source keeps failing across ticks.
type ResilientCollector struct {
	collector      Collector
	target         string
	circuitBreaker *resilience.CircuitBreaker
	retryAttempts  int
	retryDelay     time.Duration
}

type ResilientCollectorConfig struct {
	Collector     Collector
	Target        string
	MaxFailures   int
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	OnStateChange func(name string, from, to resilience.State)
}

func NewResilientCollector(cfg ResilientCollectorConfig) *ResilientCollector {
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 200 * time.Millisecond
	}

	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:          "collector:" + cfg.Target,
		MaxFailures:   cfg.MaxFailures,
		Timeout:       cfg.Timeout,
		OnStateChange: cfg.OnStateChange,
	})

	return &ResilientCollector{
		collector:      cfg.Collector,
		target:         cfg.Target,
		circuitBreaker: cb,
		retryAttempts:  cfg.RetryAttempts,
		retryDelay:     cfg.RetryDelay,
	}
}

func (c *ResilientCollector) Collect(ctx context.Context) (*models.RawSnapshot, error) {
	var snap *models.RawSnapshot

	err := c.circuitBreaker.Execute(func() error {
		var lastErr error
		for attempt := 1; attempt <= c.retryAttempts; attempt++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			var err error
			snap, err = c.collector.Collect(ctx)
			if err == nil {
				return nil
			}

			lastErr = err
			logger.WithTarget(c.target).Warnf(
				"Collection attempt %d/%d failed: %v",
				attempt, c.retryAttempts, err,
			)

			if attempt < c.retryAttempts {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(c.retryDelay):
				}
			}
		}
		return lastErr
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

func (c *ResilientCollector) HealthCheck(ctx context.Context) error {
	return c.collector.HealthCheck(ctx)
}

func (c *ResilientCollector) Close() error {
	return c.collector.Close()
}

func (c *ResilientCollector) CircuitState() resilience.State {
	return c.circuitBreaker.State()
}

func (c *ResilientCollector) ResetCircuit() {
	c.circuitBreaker.Reset()
}
