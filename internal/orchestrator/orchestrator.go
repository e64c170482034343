package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/OldStager01/host-sentinel/internal/alerts"
	"github.com/OldStager01/host-sentinel/internal/collector"
	"github.com/OldStager01/host-sentinel/internal/engine"
	"github.com/OldStager01/host-sentinel/internal/events"
	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/internal/metrics"
	"github.com/OldStager01/host-sentinel/pkg/config"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

var (
	ErrTargetExists   = errors.New("target already monitored")
	ErrTargetNotFound = errors.New("target not monitored")
)

// Orchestrator owns the event bus and one pipeline per monitored target.
type Orchestrator struct {
	config      *config.Config
	eventBus    *events.EventBus
	eventLogger *events.EventLogger
	metrics     *metrics.Metrics
	pipelines   map[string]*Pipeline
	order       []string
	mu          sync.RWMutex
}

func New(cfg *config.Config) *Orchestrator {
	eventBus := events.NewEventBus(cfg.Events.BufferSize)
	eventLogger := events.NewEventLogger(eventBus.SubscribeAll())

	return &Orchestrator{
		config:      cfg,
		eventBus:    eventBus,
		eventLogger: eventLogger,
		metrics:     metrics.Get(),
		pipelines:   make(map[string]*Pipeline),
	}
}

func (o *Orchestrator) Start() error {
	logger.Info("Orchestrator starting")
	o.eventLogger.Start()
	return nil
}

func (o *Orchestrator) Stop() {
	logger.Info("Orchestrator stopping")

	o.mu.Lock()
	for target, pipeline := range o.pipelines {
		logger.Infof("Stopping pipeline for target %s", target)
		pipeline.Stop()
	}
	o.mu.Unlock()

	o.eventBus.Close()
	o.eventLogger.Stop()

	if dropped := o.eventBus.Dropped(); dropped > 0 {
		logger.Warnf("%d events dropped by slow subscribers", dropped)
	}

	logger.Info("Orchestrator stopped")
}

// EngineConfig maps the configured thresholds and caps onto an engine.Config.
func EngineConfig(cfg config.EngineConfig, target string) engine.Config {
	limit := func(l config.LimitConfig) alerts.Limit {
		return alerts.Limit{Warn: l.Warn, Crit: l.Crit}
	}
	t := cfg.Thresholds

	return engine.Config{
		Target:          target,
		HistorySize:     cfg.HistorySize,
		NotificationCap: cfg.NotificationCap,
		HistoryCap:      cfg.HistoryCap,
		Thresholds: alerts.Thresholds{
			CPU:         limit(t.CPU),
			RAM:         limit(t.RAM),
			Disk:        limit(t.Disk),
			Temperature: limit(t.Temperature),
			Swap:        limit(t.Swap),
			Connections: limit(t.Connections),
			Processes:   limit(t.Processes),
		},
	}
}

// AddTarget builds a fresh engine for target and starts polling coll.
func (o *Orchestrator) AddTarget(target string, coll collector.Collector) (*Pipeline, error) {
	pipeline, err := o.register(target, coll)
	if err != nil {
		return nil, err
	}

	if err := pipeline.Start(); err != nil {
		return nil, fmt.Errorf("failed to start pipeline: %w", err)
	}
	return pipeline, nil
}

// register creates the pipeline without starting its ticker.
func (o *Orchestrator) register(target string, coll collector.Collector) (*Pipeline, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.pipelines[target]; exists {
		return nil, fmt.Errorf("%w: %s", ErrTargetExists, target)
	}

	pipeline := NewPipeline(PipelineConfig{
		Target:          target,
		CollectInterval: o.config.Collector.Interval,
		CollectTimeout:  o.config.Collector.Timeout,
		Collector:       coll,
		Engine:          engine.New(EngineConfig(o.config.Engine, target)),
		EventPublisher:  events.NewPublisher(o.eventBus),
		Metrics:         o.metrics,
	})

	o.pipelines[target] = pipeline
	o.order = append(o.order, target)
	logger.WithTarget(target).Info("Target registered")

	return pipeline, nil
}

func (o *Orchestrator) RemoveTarget(target string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	pipeline, exists := o.pipelines[target]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTargetNotFound, target)
	}

	pipeline.Stop()
	delete(o.pipelines, target)
	for i, t := range o.order {
		if t == target {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	logger.WithTarget(target).Info("Target removed")

	return nil
}

func (o *Orchestrator) Pipeline(target string) (*Pipeline, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	pipeline, exists := o.pipelines[target]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, target)
	}
	return pipeline, nil
}

// Default returns the first registered target's pipeline.
func (o *Orchestrator) Default() (*Pipeline, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if len(o.order) == 0 {
		return nil, ErrTargetNotFound
	}
	return o.pipelines[o.order[0]], nil
}

func (o *Orchestrator) Latest(target string) (*models.Summary, error) {
	pipeline, err := o.Pipeline(target)
	if err != nil {
		return nil, err
	}
	return pipeline.Latest(), nil
}

func (o *Orchestrator) Targets() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	targets := append([]string(nil), o.order...)
	sort.Strings(targets)
	return targets
}

// Ready reports whether every pipeline has produced at least one summary.
func (o *Orchestrator) Ready() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if len(o.pipelines) == 0 {
		return false
	}
	for _, p := range o.pipelines {
		if p.Latest() == nil {
			return false
		}
	}
	return true
}

func (o *Orchestrator) Publisher() *events.Publisher {
	return events.NewPublisher(o.eventBus)
}

func (o *Orchestrator) SubscribeEvents(types ...models.EventType) <-chan *models.Event {
	return o.eventBus.Subscribe(types...)
}

func (o *Orchestrator) SubscribeAllEvents() <-chan *models.Event {
	return o.eventBus.SubscribeAll()
}

// Tick runs one cycle on target immediately, independent of its ticker.
func (o *Orchestrator) Tick(ctx context.Context, target string) (*models.Summary, error) {
	pipeline, err := o.Pipeline(target)
	if err != nil {
		return nil, err
	}
	return pipeline.RunOnce(ctx)
}
