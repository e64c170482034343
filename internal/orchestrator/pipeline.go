package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/OldStager01/host-sentinel/internal/collector"
	"github.com/OldStager01/host-sentinel/internal/engine"
	"github.com/OldStager01/host-sentinel/internal/events"
	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/internal/metrics"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

type PipelineConfig struct {
	Target          string
	CollectInterval time.Duration
	CollectTimeout  time.Duration
	Collector       collector.Collector
	Engine          *engine.Engine
	EventPublisher  *events.Publisher
	Metrics         *metrics.Metrics
}

// Pipeline drives one Engine from a ticker. Its goroutine is the only
// caller of Engine.Process; readers get the latest Summary through Latest.
type Pipeline struct {
	config  PipelineConfig
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex

	cycleMu sync.Mutex
	latest  *models.Summary
	stats   engine.Stats
	stateMu sync.RWMutex
}

func NewPipeline(cfg PipelineConfig) *Pipeline {
	if cfg.CollectInterval <= 0 {
		cfg.CollectInterval = 2 * time.Second
	}
	if cfg.CollectTimeout <= 0 || cfg.CollectTimeout >= cfg.CollectInterval {
		cfg.CollectTimeout = cfg.CollectInterval * 3 / 4
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Get()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pipeline{
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
		stats:  cfg.Engine.Stats(),
	}
}

func (p *Pipeline) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	p.running = true
	p.wg.Add(1)
	go p.run()

	logger.WithTarget(p.config.Target).Info("Pipeline started")
	return nil
}

func (p *Pipeline) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()

	logger.WithTarget(p.config.Target).Info("Pipeline stopped")
}

func (p *Pipeline) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Pipeline) Target() string {
	return p.config.Target
}

// Latest returns the most recent summary, or nil before the first tick.
func (p *Pipeline) Latest() *models.Summary {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.latest
}

func (p *Pipeline) Stats() engine.Stats {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.stats
}

func (p *Pipeline) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.CollectInterval)
	defer ticker.Stop()

	p.runCycle(p.ctx)

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.runCycle(p.ctx)
		}
	}
}

// RunOnce performs a single collect and process cycle outside the ticker.
func (p *Pipeline) RunOnce(ctx context.Context) (*models.Summary, error) {
	return p.runCycle(ctx)
}

func (p *Pipeline) runCycle(parent context.Context) (*models.Summary, error) {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	ctx, cancel := context.WithTimeout(parent, p.config.CollectTimeout)
	defer cancel()

	target := p.config.Target
	start := time.Now()

	snap, err := p.config.Collector.Collect(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) && parent.Err() != nil {
			return nil, err
		}
		p.config.Metrics.IncCollectionErrors(target)
		logger.WithTarget(target).Errorf("Collection failed: %v", err)
		p.config.EventPublisher.Error(target, "Snapshot collection failed", err)
		return nil, err
	}
	p.config.Metrics.IncCollections(target)
	p.config.EventPublisher.SnapshotCollected(target, snap)

	summary, err := p.config.Engine.Process(*snap, time.Now())
	p.storeStats()
	if err != nil {
		p.config.Metrics.IncRejected(target)
		logger.WithTarget(target).Warnf("Snapshot rejected: %v", err)
		p.config.EventPublisher.SnapshotRejected(target, err)
		return nil, err
	}

	p.stateMu.Lock()
	p.latest = summary
	p.stateMu.Unlock()

	p.config.Metrics.ObserveSummary(summary)
	p.config.Metrics.SetProcessLatency(target, time.Since(start))

	if summary.HasCriticalAlert() {
		logger.WithTarget(target).Errorf("Critical alert raised, health %d", summary.HealthScore)
	}

	p.config.EventPublisher.SummaryProduced(summary)
	for _, a := range summary.NewAlerts {
		p.config.EventPublisher.Alert(target, a)
	}

	return summary, nil
}

func (p *Pipeline) storeStats() {
	stats := p.config.Engine.Stats()
	p.stateMu.Lock()
	p.stats = stats
	p.stateMu.Unlock()
}
