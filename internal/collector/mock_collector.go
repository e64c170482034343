package collector

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/OldStager01/host-sentinel/pkg/models"
)

type MockCollectorConfig struct {
	Hostname   string
	Pattern    string
	BaseCPU    float64
	BaseMemory float64
	Variance   float64
	Seed       int64
	// Now replaces the wall clock, for deterministic tests.
	Now func() time.Time
}

// MockCollector generates plausible host load without touching the OS.
// Cumulative counters grow monotonically between calls.
type MockCollector struct {
	mu         sync.Mutex
	hostname   string
	pattern    Pattern
	baseCPU    float64
	baseMemory float64
	variance   float64
	rng        *rand.Rand
	now        func() time.Time

	netSent, netRecv    uint64
	diskRead, diskWrite uint64
	readOps, writeOps   uint64
	noTemperature       bool
	shouldFail          bool
	failureError        error
}

func NewMockCollector(cfg MockCollectorConfig) *MockCollector {
	if cfg.Hostname == "" {
		cfg.Hostname = "mock-host"
	}
	if cfg.BaseCPU == 0 {
		cfg.BaseCPU = 35.0
	}
	if cfg.BaseMemory == 0 {
		cfg.BaseMemory = 55.0
	}
	if cfg.Variance == 0 {
		cfg.Variance = 5.0
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	return &MockCollector{
		hostname:   cfg.Hostname,
		pattern:    ParsePattern(cfg.Pattern, cfg.Now(), rng),
		baseCPU:    cfg.BaseCPU,
		baseMemory: cfg.BaseMemory,
		variance:   cfg.Variance,
		rng:        rng,
		now:        cfg.Now,
	}
}

func (c *MockCollector) SetBaseCPU(cpu float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseCPU = cpu
}

func (c *MockCollector) SetPattern(p Pattern) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pattern = p
}

// SetNoTemperature simulates a host without thermal sensors.
func (c *MockCollector) SetNoTemperature(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.noTemperature = v
}

func (c *MockCollector) SetShouldFail(shouldFail bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shouldFail = shouldFail
	c.failureError = err
}

func (c *MockCollector) Collect(ctx context.Context) (*models.RawSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.shouldFail {
		if c.failureError != nil {
			return nil, c.failureError
		}
		return nil, ErrCollectionFailed
	}

	now := c.now()
	cpu := clampPercent(c.jitter(c.pattern.Apply(c.baseCPU, now)))

	c.netSent += uint64(20_000 + c.rng.Intn(80_000))
	c.netRecv += uint64(50_000 + c.rng.Intn(200_000))
	c.diskRead += uint64(c.rng.Intn(4 << 20))
	c.diskWrite += uint64(c.rng.Intn(2 << 20))
	c.readOps += uint64(c.rng.Intn(400))
	c.writeOps += uint64(c.rng.Intn(200))

	temp := models.Value(40 + cpu*0.45)
	if c.noTemperature {
		temp = models.Unavailable()
	}

	return &models.RawSnapshot{
		Timestamp:       now,
		Hostname:        c.hostname,
		CPUPercent:      models.Value(cpu),
		RAMPercent:      models.Value(clampPercent(c.jitter(c.baseMemory + cpu*0.2))),
		DiskPercent:     models.Value(62),
		SwapPercent:     models.Value(clampPercent(c.jitter(5))),
		Temperature:     temp,
		ProcessCount:    models.Value(float64(180 + c.rng.Intn(40))),
		ZombieCount:     models.Value(0),
		ConnectionCount: models.Value(float64(40 + c.rng.Intn(60))),
		NetBytesSent:    models.CounterValue(c.netSent),
		NetBytesRecv:    models.CounterValue(c.netRecv),
		DiskReadBytes:   models.CounterValue(c.diskRead),
		DiskWriteBytes:  models.CounterValue(c.diskWrite),
		DiskReadOps:     models.CounterValue(c.readOps),
		DiskWriteOps:    models.CounterValue(c.writeOps),
	}, nil
}

func (c *MockCollector) jitter(v float64) float64 {
	return v + (c.rng.Float64()*2-1)*c.variance
}

func (c *MockCollector) HealthCheck(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shouldFail {
		return ErrCollectionFailed
	}
	return nil
}

func (c *MockCollector) Close() error {
	return nil
}
