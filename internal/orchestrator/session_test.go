package orchestrator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/host-sentinel/internal/collector"
	"github.com/OldStager01/host-sentinel/internal/engine"
	"github.com/OldStager01/host-sentinel/internal/events"
	"github.com/OldStager01/host-sentinel/internal/export"
	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/internal/metrics"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

func hotPipeline(bus *events.EventBus) *Pipeline {
	mock := collector.NewMockCollector(collector.MockCollectorConfig{Hostname: "lab-1", Seed: 3})
	mock.SetBaseCPU(99)
	mock.SetPattern(collector.SteadyPattern{})

	return NewPipeline(PipelineConfig{
		Target:         "lab-1",
		Collector:      mock,
		Engine:         engine.New(engine.Config{Target: "lab-1"}),
		EventPublisher: events.NewPublisher(bus),
		Metrics:        metrics.New(),
	})
}

func TestPipeline_SessionBeforeFirstTick(t *testing.T) {
	bus := events.NewEventBus(8)
	defer bus.Close()

	p := hotPipeline(bus)
	s := p.Session(0, time.Now())

	assert.Equal(t, "lab-1", s.Target)
	assert.False(t, s.HasSummary)
	assert.Zero(t, s.Snapshots)
	assert.NotContains(t, s.Fields(), "final_score")
}

func TestPipeline_FinishWritesFinalReport(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })

	bus := events.NewEventBus(16)
	defer bus.Close()
	exports := bus.Subscribe(models.EventTypeExportWritten)

	p := hotPipeline(bus)
	for i := 0; i < 2; i++ {
		_, err := p.RunOnce(context.Background())
		require.NoError(t, err)
	}

	dir := t.TempDir()
	s := p.Finish(export.New(dir), true)

	assert.Equal(t, uint64(2), s.Snapshots)
	assert.GreaterOrEqual(t, s.TotalAlerts, uint64(1))
	assert.Equal(t, uint64(2), s.Exports)
	assert.True(t, s.HasSummary)
	assert.Equal(t, p.Latest().HealthScore, s.FinalScore)
	assert.Equal(t, p.Latest().HealthStatus, s.FinalStatus)
	assert.GreaterOrEqual(t, s.Runtime, time.Duration(0))

	reports, err := filepath.Glob(filepath.Join(dir, "report_*.json"))
	require.NoError(t, err)
	assert.Len(t, reports, 1)
	data, err := filepath.Glob(filepath.Join(dir, "data_*.csv"))
	require.NoError(t, err)
	assert.Len(t, data, 1)
	assert.Len(t, exports, 2)

	out := buf.String()
	assert.Contains(t, out, "Session summary")
	assert.Contains(t, out, `"total_alerts"`)
	assert.Contains(t, out, `"final_score"`)
}

func TestPipeline_FinishWithoutReport(t *testing.T) {
	bus := events.NewEventBus(8)
	defer bus.Close()

	p := hotPipeline(bus)
	_, err := p.RunOnce(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	s := p.Finish(export.New(dir), false)

	assert.Zero(t, s.Exports)
	assert.Equal(t, uint64(1), s.Snapshots)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
