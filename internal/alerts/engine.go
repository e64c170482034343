package alerts

import (
	"fmt"
	"time"

	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/internal/ringbuf"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

const (
	DefaultNotificationCap = 10
	DefaultHistoryCap      = 50
)

// Quantity names carried on AlertRecord.
const (
	QuantityCPU         = "cpu"
	QuantityRAM         = "ram"
	QuantityDisk        = "disk"
	QuantityTemperature = "temperature"
	QuantitySwap        = "swap"
	QuantityConnections = "connections"
	QuantityProcesses   = "processes"
	QuantityZombies     = "zombies"
)

type Config struct {
	Thresholds      Thresholds
	NotificationCap int
	HistoryCap      int
}

// Engine evaluates thresholds once per tick and keeps two bounded logs.
// A message already present in the history log is never appended again,
// even if its condition cleared in between.
type Engine struct {
	config        Config
	notifications *ringbuf.Ring[models.AlertRecord]
	history       *ringbuf.Ring[models.AlertRecord]
	totalRaised   uint64
}

type candidate struct {
	quantity string
	severity models.AlertSeverity
	message  string
}

func New(cfg Config) *Engine {
	if cfg.NotificationCap <= 0 {
		cfg.NotificationCap = DefaultNotificationCap
	}
	if cfg.HistoryCap <= 0 {
		cfg.HistoryCap = DefaultHistoryCap
	}
	// A message must stay in history at least as long as it stays active,
	// or it could re-enter the notifications while still listed there.
	if cfg.HistoryCap < cfg.NotificationCap {
		cfg.HistoryCap = cfg.NotificationCap
	}
	if cfg.Thresholds == (Thresholds{}) {
		cfg.Thresholds = DefaultThresholds()
	}

	return &Engine{
		config:        cfg,
		notifications: ringbuf.New[models.AlertRecord](cfg.NotificationCap),
		history:       ringbuf.New[models.AlertRecord](cfg.HistoryCap),
	}
}

// Evaluate checks snap against the thresholds and returns the records that
// were appended to the logs this tick.
func (e *Engine) Evaluate(snap *models.RawSnapshot, at time.Time) []models.AlertRecord {
	fresh := []models.AlertRecord{}

	for _, c := range e.candidates(snap) {
		if e.seen(c.message) {
			continue
		}

		record := models.NewAlertRecord(c.quantity, c.severity, c.message, at)
		e.history.Push(record)
		e.notifications.Push(record)
		e.totalRaised++
		fresh = append(fresh, record)

		logger.WithFields(map[string]interface{}{
			"quantity": c.quantity,
			"severity": c.severity,
		}).Debugf("Alert raised: %s", c.message)
	}

	return fresh
}

func (e *Engine) seen(message string) bool {
	return e.history.Contains(func(r models.AlertRecord) bool {
		return r.Message == message
	})
}

func (e *Engine) candidates(snap *models.RawSnapshot) []candidate {
	t := e.config.Thresholds
	var out []candidate

	add := func(quantity string, reading models.Reading, limit Limit, format func(models.AlertSeverity, float64) string) {
		v, ok := reading.Get()
		if !ok {
			return
		}
		switch {
		case v > limit.Crit:
			out = append(out, candidate{quantity, models.AlertCritical, format(models.AlertCritical, v)})
		case v > limit.Warn:
			out = append(out, candidate{quantity, models.AlertWarning, format(models.AlertWarning, v)})
		}
	}

	add(QuantityCPU, snap.CPUPercent, t.CPU, percentMessage("CPU"))
	add(QuantityRAM, snap.RAMPercent, t.RAM, percentMessage("RAM"))
	add(QuantityDisk, snap.DiskPercent, t.Disk, percentMessage("Disk"))
	add(QuantityTemperature, snap.Temperature, t.Temperature, func(s models.AlertSeverity, v float64) string {
		return fmt.Sprintf("%s: CPU Temp at %.1f°C", s, v)
	})
	add(QuantitySwap, snap.SwapPercent, t.Swap, percentMessage("Swap"))

	if zombies, ok := snap.ZombieCount.Get(); ok && zombies > 0 {
		out = append(out, candidate{
			quantity: QuantityZombies,
			severity: models.AlertWarning,
			message:  fmt.Sprintf("%s: %d Zombie Processes", models.AlertWarning, int64(zombies)),
		})
	}

	add(QuantityConnections, snap.ConnectionCount, t.Connections, countMessage("Network Connections"))
	add(QuantityProcesses, snap.ProcessCount, t.Processes, countMessage("Processes"))

	return out
}

func percentMessage(label string) func(models.AlertSeverity, float64) string {
	return func(s models.AlertSeverity, v float64) string {
		return fmt.Sprintf("%s: %s at %.1f%%", s, label, v)
	}
}

func countMessage(label string) func(models.AlertSeverity, float64) string {
	return func(s models.AlertSeverity, v float64) string {
		return fmt.Sprintf("%s: %d %s", s, int64(v), label)
	}
}

// Active returns the most recent notifications, oldest first.
func (e *Engine) Active() []models.AlertRecord {
	return e.notifications.Slice()
}

// History returns the alert history log, oldest first.
func (e *Engine) History() []models.AlertRecord {
	return e.history.Slice()
}

// TotalRaised counts every record ever appended, including evicted ones.
func (e *Engine) TotalRaised() uint64 {
	return e.totalRaised
}

func (e *Engine) Thresholds() Thresholds {
	return e.config.Thresholds
}
