package collector

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

type HostCollectorConfig struct {
	// Hostname overrides the name reported by the OS.
	Hostname string
	DiskPath string
	Timeout  time.Duration
}

// HostCollector reads the local machine through gopsutil.
type HostCollector struct {
	config HostCollectorConfig
}

func NewHostCollector(cfg HostCollectorConfig) *HostCollector {
	if cfg.DiskPath == "" {
		cfg.DiskPath = "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &HostCollector{config: cfg}
}

func (c *HostCollector) Collect(ctx context.Context) (*models.RawSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	snap := &models.RawSnapshot{
		Timestamp: time.Now(),
		Hostname:  c.hostname(ctx),
	}

	var failed []string
	gauge := func(name string, read func() (float64, error)) models.Reading {
		v, err := read()
		if err != nil {
			failed = append(failed, name)
			logger.WithField("reading", name).Debugf("Reading unavailable: %v", err)
			return models.Unavailable()
		}
		return models.Value(v)
	}

	snap.CPUPercent = gauge("cpu_percent", func() (float64, error) {
		pct, err := cpu.PercentWithContext(ctx, 0, false)
		if err != nil {
			return 0, err
		}
		if len(pct) == 0 {
			return 0, fmt.Errorf("no cpu samples")
		}
		return pct[0], nil
	})
	snap.RAMPercent = gauge("ram_percent", func() (float64, error) {
		vm, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			return 0, err
		}
		return vm.UsedPercent, nil
	})
	snap.SwapPercent = gauge("swap_percent", func() (float64, error) {
		sw, err := mem.SwapMemoryWithContext(ctx)
		if err != nil {
			return 0, err
		}
		return sw.UsedPercent, nil
	})
	snap.DiskPercent = gauge("disk_percent", func() (float64, error) {
		usage, err := disk.UsageWithContext(ctx, c.config.DiskPath)
		if err != nil {
			return 0, err
		}
		return usage.UsedPercent, nil
	})
	snap.ConnectionCount = gauge("connection_count", func() (float64, error) {
		conns, err := net.ConnectionsWithContext(ctx, "inet")
		if err != nil {
			return 0, err
		}
		return float64(len(conns)), nil
	})

	procs, zombies, err := c.processCounts(ctx)
	if err != nil {
		failed = append(failed, "process_count")
		snap.ProcessCount = models.Unavailable()
		snap.ZombieCount = models.Unavailable()
	} else {
		snap.ProcessCount = models.Value(float64(procs))
		snap.ZombieCount = models.Value(float64(zombies))
	}

	snap.Temperature = c.temperature(ctx)

	if counters, err := net.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		snap.NetBytesSent = models.CounterValue(counters[0].BytesSent)
		snap.NetBytesRecv = models.CounterValue(counters[0].BytesRecv)
	} else {
		failed = append(failed, "net_io")
		snap.NetBytesSent = models.CounterUnavailable()
		snap.NetBytesRecv = models.CounterUnavailable()
	}

	if io, err := disk.IOCountersWithContext(ctx); err == nil && len(io) > 0 {
		var rb, wb, rc, wc uint64
		for _, d := range io {
			rb += d.ReadBytes
			wb += d.WriteBytes
			rc += d.ReadCount
			wc += d.WriteCount
		}
		snap.DiskReadBytes = models.CounterValue(rb)
		snap.DiskWriteBytes = models.CounterValue(wb)
		snap.DiskReadOps = models.CounterValue(rc)
		snap.DiskWriteOps = models.CounterValue(wc)
	} else {
		failed = append(failed, "disk_io")
		snap.DiskReadBytes = models.CounterUnavailable()
		snap.DiskWriteBytes = models.CounterUnavailable()
		snap.DiskReadOps = models.CounterUnavailable()
		snap.DiskWriteOps = models.CounterUnavailable()
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
	}
	if !anyAvailable(snap) {
		return nil, fmt.Errorf("%w: no readings available (%s)", ErrCollectionFailed, strings.Join(failed, ", "))
	}

	return snap, nil
}

func anyAvailable(snap *models.RawSnapshot) bool {
	for _, g := range snap.Gauges() {
		if g.Reading.Available() {
			return true
		}
	}
	for _, c := range snap.Counters() {
		if c.Counter.Available() {
			return true
		}
	}
	return false
}

func (c *HostCollector) hostname(ctx context.Context) string {
	if c.config.Hostname != "" {
		return c.config.Hostname
	}
	if info, err := host.InfoWithContext(ctx); err == nil && info.Hostname != "" {
		return info.Hostname
	}
	name, _ := os.Hostname()
	return name
}

func (c *HostCollector) processCounts(ctx context.Context) (total, zombies int, err error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, p := range procs {
		status, err := p.StatusWithContext(ctx)
		if err != nil {
			continue
		}
		for _, s := range status {
			if s == process.Zombie {
				zombies++
				break
			}
		}
	}
	return len(procs), zombies, nil
}

// temperature reports the hottest CPU sensor, or any sensor when none is
// labelled as a CPU.
func (c *HostCollector) temperature(ctx context.Context) models.Reading {
	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if len(temps) == 0 {
		if err != nil {
			logger.WithField("reading", "temperature").Debugf("Reading unavailable: %v", err)
		}
		return models.Unavailable()
	}

	var hottestCPU, hottest float64
	for _, t := range temps {
		if t.Temperature <= 0 {
			continue
		}
		if t.Temperature > hottest {
			hottest = t.Temperature
		}
		key := strings.ToLower(t.SensorKey)
		if strings.Contains(key, "core") || strings.Contains(key, "cpu") ||
			strings.Contains(key, "package") || strings.Contains(key, "k10temp") {
			if t.Temperature > hottestCPU {
				hottestCPU = t.Temperature
			}
		}
	}

	switch {
	case hottestCPU > 0:
		return models.Value(hottestCPU)
	case hottest > 0:
		return models.Value(hottest)
	default:
		return models.Unavailable()
	}
}

func (c *HostCollector) HealthCheck(ctx context.Context) error {
	if _, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrCollectionFailed, err)
	}
	return nil
}

func (c *HostCollector) Close() error {
	return nil
}
