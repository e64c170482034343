package models

import (
	"math"
	"time"
)

type ReadingState int

const (
	// ReadingAbsent is the zero value: the collector never filled the field.
	ReadingAbsent ReadingState = iota
	ReadingOK
	ReadingUnavailable
)

func (s ReadingState) String() string {
	switch s {
	case ReadingOK:
		return "ok"
	case ReadingUnavailable:
		return "unavailable"
	default:
		return "absent"
	}
}

// Reading is a scalar gauge that can be explicitly marked unavailable,
// e.g. a host without a temperature sensor.
type Reading struct {
	Value float64      `json:"value"`
	State ReadingState `json:"state"`
}

func Value(v float64) Reading {
	return Reading{Value: v, State: ReadingOK}
}

func Unavailable() Reading {
	return Reading{State: ReadingUnavailable}
}

func (r Reading) Available() bool {
	return r.State == ReadingOK
}

func (r Reading) Finite() bool {
	return !math.IsNaN(r.Value) && !math.IsInf(r.Value, 0)
}

// Get returns the value and whether it is usable.
func (r Reading) Get() (float64, bool) {
	if r.State != ReadingOK {
		return 0, false
	}
	return r.Value, true
}

// Counter is a monotonic cumulative OS total (bytes since boot, ops since boot).
type Counter struct {
	Total uint64       `json:"total"`
	State ReadingState `json:"state"`
}

func CounterValue(total uint64) Counter {
	return Counter{Total: total, State: ReadingOK}
}

func CounterUnavailable() Counter {
	return Counter{State: ReadingUnavailable}
}

func (c Counter) Available() bool {
	return c.State == ReadingOK
}

// RawSnapshot is one point-in-time reading of every tracked metric,
// produced once per tick by a collector.
type RawSnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Hostname  string    `json:"hostname,omitempty"`

	CPUPercent      Reading `json:"cpu_percent"`
	RAMPercent      Reading `json:"ram_percent"`
	DiskPercent     Reading `json:"disk_percent"`
	SwapPercent     Reading `json:"swap_percent"`
	Temperature     Reading `json:"temperature"`
	ProcessCount    Reading `json:"process_count"`
	ZombieCount     Reading `json:"zombie_count"`
	ConnectionCount Reading `json:"connection_count"`

	NetBytesSent   Counter `json:"net_bytes_sent"`
	NetBytesRecv   Counter `json:"net_bytes_recv"`
	DiskReadBytes  Counter `json:"disk_read_bytes"`
	DiskWriteBytes Counter `json:"disk_write_bytes"`
	DiskReadOps    Counter `json:"disk_read_ops"`
	DiskWriteOps   Counter `json:"disk_write_ops"`
}

// NamedReading pairs a gauge with its field name.
type NamedReading struct {
	Name     string
	Reading  Reading
	Optional bool
}

type NamedCounter struct {
	Name    string
	Counter Counter
}

func (s *RawSnapshot) Gauges() []NamedReading {
	return []NamedReading{
		{Name: "cpu_percent", Reading: s.CPUPercent},
		{Name: "ram_percent", Reading: s.RAMPercent},
		{Name: "disk_percent", Reading: s.DiskPercent},
		{Name: "swap_percent", Reading: s.SwapPercent},
		{Name: "temperature", Reading: s.Temperature, Optional: true},
		{Name: "process_count", Reading: s.ProcessCount},
		{Name: "zombie_count", Reading: s.ZombieCount},
		{Name: "connection_count", Reading: s.ConnectionCount},
	}
}

func (s *RawSnapshot) Counters() []NamedCounter {
	return []NamedCounter{
		{Name: CounterNetSent, Counter: s.NetBytesSent},
		{Name: CounterNetRecv, Counter: s.NetBytesRecv},
		{Name: CounterDiskRead, Counter: s.DiskReadBytes},
		{Name: CounterDiskWrite, Counter: s.DiskWriteBytes},
		{Name: CounterDiskReadOps, Counter: s.DiskReadOps},
		{Name: CounterDiskWriteOps, Counter: s.DiskWriteOps},
	}
}

const (
	CounterNetSent      = "net_bytes_sent"
	CounterNetRecv      = "net_bytes_recv"
	CounterDiskRead     = "disk_read_bytes"
	CounterDiskWrite    = "disk_write_bytes"
	CounterDiskReadOps  = "disk_read_ops"
	CounterDiskWriteOps = "disk_write_ops"
)
