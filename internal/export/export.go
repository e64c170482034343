// Package export writes point-in-time reports of a Summary to disk.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/OldStager01/host-sentinel/pkg/models"
)

var ErrUnknownFormat = errors.New("unknown export format")

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

const (
	reportAlertCount   = 20
	snapshotAlertCount = 10
	fileTimeLayout     = "20060102_150405"
	maxNameSuffix      = 999
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatText, FormatYAML:
		return f, nil
	case "txt", "snapshot":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Format) kind() string {
	switch f {
	case FormatCSV:
		return "data"
	case FormatText:
		return "snapshot"
	default:
		return "report"
	}
}

func (f Format) ext() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Report is the document written by the JSON and YAML exporters.
type Report struct {
	Timestamp   time.Time            `json:"timestamp" yaml:"timestamp"`
	Hostname    string               `json:"hostname" yaml:"hostname"`
	HealthScore int                  `json:"health_score" yaml:"health_score"`
	Metrics     map[string]float64   `json:"metrics" yaml:"metrics"`
	Summary     *models.Summary      `json:"summary" yaml:"summary"`
	Alerts      []string             `json:"alerts" yaml:"alerts"`
	History     map[string][]float64 `json:"history" yaml:"history"`
}

func NewReport(s *models.Summary, now time.Time) Report {
	alerts := make([]string, 0, reportAlertCount)
	for _, a := range s.RecentAlerts(reportAlertCount) {
		alerts = append(alerts, a.HistoryLine())
	}

	return Report{
		Timestamp:   now,
		Hostname:    s.Snapshot.Hostname,
		HealthScore: s.HealthScore,
		Metrics:     Flatten(s),
		Summary:     s,
		Alerts:      alerts,
		History:     s.History,
	}
}

// Exporter writes files named <kind>_<YYYYMMDD_HHMMSS>.<ext> into Dir.
type Exporter struct {
	dir   string
	now   func() time.Time
	count atomic.Uint64
}

func New(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

// WithClock replaces the wall clock used for timestamps and file names.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

func (e *Exporter) Dir() string {
	return e.dir
}

// Count is the number of files written so far.
func (e *Exporter) Count() uint64 {
	return e.count.Load()
}

func (e *Exporter) Write(s *models.Summary, format Format) (string, error) {
	if s == nil {
		return "", errors.New("no summary to export")
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	now := e.now()
	f, path, err := e.create(format, now)
	if err != nil {
		return "", err
	}

	if err := Encode(f, s, format, now); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	e.count.Add(1)
	return path, nil
}

// create opens a new file for format. A second export of the same kind
// within one second gets a numeric suffix instead of replacing the first.
func (e *Exporter) create(format Format, now time.Time) (*os.File, string, error) {
	base := fmt.Sprintf("%s_%s", format.kind(), now.Format(fileTimeLayout))
	for i := 0; i <= maxNameSuffix; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		path := filepath.Join(e.dir, name+"."+format.ext())

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("failed to create export file: %w", err)
		}
	}
	return nil, "", fmt.Errorf("failed to create export file: too many exports named %s", base)
}

// WriteAll writes s once per format and returns the paths written. It stops
// at the first failure.
func (e *Exporter) WriteAll(s *models.Summary, formats ...Format) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path, err := e.Write(s, format)
		if err != nil {
			return paths, fmt.Errorf("%s export: %w", format, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Encode renders s in the given format.
func Encode(w io.Writer, s *models.Summary, format Format, now time.Time) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewReport(s, now))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewReport(s, now)); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, s)
	case FormatText:
		return writeText(w, s, now)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeCSV(w io.Writer, s *models.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}

	rows := Flatten(s)
	for _, key := range flatKeys {
		v, ok := rows[key]
		if !ok {
			continue
		}
		if err := cw.Write([]string{key, strconv.FormatFloat(v, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"hostname", s.Snapshot.Hostname}); err != nil {
		return err
	}
	if err := cw.Write([]string{"health_status", string(s.HealthStatus)}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func writeText(w io.Writer, s *models.Summary, now time.Time) error {
	rule := strings.Repeat("=", 80)

	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "HOST SENTINEL - SYSTEM SNAPSHOT")
	fmt.Fprintf(&b, "Host: %s\n", s.Snapshot.Hostname)
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "HEALTH SCORE: %d/100 (%s)\n\n", s.HealthScore, s.HealthStatus)
	fmt.Fprintf(&b, "CPU: %s | RAM: %s | DISK: %s\n\n",
		percent(s.Snapshot.CPUPercent), percent(s.Snapshot.RAMPercent), percent(s.Snapshot.DiskPercent))

	fmt.Fprintln(&b, "RECENT ALERTS:")
	for _, a := range s.RecentAlerts(snapshotAlertCount) {
		fmt.Fprintf(&b, "  %s\n", a.HistoryLine())
	}
	fmt.Fprintf(&b, "\n%s\n", rule)

	_, err := io.WriteString(w, b.String())
	return err
}

func percent(r models.Reading) string {
	v, ok := r.Get()
	if !ok {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
