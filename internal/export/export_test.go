package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/OldStager01/host-sentinel/pkg/models"
)

var exportTime = time.Date(2026, 4, 2, 9, 30, 15, 0, time.UTC)

func sampleSummary(alertCount int) *models.Summary {
	history := make([]models.AlertRecord, 0, alertCount)
	for i := 0; i < alertCount; i++ {
		history = append(history, models.NewAlertRecord(
			"zombies", models.AlertWarning,
			fmt.Sprintf("WARNING: %d Zombie Processes", i+1),
			exportTime.Add(time.Duration(i)*time.Second),
		))
	}

	return &models.Summary{
		Target:       "web-01",
		Timestamp:    exportTime,
		Tick:         42,
		State:        models.StateSteady,
		HealthScore:  85,
		HealthStatus: models.HealthHealthy,
		Snapshot: models.RawSnapshot{
			Hostname:    "web-01",
			CPUPercent:  models.Value(12.34),
			RAMPercent:  models.Value(40),
			DiskPercent: models.Value(55.5),
			Temperature: models.Unavailable(),
		},
		Rates:        models.Rates{NetSent: 100, NetRecv: 50, NetworkThroughput: 150},
		AlertHistory: history,
		History:      map[string][]float64{models.MetricCPU: {10, 11, 12.34}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected Format
		wantErr  bool
	}{
		{in: "json", expected: FormatJSON},
		{in: "CSV", expected: FormatCSV},
		{in: "text", expected: FormatText},
		{in: "txt", expected: FormatText},
		{in: "yml", expected: FormatYAML},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestExporter_FileNames(t *testing.T) {
	dir := t.TempDir()
	e := New(dir).WithClock(func() time.Time { return exportTime })

	tests := []struct {
		format   Format
		expected string
	}{
		{format: FormatJSON, expected: "report_20260402_093015.json"},
		{format: FormatCSV, expected: "data_20260402_093015.csv"},
		{format: FormatText, expected: "snapshot_20260402_093015.txt"},
		{format: FormatYAML, expected: "report_20260402_093015.yaml"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			path, err := e.Write(sampleSummary(1), tt.format)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.expected), path)
			_, err = os.Stat(path)
			assert.NoError(t, err)
		})
	}
	assert.Equal(t, uint64(4), e.Count())
}

func TestExporter_SameSecondDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	e := New(dir).WithClock(func() time.Time { return exportTime })

	first, err := e.Write(sampleSummary(1), FormatCSV)
	require.NoError(t, err)
	second, err := e.Write(sampleSummary(3), FormatCSV)
	require.NoError(t, err)
	third, err := e.Write(sampleSummary(3), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data_20260402_093015.csv"), first)
	assert.Equal(t, filepath.Join(dir, "data_20260402_093015_1.csv"), second)
	assert.Equal(t, filepath.Join(dir, "data_20260402_093015_2.csv"), third)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, uint64(3), e.Count())
}

func TestExporter_WriteAll(t *testing.T) {
	dir := t.TempDir()
	e := New(dir).WithClock(func() time.Time { return exportTime })

	paths, err := e.WriteAll(sampleSummary(2), FormatJSON, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "report_20260402_093015.json"),
		filepath.Join(dir, "data_20260402_093015.csv"),
	}, paths)

	_, err = e.WriteAll(nil, FormatJSON)
	assert.Error(t, err)
	assert.Equal(t, uint64(2), e.Count())
}

func TestExporter_Errors(t *testing.T) {
	e := New(t.TempDir())

	_, err := e.Write(sampleSummary(0), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = e.Write(nil, FormatJSON)
	assert.Error(t, err)
	assert.Zero(t, e.Count())
}

func TestEncode_JSONReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleSummary(25), FormatJSON, exportTime))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "web-01", doc["hostname"])
	assert.Equal(t, float64(85), doc["health_score"])

	alerts := doc["alerts"].([]interface{})
	require.Len(t, alerts, 20)
	assert.Equal(t, "09:30:20 - WARNING: 6 Zombie Processes", alerts[0])
	assert.Equal(t, "09:30:39 - WARNING: 25 Zombie Processes", alerts[19])
	assert.Contains(t, doc, "history")
	assert.Contains(t, doc, "summary")
}

func TestEncode_YAMLMatchesJSONShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleSummary(3), FormatYAML, exportTime))

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "web-01", doc["hostname"])
	assert.Equal(t, 85, doc["health_score"])
	assert.Len(t, doc["alerts"], 3)
	assert.Contains(t, doc, "history")
}

func TestEncode_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleSummary(0), FormatCSV, exportTime))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "Metric,Value", lines[0])
	assert.Equal(t, "cpu_percent,12.34", lines[1])
	assert.Contains(t, lines, "health_score,85")
	assert.Contains(t, lines, "network_throughput,150")
	assert.Contains(t, lines, "hostname,web-01")
	for _, l := range lines {
		assert.False(t, strings.HasPrefix(l, "temperature,"), "unavailable readings are omitted")
	}
}

func TestEncode_TextSnapshot(t *testing.T) {
	var buf bytes.Buffer
	s := sampleSummary(12)
	s.Snapshot.DiskPercent = models.Unavailable()
	require.NoError(t, Encode(&buf, s, FormatText, exportTime))

	out := buf.String()
	assert.Contains(t, out, "Generated: 2026-04-02 09:30:15")
	assert.Contains(t, out, "HEALTH SCORE: 85/100 (healthy)")
	assert.Contains(t, out, "CPU: 12.3% | RAM: 40.0% | DISK: n/a")
	assert.NotContains(t, out, "WARNING: 2 Zombie Processes")
	assert.Contains(t, out, "WARNING: 3 Zombie Processes")
	assert.Contains(t, out, "WARNING: 12 Zombie Processes")
}
