// Package tui is the live terminal view of one monitored target.
package tui

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/OldStager01/host-sentinel/internal/alerts"
	"github.com/OldStager01/host-sentinel/internal/export"
	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

const defaultRefresh = time.Second

// Source yields the latest summary, or nil before the first tick.
type Source interface {
	Latest() *models.Summary
}

type Config struct {
	Source     Source
	Exporter   *export.Exporter
	Thresholds alerts.Thresholds
	Refresh    time.Duration
	// OnExport is called after every successful export.
	OnExport func(target, format, path string)
}

type tickMsg time.Time

type exportedMsg struct {
	format export.Format
	path   string
	err    error
}

type Model struct {
	cfg       Config
	summary   *models.Summary
	width     int
	status    string
	statusErr bool
}

func New(cfg Config) Model {
	if cfg.Refresh <= 0 {
		cfg.Refresh = defaultRefresh
	}
	return Model{cfg: cfg}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh, m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.Refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) refresh() tea.Msg {
	return tickMsg(time.Now())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.ExportJSON):
			return m, m.export(export.FormatJSON)
		case key.Matches(msg, keys.ExportCSV):
			return m, m.export(export.FormatCSV)
		case key.Matches(msg, keys.Snapshot):
			return m, m.export(export.FormatText)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		if s := m.cfg.Source.Latest(); s != nil {
			m.summary = s
		}
		return m, m.tick()

	case exportedMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
			m.statusErr = true
			break
		}
		m.status = "Exported " + string(msg.format) + " to " + filepath.Base(msg.path)
		m.statusErr = false
		if m.cfg.OnExport != nil && m.summary != nil {
			m.cfg.OnExport(m.summary.Target, string(msg.format), msg.path)
		}
	}

	return m, nil
}

// export writes the summary on screen, not whatever is newest by the time
// the command runs.
func (m Model) export(format export.Format) tea.Cmd {
	summary := m.summary
	exporter := m.cfg.Exporter
	return func() tea.Msg {
		if exporter == nil {
			return exportedMsg{format: format, err: errors.New("exports are not configured")}
		}
		path, err := exporter.Write(summary, format)
		return exportedMsg{format: format, path: path, err: err}
	}
}

// Run blocks until the user quits or ctx is cancelled. Log output is
// discarded while the program owns the terminal.
func Run(ctx context.Context, cfg Config) error {
	logger.Silence()

	p := tea.NewProgram(New(cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
