package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/OldStager01/host-sentinel/internal/alerts"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

const (
	barWidth         = 30
	maxNotifications = 5
	defaultViewWidth = 72
)

func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultViewWidth
	}

	if m.summary == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			styleHeader.Width(width).Render("HOST SENTINEL"),
			styleMuted.Render("Waiting for first sample..."),
			m.renderFooter(),
		)
	}

	s := m.summary
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(width),
		renderHealth(s),
		styleSection.Render("RESOURCES"),
		renderResources(s, m.cfg.Thresholds),
		styleSection.Render("I/O"),
		renderRates(s),
		styleSection.Render("NOTIFICATIONS"),
		renderNotifications(s),
		m.renderFooter(),
	)
}

func (m Model) renderHeader(width int) string {
	s := m.summary
	host := s.Snapshot.Hostname
	if host == "" {
		host = s.Target
	}
	status := lipgloss.NewStyle().Foreground(healthColor(s.HealthStatus)).Render(strings.ToUpper(string(s.HealthStatus)))
	line := fmt.Sprintf("HOST SENTINEL  %s  %s  tick %d  %s", host, status, s.Tick, s.Timestamp.Format("15:04:05"))
	return styleHeader.Width(width).Render(line)
}

func renderHealth(s *models.Summary) string {
	bar := progress.New(
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
		progress.WithSolidFill(string(healthColor(s.HealthStatus))),
	)
	return fmt.Sprintf("%s %s %3d/100", styleLabel.Render("Health"), bar.ViewAs(float64(s.HealthScore)/100), s.HealthScore)
}

func renderResources(s *models.Summary, t alerts.Thresholds) string {
	snap := s.Snapshot
	lines := []string{
		percentLine("CPU", snap.CPUPercent, t.CPU, forecastFor(s, models.MetricCPU)),
		percentLine("RAM", snap.RAMPercent, t.RAM, forecastFor(s, models.MetricRAM)),
		percentLine("Disk", snap.DiskPercent, t.Disk, ""),
		percentLine("Swap", snap.SwapPercent, t.Swap, ""),
		temperatureLine(snap.Temperature, t.Temperature),
		fmt.Sprintf("%s %s  zombies %s  delta %+d", styleLabel.Render("Procs"),
			count(snap.ProcessCount), count(snap.ZombieCount), s.ProcessDelta),
		fmt.Sprintf("%s %s", styleLabel.Render("Conns"), count(snap.ConnectionCount)),
	}
	return strings.Join(lines, "\n")
}

func percentLine(label string, r models.Reading, limit alerts.Limit, forecast string) string {
	v, ok := r.Get()
	if !ok {
		return fmt.Sprintf("%s %s", styleLabel.Render(label), styleMuted.Render("n/a"))
	}

	bar := progress.New(
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
		progress.WithSolidFill(string(levelColor(v, limit.Warn, limit.Crit))),
	)
	line := fmt.Sprintf("%s %s %5.1f%%", styleLabel.Render(label), bar.ViewAs(v/100), v)
	if forecast != "" {
		line += "  " + styleMuted.Render(forecast)
	}
	return line
}

func temperatureLine(r models.Reading, limit alerts.Limit) string {
	v, ok := r.Get()
	if !ok {
		return fmt.Sprintf("%s %s", styleLabel.Render("Temp"), styleMuted.Render("n/a"))
	}
	value := lipgloss.NewStyle().Foreground(levelColor(v, limit.Warn, limit.Crit)).Render(fmt.Sprintf("%.1f°C", v))
	return fmt.Sprintf("%s %s", styleLabel.Render("Temp"), value)
}

func forecastFor(s *models.Summary, metric string) string {
	f, ok := s.Forecasts[metric]
	if !ok || f.Trend == models.TrendUnknown {
		return ""
	}
	return fmt.Sprintf("%s -> %.1f%%", trendArrow(f.Trend), f.Predicted)
}

func trendArrow(t models.Trend) string {
	switch t {
	case models.TrendIncreasing:
		return "↑"
	case models.TrendDecreasing:
		return "↓"
	default:
		return "→"
	}
}

func count(r models.Reading) string {
	v, ok := r.Get()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", v)
}

func renderRates(s *models.Summary) string {
	r := s.Rates
	return strings.Join([]string{
		fmt.Sprintf("%s up %s  down %s", styleLabel.Render("Net"), humanRate(r.NetSent), humanRate(r.NetRecv)),
		fmt.Sprintf("%s read %s  write %s", styleLabel.Render("Disk"), humanRate(r.DiskRead), humanRate(r.DiskWrite)),
		fmt.Sprintf("%s read %.0f/s  write %.0f/s", styleLabel.Render("IOPS"), r.DiskReadOps, r.DiskWriteOps),
	}, "\n")
}

func humanRate(bytesPerSec float64) string {
	const unit = 1024.0
	if bytesPerSec < unit {
		return fmt.Sprintf("%.0f B/s", bytesPerSec)
	}
	div, exp := unit, 0
	for n := bytesPerSec / unit; n >= unit && exp < 4; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB/s", bytesPerSec/div, "KMGTP"[exp])
}

func renderNotifications(s *models.Summary) string {
	active := s.ActiveNotifications
	if len(active) == 0 {
		return styleMuted.Render("No active notifications")
	}
	if len(active) > maxNotifications {
		active = active[len(active)-maxNotifications:]
	}

	lines := make([]string, 0, len(active))
	for i := len(active) - 1; i >= 0; i-- {
		a := active[i]
		lines = append(lines, severityStyle(a.Severity).Render(a.HistoryLine()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	bindings := keys.help()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	footer := styleFooter.Render(strings.Join(parts, " | "))

	if m.status == "" {
		return footer
	}
	status := styleStatus.Render(m.status)
	if m.statusErr {
		status = styleError.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, footer, status)
}
