package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/OldStager01/host-sentinel/pkg/models"
)

const (
	colorPrimary = lipgloss.Color("#06B6D4")
	colorSuccess = lipgloss.Color("#22C55E")
	colorWarning = lipgloss.Color("#EAB308")
	colorDanger  = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

var (
	styleHeader  lipgloss.Style
	styleSection lipgloss.Style
	styleLabel   lipgloss.Style
	styleMuted   lipgloss.Style
	styleFooter  lipgloss.Style
	styleStatus  lipgloss.Style
	styleError   lipgloss.Style
)

func init() {
	styleHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(colorMuted)

	styleSection = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		MarginTop(1)

	styleLabel = lipgloss.NewStyle().Foreground(colorMuted).Width(10)
	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)
	styleFooter = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
	styleStatus = lipgloss.NewStyle().Foreground(colorSuccess)
	styleError = lipgloss.NewStyle().Foreground(colorDanger)
}

func healthColor(status models.HealthStatus) lipgloss.Color {
	switch status {
	case models.HealthHealthy:
		return colorSuccess
	case models.HealthDegraded:
		return colorWarning
	default:
		return colorDanger
	}
}

func severityStyle(s models.AlertSeverity) lipgloss.Style {
	if s == models.AlertCritical {
		return lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(colorWarning)
}

// levelColor colors a percentage reading against its warn and crit limits.
func levelColor(v, warn, crit float64) lipgloss.Color {
	switch {
	case crit > 0 && v >= crit:
		return colorDanger
	case warn > 0 && v >= warn:
		return colorWarning
	default:
		return colorSuccess
	}
}
