// Package report renders journal figures for the terminal and as org-mode
// documents.
package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rustyeddy/tradezilla/journal"
	"github.com/rustyeddy/tradezilla/metrics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Background(lipgloss.Color("#1F2937")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#374151")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Width(16)

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	highStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)
)

// signed colors s by the sign of x.
func signed(x float64, s string) string {
	switch {
	case x > 0:
		return winStyle.Render(s)
	case x < 0:
		return lossStyle.Render(s)
	default:
		return mutedStyle.Render(s)
	}
}

func money(x float64) string {
	return signed(x, journal.FormatMoney(x))
}

func statusText(s journal.Status) string {
	switch s {
	case journal.Win:
		return winStyle.Render(string(s))
	case journal.Loss:
		return lossStyle.Render(string(s))
	default:
		return mutedStyle.Render(string(s))
	}
}

func dayStyle(s metrics.DayStatus) lipgloss.Style {
	switch s {
	case metrics.DayWin:
		return winStyle
	case metrics.DayLoss:
		return lossStyle
	case metrics.DayBreakeven:
		return highStyle
	default:
		return mutedStyle
	}
}
