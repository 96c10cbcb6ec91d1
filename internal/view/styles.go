package view

import (
	"github.com/charmbracelet/lipgloss"

	"gameready/internal/analysis"
)

// Colors
var (
	primaryColor   = lipgloss.Color("#0D6EFD") // Blue
	secondaryColor = lipgloss.Color("#10B981") // Green
	warningColor   = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	textColor      = lipgloss.Color("#F9FAFB") // Light gray
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(primaryColor).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	metricLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Width(20)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)

	tableRowStyle = lipgloss.NewStyle()

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	successStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	progressFullStyle = lipgloss.NewStyle().
				Foreground(secondaryColor)

	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(mutedColor)
)

// rangeStyle colors a score by where it falls against its target band
func rangeStyle(rs analysis.RangeStatus) lipgloss.Style {
	switch rs {
	case analysis.Above:
		return successStyle
	case analysis.Below:
		return errorStyle
	default:
		return metricValueStyle
	}
}

// statusStyle colors a status label
func statusStyle(s analysis.StatusLabel) lipgloss.Style {
	switch s {
	case analysis.StatusAtRisk:
		return errorStyle
	case analysis.StatusRest, analysis.StatusNonCompliant:
		return warningStyle
	default:
		return mutedStyle
	}
}

// Title renders a section title
func Title(s string) string {
	return titleStyle.Render(s)
}

// Error renders an error line
func Error(err error) string {
	return errorStyle.Render("Error: " + err.Error())
}

// Success renders a confirmation line
func Success(s string) string {
	return successStyle.Render(s)
}

// RenderMetric renders a label and value pair
func RenderMetric(label, value string) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		metricLabelStyle.Render(label),
		metricValueStyle.Render(value),
	)
}

// RenderProgressBar renders an ASCII progress bar. percent is 0-1.
func RenderProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))

	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += progressFullStyle.Render("█")
		} else {
			bar += progressEmptyStyle.Render("░")
		}
	}
	return bar
}

func card(title string, lines ...string) string {
	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{cardTitleStyle.Render(title)}, lines...)...)
	return cardStyle.Render(content)
}

func truncateName(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
