package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A9FD4")
	ColorAccent    = lipgloss.Color("#F4A261")
	ColorSuccess   = lipgloss.Color("#2A9D8F")
	ColorDanger    = lipgloss.Color("#E76F51")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#888888")
	ColorBorder     = lipgloss.Color("#444444")

	ColorChartTotal  = lipgloss.Color("#7D56F4")
	ColorChartOffset = lipgloss.Color("#5A9FD4")
	ColorChartFixed  = lipgloss.Color("#F4A261")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(1, 2)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true).
			Padding(1, 2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Padding(0, 1)
)

// FormatCurrency renders an amount in whole dollars
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(0)
}

// FormatRatio renders a 0..1 split ratio as a percentage
func FormatRatio(ratio decimal.Decimal) string {
	return ratio.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
