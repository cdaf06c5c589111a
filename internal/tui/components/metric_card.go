package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/homeloan/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays a single figure with a label and an optional comparison line
type MetricCard struct {
	Label       string
	Value       string
	Delta       *Delta
	Description string
	Width       int
}

// Delta is the difference of a cost against a reference cost
type Delta struct {
	Amount decimal.Decimal
	Versus string
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 30,
	}
}

// WithDelta compares the card's cost against a reference. Positive amounts cost more.
func (m *MetricCard) WithDelta(amount decimal.Decimal, versus string) *MetricCard {
	m.Delta = &Delta{Amount: amount, Versus: versus}
	return m
}

// WithDescription adds a description/subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// deltaLine renders "+$1234 vs best" in red when worse, green when not
func (m *MetricCard) deltaLine() string {
	if m.Delta == nil {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	sign := ""
	switch {
	case m.Delta.Amount.IsPositive():
		style = lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
		sign = "+"
	case m.Delta.Amount.IsNegative():
		sign = "-"
	}
	return style.Render(sign + tuistyles.FormatCurrency(m.Delta.Amount.Abs()) + " vs " + m.Delta.Versus)
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if d := m.deltaLine(); d != "" {
		content += "\n" + d
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns a one-line version without border
func (m *MetricCard) RenderCompact() string {
	line := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if d := m.deltaLine(); d != "" {
		line += " " + d
	}
	return line
}

// MetricColumn stacks cards vertically
func MetricColumn(cards []*MetricCard) string {
	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		rendered = append(rendered, card.Render())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
