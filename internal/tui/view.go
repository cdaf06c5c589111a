package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/homeloan/internal/tui/components"
	"github.com/rgehrsitz/homeloan/internal/tui/tuistyles"
)

const sidePanelWidth = 34

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.loading:
		content = BorderStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), m.loadingMessage))
	case m.err != nil:
		content = ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress r to reload or q to quit.", m.err.Error()))
	case m.result == nil:
		content = BorderStyle.Render("No sweep results yet.")
	default:
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderChart(), " ", m.renderSidePanel())
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(m.height-4, 0)
	container := lipgloss.NewStyle().Height(contentHeight).Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		container,
		StatusBarStyle.Width(m.width).Render(m.help.View(m.keys)),
	)
}

// renderTitleBar renders the application title and the loaded file
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Home Loan Split Explorer")

	subtitle := m.configPath
	if m.result != nil {
		mode := "grid"
		if m.refine {
			mode = "grid + refine"
		}
		subtitle = fmt.Sprintf("%s • %d ratios (%s) • %d attainable", m.configPath, len(m.result.Scenarios), mode, m.result.Attainable)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(subtitle))
}

// renderChart plots the three cost curves with the cursor marked
func (m Model) renderChart() string {
	n := len(m.result.Scenarios)
	total := make([]float64, n)
	offset := make([]float64, n)
	fixed := make([]float64, n)
	labels := make([]string, n)

	for i, s := range m.result.Scenarios {
		labels[i] = fmt.Sprintf("%.0f%%", s.RatioPercent().InexactFloat64())
		if !s.Attainable {
			total[i], offset[i], fixed[i] = math.NaN(), math.NaN(), math.NaN()
			continue
		}
		total[i] = s.TotalCost.InexactFloat64()
		offset[i] = s.OffsetCost.InexactFloat64()
		fixed[i] = s.FixedCost.InexactFloat64()
	}

	width := max(m.width-sidePanelWidth-6, 40)
	height := max(m.height-14, 8)

	chart := components.NewASCIIChart("Interest + fees by offset split").
		AddSeries("total", total, tuistyles.ColorChartTotal).
		AddSeries("offset tranche", offset, tuistyles.ColorChartOffset).
		AddSeries("fixed + continuation", fixed, tuistyles.ColorChartFixed).
		WithLabels(labels).
		WithSize(width, height).
		WithMarker(m.cursor).
		WithXAxisLabel("share of the loan on the offset tranche")

	return ActiveBorderStyle.Render(chart.Render())
}

// renderSidePanel shows the costs at the cursor next to the optimum
func (m Model) renderSidePanel() string {
	s, _ := m.Selected()
	best := m.result.Best
	loan := m.result.Request.LoanAmount
	offsetAmount := loan.Mul(s.Ratio)

	cards := []*components.MetricCard{
		components.NewMetricCard("Cursor split", FormatRatio(s.Ratio)).
			WithDescription(fmt.Sprintf("offset %s / fixed %s", FormatCurrency(offsetAmount), FormatCurrency(loan.Sub(offsetAmount)))),
	}

	if s.Attainable {
		cards = append(cards,
			components.NewMetricCard("Total interest + fees", FormatCurrency(s.TotalCost)).
				WithDelta(s.TotalCost.Sub(best.TotalCost), "best"),
			components.NewMetricCard("Offset tranche", FormatCurrency(s.OffsetCost)),
			components.NewMetricCard("Fixed + continuation", FormatCurrency(s.FixedCost)).
				WithDescription(fmt.Sprintf("zero interest at period %d", s.ZeroInterestPeriod)),
		)
	} else {
		cards = append(cards, components.NewMetricCard("Total interest + fees", "unattainable").WithDescription(s.Reason))
	}

	bestCard := components.NewMetricCard("Best split", HighlightStyle.Render(FormatRatio(best.Ratio))).
		WithDescription(FormatCurrency(best.TotalCost))
	cards = append(cards, bestCard)

	if r := m.result.Refined; r != nil {
		cards = append(cards, components.NewMetricCard("Refined split", FormatRatio(r.Ratio)).
			WithDelta(r.TotalCost.Sub(best.TotalCost), "grid best"))
	}

	for _, c := range cards {
		c.WithWidth(sidePanelWidth)
	}
	return components.MetricColumn(cards)
}
