package components

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatChartValue(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{142704.05, "$143K"},
		{2500000, "$2.5M"},
		{-1500, "$-2K"},
		{950, "$950"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatChartValue(tt.value))
	}
}

func TestASCIIChart_NoData(t *testing.T) {
	assert.Contains(t, NewASCIIChart("empty").Render(), "No data to display")

	gaps := NewASCIIChart("gaps").AddSeries("total", []float64{math.NaN(), math.NaN()}, "")
	assert.Contains(t, gaps.Render(), "No data to display")
}

func TestASCIIChart_Render(t *testing.T) {
	chart := NewASCIIChart("Costs").
		AddSeries("total", []float64{math.NaN(), 3, 2, 1, 2, 3}, "").
		AddSeries("offset", []float64{math.NaN(), 1, 1, 1, 1, 1}, "").
		WithLabels([]string{"0%", "20%", "40%", "60%", "80%", "100%"}).
		WithSize(40, 8).
		WithMarker(3).
		WithXAxisLabel("split")

	out := chart.Render()
	assert.Contains(t, out, "Costs")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "■")
	assert.Contains(t, out, "┊")
	assert.Contains(t, out, "0%")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "Legend:")
	assert.Contains(t, out, "split")

	// 8 grid rows, the axis and the label line
	lines := strings.Split(out, "\n")
	axis := 0
	for _, l := range lines {
		if strings.Contains(l, "└") {
			axis++
		}
	}
	assert.Equal(t, 1, axis)
}

func TestASCIIChart_MarkerOutOfRange(t *testing.T) {
	chart := NewASCIIChart("").AddSeries("total", []float64{1, 2}, "").WithMarker(5)
	assert.NotContains(t, chart.Render(), "┊")
}

func TestDrawLine(t *testing.T) {
	grid := [][]rune{[]rune("     "), []rune("     "), []rune("     ")}
	drawLine(grid, 0, 0, 4, 2, '*')
	assert.Equal(t, '*', grid[0][0])
	assert.Equal(t, '*', grid[2][4])
	assert.Equal(t, '*', grid[1][2])
}

func TestMetricCard(t *testing.T) {
	worse := NewMetricCard("Total", "$143154").WithDelta(decimal.NewFromInt(450), "best")
	assert.Contains(t, worse.RenderCompact(), "Total: $143154")
	assert.Contains(t, worse.RenderCompact(), "+$450 vs best")

	better := NewMetricCard("Refined", "13.5%").WithDelta(decimal.RequireFromString("-449.87"), "grid best")
	assert.Contains(t, better.RenderCompact(), "-$450 vs grid best")

	card := NewMetricCard("Best split", "13.1%").WithDescription("$143154").WithWidth(34).Render()
	assert.Contains(t, card, "Best split")
	assert.Contains(t, card, "13.1%")
	assert.Contains(t, card, "$143154")

	column := MetricColumn([]*MetricCard{NewMetricCard("a", "1"), NewMetricCard("b", "2")})
	assert.Contains(t, column, "a")
	assert.Contains(t, column, "b")
}
