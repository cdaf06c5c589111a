package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/homeloan/internal/tui/tuistyles"
)

// yAxisWidth is the space reserved for Y-axis values
const yAxisWidth = 10

// DataSeries is a single line in a chart. NaN points are gaps.
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws one or more cost curves over a shared X axis
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string

	// Marker is the data index drawn as a vertical cursor line, -1 for none
	Marker int
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     15,
		ShowLegend: true,
		Marker:     -1,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{
		Name:   name,
		Points: points,
		Color:  color,
	})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithMarker sets the cursor position
func (c *ASCIIChart) WithMarker(index int) *ASCIIChart {
	c.Marker = index
	return c
}

// WithXAxisLabel sets the X-axis caption
func (c *ASCIIChart) WithXAxisLabel(label string) *ASCIIChart {
	c.XAxisLabel = label
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	minVal, maxVal, ok := c.bounds()
	if !ok {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		content.WriteString("\n\n")
	}

	content.WriteString(c.renderGrid(minVal, maxVal))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(c.XAxisLabel))
	}

	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n\n")
		content.WriteString(c.renderLegend())
	}

	return content.String()
}

// bounds finds the padded min and max over every finite point
func (c *ASCIIChart) bounds() (float64, float64, bool) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, series := range c.Series {
		for _, p := range series.Points {
			if math.IsNaN(p) || math.IsInf(p, 0) {
				continue
			}
			minVal = math.Min(minVal, p)
			maxVal = math.Max(maxVal, p)
		}
	}
	if math.IsInf(minVal, 1) {
		return 0, 0, false
	}

	padding := (maxVal - minVal) * 0.1
	if padding == 0 {
		padding = math.Max(math.Abs(maxVal)*0.1, 1)
	}
	return minVal - padding, maxVal + padding, true
}

func (c *ASCIIChart) chartWidth() int {
	return max(c.Width-yAxisWidth-3, 2)
}

// column maps a data index onto a grid column
func (c *ASCIIChart) column(i, n int) int {
	if n <= 1 {
		return 0
	}
	return int(float64(i) / float64(n-1) * float64(c.chartWidth()-1))
}

func (c *ASCIIChart) row(value, minVal, maxVal float64) int {
	return c.Height - 1 - int((value-minVal)/(maxVal-minVal)*float64(c.Height-1))
}

// renderGrid renders the chart grid with data points
func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	width := c.chartWidth()
	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for seriesIdx, series := range c.Series {
		char := seriesChar(seriesIdx)
		n := len(series.Points)
		prev := -1
		for i, p := range series.Points {
			if math.IsNaN(p) {
				prev = -1
				continue
			}
			x, y := c.column(i, n), c.row(p, minVal, maxVal)
			if prev >= 0 {
				px, py := c.column(prev, n), c.row(series.Points[prev], minVal, maxVal)
				drawLine(grid, px, py, x, y, char)
			}
			if y >= 0 && y < c.Height {
				grid[y][x] = char
			}
			prev = i
		}
	}

	markerCol := -1
	if len(c.Series) > 0 && c.Marker >= 0 && c.Marker < len(c.Series[0].Points) {
		markerCol = c.column(c.Marker, len(c.Series[0].Points))
		for y := range grid {
			if grid[y][markerCol] == ' ' {
				grid[y][markerCol] = '┊'
			}
		}
	}

	yAxisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	valueRange := maxVal - minVal

	var output strings.Builder
	for i, row := range grid {
		yValue := maxVal - (float64(i)/float64(c.Height-1))*valueRange
		output.WriteString(yAxisStyle.Render(formatChartValue(yValue)))
		output.WriteString(" │ ")
		output.WriteString(string(row))
		output.WriteString("\n")
	}

	output.WriteString(strings.Repeat(" ", yAxisWidth))
	output.WriteString(" └")
	output.WriteString(strings.Repeat("─", width+1))
	output.WriteString("\n")

	if len(c.Labels) > 0 {
		output.WriteString(c.renderXAxisLabels(width))
	}
	return output.String()
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine connects two points using Bresenham's algorithm
func drawLine(grid [][]rune, x0, y0, x1, y1 int, char rune) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy
	x, y := x0, y0
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = char
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderXAxisLabels places the first, last and evenly spaced labels under the axis
func (c *ASCIIChart) renderXAxisLabels(width int) string {
	const maxLabels = 5

	line := []rune(strings.Repeat(" ", width+yAxisWidth+3))
	n := len(c.Labels)
	step := max(n/(maxLabels-1), 1)
	for i := 0; i < n; i += step {
		place(line, yAxisWidth+3+c.column(i, n), c.Labels[i])
	}
	if (n-1)%step != 0 {
		place(line, yAxisWidth+3+c.column(n-1, n), c.Labels[n-1])
	}

	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(line), " "))
}

// place writes label at col, shifted left to stay on the line
func place(line []rune, col int, label string) {
	runes := []rune(label)
	if col+len(runes) > len(line) {
		col = len(line) - len(runes)
	}
	if col < 0 {
		col = 0
	}
	copy(line[col:], runes)
}

// renderLegend renders the chart legend
func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, series := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(series.Color).Render(string(seriesChar(i)))
		name := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(series.Name)
		items = append(items, fmt.Sprintf("%s %s", symbol, name))
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Legend: " + strings.Join(items, " • "))
}

// formatChartValue formats a value for display on Y-axis
func formatChartValue(value float64) string {
	if math.Abs(value) >= 1000000 {
		return fmt.Sprintf("$%.1fM", value/1000000)
	} else if math.Abs(value) >= 1000 {
		return fmt.Sprintf("$%.0fK", value/1000)
	}
	return fmt.Sprintf("$%.0f", value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
