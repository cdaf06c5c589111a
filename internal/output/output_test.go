package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/homeloan/internal/config"
	"github.com/rgehrsitz/homeloan/internal/split"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildSweepReport(t *testing.T) *Report {
	t.Helper()
	cfg := config.CreateExampleConfiguration()
	opts := split.DefaultSweepOptions()
	opts.Points = 11

	result, err := split.NewSplitOptimizer(opts).Sweep(context.Background(), split.RequestFromConfiguration(cfg))
	require.NoError(t, err)

	return &Report{
		Title:       "Split optimization",
		GeneratedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Purchase:    NewPurchaseSummary(cfg.Purchase),
		Sweep:       result,
	}
}

func buildCompositionReport(t *testing.T) *Report {
	t.Helper()
	cfg := config.CreateExampleConfiguration()
	req := split.RequestFromConfiguration(cfg).WithRatio(decimal.RequireFromString("0.15"))

	composition, err := split.NewPhaseComposer().Compose(context.Background(), req)
	require.NoError(t, err)

	return &Report{Title: "Single split", Composition: NewCompositionSection(composition)}
}

func buildScheduleReport(t *testing.T) *Report {
	t.Helper()
	cfg := config.CreateExampleConfiguration()

	account, err := split.NewPhaseComposer().ComposeOffsetOnly(split.RequestFromConfiguration(cfg))
	require.NoError(t, err)

	return &Report{
		Title:    "Offset loan",
		Purchase: NewPurchaseSummary(cfg.Purchase),
		Schedule: NewScheduleSection("Whole loan with offset", account),
	}
}

func TestFormatterFunc(t *testing.T) {
	called := false
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *Report) ([]byte, error) {
			called = true
			return []byte("test output"), nil
		},
	}

	out, err := formatter.Format(&Report{})
	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	formatter := FormatterFunc{
		ID: "test-formatter",
		F:  func(report *Report) ([]byte, error) { return []byte("test output content"), nil },
	}

	filename, err := WriteFormatted(formatter, &Report{}, "txt")
	require.NoError(t, err)
	assert.Contains(t, filename, "homeloan_report_")
	assert.Contains(t, filename, ".txt")

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F:  func(report *Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") },
	}

	filename, err := WriteFormatted(formatter, &Report{}, "txt")
	assert.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestFormatterRegistry(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "json"}, AvailableFormatterNames())
	assert.Equal(t, []string{"table", "text"}, AvailableFormatAliases())

	assert.Equal(t, "console", GetFormatterByName("console").Name())
	assert.Equal(t, "console", GetFormatterByName("text").Name())
	assert.Equal(t, "json", GetFormatterByName("json").Name())
	assert.Nil(t, GetFormatterByName("non-existent"))
}

func TestFormatters_EmptyReport(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		_, err := GetFormatterByName(name).Format(&Report{Title: "nothing"})
		assert.ErrorIs(t, err, ErrEmptyReport, name)
	}
	_, err := BuildXLSX(nil)
	assert.ErrorIs(t, err, ErrEmptyReport)
	_, err = BuildPDF(&Report{})
	assert.ErrorIs(t, err, ErrEmptyReport)
}

func TestConsoleFormatter_Sweep(t *testing.T) {
	report := buildSweepReport(t)

	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "SPLIT OPTIMIZATION")
	assert.Contains(t, content, "Gross price:         $1042000.00")
	assert.Contains(t, content, "Loan amount:         $800000.00")
	assert.Contains(t, content, "Offset starting:     $48000.00")
	assert.Contains(t, content, "Best offset split:   "+FormatRatio(report.Sweep.Best.Ratio))
	assert.Contains(t, content, "Total interest+fees: "+FormatCurrency(report.Sweep.Best.TotalCost))
	assert.Contains(t, content, "unattainable")
	assert.Contains(t, content, "11 points, 10 attainable")
}

func TestConsoleFormatter_CompositionAndSchedule(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildCompositionReport(t))
	require.NoError(t, err)
	assert.Contains(t, string(out), "SPLIT 15.00% OFFSET")
	assert.Contains(t, string(out), "offset tranche")
	assert.Contains(t, string(out), "continuation")

	report := buildScheduleReport(t)
	out, err = ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "WHOLE LOAN WITH OFFSET")
	assert.Contains(t, string(out), "Paid off after:")
	assert.Contains(t, string(out), "(monthly)")
}

func TestCSVFormatter(t *testing.T) {
	report := buildSweepReport(t)
	out, err := CSVFormatter{}.Format(report)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 12)
	assert.Equal(t, "Ratio", records[0][0])
	assert.Equal(t, "0.000000", records[1][0])
	assert.Equal(t, "false", records[1][4])
	assert.Equal(t, "1.000000", records[11][0])
	assert.Equal(t, "true", records[report.Sweep.BestIndex+1][7])

	out, err = CSVFormatter{}.Format(buildScheduleReport(t))
	require.NoError(t, err)
	records, err = csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Period", records[0][0])
	assert.Equal(t, "0", records[1][0])

	out, err = CSVFormatter{}.Format(buildCompositionReport(t))
	require.NoError(t, err)
	records, err = csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "fixed tranche", records[2][0])
	assert.Equal(t, "plain", records[2][1])
}

func TestJSONFormatter(t *testing.T) {
	report := buildSweepReport(t)

	pretty, err := JSONFormatter{Pretty: true}.Format(report)
	require.NoError(t, err)
	compact, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Greater(t, len(pretty), len(compact))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(compact, &decoded))
	assert.Equal(t, "Split optimization", decoded["title"])

	sweep := decoded["sweep"].(map[string]any)
	assert.Len(t, sweep["scenarios"], 11)
	best := sweep["best"].(map[string]any)
	assert.Equal(t, report.Sweep.Best.TotalCost.String(), best["totalCost"])

	request := sweep["request"].(map[string]any)
	assert.Equal(t, "monthly", request["frequency"])
	assert.NotContains(t, decoded, "schedule")
}

func TestBuildXLSX(t *testing.T) {
	report := buildSweepReport(t)
	report.Schedule = buildScheduleReport(t).Schedule

	data, err := BuildXLSX(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, curveSheet, scheduleSheet}, f.GetSheetList())

	title, err := f.GetCellValue(summarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Split optimization", title)

	header, err := f.GetCellValue(curveSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Ratio", header)

	curveRows, err := f.GetRows(curveSheet)
	require.NoError(t, err)
	assert.Len(t, curveRows, 12)

	scheduleRows, err := f.GetRows(scheduleSheet)
	require.NoError(t, err)
	assert.Len(t, scheduleRows, len(report.Schedule.Result.History)+1)
}

func TestBuildXLSX_Composition(t *testing.T) {
	data, err := BuildXLSX(buildCompositionReport(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	phase, err := f.GetCellValue(phasesSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "continuation", phase)
}

func TestBuildPDF(t *testing.T) {
	for name, report := range map[string]*Report{
		"sweep":       buildSweepReport(t),
		"composition": buildCompositionReport(t),
		"schedule":    buildScheduleReport(t),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := BuildPDF(report)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "should be a PDF document")
		})
	}
}

func TestExport(t *testing.T) {
	report := buildSweepReport(t)
	dir := t.TempDir()

	for _, name := range []string{"report.xlsx", "report.pdf", "report.csv", "report.json", "report.TXT"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Export(report, path), name)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), name)
	}

	err := Export(report, filepath.Join(dir, "report.doc"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")

	err = Export(&Report{}, filepath.Join(dir, "empty.pdf"))
	assert.ErrorIs(t, err, ErrEmptyReport)
}

func TestScheduleSection_YearEnds(t *testing.T) {
	section := buildScheduleReport(t).Schedule
	rows := section.YearEnds()
	require.NotEmpty(t, rows)

	for _, r := range rows[:len(rows)-1] {
		assert.Equal(t, 0, (r.Period+1)%12)
	}
	assert.Equal(t, section.Result.Final(), rows[len(rows)-1])
	assert.True(t, section.PaidOff)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1234.50", FormatCurrency(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "2.54%", FormatPercentage(decimal.RequireFromString("2.54")))
	assert.Equal(t, "13.13%", FormatRatio(decimal.NewFromInt(13).Div(decimal.NewFromInt(99))))
}
