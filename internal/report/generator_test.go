package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"fjacquet/planned-spending/internal/logging"
	"fjacquet/planned-spending/internal/planning"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *planning.Report {
	return &planning.Report{
		AsOf:  time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC),
		Lines: []planning.ReportLine{
			{Key: "Rent", AnnualTotal: decimal.RequireFromString("21600"), Members: 1},
			{Key: "Gym", AnnualTotal: decimal.RequireFromString("5300"), Members: 2},
			{Key: "Coffee", AnnualTotal: decimal.RequireFromString("3.5"), Members: 1},
		},
		GrandTotal: decimal.RequireFromString("26903.5"),
	}
}

func TestReportGenerator_Text(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger(), 0)

	out, err := g.GenerateReport(sampleReport(), FormatText)
	require.NoError(t, err)
	expected := "3 spending reminders; annual spending for each:\n" +
		"21600.00 Rent\n" +
		" 5300.00 Gym\n" +
		"    3.50 Coffee\n"
	assert.Equal(t, expected, string(out))
}

func TestReportGenerator_TextWidth(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger(), 10)

	out, err := g.GenerateReport(&planning.Report{Lines: []planning.ReportLine{{Key: "Gym", AnnualTotal: decimal.NewFromInt(50)}}}, "")
	require.NoError(t, err)
	assert.Equal(t, "1 spending reminders; annual spending for each:\n     50.00 Gym\n", string(out))
}

func TestReportGenerator_TextEmpty(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger(), 8)

	out, err := g.GenerateReport(&planning.Report{}, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "0 spending reminders; annual spending for each:\n", string(out))
}

func TestReportGenerator_CSV(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger(), 8)

	out, err := g.GenerateReport(sampleReport(), FormatCSV)
	require.NoError(t, err)
	expected := "rank,description,annual_total,members\n" +
		"1,Rent,21600.00,1\n" +
		"2,Gym,5300.00,2\n" +
		"3,Coffee,3.50,1\n"
	assert.Equal(t, expected, string(out))
}

func TestReportGenerator_JSON(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger(), 8)

	out, err := g.GenerateReport(sampleReport(), "JSON")
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "2025-10-13", doc.AsOf)
	assert.Equal(t, "2026-10-13", doc.Until)
	assert.Equal(t, 3, doc.Count)
	assert.Equal(t, "26903.50", doc.GrandTotal)
	require.Len(t, doc.Lines, 3)
	assert.Equal(t, Line{Rank: 2, Description: "Gym", AnnualTotal: "5300.00", Members: 2}, doc.Lines[1])
}

func TestReportGenerator_YAML(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger(), 8)

	out, err := g.GenerateReport(sampleReport(), FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "grand_total: \"26903.50\"")

	var doc Document
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "Rent", doc.Lines[0].Description)
	assert.Equal(t, "3.50", doc.Lines[2].AnnualTotal)
}

func TestReportGenerator_UnsupportedFormat(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger(), 8)

	_, err := g.GenerateReport(sampleReport(), "xml")
	assert.EqualError(t, err, "unsupported report format: xml")

	var buf bytes.Buffer
	assert.Error(t, g.Render(&buf, sampleReport(), "pdf"))
	assert.Zero(t, buf.Len())
}

func TestReportGenerator_Render(t *testing.T) {
	logger := logging.NewMockLogger()
	g := NewReportGenerator(logger, 8)

	var buf bytes.Buffer
	require.NoError(t, g.Render(&buf, sampleReport(), FormatText))
	assert.Contains(t, buf.String(), " 5300.00 Gym\n")
	assert.True(t, logger.HasEntry("DEBUG", "Report rendered"))
}

func TestReportGenerator_List(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger(), 8)

	out := g.GenerateList([]planning.ReminderSpend{
		{ID: "2", Description: "Gym", Spend: decimal.NewFromInt(50)},
		{ID: "1", Description: "Rent A", Spend: decimal.RequireFromString("1800.5")},
	})
	assert.Equal(t, "Gym spend 50.00\nRent A spend 1800.50\nNumber of spending reminders: 2\n", string(out))
}
