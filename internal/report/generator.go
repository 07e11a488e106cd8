// Package report renders planned spending reports.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/planned-spending/internal/common"
	"fjacquet/planned-spending/internal/currencyutils"
	"fjacquet/planned-spending/internal/dateutils"
	"fjacquet/planned-spending/internal/logging"
	"fjacquet/planned-spending/internal/planning"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultWidth is the width of the total column in text reports.
const DefaultWidth = 8

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatCSV, FormatJSON, FormatYAML}

// Line is one rendered report line.
type Line struct {
	Rank        int    `csv:"rank" json:"rank" yaml:"rank"`
	Description string `csv:"description" json:"description" yaml:"description"`
	AnnualTotal string `csv:"annual_total" json:"annual_total" yaml:"annual_total"`
	Members     int    `csv:"members" json:"members" yaml:"members"`
}

// Document is the structured form of a report, used by the json and yaml formats.
type Document struct {
	AsOf       string `json:"as_of" yaml:"as_of"`
	Until      string `json:"until" yaml:"until"`
	Count      int    `json:"count" yaml:"count"`
	GrandTotal string `json:"grand_total" yaml:"grand_total"`
	Lines      []Line `json:"lines" yaml:"lines"`
}

// ReportGenerator renders planning reports in various formats.
type ReportGenerator struct {
	logger logging.Logger
	width  int
}

// NewReportGenerator creates a generator. A non-positive width falls back to DefaultWidth.
func NewReportGenerator(logger logging.Logger, width int) *ReportGenerator {
	if width <= 0 {
		width = DefaultWidth
	}
	return &ReportGenerator{logger: logger, width: width}
}

// GenerateReport renders report in format. It returns an error if the format is unsupported.
func (g *ReportGenerator) GenerateReport(report *planning.Report, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return g.generateTextReport(report), nil
	case FormatCSV:
		return g.generateCSVReport(report)
	case FormatJSON:
		return g.generateJSONReport(report)
	case FormatYAML:
		return g.generateYAMLReport(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// Render writes the report in format to w.
func (g *ReportGenerator) Render(w io.Writer, report *planning.Report, format string) error {
	out, err := g.GenerateReport(report, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	g.logger.Debug("Report rendered",
		logging.F(logging.FieldFormat, format),
		logging.F(logging.FieldCount, len(report.Lines)))
	return nil
}

// GenerateList renders the ungrouped per-reminder view.
func (g *ReportGenerator) GenerateList(items []planning.ReminderSpend) []byte {
	var buf bytes.Buffer
	for _, item := range items {
		fmt.Fprintf(&buf, "%s spend %s\n", item.Description, currencyutils.FormatAmount(item.Spend))
	}
	fmt.Fprintf(&buf, "Number of spending reminders: %d\n", len(items))
	return buf.Bytes()
}

// Lines converts the report lines for rendering, ranked from 1.
func Lines(report *planning.Report) []Line {
	lines := make([]Line, len(report.Lines))
	for i, l := range report.Lines {
		lines[i] = Line{
			Rank:        i + 1,
			Description: l.Key,
			AnnualTotal: currencyutils.FormatAmount(l.AnnualTotal),
			Members:     l.Members,
		}
	}
	return lines
}

func (g *ReportGenerator) generateTextReport(report *planning.Report) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d spending reminders; annual spending for each:\n", len(report.Lines))
	for _, l := range report.Lines {
		fmt.Fprintf(&buf, "%*s %s\n", g.width, currencyutils.FormatAmount(l.AnnualTotal), l.Key)
	}
	return buf.Bytes()
}

func (g *ReportGenerator) generateCSVReport(report *planning.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := common.WriteCSV(&buf, Lines(report)); err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) generateJSONReport(report *planning.Report) ([]byte, error) {
	jsonReport, err := json.MarshalIndent(document(report), "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(jsonReport, '\n'), nil
}

func (g *ReportGenerator) generateYAMLReport(report *planning.Report) ([]byte, error) {
	yamlReport, err := yaml.Marshal(document(report))
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return yamlReport, nil
}

func document(report *planning.Report) Document {
	return Document{
		AsOf:       dateutils.ToISODate(report.AsOf),
		Until:      dateutils.ToISODate(report.Until),
		Count:      len(report.Lines),
		GrandTotal: currencyutils.FormatAmount(report.GrandTotal),
		Lines:      Lines(report),
	}
}
