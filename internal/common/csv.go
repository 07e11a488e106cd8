// Package common provides the CSV plumbing shared by the CSV book source and the CSV report.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"fjacquet/planned-spending/internal/logging"

	"github.com/gocarina/gocsv"
)

// Delimiter is the field separator used for CSV input and output.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter for CSV input and output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string, logger logging.Logger) ([]TCSVRow, error) {
	logger.Info("Reading CSV file", logging.F(logging.FieldFile, filePath))

	file, err := os.Open(filePath)
	if err != nil {
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows, err := ReadCSV[TCSVRow](file)
	if err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, err
	}

	logger.Info("Successfully read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// ReadCSV decodes CSV rows from r, honoring Delimiter.
func ReadCSV[TCSVRow any](r io.Reader) ([]TCSVRow, error) {
	var rows []TCSVRow
	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.TrimLeadingSpace = true
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// WriteCSV encodes rows to w with a header line, honoring Delimiter.
func WriteCSV[TCSVRow any](w io.Writer, rows []TCSVRow) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
