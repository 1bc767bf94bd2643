// Package common provides CSV reading and writing shared by the seed source
// and the export command.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/grocelist/internal/logging"
	"fjacquet/grocelist/internal/models"

	"github.com/gocarina/gocsv"
)

// Delimiter is the field separator used for CSV output.
var Delimiter rune = ','

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string, logger logging.Logger) ([]TCSVRow, error) {
	log := logging.OrDiscard(logger).WithField(logging.FieldFile, filePath)
	log.Debug("Reading CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.Debug("Successfully read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// WriteItemsToCSV writes items to csvFile using Delimiter, creating the parent
// directory when needed. A nil slice is rejected; an empty one yields a file
// with only the header row.
func WriteItemsToCSV(items []models.GroceryItem, csvFile string, logger logging.Logger) error {
	if items == nil {
		return fmt.Errorf("cannot write nil items to CSV")
	}

	log := logging.OrDiscard(logger).WithFields(
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldCount, len(items)),
		logging.F(logging.FieldDelimiter, string(Delimiter)))

	if err := os.MkdirAll(filepath.Dir(csvFile), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(items, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.Info("Successfully wrote items to CSV file")
	return nil
}
