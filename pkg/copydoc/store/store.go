// Package store loads and saves the tabular record formats used for
// copy-text conversion. CSV is the primary format; XLSX workbooks are
// accepted and produced with the same semantics on the first sheet.
package store

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/copydoc/copydoc-go/pkg/copydoc/models"
)

// ErrFormat indicates the input could not be parsed as tabular data with
// a header row.
var ErrFormat = errors.New("malformed tabular data")

// ErrNoRecords indicates a save was attempted with an empty record set,
// leaving no valid header to emit.
var ErrNoRecords = errors.New("no records to write")

// ErrEncoding indicates input text that is neither valid UTF-8 nor
// UTF-16 with a byte-order mark.
var ErrEncoding = errors.New("unsupported text encoding")

// Load reads records from path, dispatching on the file extension.
// Anything that is not .xlsx is treated as CSV.
func Load(path string) ([]*models.Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path)
	}
	return LoadCSV(path)
}

// Save writes records to path, dispatching on the file extension.
func Save(records []*models.Record, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return SaveXLSX(records, path)
	}
	return SaveCSV(records, path)
}

// trimField strips the whitespace and quote padding that copy exports
// commonly carry around header names and values.
func trimField(s string) string {
	return strings.Trim(s, " \t\"")
}

// rowsToRecords maps data rows onto the trimmed header. Short rows are
// padded with empty fields.
func rowsToRecords(header []string, rows [][]string) []*models.Record {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = trimField(h)
	}

	records := make([]*models.Record, 0, len(rows))
	for _, row := range rows {
		rec := models.NewRecord()
		for i, col := range columns {
			value := ""
			if i < len(row) {
				value = trimField(row[i])
			}
			rec.Set(col, value)
		}
		records = append(records, rec)
	}
	return records
}

// recordsToRows flattens records onto the header taken from the first
// record, preserving its column order. Fields absent from a record are
// written empty.
func recordsToRows(records []*models.Record) (header []string, rows [][]string) {
	header = records[0].Columns()
	rows = make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(header))
		for i, col := range header {
			row[i] = rec.Get(col)
		}
		rows = append(rows, row)
	}
	return header, rows
}
