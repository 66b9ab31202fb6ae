package store

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/copydoc/copydoc-go/pkg/copydoc/models"
)

// LoadXLSX reads records from the first sheet of a workbook, using the
// same header/trimming semantics as the CSV loader.
func LoadXLSX(path string) ([]*models.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets: %w", path, ErrFormat)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: reading sheet %q: %v: %w", path, sheets[0], err, ErrFormat)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: missing header row: %w", path, ErrFormat)
	}

	return rowsToRecords(rows[0], rows[1:]), nil
}

// SaveXLSX writes records to a single-sheet workbook. Excelize assembles
// the package in memory, so a failed build leaves no partial file.
func SaveXLSX(records []*models.Record, path string) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	header, rows := recordsToRows(records)

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
