package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/copydoc/copydoc-go/pkg/copydoc/models"
)

// LoadCSV reads a comma-delimited file with a header row. A UTF-8 BOM is
// stripped; UTF-16 input with a BOM is decoded transparently. A file with
// a header but no data rows yields an empty record list.
func LoadCSV(path string) ([]*models.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	decoded, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	// Copy exports often pad fields with stray quotes; accept them and
	// strip the padding in trimField.
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, ErrFormat)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: missing header row: %w", path, ErrFormat)
	}

	return rowsToRecords(rows[0], rows[1:]), nil
}

// SaveCSV writes records as comma-delimited text. The full output is
// assembled in memory before the destination file is created.
func SaveCSV(records []*models.Record, path string) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	header, rows := recordsToRows(records)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encoding csv: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText returns the input as UTF-8 without a byte-order mark.
// UTF-16 input is recognized by its BOM and converted; anything else must
// already be valid UTF-8.
func decodeText(raw []byte) ([]byte, error) {
	if bytes.HasPrefix(raw, bomUTF16LE) || bytes.HasPrefix(raw, bomUTF16BE) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
		if err != nil {
			return nil, fmt.Errorf("decoding utf-16: %v: %w", err, ErrEncoding)
		}
		return out, nil
	}
	raw = bytes.TrimPrefix(raw, bomUTF8)
	if !utf8.Valid(raw) {
		return nil, ErrEncoding
	}
	return raw, nil
}
