package copydoc

import (
	"fmt"

	"github.com/copydoc/copydoc-go/pkg/copydoc/docx"
	"github.com/copydoc/copydoc-go/pkg/copydoc/store"
)

// Error kinds surfaced by conversions. They alias the sentinels of the
// packages where the errors originate, so errors.Is works across layers.
var (
	// ErrFormat indicates malformed tabular input.
	ErrFormat = store.ErrFormat
	// ErrInvalidDocument indicates a document that is not a readable
	// DOCX package.
	ErrInvalidDocument = docx.ErrInvalidDocument
	// ErrNoRecords indicates a save attempted with an empty record set.
	ErrNoRecords = store.ErrNoRecords
	// ErrEncoding indicates input text in an unsupported encoding.
	ErrEncoding = store.ErrEncoding
)

// ConvertError annotates a failure with the conversion stage and the
// file involved.
type ConvertError struct {
	Stage string // "load", "build", "extract", "save"
	Path  string
	Err   error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}
