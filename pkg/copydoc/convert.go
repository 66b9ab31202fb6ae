package copydoc

import (
	"github.com/copydoc/copydoc-go/pkg/copydoc/docx"
	"github.com/copydoc/copydoc-go/pkg/copydoc/models"
	"github.com/copydoc/copydoc-go/pkg/copydoc/store"
)

// CSVToWord converts a copy-text table into a formatted review document:
// records grouped by section, one heading and one 3-column table per
// group.
func CSVToWord(tablePath, docPath string) error {
	records, err := store.Load(tablePath)
	if err != nil {
		return &ConvertError{Stage: "load", Path: tablePath, Err: err}
	}

	groups := models.GroupBySection(records)
	if err := docx.WriteDocument(groups, docPath); err != nil {
		return &ConvertError{Stage: "build", Path: docPath, Err: err}
	}
	return nil
}

// WordToCSV extracts edited text from a review document and merges it
// into the original table by id, writing the updated table to outPath.
// Rows whose id does not appear in the document pass through unchanged.
func WordToCSV(originalPath, docPath, outPath string, opts Options) error {
	records, err := store.Load(originalPath)
	if err != nil {
		return &ConvertError{Stage: "load", Path: originalPath, Err: err}
	}

	doc, err := docx.Open(docPath)
	if err != nil {
		return &ConvertError{Stage: "extract", Path: docPath, Err: err}
	}
	updates := docx.TextUpdates(doc, opts.ShouldPreserveFormatting())

	if err := store.Save(Reconcile(records, updates), outPath); err != nil {
		return &ConvertError{Stage: "save", Path: outPath, Err: err}
	}
	return nil
}

// WordToNewCSV recovers a record table from a document with no known
// tabular source, inferring column semantics and synthesizing ids where
// needed.
func WordToNewCSV(docPath, outPath string, opts Options) error {
	doc, err := docx.Open(docPath)
	if err != nil {
		return &ConvertError{Stage: "extract", Path: docPath, Err: err}
	}

	inf := docx.Inferencer{Formatted: opts.ShouldPreserveFormatting()}
	records := inf.Records(doc)

	if err := store.Save(records, outPath); err != nil {
		return &ConvertError{Stage: "save", Path: outPath, Err: err}
	}
	return nil
}
