package copydoc

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/copydoc/copydoc-go/pkg/copydoc/models"
	"github.com/copydoc/copydoc-go/pkg/copydoc/store"
)

// writeTestDocument assembles a minimal DOCX package with the given body
// fragment, standing in for a review document edited outside this tool.
func writeTestDocument(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "edited.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	parts := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`},
		{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			t.Fatalf("creating %s: %v", p.name, err)
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			t.Fatalf("writing %s: %v", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing fixture: %v", err)
	}
	return path
}

func cellXML(text string) string {
	return `<w:tc><w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p></w:tc>`
}

func writeSourceTable(t *testing.T) string {
	t.Helper()
	records := []*models.Record{
		testRecord("id", "a1", "group", "Header", "layer_name", "Title",
			"figma_text", "Hello", "custom_note", "keep me"),
		testRecord("id", "a2", "group", "Header", "layer_name", "Subtitle",
			"figma_text", "World", "custom_note", ""),
		testRecord("id", "b1", "group", "Footer", "layer_name", "Legal",
			"figma_text", "Fine print", "custom_note", ""),
	}
	path := filepath.Join(t.TempDir(), "copy.csv")
	if err := store.SaveCSV(records, path); err != nil {
		t.Fatalf("writing source table: %v", err)
	}
	return path
}

func TestRoundTripWithoutEdits(t *testing.T) {
	tablePath := writeSourceTable(t)
	dir := t.TempDir()
	docPath := filepath.Join(dir, "review.docx")
	outPath := filepath.Join(dir, "copy_updated.csv")

	if err := CSVToWord(tablePath, docPath); err != nil {
		t.Fatalf("CSVToWord failed: %v", err)
	}
	if err := WordToCSV(tablePath, docPath, outPath, DefaultOptions()); err != nil {
		t.Fatalf("WordToCSV failed: %v", err)
	}

	// With no edits the updated table is byte-identical to the source.
	before, err := os.ReadFile(tablePath)
	if err != nil {
		t.Fatalf("reading source: %v", err)
	}
	after, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("round trip altered the table:\nbefore: %q\nafter:  %q", before, after)
	}

	original, err := store.LoadCSV(tablePath)
	if err != nil {
		t.Fatalf("loading original: %v", err)
	}
	updated, err := store.LoadCSV(outPath)
	if err != nil {
		t.Fatalf("loading output: %v", err)
	}
	if len(updated) != len(original) {
		t.Fatalf("got %d records, want %d", len(updated), len(original))
	}
	for i := range original {
		if !reflect.DeepEqual(updated[i].Columns(), original[i].Columns()) {
			t.Errorf("record %d columns = %v, want %v",
				i, updated[i].Columns(), original[i].Columns())
		}
		for _, col := range original[i].Columns() {
			if updated[i].Get(col) != original[i].Get(col) {
				t.Errorf("record %d %s = %q, want %q",
					i, col, updated[i].Get(col), original[i].Get(col))
			}
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	tablePath := writeSourceTable(t)
	dir := t.TempDir()
	firstPath := filepath.Join(dir, "first.docx")
	secondPath := filepath.Join(dir, "second.docx")

	if err := CSVToWord(tablePath, firstPath); err != nil {
		t.Fatalf("CSVToWord failed: %v", err)
	}
	if err := CSVToWord(tablePath, secondPath); err != nil {
		t.Fatalf("CSVToWord failed: %v", err)
	}

	first, err := os.ReadFile(firstPath)
	if err != nil {
		t.Fatalf("reading first build: %v", err)
	}
	second, err := os.ReadFile(secondPath)
	if err != nil {
		t.Fatalf("reading second build: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("same table produced differing documents")
	}
}

func TestMergeFormattedEdit(t *testing.T) {
	tablePath := writeSourceTable(t)

	// A reviewer replaced a1's text with a bold run and left a2 alone.
	body := `<w:tbl>` +
		`<w:tr>` + cellXML("Label") + cellXML("Text") + cellXML("ID") + `</w:tr>` +
		`<w:tr>` + cellXML("Title") +
		`<w:tc><w:p><w:r><w:rPr><w:b/></w:rPr><w:t>Hi</w:t></w:r></w:p></w:tc>` +
		cellXML("a1") + `</w:tr>` +
		`<w:tr>` + cellXML("Subtitle") + cellXML("World") + cellXML("a2") + `</w:tr>` +
		`</w:tbl>`
	docPath := writeTestDocument(t, body)

	outPath := filepath.Join(t.TempDir(), "copy_updated.csv")
	if err := WordToCSV(tablePath, docPath, outPath, DefaultOptions()); err != nil {
		t.Fatalf("WordToCSV failed: %v", err)
	}

	updated, err := store.LoadCSV(outPath)
	if err != nil {
		t.Fatalf("loading output: %v", err)
	}
	if len(updated) != 3 {
		t.Fatalf("got %d records, want 3", len(updated))
	}
	if got := updated[0].Text(); got != "**Hi**" {
		t.Errorf("a1 text = %q, want %q", got, "**Hi**")
	}
	if got := updated[0].Get("custom_note"); got != "keep me" {
		t.Errorf("a1 custom_note = %q, want %q", got, "keep me")
	}
	if got := updated[1].Text(); got != "World" {
		t.Errorf("a2 text = %q, want %q", got, "World")
	}
	// b1 never appears in the document and passes through unchanged.
	if got := updated[2].Text(); got != "Fine print" {
		t.Errorf("b1 text = %q, want %q", got, "Fine print")
	}
}

func TestMergePlainTextEdit(t *testing.T) {
	tablePath := writeSourceTable(t)

	body := `<w:tbl>` +
		`<w:tr>` + cellXML("Label") + cellXML("Text") + cellXML("ID") + `</w:tr>` +
		`<w:tr>` + cellXML("Title") +
		`<w:tc><w:p><w:r><w:rPr><w:b/></w:rPr><w:t>Hi</w:t></w:r></w:p></w:tc>` +
		cellXML("a1") + `</w:tr>` +
		`</w:tbl>`
	docPath := writeTestDocument(t, body)

	plain := false
	outPath := filepath.Join(t.TempDir(), "copy_updated.csv")
	err := WordToCSV(tablePath, docPath, outPath, Options{PreserveFormatting: &plain})
	if err != nil {
		t.Fatalf("WordToCSV failed: %v", err)
	}

	updated, err := store.LoadCSV(outPath)
	if err != nil {
		t.Fatalf("loading output: %v", err)
	}
	if got := updated[0].Text(); got != "Hi" {
		t.Errorf("a1 text = %q, want %q", got, "Hi")
	}
}

func TestWordToNewCSV(t *testing.T) {
	body := `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Checkout</w:t></w:r></w:p>` +
		`<w:tbl>` +
		`<w:tr>` + cellXML("Label") + cellXML("Text") + `</w:tr>` +
		`<w:tr>` + cellXML("Title") + cellXML("Pay now") + `</w:tr>` +
		`<w:tr>` + cellXML("Subtitle") + cellXML("Takes one minute") + `</w:tr>` +
		`</w:tbl>`
	docPath := writeTestDocument(t, body)

	outPath := filepath.Join(t.TempDir(), "recovered.csv")
	if err := WordToNewCSV(docPath, outPath, DefaultOptions()); err != nil {
		t.Fatalf("WordToNewCSV failed: %v", err)
	}

	records, err := store.LoadCSV(outPath)
	if err != nil {
		t.Fatalf("loading output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	wantCols := []string{"id", "frame", "group", "layer_name", "figma_text"}
	if got := records[0].Columns(); !reflect.DeepEqual(got, wantCols) {
		t.Errorf("columns = %v, want %v", got, wantCols)
	}
	for i, want := range []struct{ id, layer, text string }{
		{"generated_1", "Title", "Pay now"},
		{"generated_2", "Subtitle", "Takes one minute"},
	} {
		rec := records[i]
		if rec.ID() != want.id || rec.LayerName() != want.layer || rec.Text() != want.text {
			t.Errorf("record %d = (%q, %q, %q), want (%q, %q, %q)",
				i, rec.ID(), rec.LayerName(), rec.Text(), want.id, want.layer, want.text)
		}
		if got := rec.Get("group"); got != "Checkout" {
			t.Errorf("record %d group = %q, want %q", i, got, "Checkout")
		}
	}
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.csv")
	docPath := filepath.Join(dir, "out.docx")

	err := CSVToWord(missing, docPath)
	var convErr *ConvertError
	if !errors.As(err, &convErr) || convErr.Stage != "load" {
		t.Errorf("CSVToWord err = %v, want ConvertError at load stage", err)
	}

	// A file that is not a ZIP archive cannot be a review document.
	bogus := filepath.Join(dir, "bogus.docx")
	if err := os.WriteFile(bogus, []byte("plain text"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	err = WordToNewCSV(bogus, filepath.Join(dir, "out.csv"), DefaultOptions())
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("WordToNewCSV err = %v, want ErrInvalidDocument", err)
	}
	if !errors.As(err, &convErr) || convErr.Stage != "extract" {
		t.Errorf("WordToNewCSV err = %v, want ConvertError at extract stage", err)
	}

	// A document with no tables yields no records to save.
	empty := writeTestDocument(t, `<w:p><w:r><w:t>nothing tabular here</w:t></w:r></w:p>`)
	err = WordToNewCSV(empty, filepath.Join(dir, "empty.csv"), DefaultOptions())
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("empty document err = %v, want ErrNoRecords", err)
	}
}
