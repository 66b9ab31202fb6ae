// Package docx reads and writes the Word documents used for copy review.
// It handles the fixed layout produced by the builder (a title followed by
// heading/table section pairs) plus enough general paragraph, run and table
// structure to extract text from documents edited or authored elsewhere.
package docx

import (
	"errors"
	"strings"
)

// ErrInvalidDocument indicates the file is not a readable DOCX package.
var ErrInvalidDocument = errors.New("invalid document structure")

// Document is a parsed DOCX body with its top-level elements in authored
// order. A Document is read-only once returned by Open.
type Document struct {
	// Elements holds paragraphs and tables interleaved as authored.
	Elements []BodyElement

	styles map[string]string // style id -> style name
	rels   map[string]string // relationship id -> target
}

// BodyElement is a top-level document body element: *Paragraph or *Table.
type BodyElement interface {
	bodyElement()
}

// Paragraph is an ordered sequence of text runs.
type Paragraph struct {
	StyleID string
	Runs    []Run
}

func (*Paragraph) bodyElement() {}

// Text returns the paragraph's plain concatenated run text.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Run is a contiguous span of text with uniform formatting.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	// Hyperlink is the resolved target URL when the run sits inside a
	// w:hyperlink wrapper, "" otherwise.
	Hyperlink string
}

// Table is a grid of rows and cells.
type Table struct {
	Rows []Row
}

func (*Table) bodyElement() {}

// Row is one table row.
type Row struct {
	Cells []Cell
}

// Cell holds the paragraphs of a single table cell.
type Cell struct {
	Paragraphs []Paragraph
}

// Text returns the cell's plain text, paragraphs joined with newlines.
func (c *Cell) Text() string {
	parts := make([]string, len(c.Paragraphs))
	for i := range c.Paragraphs {
		parts[i] = c.Paragraphs[i].Text()
	}
	return strings.Join(parts, "\n")
}

// Tables returns the document's tables in authored order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, el := range d.Elements {
		if t, ok := el.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// StyleName returns the display name for a style id, falling back to the
// id itself when styles.xml does not define it.
func (d *Document) StyleName(id string) string {
	if name, ok := d.styles[id]; ok && name != "" {
		return name
	}
	return id
}

// IsHeading reports whether the paragraph is styled as a heading or title.
func (d *Document) IsHeading(p *Paragraph) bool {
	if p.StyleID == "" {
		return false
	}
	name := strings.ToLower(d.StyleName(p.StyleID))
	return strings.Contains(name, "heading") || strings.Contains(name, "title")
}
