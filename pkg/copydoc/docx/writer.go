package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/copydoc/copydoc-go/pkg/copydoc/models"
)

// Cosmetic constants for the review layout. These are presentation
// defaults, not part of the structural contract.
const (
	documentTitle = "Figma Copy Export"

	accentColor = "696969" // muted gray for title, headings and header text
	shadeColor  = "D3D3D3" // light gray for Label and ID cells

	headerFontSize = "17" // half-points (~8.5pt)
	dataFontSize   = "16" // half-points (8pt)

	labelColWidth = "2160" // twips (1.5")
	textColWidth  = "5760" // twips (4.0")
	idColWidth    = "1440" // twips (1.0")

	titleSpaceAfter    = "144" // twips (0.1")
	headingSpaceBefore = "144"
	headingSpaceAfter  = "72" // twips (0.05")
	spacerSpaceAfter   = "72"
)

var columnWidths = []string{labelColWidth, textColWidth, idColWidth}

// tableHeader is the fixed 3-column header of every section table.
var tableHeader = []string{"Label", "Text", "ID"}

// WriteDocument renders grouped records into a DOCX file at path. The
// whole package is assembled in memory first, so a failed build leaves no
// partial output file behind.
func WriteDocument(groups *models.GroupedRecords, path string) error {
	data, err := BuildDocument(groups)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// BuildDocument renders grouped records into an in-memory DOCX package:
// one gray title, then per non-empty group a gray heading and a 3-column
// table with one data row per record.
func BuildDocument(groups *models.GroupedRecords) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entries := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesPartXML},
		{"word/document.xml", buildDocumentXML(groups)},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", e.name, err)
		}
		if _, err := w.Write([]byte(e.content)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing package: %w", err)
	}
	return buf.Bytes(), nil
}

// buildDocumentXML renders word/document.xml.
func buildDocumentXML(groups *models.GroupedRecords) string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`)

	writeStyledParagraph(&sb, "Title", documentTitle, "", titleSpaceAfter)

	for _, name := range groups.Names() {
		records := groups.Records(name)
		if len(records) == 0 {
			continue
		}
		writeStyledParagraph(&sb, "Heading1", name, headingSpaceBefore, headingSpaceAfter)
		writeSectionTable(&sb, records)
		// Minimal spacer instead of a full blank paragraph.
		sb.WriteString(`<w:p><w:pPr><w:spacing w:before="0" w:after="` + spacerSpaceAfter + `"/></w:pPr></w:p>`)
	}

	sb.WriteString(`</w:body></w:document>`)
	return sb.String()
}

// writeStyledParagraph emits a single-run paragraph in the accent color.
func writeStyledParagraph(sb *strings.Builder, styleID, text, spaceBefore, spaceAfter string) {
	sb.WriteString(`<w:p><w:pPr><w:pStyle w:val="` + styleID + `"/><w:spacing`)
	if spaceBefore != "" {
		sb.WriteString(` w:before="` + spaceBefore + `"`)
	}
	if spaceAfter != "" {
		sb.WriteString(` w:after="` + spaceAfter + `"`)
	}
	sb.WriteString(`/></w:pPr><w:r><w:rPr><w:color w:val="` + accentColor + `"/></w:rPr><w:t xml:space="preserve">`)
	sb.WriteString(escapeXML(text))
	sb.WriteString(`</w:t></w:r></w:p>`)
}

// writeSectionTable emits the fixed header row followed by one data row
// per record.
func writeSectionTable(sb *strings.Builder, records []*models.Record) {
	sb.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="0" w:type="auto"/>`)
	sb.WriteString(`<w:tblBorders><w:top w:val="single" w:sz="4"/><w:bottom w:val="single" w:sz="4"/><w:left w:val="single" w:sz="4"/><w:right w:val="single" w:sz="4"/><w:insideH w:val="single" w:sz="4"/><w:insideV w:val="single" w:sz="4"/></w:tblBorders>`)
	sb.WriteString(`</w:tblPr><w:tblGrid>`)
	for _, w := range columnWidths {
		sb.WriteString(`<w:gridCol w:w="` + w + `"/>`)
	}
	sb.WriteString(`</w:tblGrid>`)

	writeTableRow(sb, tableHeader, true)
	for _, rec := range records {
		writeTableRow(sb, []string{rec.LayerName(), rec.Text(), rec.Get(models.ColumnID)}, false)
	}

	sb.WriteString(`</w:tbl>`)
}

// writeTableRow emits one table row. Header rows are bold, centered and
// slightly larger; data rows are top-aligned. The Label and ID columns
// are shaded in both cases, the Text column never.
func writeTableRow(sb *strings.Builder, cells []string, header bool) {
	valign := "top"
	size := dataFontSize
	if header {
		valign = "center"
		size = headerFontSize
	}

	sb.WriteString(`<w:tr>`)
	for i, text := range cells {
		sb.WriteString(`<w:tc><w:tcPr><w:tcW w:w="` + columnWidths[i] + `" w:type="dxa"/>`)
		if i != 1 {
			sb.WriteString(`<w:shd w:val="clear" w:fill="` + shadeColor + `"/>`)
		}
		sb.WriteString(`<w:vAlign w:val="` + valign + `"/></w:tcPr>`)
		sb.WriteString(`<w:p><w:pPr><w:jc w:val="left"/></w:pPr><w:r><w:rPr>`)
		if header {
			sb.WriteString(`<w:b/><w:color w:val="` + accentColor + `"/>`)
		}
		sb.WriteString(`<w:sz w:val="` + size + `"/></w:rPr><w:t xml:space="preserve">`)
		sb.WriteString(escapeXML(text))
		sb.WriteString(`</w:t></w:r></w:p></w:tc>`)
	}
	sb.WriteString(`</w:tr>`)
}

// escapeXML escapes text for inclusion in element content.
func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s)) // only errs on a failing writer
	return buf.String()
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

// stylesPartXML names the Title and Heading 1 styles so headings written
// here are recognized when the document is read back or inspected.
const stylesPartXML = xml.Header + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:rPr><w:sz w:val="56"/><w:color w:val="` + accentColor + `"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:rPr><w:b/><w:sz w:val="32"/><w:color w:val="` + accentColor + `"/></w:rPr></w:style>` +
	`<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/></w:style>` +
	`</w:styles>`
