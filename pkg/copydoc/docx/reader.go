package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Open reads the DOCX package at path into a Document. The archive is
// fully parsed and released before Open returns.
func Open(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("%s: %w", path, ErrInvalidDocument)
		}
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer zr.Close()

	data, err := readEntry(&zr.Reader, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("%s: missing word/document.xml: %w", path, ErrInvalidDocument)
	}

	var raw documentXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: parsing document.xml: %v: %w", path, err, ErrInvalidDocument)
	}

	doc := &Document{
		styles: parseStyles(&zr.Reader),
		rels:   parseRelationships(&zr.Reader),
	}

	for _, el := range raw.Body.Elements {
		switch {
		case el.Paragraph != nil:
			doc.Elements = append(doc.Elements, doc.convertParagraph(el.Paragraph))
		case el.Table != nil:
			doc.Elements = append(doc.Elements, doc.convertTable(el.Table))
		}
	}

	return doc, nil
}

// readEntry reads a named file from the ZIP archive.
func readEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry not found: %s", name)
}

// parseStyles builds the style id -> style name map from word/styles.xml.
// Styles are optional; a missing or malformed part yields an empty map.
func parseStyles(zr *zip.Reader) map[string]string {
	styles := make(map[string]string)
	data, err := readEntry(zr, "word/styles.xml")
	if err != nil {
		return styles
	}
	var raw stylesXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return styles
	}
	for _, s := range raw.Styles {
		if s.StyleID != "" {
			styles[s.StyleID] = s.Name.Val
		}
	}
	return styles
}

// parseRelationships builds the relationship id -> target map used to
// resolve hyperlink references.
func parseRelationships(zr *zip.Reader) map[string]string {
	rels := make(map[string]string)
	data, err := readEntry(zr, "word/_rels/document.xml.rels")
	if err != nil {
		return rels
	}
	var raw relationshipsXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return rels
	}
	for _, r := range raw.Relationships {
		rels[r.ID] = r.Target
	}
	return rels
}

// convertParagraph flattens a raw paragraph, pulling runs out of hyperlink
// wrappers in document order and attaching their resolved targets.
func (d *Document) convertParagraph(p *paragraphXML) *Paragraph {
	out := &Paragraph{StyleID: p.Props.Style.Val}
	for _, c := range p.Content {
		switch {
		case c.Run != nil:
			out.Runs = append(out.Runs, convertRun(c.Run, ""))
		case c.Hyperlink != nil:
			target := d.rels[c.Hyperlink.ID]
			for i := range c.Hyperlink.Runs {
				out.Runs = append(out.Runs, convertRun(&c.Hyperlink.Runs[i], target))
			}
		}
	}
	return out
}

func (d *Document) convertTable(t *tableXML) *Table {
	out := &Table{}
	for _, row := range t.Rows {
		r := Row{}
		for _, cell := range row.Cells {
			c := Cell{}
			for i := range cell.Paragraphs {
				c.Paragraphs = append(c.Paragraphs, *d.convertParagraph(&cell.Paragraphs[i]))
			}
			r.Cells = append(r.Cells, c)
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

// convertRun joins a run's text parts, mapping tabs and breaks to
// whitespace the way the rest of the pipeline expects.
func convertRun(r *runXML, hyperlink string) Run {
	var sb strings.Builder
	for _, t := range r.Text {
		sb.WriteString(t.Value)
	}
	for range r.Tabs {
		sb.WriteString("\t")
	}
	for range r.Breaks {
		sb.WriteString("\n")
	}
	return Run{
		Text:      sb.String(),
		Bold:      boolPropSet(r.Props.Bold),
		Italic:    boolPropSet(r.Props.Italic),
		Hyperlink: hyperlink,
	}
}

// boolPropSet interprets an OOXML toggle property: present means on
// unless explicitly valued "false" or "0".
func boolPropSet(b boolXML) bool {
	if b.XMLName.Local == "" {
		return false
	}
	return b.Val != "false" && b.Val != "0"
}

// documentXML mirrors word/document.xml.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

// bodyXML preserves the authored order of paragraphs and tables, which
// struct-tag unmarshaling would lose.
type bodyXML struct {
	Elements []bodyElementXML
}

type bodyElementXML struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// UnmarshalXML collects w:p and w:tbl children in document order and
// skips everything else (section properties, bookmarks, sdt wrappers).
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElementXML{Paragraph: &p})
			case "tbl":
				var tbl tableXML
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElementXML{Table: &tbl})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// paragraphXML keeps plain runs and hyperlink-wrapped runs in their
// authored order.
type paragraphXML struct {
	Props   paragraphPropsXML
	Content []paragraphContentXML
}

type paragraphContentXML struct {
	Run       *runXML
	Hyperlink *hyperlinkXML
}

func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := d.DecodeElement(&p.Props, &t); err != nil {
					return err
				}
			case "r":
				var r runXML
				if err := d.DecodeElement(&r, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, paragraphContentXML{Run: &r})
			case "hyperlink":
				var h hyperlinkXML
				if err := d.DecodeElement(&h, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, paragraphContentXML{Hyperlink: &h})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type paragraphPropsXML struct {
	Style styleRefXML `xml:"pStyle"`
}

type styleRefXML struct {
	Val string `xml:"val,attr"`
}

type runXML struct {
	Props  runPropsXML `xml:"rPr"`
	Text   []textXML   `xml:"t"`
	Tabs   []tabXML    `xml:"tab"`
	Breaks []breakXML  `xml:"br"`
}

type runPropsXML struct {
	Bold   boolXML `xml:"b"`
	Italic boolXML `xml:"i"`
}

// boolXML is an OOXML toggle element; presence is detected via XMLName.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

type textXML struct {
	Value string `xml:",chardata"`
}

type tabXML struct{}

type breakXML struct {
	Type string `xml:"type,attr"`
}

type hyperlinkXML struct {
	ID   string   `xml:"id,attr"`
	Runs []runXML `xml:"r"`
}

type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

type tableCellXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type stylesXML struct {
	XMLName xml.Name   `xml:"styles"`
	Styles  []styleXML `xml:"style"`
}

type styleXML struct {
	StyleID string       `xml:"styleId,attr"`
	Name    styleNameXML `xml:"name"`
}

type styleNameXML struct {
	Val string `xml:"val,attr"`
}

type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
}
