package docx

import (
	"fmt"
	"strings"

	"github.com/copydoc/copydoc-go/pkg/copydoc/models"
)

// IDPredicate decides whether a cell's text looks like an opaque copy
// identifier rather than display text. It is pluggable so the heuristic
// can be swapped without touching the inference walk.
type IDPredicate func(text string) bool

// idMarkers are substrings commonly present in exported copy ids.
var idMarkers = []string{":", ";", "I2016", "I-", "_", "-"}

// LooksLikeID is the default id heuristic: the text contains one of the
// id marker substrings and is longer than 10 characters.
func LooksLikeID(text string) bool {
	if len(text) <= 10 {
		return false
	}
	for _, m := range idMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// Inferencer recovers a flat record list from a document that has no
// originating tabular source.
type Inferencer struct {
	// Formatted selects Markdown-annotated extraction for cell text.
	Formatted bool
	// LooksLikeID overrides the default id heuristic when non-nil.
	LooksLikeID IDPredicate
}

// Records walks the document body in authored order. Headings update the
// current section name; table rows become records with column semantics
// guessed from shape and the id heuristic. Ids are synthesized as
// generated_<n> when no id-like column is found, with n counting emitted
// records across the whole document.
func (inf *Inferencer) Records(doc *Document) []*models.Record {
	looksLikeID := inf.LooksLikeID
	if looksLikeID == nil {
		looksLikeID = LooksLikeID
	}

	var records []*models.Record
	section := models.DefaultSection

	for _, el := range doc.Elements {
		switch node := el.(type) {
		case *Paragraph:
			if doc.IsHeading(node) {
				if text := strings.TrimSpace(node.Text()); text != "" {
					section = text
				}
			}
		case *Table:
			for i := range node.Rows {
				cells := node.Rows[i].Cells
				if len(cells) < 2 || isHeaderRow(cells) {
					continue
				}

				var id, layerName, text string
				switch len(cells) {
				case 3:
					col1 := CellText(&cells[0], inf.Formatted)
					col2 := CellText(&cells[1], inf.Formatted)
					col3 := CellText(&cells[2], inf.Formatted)
					switch {
					case looksLikeID(col3):
						layerName, text, id = col1, col2, col3
					case looksLikeID(col1):
						id, layerName, text = col1, col2, col3
					default:
						// Assume (Label, Text, ID) and synthesize an
						// id when the third column is blank.
						layerName, text = col1, col2
						id = col3
						if strings.TrimSpace(id) == "" {
							id = generatedID(len(records))
						}
					}
				case 2:
					layerName = CellText(&cells[0], inf.Formatted)
					text = CellText(&cells[1], inf.Formatted)
					id = generatedID(len(records))
				default:
					layerName = "Content"
					text = CellText(&cells[0], inf.Formatted)
					id = generatedID(len(records))
				}

				if strings.TrimSpace(text) == "" {
					continue
				}
				if strings.TrimSpace(layerName) == "" {
					layerName = "Content"
				}

				rec := models.NewRecord()
				rec.Set(models.ColumnID, id)
				rec.Set(models.ColumnFrame, section)
				rec.Set(models.ColumnGroup, section)
				rec.Set(models.ColumnLayerName, layerName)
				rec.Set(models.ColumnText, text)
				records = append(records, rec)
			}
		}
	}

	return records
}

// generatedID synthesizes an id for the (emitted+1)-th inferred record.
func generatedID(emitted int) string {
	return fmt.Sprintf("generated_%d", emitted+1)
}

// isHeaderRow matches the small fixed header vocabulary: exactly
// {label|component, text|description, id} for 3 columns or
// {label|component, text|description} for 2.
func isHeaderRow(cells []Cell) bool {
	texts := make([]string, len(cells))
	for i := range cells {
		texts[i] = strings.ToLower(strings.TrimSpace(cells[i].Text()))
	}
	labelish := texts[0] == "label" || texts[0] == "component"
	textish := len(texts) > 1 && (texts[1] == "text" || texts[1] == "description")
	switch len(cells) {
	case 3:
		return labelish && textish && texts[2] == "id"
	case 2:
		return labelish && textish
	}
	return false
}
