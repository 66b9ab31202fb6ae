package docx

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// listKind classifies a paragraph's list membership.
type listKind int

const (
	listNone listKind = iota
	listUnordered
	listOrdered
)

// orderedMarkerRE matches ordered-list markers: digits, a single letter,
// or a roman-numeral sequence, followed by "." or ")" and whitespace.
var orderedMarkerRE = regexp.MustCompile(`(?i)^(\d+[.)]|[a-z][.)]|[ivxlcdm]+[.)])\s`)

// classifyList inspects a paragraph's trimmed plain text and returns its
// list kind together with the detected marker text.
func classifyList(text string) (listKind, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return listNone, ""
	}
	if strings.HasPrefix(text, "•") || strings.HasPrefix(text, "-") || strings.HasPrefix(text, "*") {
		r, _ := utf8.DecodeRuneInString(text)
		return listUnordered, string(r)
	}
	if utf8.RuneCountInString(text) > 2 {
		if m := orderedMarkerRE.FindStringSubmatch(text); m != nil {
			return listOrdered, m[1]
		}
	}
	return listNone, ""
}

// needsRunGap reports whether a space must separate two adjacent runs so
// that emphasis markers and link brackets do not collide into unintended
// Markdown sequences.
func needsRunGap(prev, next string) bool {
	last := prev[len(prev)-1]
	if last != '*' && last != ')' {
		return false
	}
	return strings.HasPrefix(next, "*") || strings.HasPrefix(next, "[")
}

// CellText extracts the text of a table cell. When formatted is false it
// returns the cell's trimmed plain text. When formatted is true, bold and
// italic runs are wrapped in Markdown emphasis markers, hyperlinked runs
// become Markdown links, and list paragraphs are normalized to Markdown
// list syntax with the original ordered marker preserved.
func CellText(cell *Cell, formatted bool) string {
	if !formatted {
		return strings.TrimSpace(cell.Text())
	}

	out := ""
	for i := range cell.Paragraphs {
		para := &cell.Paragraphs[i]
		kind, marker := classifyList(para.Text())

		paraText := ""
		for _, run := range para.Runs {
			runText := run.Text
			if runText == "" {
				continue
			}
			switch {
			case run.Bold && run.Italic:
				runText = "***" + runText + "***"
			case run.Bold:
				runText = "**" + runText + "**"
			case run.Italic:
				runText = "*" + runText + "*"
			}
			if run.Hyperlink != "" {
				runText = "[" + runText + "](" + run.Hyperlink + ")"
			}
			if paraText != "" && needsRunGap(paraText, runText) {
				paraText += " "
			}
			paraText += runText
		}

		if strings.TrimSpace(paraText) == "" {
			continue
		}

		switch kind {
		case listOrdered:
			// Re-prefix the original marker with normalized spacing.
			clean := strings.TrimSpace(paraText)
			if strings.HasPrefix(clean, marker) {
				clean = strings.TrimSpace(clean[len(marker):])
			}
			paraText = marker + " " + clean
		case listUnordered:
			clean := strings.TrimSpace(paraText)
			if strings.HasPrefix(clean, "•") || strings.HasPrefix(clean, "-") || strings.HasPrefix(clean, "*") {
				_, size := utf8.DecodeRuneInString(clean)
				clean = strings.TrimSpace(clean[size:])
			}
			paraText = "- " + clean
		}

		// List items land on their own line; prose continues on the
		// same line separated by one space.
		isList := kind == listOrdered || strings.HasPrefix(paraText, "- ")
		if out != "" {
			if isList {
				out += "\n"
			} else {
				out += " "
			}
		}
		out += paraText
	}

	return strings.TrimSpace(out)
}

// TextUpdates scans all tables' data rows (header row skipped) and maps
// the ID column to the extracted Text column. Duplicate ids resolve to
// the last occurrence.
func TextUpdates(doc *Document, formatted bool) map[string]string {
	updates := make(map[string]string)
	for _, tbl := range doc.Tables() {
		for i := range tbl.Rows {
			if i == 0 {
				continue
			}
			cells := tbl.Rows[i].Cells
			if len(cells) < 3 {
				continue
			}
			id := strings.TrimSpace(cells[2].Text())
			if id == "" {
				continue
			}
			updates[id] = CellText(&cells[1], formatted)
		}
	}
	return updates
}
