package copydoc

import "github.com/copydoc/copydoc-go/pkg/copydoc/models"

// Reconcile merges extracted text back into the original records by id.
// Only the figma_text field of matched records changes; every other
// field, including unrecognized pass-through columns, is copied verbatim,
// and records without an update pass through untouched. The result
// preserves input order and never drops records. Inputs are not mutated.
func Reconcile(records []*models.Record, updates map[string]string) []*models.Record {
	out := make([]*models.Record, 0, len(records))
	for _, rec := range records {
		clone := rec.Clone()
		if text, ok := updates[clone.ID()]; ok {
			clone.SetText(text)
		}
		out = append(out, clone)
	}
	return out
}
