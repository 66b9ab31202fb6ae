package copydoc

import (
	"testing"

	"github.com/copydoc/copydoc-go/pkg/copydoc/models"
)

func testRecord(pairs ...string) *models.Record {
	r := models.NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func TestReconcileMergesByID(t *testing.T) {
	records := []*models.Record{
		testRecord("id", "a1", "group", "Header", "figma_text", "Hello"),
		testRecord("id", "a2", "group", "Header", "figma_text", "World"),
	}
	updates := map[string]string{"a1": "Hello edited"}

	out := Reconcile(records, updates)
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	if out[0].Text() != "Hello edited" {
		t.Errorf("merged text = %q, want %q", out[0].Text(), "Hello edited")
	}
	if out[0].Get("group") != "Header" {
		t.Errorf("group = %q, want %q", out[0].Get("group"), "Header")
	}
	if out[1].Text() != "World" {
		t.Errorf("unmatched record text = %q, want %q", out[1].Text(), "World")
	}

	// The input records must not change.
	if records[0].Text() != "Hello" {
		t.Errorf("input mutated: text = %q", records[0].Text())
	}
}

func TestReconcileMatchesTrimmedID(t *testing.T) {
	records := []*models.Record{
		testRecord("id", "  a1 ", "figma_text", "Hello"),
	}
	out := Reconcile(records, map[string]string{"a1": "edited"})
	if out[0].Text() != "edited" {
		t.Errorf("text = %q, want %q", out[0].Text(), "edited")
	}
	// The stored id keeps its original padding.
	if out[0].Get("id") != "  a1 " {
		t.Errorf("id = %q, want original padded value", out[0].Get("id"))
	}
}

func TestReconcileKeepsPassThroughColumns(t *testing.T) {
	records := []*models.Record{
		testRecord("id", "a1", "custom_note", "keep me", "figma_text", "Hello"),
	}
	out := Reconcile(records, map[string]string{"a1": "edited"})
	if out[0].Get("custom_note") != "keep me" {
		t.Errorf("custom_note = %q, want %q", out[0].Get("custom_note"), "keep me")
	}
}

func TestReconcileIgnoresUnknownIDs(t *testing.T) {
	records := []*models.Record{
		testRecord("id", "a1", "figma_text", "Hello"),
		testRecord("id", "a2", "figma_text", "World"),
		testRecord("id", "a3", "figma_text", "Third"),
	}
	out := Reconcile(records, map[string]string{"zz": "orphan edit"})
	if len(out) != 3 {
		t.Fatalf("got %d records, want 3", len(out))
	}
	for i, want := range []string{"a1", "a2", "a3"} {
		if out[i].ID() != want {
			t.Errorf("record %d id = %q, want %q", i, out[i].ID(), want)
		}
	}
	for i, want := range []string{"Hello", "World", "Third"} {
		if out[i].Text() != want {
			t.Errorf("record %d text = %q, want %q", i, out[i].Text(), want)
		}
	}
}
