// Package models defines data structures for copy-text conversion.
package models

import "strings"

// Well-known column names.
const (
	ColumnID        = "id"
	ColumnFrame     = "frame"
	ColumnGroup     = "group"
	ColumnLayerName = "layer_name"
	ColumnText      = "figma_text"
)

// DefaultGroup is assigned to records whose source has no group column.
const DefaultGroup = "Unknown Group"

// DefaultSection names inferred content that precedes any document heading.
const DefaultSection = "General Content"

// Record is one logical row of copy text with stable identity. Column
// order is preserved so unrecognized columns round-trip unchanged.
type Record struct {
	columns []string
	values  map[string]string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set stores a value, appending the column to the ordering if new.
func (r *Record) Set(column, value string) {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Get returns the value for column, or "" if the column is absent.
func (r *Record) Get(column string) string {
	return r.values[column]
}

// Has reports whether the record carries the column.
func (r *Record) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Columns returns the column names in insertion order.
func (r *Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of columns.
func (r *Record) Len() int {
	return len(r.columns)
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	c := &Record{
		columns: make([]string, len(r.columns)),
		values:  make(map[string]string, len(r.values)),
	}
	copy(c.columns, r.columns)
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// ID returns the trimmed record identifier.
func (r *Record) ID() string {
	return strings.TrimSpace(r.Get(ColumnID))
}

// LayerName returns the display label.
func (r *Record) LayerName() string {
	return r.Get(ColumnLayerName)
}

// Text returns the editable copy text.
func (r *Record) Text() string {
	return r.Get(ColumnText)
}

// SetText replaces the editable copy text.
func (r *Record) SetText(text string) {
	r.Set(ColumnText, text)
}

// GroupedRecords is an insertion-ordered mapping from group name to the
// records that share it. Grouping is stable: records keep the relative
// order in which they were added.
type GroupedRecords struct {
	names  []string
	groups map[string][]*Record
}

// NewGroupedRecords returns an empty grouping.
func NewGroupedRecords() *GroupedRecords {
	return &GroupedRecords{groups: make(map[string][]*Record)}
}

// Add appends a record to the named group, registering the group on
// first use.
func (g *GroupedRecords) Add(name string, rec *Record) {
	if _, ok := g.groups[name]; !ok {
		g.names = append(g.names, name)
	}
	g.groups[name] = append(g.groups[name], rec)
}

// Names returns the group names in first-seen order.
func (g *GroupedRecords) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Records returns the records of the named group.
func (g *GroupedRecords) Records(name string) []*Record {
	return g.groups[name]
}

// Len returns the number of groups.
func (g *GroupedRecords) Len() int {
	return len(g.names)
}

// GroupBySection buckets records by their group column. A record without
// a group column falls into DefaultGroup; a record whose group value is
// blank after trimming is excluded.
func GroupBySection(records []*Record) *GroupedRecords {
	grouped := NewGroupedRecords()
	for _, rec := range records {
		name := DefaultGroup
		if rec.Has(ColumnGroup) {
			name = rec.Get(ColumnGroup)
		}
		if strings.TrimSpace(name) == "" {
			continue
		}
		grouped.Add(name, rec)
	}
	return grouped
}
