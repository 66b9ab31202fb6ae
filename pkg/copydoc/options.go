// Package copydoc converts copy-text tables into formatted Word review
// documents and merges edited documents back, keyed by record id.
package copydoc

// Options configures reverse conversion and schema inference.
type Options struct {
	// PreserveFormatting selects Markdown-annotated extraction (bold,
	// italic, lists, links) over plain text. If nil, defaults to true.
	PreserveFormatting *bool
}

// DefaultOptions returns the default conversion options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldPreserveFormatting returns whether extraction keeps formatting.
func (o Options) ShouldPreserveFormatting() bool {
	if o.PreserveFormatting != nil {
		return *o.PreserveFormatting
	}
	return true
}
