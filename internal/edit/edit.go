// Package edit queues surgical text replacements against an original buffer
// and renders them in one pass. Edits always reference original-text offsets;
// nothing here ever shifts or rewrites a queued edit.
package edit

import (
	"fmt"

	"quill/internal/diag"
	"quill/internal/source"
)

// Edit replaces the half-open original-text range [Start, End) with NewText.
// A zero-length range is a pure insertion.
type Edit struct {
	Start   uint32
	End     uint32
	NewText string
}

// List accumulates edits for one original text.
//
// Two failure classes are handled differently, mirroring how the rest of the
// system treats malformed input versus caller bugs: an out-of-bounds range is
// dropped with a warning (a no-op is safer than corrupting the file), while
// overlapping edits make Apply fail loudly, because they can only come from a
// logic error in the caller.
type List struct {
	file     source.FileID
	limit    uint32
	edits    []Edit
	reporter diag.Reporter
}

// NewList creates an edit list for a text of textLen bytes.
func NewList(file source.FileID, textLen uint32, reporter diag.Reporter) *List {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &List{
		file:     file,
		limit:    textLen,
		edits:    make([]Edit, 0, 4),
		reporter: reporter,
	}
}

// Add queues an edit. Invalid ranges (start > end, end beyond the text) are
// ignored with a warning diagnostic and reported via the false return.
func (l *List) Add(start, end uint32, newText string) bool {
	if start > end || end > l.limit {
		l.reporter.Report(diag.EditInvalidRange, diag.SevWarning,
			source.Span{File: l.file, Start: min(start, l.limit), End: min(end, l.limit)},
			fmt.Sprintf("ignoring edit with invalid range [%d, %d) in text of length %d", start, end, l.limit),
			nil)
		return false
	}
	l.edits = append(l.edits, Edit{Start: start, End: end, NewText: newText})
	return true
}

// Len returns the number of queued edits.
func (l *List) Len() int {
	return len(l.edits)
}

// Edits returns a read-only view of the queued edits.
func (l *List) Edits() []Edit {
	return l.edits
}

// Clear discards all queued edits, keeping the list reusable.
func (l *List) Clear() {
	l.edits = l.edits[:0]
}
