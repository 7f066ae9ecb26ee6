package edit

import (
	"fmt"
	"sort"
	"strings"
)

// Apply renders the queued edits against original in one pass: slices of the
// original between consecutive edit boundaries, interleaved with replacement
// text, in strictly increasing offset order.
//
// With zero edits the original comes back byte-for-byte. Overlapping edits
// return an error: unlike malformed source, an overlap cannot be a benign
// data condition. Abutting edits (one's End == the next's Start) are allowed.
func (l *List) Apply(original string) (string, error) {
	if len(l.edits) == 0 {
		return original, nil
	}

	sorted := make([]Edit, len(l.edits))
	copy(sorted, l.edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.Start < prev.End {
			return "", fmt.Errorf("edit: overlapping edits [%d,%d) and [%d,%d)", prev.Start, prev.End, cur.Start, cur.End)
		}
	}

	var sb strings.Builder
	sb.Grow(len(original) + 32)
	cursor := uint32(0)
	for _, e := range sorted {
		sb.WriteString(original[cursor:e.Start])
		sb.WriteString(e.NewText)
		cursor = e.End
	}
	sb.WriteString(original[cursor:])
	return sb.String(), nil
}
