package builder

import (
	"fmt"

	"quill/internal/group"
)

// Element is one derived entry of an array literal, addressed by its value
// span in the original text.
type Element struct {
	Start uint32
	End   uint32
	// CommaTok is the token index of the comma following this element, -1 if
	// none.
	CommaTok int
}

// ArrayBuilder edits one array literal through the shared edit queue.
type ArrayBuilder struct {
	cb *CodeBuilder
	id group.GroupID
}

// Group returns the underlying literal group.
func (a *ArrayBuilder) Group() *group.Group {
	return a.cb.tree.Get(a.id)
}

// FullText returns the literal's original text, brackets included.
func (a *ArrayBuilder) FullText() string {
	g := a.Group()
	return a.cb.Original()[g.Span.Start:g.Span.End]
}

// ContentText returns the original text between the brackets.
func (a *ArrayBuilder) ContentText() string {
	start, end := a.contentBounds()
	return a.cb.Original()[start:end]
}

// ParseElements re-derives the ordered element list from the original text.
func (a *ArrayBuilder) ParseElements() []Element {
	g := a.Group()
	openTok, closeTok := literalBounds(a.cb.tree, g)
	if openTok < 0 {
		return nil
	}
	toks := a.cb.tree.Tokens
	segs := splitTopLevel(toks, openTok, closeTok)

	elems := make([]Element, 0, len(segs))
	for _, seg := range segs {
		start, end := uint32(0), uint32(0)
		seen := false
		for i := seg.first; i < seg.end; i++ {
			t := toks[i]
			if t.Kind.IsTrivia() {
				continue
			}
			if !seen {
				start = t.Span.Start
				seen = true
			}
			end = t.Span.End
		}
		if seen {
			elems = append(elems, Element{Start: start, End: end, CommaTok: seg.comma})
		}
	}
	return elems
}

// Len returns the number of top-level elements.
func (a *ArrayBuilder) Len() int {
	return len(a.ParseElements())
}

// ElementText returns the original text of the index-th element.
func (a *ArrayBuilder) ElementText(index int) (string, bool) {
	elems := a.ParseElements()
	if index < 0 || index >= len(elems) {
		return "", false
	}
	e := elems[index]
	return a.cb.Original()[e.Start:e.End], true
}

// AddElementAtIndex inserts value so it becomes the index-th element; index
// equal to the current count appends.
func (a *ArrayBuilder) AddElementAtIndex(index int, value string) error {
	elems := a.ParseElements()
	if index < 0 || index > len(elems) {
		return fmt.Errorf("element index %d out of range [0, %d]", index, len(elems))
	}
	start, end := a.contentBounds()
	st := a.style(elems)

	if len(elems) == 0 {
		var body string
		switch {
		case st.multiline:
			body = "\n" + st.propIndent + value + "\n" + st.closeIndent
		case st.spacePadded:
			body = " " + value + " "
		default:
			body = value
		}
		if !a.cb.edits.Add(start, end, body) {
			return fmt.Errorf("element edit rejected")
		}
		return nil
	}

	var at uint32
	var text string
	switch {
	case index < len(elems) && st.multiline:
		at = elems[index].Start
		text = value + ",\n" + st.propIndent
	case index < len(elems):
		at = elems[index].Start
		text = value + ", "
	case st.multiline && st.trailingComma:
		last := elems[len(elems)-1]
		at = a.cb.tree.Tokens[last.CommaTok].Span.End
		text = "\n" + st.propIndent + value + ","
	case st.multiline:
		last := elems[len(elems)-1]
		at = last.End
		text = ",\n" + st.propIndent + value
	default:
		last := elems[len(elems)-1]
		at = last.End
		text = ", " + value
	}
	if !a.cb.edits.Add(at, at, text) {
		return fmt.Errorf("element edit rejected")
	}
	return nil
}

// AppendElement inserts value after the current last element.
func (a *ArrayBuilder) AppendElement(value string) error {
	return a.AddElementAtIndex(len(a.ParseElements()), value)
}

// RemoveElementAtIndex removes the index-th element and exactly one adjacent
// comma. Returns false when index is out of range.
func (a *ArrayBuilder) RemoveElementAtIndex(index int) bool {
	elems := a.ParseElements()
	if index < 0 || index >= len(elems) {
		return false
	}

	original := a.cb.Original()
	start, end := a.contentBounds()

	if len(elems) == 1 {
		repl := ""
		content := original[start:end]
		if !containsNewline(content) && len(content) > 0 &&
			content[0] == ' ' && content[len(content)-1] == ' ' {
			repl = " "
		}
		return a.cb.edits.Add(start, end, repl)
	}

	e := elems[index]
	rmStart, rmEnd := e.Start, e.End
	if e.CommaTok >= 0 {
		rmEnd = a.cb.tree.Tokens[e.CommaTok].Span.End
	} else if prev := elems[index-1]; prev.CommaTok >= 0 {
		rmStart = a.cb.tree.Tokens[prev.CommaTok].Span.Start
	}

	exStart, exEnd, expanded := expandToLine(original, rmStart, rmEnd, start, end)
	if expanded {
		rmStart, rmEnd = exStart, exEnd
	} else if e.CommaTok >= 0 {
		for rmEnd < end && original[rmEnd] == ' ' {
			rmEnd++
		}
	}
	return a.cb.edits.Add(rmStart, rmEnd, "")
}

// FindObjectAt returns a builder for the index-th object-literal child of
// the array, counting only object children in document order.
func (a *ArrayBuilder) FindObjectAt(index int) (*ObjectBuilder, bool) {
	n := 0
	for _, c := range a.Group().Children {
		if a.cb.tree.Get(c).Kind != group.ObjectLiteral {
			continue
		}
		if n == index {
			return &ObjectBuilder{cb: a.cb, id: c}, true
		}
		n++
	}
	return nil, false
}

// FindArrayAt returns a builder for the index-th array-literal child.
func (a *ArrayBuilder) FindArrayAt(index int) (*ArrayBuilder, bool) {
	n := 0
	for _, c := range a.Group().Children {
		if a.cb.tree.Get(c).Kind != group.ArrayLiteral {
			continue
		}
		if n == index {
			return &ArrayBuilder{cb: a.cb, id: c}, true
		}
		n++
	}
	return nil, false
}

func (a *ArrayBuilder) contentBounds() (uint32, uint32) {
	g := a.Group()
	toks := a.cb.tree.Tokens
	start := toks[g.OpenTok].Span.End
	end := g.Span.End
	if g.CloseTok >= 0 {
		end = toks[g.CloseTok].Span.Start
	}
	if end < start {
		end = start
	}
	return start, end
}

// style adapts element spans to the shared detection routine.
func (a *ArrayBuilder) style(elems []Element) objectStyle {
	props := make([]Property, len(elems))
	for i, e := range elems {
		props[i] = Property{KeyStart: e.Start, KeyEnd: e.End, ValStart: e.Start, ValEnd: e.End, CommaTok: e.CommaTok}
	}
	start, end := a.contentBounds()
	return detectStyle(a.cb.Original(), start, end, props)
}

func containsNewline(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return true
		}
	}
	return false
}
