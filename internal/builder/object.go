package builder

import (
	"fmt"
	"strings"

	"quill/internal/group"
)

// ObjectBuilder edits one object literal. It holds the shared CodeBuilder
// plus a group id, so every mutation lands in the same edit queue and every
// offset references the same original text.
type ObjectBuilder struct {
	cb *CodeBuilder
	id group.GroupID
}

// Group returns the underlying literal group.
func (o *ObjectBuilder) Group() *group.Group {
	return o.cb.tree.Get(o.id)
}

// FullText returns the literal's original text, braces included.
func (o *ObjectBuilder) FullText() string {
	g := o.Group()
	return o.cb.Original()[g.Span.Start:g.Span.End]
}

// ContentText returns the original text between the braces.
func (o *ObjectBuilder) ContentText() string {
	start, end := o.contentBounds()
	return o.cb.Original()[start:end]
}

// ParseProperties re-derives the ordered property list from the original
// text. It reflects none of the queued edits.
func (o *ObjectBuilder) ParseProperties() []Property {
	return parseProperties(o.cb.tree, o.Group())
}

// PropertyNames returns the property names in document order.
func (o *ObjectBuilder) PropertyNames() []string {
	props := o.ParseProperties()
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Name
	}
	return names
}

// GetProperty returns the named property, if present.
func (o *ObjectBuilder) GetProperty(name string) (Property, bool) {
	for _, p := range o.ParseProperties() {
		if nameEq(p.Name, name) {
			return p, true
		}
	}
	return Property{}, false
}

// PropertyValueText returns the original text of the named property's value.
func (o *ObjectBuilder) PropertyValueText(name string) (string, bool) {
	p, ok := o.GetProperty(name)
	if !ok {
		return "", false
	}
	return o.cb.Original()[p.ValStart:p.ValEnd], true
}

// SetPropertyValue replaces the named property's value with value, touching
// exactly the value span. A missing property is appended instead; a
// shorthand entry is expanded into `name: value`.
func (o *ObjectBuilder) SetPropertyValue(name, value string) error {
	props := o.ParseProperties()
	for _, p := range props {
		if !nameEq(p.Name, name) {
			continue
		}
		if p.Shorthand {
			if !o.cb.edits.Add(p.KeyStart, p.ValEnd, p.Name+": "+value) {
				return fmt.Errorf("edit for property %q rejected", name)
			}
			return nil
		}
		if !o.cb.edits.Add(p.ValStart, p.ValEnd, value) {
			return fmt.Errorf("edit for property %q rejected", name)
		}
		return nil
	}
	return o.addPropertyAt(props, len(props), name, value)
}

// AddPropertyAtIndex inserts `name: value` so it becomes the index-th
// property; index equal to the current count appends.
func (o *ObjectBuilder) AddPropertyAtIndex(index int, name, value string) error {
	return o.addPropertyAt(o.ParseProperties(), index, name, value)
}

// AddPropertyAfterItem inserts `name: value` right after the property called
// existing.
func (o *ObjectBuilder) AddPropertyAfterItem(existing, name, value string) error {
	props := o.ParseProperties()
	for i, p := range props {
		if nameEq(p.Name, existing) {
			return o.addPropertyAt(props, i+1, name, value)
		}
	}
	return fmt.Errorf("property %q not found", existing)
}

// AddObjectAtIndex inserts an empty object literal property at index.
func (o *ObjectBuilder) AddObjectAtIndex(index int, name string) error {
	return o.AddPropertyAtIndex(index, name, "{}")
}

// AddArrayAtIndex inserts an empty array literal property at index.
func (o *ObjectBuilder) AddArrayAtIndex(index int, name string) error {
	return o.AddPropertyAtIndex(index, name, "[]")
}

// AddObjectAfterItem inserts an empty object literal property after existing.
func (o *ObjectBuilder) AddObjectAfterItem(existing, name string) error {
	return o.AddPropertyAfterItem(existing, name, "{}")
}

// AddArrayAfterItem inserts an empty array literal property after existing.
func (o *ObjectBuilder) AddArrayAfterItem(existing, name string) error {
	return o.AddPropertyAfterItem(existing, name, "[]")
}

// RemoveProperty removes the named property together with exactly one
// adjacent comma. Removing the sole property collapses the body to the
// original empty style: space-padded `{ }` only if the source padded with
// spaces, bare `{}` otherwise. Returns false when the property is absent.
func (o *ObjectBuilder) RemoveProperty(name string) bool {
	props := o.ParseProperties()
	idx := -1
	for i, p := range props {
		if nameEq(p.Name, name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	original := o.cb.Original()
	start, end := o.contentBounds()

	if len(props) == 1 {
		repl := ""
		content := original[start:end]
		if !strings.ContainsRune(content, '\n') &&
			strings.HasPrefix(content, " ") && strings.HasSuffix(content, " ") {
			repl = " "
		}
		return o.cb.edits.Add(start, end, repl)
	}

	p := props[idx]
	rmStart, rmEnd := p.KeyStart, p.ValEnd
	if p.CommaTok >= 0 {
		rmEnd = o.cb.tree.Tokens[p.CommaTok].Span.End
	} else if prev := props[idx-1]; prev.CommaTok >= 0 {
		// last property: take the separator before it instead
		rmStart = o.cb.tree.Tokens[prev.CommaTok].Span.Start
	}

	exStart, exEnd, expanded := expandToLine(original, rmStart, rmEnd, start, end)
	if expanded {
		rmStart, rmEnd = exStart, exEnd
	} else if p.CommaTok >= 0 {
		// single-line removal: swallow the spacing that followed the comma
		for rmEnd < end && original[rmEnd] == ' ' {
			rmEnd++
		}
	}
	return o.cb.edits.Add(rmStart, rmEnd, "")
}

// FindObject returns a builder for the nested object literal stored under
// the named property.
func (o *ObjectBuilder) FindObject(name string) (*ObjectBuilder, bool) {
	id, ok := o.findChildLiteral(group.ObjectLiteral, name)
	if !ok {
		return nil, false
	}
	return &ObjectBuilder{cb: o.cb, id: id}, true
}

// FindArray returns a builder for the nested array literal stored under the
// named property.
func (o *ObjectBuilder) FindArray(name string) (*ArrayBuilder, bool) {
	id, ok := o.findChildLiteral(group.ArrayLiteral, name)
	if !ok {
		return nil, false
	}
	return &ArrayBuilder{cb: o.cb, id: id}, true
}

func (o *ObjectBuilder) findChildLiteral(kind group.Kind, name string) (group.GroupID, bool) {
	for _, c := range o.Group().Children {
		g := o.cb.tree.Get(c)
		if g.Kind == kind && nameEq(g.Name, name) {
			return c, true
		}
	}
	return group.NoGroupID, false
}

// contentBounds returns the original-text offsets between the braces. For
// unclosed literals the group's best-effort end stands in for the close.
func (o *ObjectBuilder) contentBounds() (uint32, uint32) {
	g := o.Group()
	toks := o.cb.tree.Tokens
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

// addPropertyAt renders `name: value` into the body according to the
// object's detected style and queues the insertion.
func (o *ObjectBuilder) addPropertyAt(props []Property, index int, name, value string) error {
	if index < 0 || index > len(props) {
		return fmt.Errorf("property index %d out of range [0, %d]", index, len(props))
	}
	entry := name + ": " + value
	start, end := o.contentBounds()
	original := o.cb.Original()
	st := detectStyle(original, start, end, props)

	if len(props) == 0 {
		// first property materializes the empty body
		var body string
		switch {
		case st.multiline:
			body = "\n" + st.propIndent + entry + "\n" + st.closeIndent
		case st.spacePadded:
			body = " " + entry + " "
		default:
			body = entry
		}
		if !o.cb.edits.Add(start, end, body) {
			return fmt.Errorf("edit for property %q rejected", name)
		}
		return nil
	}

	var at uint32
	var text string
	switch {
	case index < len(props) && st.multiline:
		at = props[index].KeyStart
		text = entry + ",\n" + st.propIndent
	case index < len(props):
		at = props[index].KeyStart
		text = entry + ", "
	case st.multiline && st.trailingComma:
		last := props[len(props)-1]
		at = o.cb.tree.Tokens[last.CommaTok].Span.End
		text = "\n" + st.propIndent + entry + ","
	case st.multiline:
		last := props[len(props)-1]
		at = last.ValEnd
		text = ",\n" + st.propIndent + entry
	default:
		// single-line append; an existing trailing comma stays where it is
		last := props[len(props)-1]
		at = last.ValEnd
		text = ", " + entry
	}
	if !o.cb.edits.Add(at, at, text) {
		return fmt.Errorf("edit for property %q rejected", name)
	}
	return nil
}

// expandToLine widens a removal range to its whole line, trailing newline
// included, when nothing but whitespace would otherwise remain on it. The
// range never grows past the body bounds [lo, hi).
func expandToLine(text string, rmStart, rmEnd, lo, hi uint32) (uint32, uint32, bool) {
	ls := uint32(lineStartAt(text, rmStart))
	if ls < lo {
		ls = lo
	}
	for i := ls; i < rmStart; i++ {
		if text[i] != ' ' && text[i] != '\t' {
			return rmStart, rmEnd, false
		}
	}
	j := rmEnd
	for j < hi && (text[j] == ' ' || text[j] == '\t') {
		j++
	}
	if j < hi && text[j] == '\n' {
		return ls, j + 1, true
	}
	return rmStart, rmEnd, false
}
