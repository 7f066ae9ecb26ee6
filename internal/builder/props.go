package builder

import (
	"quill/internal/group"
	"quill/internal/token"
)

// Property is one derived `name: value` entry of an object literal.
//
// Properties are ephemeral: they are re-derived from the original text on
// every ParseProperties call and never cached, because queued edits shift
// offsets only at render time. All offsets reference the original text.
type Property struct {
	Name string
	// Shorthand marks `{ a }` entries whose value span equals the key span.
	Shorthand bool
	KeyStart  uint32
	KeyEnd    uint32
	ValStart  uint32
	ValEnd    uint32
	// CommaTok is the token index of the comma following this entry, -1 if none.
	CommaTok int
}

// segment is a token index range [first, end) between top-level commas.
type segment struct {
	first int
	end   int
	comma int // following comma token index, -1 if none
}

// splitTopLevel splits the token range (openTok, closeTok) of a literal into
// comma-separated segments, counting bracket depth so commas nested in
// values, calls or inner literals never split.
func splitTopLevel(toks []token.Token, openTok, closeTok int) []segment {
	var segs []segment
	depth := 0
	first := -1
	for i := openTok + 1; i < closeTok; i++ {
		t := toks[i]
		if t.Kind.IsTrivia() {
			continue
		}
		if t.Kind == token.Punct {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			case ",":
				if depth == 0 {
					if first >= 0 {
						segs = append(segs, segment{first: first, end: i, comma: i})
						first = -1
					}
					continue
				}
			}
		}
		if first < 0 {
			first = i
		}
	}
	if first >= 0 {
		segs = append(segs, segment{first: first, end: closeTok, comma: -1})
	}
	return segs
}

// parseProperties derives the ordered property list of an object literal
// group by re-scanning its token range.
func parseProperties(tree *group.Tree, g *group.Group) []Property {
	openTok, closeTok := literalBounds(tree, g)
	if openTok < 0 {
		return nil
	}
	toks := tree.Tokens
	segs := splitTopLevel(toks, openTok, closeTok)

	props := make([]Property, 0, len(segs))
	for _, seg := range segs {
		p, ok := propertyFromSegment(toks, seg)
		if ok {
			props = append(props, p)
		}
	}
	return props
}

// propertyFromSegment interprets one comma-separated segment as a property.
// Spread entries and segments with no usable key are skipped.
func propertyFromSegment(toks []token.Token, seg segment) (Property, bool) {
	// locate the first top-level ':' to split key from value
	colon := -1
	depth := 0
	for i := seg.first; i < seg.end; i++ {
		t := toks[i]
		if t.Kind != token.Punct {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case ":":
			if depth == 0 {
				colon = i
			}
		}
		if colon >= 0 {
			break
		}
	}

	key := toks[seg.first]
	if key.IsPunct("...") {
		return Property{}, false
	}

	p := Property{CommaTok: seg.comma}
	switch key.Kind {
	case token.Ident, token.Keyword:
		p.Name = key.Text
	case token.StringLit, token.NumberLit:
		p.Name = unquoteKey(key.Text)
	default:
		return Property{}, false
	}
	p.KeyStart = key.Span.Start
	p.KeyEnd = key.Span.End

	if colon < 0 {
		// shorthand (or an object method, which mutation calls leave alone)
		p.Shorthand = true
		p.ValStart = key.Span.Start
		p.ValEnd = key.Span.End
		return p, true
	}

	// value = first..last significant token after the colon
	valStart, valEnd := uint32(0), uint32(0)
	seen := false
	for i := colon + 1; i < seg.end; i++ {
		t := toks[i]
		if t.Kind.IsTrivia() {
			continue
		}
		if !seen {
			valStart = t.Span.Start
			seen = true
		}
		valEnd = t.Span.End
	}
	if !seen {
		// `name:` with nothing after it (mid-edit file); value is empty at the colon's end
		valStart = toks[colon].Span.End
		valEnd = valStart
	}
	p.ValStart = valStart
	p.ValEnd = valEnd
	return p, true
}

// literalBounds returns the open/close bracket token indices of a literal
// group. For unclosed literals the group's last token stands in for the
// close so derivation stays best-effort.
func literalBounds(tree *group.Tree, g *group.Group) (openTok, closeTok int) {
	openTok = g.OpenTok
	closeTok = g.CloseTok
	if openTok < 0 {
		return -1, -1
	}
	if closeTok < 0 {
		closeTok = g.EndTok
		if closeTok <= openTok {
			closeTok = openTok + 1
		}
	}
	return openTok, closeTok
}

func unquoteKey(text string) string {
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' || first == '\'') && last == first {
			return text[1 : len(text)-1]
		}
	}
	return text
}
