package group

import (
	"strings"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// matchingClose maps an opening bracket to its close.
func matchingClose(open string) string {
	switch open {
	case "{":
		return "}"
	case "[":
		return "]"
	case "(":
		return ")"
	}
	return ""
}

// findBalancedClose returns the token index of the close matching the open
// bracket at openIdx, counting only brackets of the same family. Literal and
// comment tokens are single opaque tokens, so their interior bytes can never
// be miscounted here.
func (gr *Grouper) findBalancedClose(openIdx int) (int, bool) {
	open := gr.tokenAt(openIdx)
	close := matchingClose(open.Text)
	if close == "" {
		return openIdx, false
	}
	depth := 1
	for i := openIdx + 1; i < len(gr.toks); i++ {
		t := gr.toks[i]
		if t.Kind != token.Punct {
			continue
		}
		switch t.Text {
		case open.Text:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return openIdx, false
}

// skipBalanced consumes from the current open bracket through its matching
// close. On unclosed input it consumes to EOF and reports.
func (gr *Grouper) skipBalanced(code diag.Code, what string) {
	openIdx := gr.ts.Pos()
	open := gr.ts.Next()
	closeIdx, ok := gr.findBalancedClose(openIdx)
	if !ok {
		gr.report(code, open.Span, "unclosed "+what)
		for !gr.ts.EOF() {
			gr.ts.Next()
		}
		return
	}
	gr.ts.Reset(token.Mark(closeIdx + 1))
}

// readName consumes the declaration name identifier. Missing names produce a
// diagnostic and an empty name, not a failure: a half-typed declaration must
// still group so the rest of the file stays navigable.
func (gr *Grouper) readName(declWord string) string {
	t := gr.ts.PeekSignificant()
	if t.Kind == token.Ident {
		gr.ts.NextSignificant()
		return t.Text
	}
	gr.report(diag.GrpMissingName, t.Span, "missing name after '"+declWord+"'")
	return ""
}

// readGenericParams reads an optional generic parameter list starting at
// '<', returning its raw text (angle brackets included). Comparison operators
// inside default-type expressions are tolerated: '<' and '>' only count at
// zero round/curly/square depth, and a ';' or '{' at zero depth aborts the
// attempt (it was a comparison after all).
func (gr *Grouper) readGenericParams() string {
	if !gr.ts.PeekSignificant().IsPunct("<") {
		return ""
	}
	m := gr.ts.Mark()
	openTok := gr.ts.NextSignificant()
	angle := 1
	depth := 0
	for !gr.ts.EOF() {
		t := gr.ts.Next()
		if t.Kind != token.Punct {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
			if depth < 0 {
				gr.ts.Reset(m)
				return ""
			}
		case "<":
			if depth == 0 {
				angle++
			}
		case ">":
			if depth == 0 {
				angle--
				if angle == 0 {
					sp := source.Span{File: gr.file.ID, Start: openTok.Span.Start, End: t.Span.End}
					return gr.text(sp)
				}
			}
		case ";":
			if depth == 0 {
				gr.ts.Reset(m)
				return ""
			}
		}
	}
	gr.warn(diag.GrpUnclosedAngle, openTok.Span, "unclosed generic parameter list")
	gr.ts.Reset(m)
	return ""
}

// typeTextStop tells readTypeText which top-level punctuation ends the read.
type typeTextStop struct {
	texts []string
}

func stopAt(texts ...string) typeTextStop {
	return typeTextStop{texts: texts}
}

func (s typeTextStop) matches(text string) bool {
	for _, t := range s.texts {
		if t == text {
			return true
		}
	}
	return false
}

// readTypeText consumes a type expression and returns its trimmed raw text.
// It tracks round/curly/square depth and nested generic '<...>' so union '|',
// intersection '&', conditional '? :' and mapped-type bodies never terminate
// the read early; only a stop token at zero depth does. A close bracket that
// would take depth negative (the enclosing construct's own close) stops the
// read without consuming it.
func (gr *Grouper) readTypeText(stop typeTextStop) string {
	gr.ts.SkipTrivia()
	startOff := gr.ts.Peek().Span.Start
	endOff := startOff
	depth := 0
	angle := 0
	for !gr.ts.EOF() {
		t := gr.ts.Peek()
		if t.Kind == token.Punct {
			switch {
			case depth == 0 && angle == 0 && stop.matches(t.Text):
				return strings.TrimSpace(gr.text(source.Span{File: gr.file.ID, Start: startOff, End: endOff}))
			case t.Text == "(" || t.Text == "[" || t.Text == "{":
				depth++
			case t.Text == ")" || t.Text == "]" || t.Text == "}":
				if depth == 0 {
					return strings.TrimSpace(gr.text(source.Span{File: gr.file.ID, Start: startOff, End: endOff}))
				}
				depth--
			case t.Text == "<" && depth == 0:
				angle++
			case t.Text == ">" && depth == 0 && angle > 0:
				angle--
			}
		}
		gr.ts.Next()
		if !t.Kind.IsTrivia() {
			endOff = t.Span.End
		}
	}
	return strings.TrimSpace(gr.text(source.Span{File: gr.file.ID, Start: startOff, End: endOff}))
}

// scanToStmtEnd consumes tokens until a ';' at zero bracket depth
// (consumed, statement terminator) or — tolerating missing semicolons — a
// new top-level declaration keyword at the start of a line. Returns whether
// a terminator was consumed.
func (gr *Grouper) scanToStmtEnd() bool {
	depth := 0
	sawNewline := false
	for !gr.ts.EOF() {
		t := gr.ts.Peek()
		if t.Kind.IsTrivia() {
			if t.Kind == token.Whitespace && strings.Contains(t.Text, "\n") {
				sawNewline = true
			}
			gr.ts.Next()
			continue
		}
		if depth == 0 && sawNewline && t.Kind == token.Keyword &&
			(token.IsDeclStarter(t.Text) || token.IsDeclModifier(t.Text)) {
			return false
		}
		sawNewline = false
		if t.Kind == token.Punct {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
				if depth < 0 {
					return false
				}
			case ";":
				if depth == 0 {
					gr.ts.Next()
					return true
				}
			}
		}
		gr.ts.Next()
	}
	return false
}

// unquote strips one layer of matching quotes from a literal's text.
func unquote(text string) string {
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' || first == '\'' || first == '`') && last == first {
			return text[1 : len(text)-1]
		}
		// unterminated literal: strip just the opening quote
		if first == '"' || first == '\'' || first == '`' {
			return text[1:]
		}
	}
	return text
}
