package lexer

import (
	"quill/internal/diag"
	"quill/internal/token"
)

// scanTemplate consumes a backtick template literal as a single token.
// `${...}` interpolations re-enter full scanning (nested strings, templates
// and comments stay opaque) until the matching `}`, but the whole construct
// still collapses into one TemplateLit token: the grouper never needs to see
// inside, it only must not miscount braces there.
func (lx *Lexer) scanTemplate() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening backtick
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '`' {
			lx.cursor.Bump()
			return lx.tokenFrom(start, token.TemplateLit)
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '$' && b1 == '{' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.skipInterpolation()
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.reportUnterminated(diag.LexUnterminatedTemplate, sp, "template literal")
	return lx.tokenFrom(start, token.TemplateLit)
}

// skipInterpolation consumes interpolation content up to and including the
// matching '}'. Runs out at EOF without closing; the caller reports the
// surrounding template as unterminated.
func (lx *Lexer) skipInterpolation() {
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		b := lx.cursor.Peek()
		switch b {
		case '{':
			lx.cursor.Bump()
			depth++
		case '}':
			lx.cursor.Bump()
			depth--
		case '\'', '"':
			lx.scanString(b)
		case '`':
			lx.scanTemplate()
		case '/':
			if _, b1, ok := lx.cursor.Peek2(); ok && (b1 == '/' || b1 == '*') {
				lx.scanComment()
			} else {
				lx.cursor.Bump()
			}
		default:
			lx.cursor.Bump()
		}
	}
}
