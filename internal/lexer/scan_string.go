package lexer

import (
	"quill/internal/diag"
	"quill/internal/token"
)

// scanString consumes a quoted string literal ('...' or "..."). Escapes are
// skipped, not validated. A newline or end of input before the closing quote
// ends the token where it stands, with a diagnostic; the token is still a
// StringLit so downstream stages can treat its interior as opaque.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			return lx.tokenFrom(start, token.StringLit)
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.reportUnterminated(diag.LexUnterminatedString, sp, "string literal")
			return lx.tokenFrom(start, token.StringLit)
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.reportUnterminated(diag.LexUnterminatedString, sp, "string literal")
	return lx.tokenFrom(start, token.StringLit)
}
