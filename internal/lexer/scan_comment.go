package lexer

import (
	"quill/internal/diag"
	"quill/internal/token"
)

// scanComment consumes // up to (not including) the newline, or /* ... */.
// Block comments do not nest. An unterminated block comment runs to end of
// input with a diagnostic.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'

	if lx.cursor.Eat('/') {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.tokenFrom(start, token.LineComment)
	}

	lx.cursor.Bump() // '*'
	for !lx.cursor.EOF() {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.tokenFrom(start, token.BlockComment)
		}
		lx.cursor.Bump()
		if lx.cursor.EOF() {
			break
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.reportUnterminated(diag.LexUnterminatedBlockComment, sp, "block comment")
	return lx.tokenFrom(start, token.BlockComment)
}
