package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"quill/internal/diag"
	"quill/internal/token"
)

// scanIdentOrKeyword consumes an identifier and classifies it against the
// keyword table. Unicode identifiers are accepted (authors name characters
// and passages in their own language).
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b >= utf8RuneSelf {
			r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
			if r == utf8.RuneError && size <= 1 {
				break
			}
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			for i := 0; i < size; i++ {
				lx.cursor.Bump()
			}
			continue
		}
		break
	}

	// A non-letter rune (or a malformed UTF-8 head) in starter position:
	// the loop above consumed nothing, and a zero-width token would stall
	// the tokenize loop. Take one rune and mark it Invalid instead.
	if lx.cursor.Off == uint32(start) {
		_, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		for i := 0; i < size; i++ {
			lx.cursor.Bump()
		}
		tok := lx.tokenFrom(start, token.Invalid)
		lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character "+strconv.Quote(tok.Text))
		return tok
	}

	tok := lx.tokenFrom(start, token.Ident)
	if token.LookupKeyword(tok.Text) {
		tok.Kind = token.Keyword
	}
	return tok
}
