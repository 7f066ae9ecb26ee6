package lexer

import (
	"unicode/utf8"

	"quill/internal/token"
)

// Multi-byte operators the grouper must see as one token. Everything that
// starts with '<' or '>' is deliberately absent: generic parameter balancing
// works on single angle tokens and disambiguates comparisons by depth.
var punct3 = [...]string{"===", "!==", "...", "**="}

var punct2 = [...]string{
	"=>", "==", "!=", "&&", "||", "??", "?.",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "++", "--",
}

// scanPunct consumes one operator or punctuation token using maximal munch
// over the tables above, falling back to a single byte. Bytes that fit
// nothing at all become Invalid tokens so lexing always makes progress.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, b2, ok := lx.cursor.Peek3(); ok {
		cand := string([]byte{b0, b1, b2})
		for _, op := range punct3 {
			if cand == op {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.cursor.Bump()
				return lx.tokenFrom(start, token.Punct)
			}
		}
	}
	if b0, b1, ok := lx.cursor.Peek2(); ok {
		cand := string([]byte{b0, b1})
		for _, op := range punct2 {
			if cand == op {
				lx.cursor.Bump()
				lx.cursor.Bump()
				return lx.tokenFrom(start, token.Punct)
			}
		}
	}

	b := lx.cursor.Peek()
	switch b {
	case '{', '}', '(', ')', '[', ']', '<', '>',
		':', ';', ',', '.', '=', '?', '!', '|', '&', '^', '~',
		'+', '-', '*', '/', '%', '@', '#':
		lx.cursor.Bump()
		return lx.tokenFrom(start, token.Punct)
	}

	// Unrecognized byte (or malformed UTF-8 head): consume one rune and move on.
	if b >= utf8RuneSelf {
		_, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		for i := 0; i < size; i++ {
			lx.cursor.Bump()
		}
	} else {
		lx.cursor.Bump()
	}
	return lx.tokenFrom(start, token.Invalid)
}
