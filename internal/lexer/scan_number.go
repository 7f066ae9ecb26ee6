package lexer

import (
	"quill/internal/token"
)

// scanNumber consumes decimal, hex/oct/bin, float and exponent forms,
// numeric separators included. Validation is intentionally shallow: the
// editor only needs the literal's extent, not its value.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X' || b1 == 'b' || b1 == 'B' || b1 == 'o' || b1 == 'O') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			b := lx.cursor.Peek()
			if isHex(b) || b == '_' {
				lx.cursor.Bump()
				continue
			}
			break
		}
		if lx.cursor.Peek() == 'n' { // bigint suffix
			lx.cursor.Bump()
		}
		return lx.tokenFrom(start, token.NumberLit)
	}

	lx.eatDigits()
	if lx.cursor.Peek() == '.' && lx.isNumberAfterDot() {
		lx.cursor.Bump()
		lx.eatDigits()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			lx.eatDigits()
		} else {
			lx.cursor.Reset(m)
		}
	}

	if lx.cursor.Peek() == 'n' { // bigint suffix
		lx.cursor.Bump()
	}

	return lx.tokenFrom(start, token.NumberLit)
}

func (lx *Lexer) eatDigits() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isDec(b) || b == '_' {
			lx.cursor.Bump()
			continue
		}
		break
	}
}
