package token

import (
	"quill/internal/source"
)

// Token represents a single source token with its location.
//
// Offsets always reference the original text the token was produced from;
// they are never recomputed after edits (edits are tracked separately).
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeywordWord reports whether the token is the given keyword.
func (t Token) IsKeywordWord(word string) bool {
	return t.Kind == Keyword && t.Text == word
}

// IsPunct reports whether the token is the given punctuation text.
func (t Token) IsPunct(text string) bool {
	return t.Kind == Punct && t.Text == text
}

// IsLiteral reports whether the token is a string, template or number literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case StringLit, TemplateLit, NumberLit:
		return true
	default:
		return false
	}
}

// IsOpaque reports whether bracket characters inside the token text must be
// ignored by bracket balancing (literal and comment interiors).
func (t Token) IsOpaque() bool {
	switch t.Kind {
	case StringLit, TemplateLit, LineComment, BlockComment:
		return true
	default:
		return false
	}
}
