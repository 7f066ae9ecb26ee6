package token

// Kind represents the category of a content-source token.
//
// The set is deliberately closed: the structural grouper only needs to
// distinguish keywords, identifiers, punctuation, the three literal families
// and trivia. Everything inside string/template/comment tokens is opaque.
type Kind uint8

const (
	// Invalid indicates an unrecognized byte sequence (catch-all, never fatal).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Keyword represents a declaration or modifier keyword; Text holds the word.
	Keyword
	// Ident represents an identifier token.
	Ident
	// Punct represents a punctuation or operator token; Text holds the characters.
	Punct

	// StringLit represents a single- or double-quoted string literal.
	StringLit
	// TemplateLit represents a backtick template literal, interpolations included.
	TemplateLit
	// NumberLit represents a numeric literal.
	NumberLit

	// LineComment represents a // comment up to (not including) the newline.
	LineComment
	// BlockComment represents a /* ... */ comment.
	BlockComment
	// Whitespace represents a run of spaces, tabs and newlines.
	Whitespace
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Keyword:
		return "Keyword"
	case Ident:
		return "Ident"
	case Punct:
		return "Punct"
	case StringLit:
		return "StringLit"
	case TemplateLit:
		return "TemplateLit"
	case NumberLit:
		return "NumberLit"
	case LineComment:
		return "LineComment"
	case BlockComment:
		return "BlockComment"
	case Whitespace:
		return "Whitespace"
	}
	return "Unknown"
}

// IsTrivia reports whether the token carries no structural meaning.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, LineComment, BlockComment:
		return true
	default:
		return false
	}
}
