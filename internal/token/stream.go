package token

import (
	"quill/internal/source"
)

// Stream is a rewindable cursor over a token sequence.
//
// Every higher-level pass (the grouper, the builders' re-scans) walks tokens
// through a Stream instead of indexing the slice directly, so lookahead and
// backtracking stay in one place. The slice is never mutated.
type Stream struct {
	tokens []Token
	pos    int
}

// NewStream creates a stream positioned at the first token.
func NewStream(tokens []Token) *Stream {
	return &Stream{tokens: tokens}
}

// Mark is a saved stream position for later Reset.
type Mark int

// Mark saves the current position.
func (s *Stream) Mark() Mark {
	return Mark(s.pos)
}

// Reset rewinds the stream to a previously saved position.
func (s *Stream) Reset(m Mark) {
	s.pos = int(m)
}

// Pos returns the current token index.
func (s *Stream) Pos() int {
	return s.pos
}

// Len returns the total number of tokens.
func (s *Stream) Len() int {
	return len(s.tokens)
}

// At returns the token at absolute index i, saturating to EOF.
func (s *Stream) At(i int) Token {
	if i < 0 || i >= len(s.tokens) {
		return s.eofToken()
	}
	return s.tokens[i]
}

// EOF reports whether the stream is exhausted.
func (s *Stream) EOF() bool {
	return s.pos >= len(s.tokens) || s.tokens[s.pos].Kind == EOF
}

// Peek returns the current token without consuming it. After the end it
// always returns EOF.
func (s *Stream) Peek() Token {
	return s.At(s.pos)
}

// PeekAt returns the token n positions ahead without consuming anything.
func (s *Stream) PeekAt(n int) Token {
	return s.At(s.pos + n)
}

// Next consumes and returns the current token. After the end it always
// returns EOF.
func (s *Stream) Next() Token {
	t := s.At(s.pos)
	if s.pos < len(s.tokens) {
		s.pos++
	}
	return t
}

// SkipTrivia advances past whitespace and comment tokens.
func (s *Stream) SkipTrivia() {
	for !s.EOF() && s.tokens[s.pos].Kind.IsTrivia() {
		s.pos++
	}
}

// PeekSignificant returns the next non-trivia token without consuming anything.
func (s *Stream) PeekSignificant() Token {
	i := s.pos
	for i < len(s.tokens) && s.tokens[i].Kind.IsTrivia() {
		i++
	}
	return s.At(i)
}

// NextSignificant skips trivia, then consumes and returns one token.
func (s *Stream) NextSignificant() Token {
	s.SkipTrivia()
	return s.Next()
}

// EatPunct consumes the next significant token if it is the given punctuation.
func (s *Stream) EatPunct(text string) bool {
	m := s.Mark()
	t := s.NextSignificant()
	if t.IsPunct(text) {
		return true
	}
	s.Reset(m)
	return false
}

// EatKeyword consumes the next significant token if it is the given keyword.
func (s *Stream) EatKeyword(word string) bool {
	m := s.Mark()
	t := s.NextSignificant()
	if t.IsKeywordWord(word) {
		return true
	}
	s.Reset(m)
	return false
}

// EatIdent consumes the next significant token if it is an identifier.
func (s *Stream) EatIdent() (Token, bool) {
	m := s.Mark()
	t := s.NextSignificant()
	if t.Kind == Ident {
		return t, true
	}
	s.Reset(m)
	return Token{}, false
}

func (s *Stream) eofToken() Token {
	var sp source.Span
	if n := len(s.tokens); n > 0 {
		last := s.tokens[n-1].Span
		sp = source.Span{File: last.File, Start: last.End, End: last.End}
	}
	return Token{Kind: EOF, Span: sp}
}
