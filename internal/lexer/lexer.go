package lexer

import (
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// Lexer turns a content file into a gap-free token sequence: every byte of
// the input belongs to exactly one token, whitespace and comments included.
// Downstream offset math (surgical edits against the original text) depends
// on that property, so trivia is emitted as real tokens rather than being
// attached to its neighbors.
//
// The lexer never fails: unterminated strings, templates and block comments
// extend to end of input with a diagnostic, and bytes nobody recognizes
// become Invalid tokens.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize runs the lexer to completion, EOF token included.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
		return lx.scanWhitespace()

	case ch == '/':
		if _, b1, ok := lx.cursor.Peek2(); ok && (b1 == '/' || b1 == '*') {
			return lx.scanComment()
		}
		return lx.scanPunct()

	case ch == '"' || ch == '\'':
		return lx.scanString(ch)

	case ch == '`':
		return lx.scanTemplate()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()

	default:
		return lx.scanPunct()
	}
}

func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			break
		}
		lx.cursor.Bump()
		if lx.cursor.EOF() {
			break
		}
	}
	return lx.tokenFrom(start, token.Whitespace)
}

func (lx *Lexer) isNumberAfterDot() bool {
	_, b1, ok := lx.cursor.Peek2()
	return ok && isDec(b1)
}

func (lx *Lexer) tokenFrom(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) reportUnterminated(code diag.Code, sp source.Span, what string) {
	lx.errLex(code, sp, "unterminated "+what)
}
