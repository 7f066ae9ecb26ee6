package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/source"
	"quill/internal/token"
)

// testReporter collects every diagnostic the lexer reports.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ts", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

// expectTokens checks the token kind sequence, EOF excluded.
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)

	if len(tokens) > 0 && tokens[len(tokens)-1].Kind == token.EOF {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\nerrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %s, got %s (%q)\ninput: %q",
				i, expected[i], tok.Kind, tok.Text, input)
		}
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, fmt.Sprintf("%s(%q)", tok.Kind, tok.Text))
	}
	return strings.Join(parts, " ")
}

func TestGapFreeCoverage(t *testing.T) {
	inputs := []string{
		"const x = 1;\n",
		"// comment\nclass Foo { bar(): void {} }\n",
		"const s = 'a\\'b' + `tpl ${x + 1}` /* block */;\n",
		"let äöü = 0b1010_1n;\r\nconst y = .5e-3;",
		"import { a as b } from './mod';\n\n\texport default   class {}",
	}
	for _, input := range inputs {
		lx, _ := makeTestLexer(input)
		tokens := collectAllTokens(lx)

		var rebuilt strings.Builder
		var prevEnd uint32
		for _, tok := range tokens {
			if tok.Span.Start != prevEnd {
				t.Fatalf("gap before %s at offset %d (prev ended %d)\ninput: %q",
					tok.Kind, tok.Span.Start, prevEnd, input)
			}
			rebuilt.WriteString(tok.Text)
			prevEnd = tok.Span.End
		}
		if rebuilt.String() != input {
			t.Errorf("token texts do not reconstruct the input\ninput: %q\nrebuilt: %q",
				input, rebuilt.String())
		}
	}
}

func TestBasicDeclaration(t *testing.T) {
	expectTokens(t, "const x = 1;", []token.Kind{
		token.Keyword, token.Whitespace, token.Ident, token.Whitespace,
		token.Punct, token.Whitespace, token.NumberLit, token.Punct,
	})
}

func TestKeywordsAndIdents(t *testing.T) {
	lx, _ := makeTestLexer("class classes Class")
	tokens := collectAllTokens(lx)

	if tokens[0].Kind != token.Keyword || tokens[0].Text != "class" {
		t.Errorf("expected keyword 'class', got %s %q", tokens[0].Kind, tokens[0].Text)
	}
	if tokens[2].Kind != token.Ident || tokens[2].Text != "classes" {
		t.Errorf("expected ident 'classes', got %s %q", tokens[2].Kind, tokens[2].Text)
	}
	if tokens[4].Kind != token.Ident || tokens[4].Text != "Class" {
		t.Errorf("keywords must be case-sensitive, got %s %q", tokens[4].Kind, tokens[4].Text)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		text  string
	}{
		{"double", `"hello"`, `"hello"`},
		{"single", `'world'`, `'world'`},
		{"escaped quote", `'a\'b'`, `'a\'b'`},
		{"escaped backslash", `"a\\"`, `"a\\"`},
		{"brace inside", `"{ not a brace }"`, `"{ not a brace }"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, reporter := makeTestLexer(tt.input)
			tokens := collectAllTokens(lx)
			if tokens[0].Kind != token.StringLit || tokens[0].Text != tt.text {
				t.Errorf("got %s %q, want StringLit %q", tokens[0].Kind, tokens[0].Text, tt.text)
			}
			if reporter.HasErrors() {
				t.Errorf("unexpected errors: %v", reporter.ErrorMessages())
			}
		})
	}
}

func TestUnterminatedString(t *testing.T) {
	tests := []string{
		`"no close`,
		"'newline\nrest'",
	}
	for _, input := range tests {
		lx, reporter := makeTestLexer(input)
		tokens := collectAllTokens(lx)
		if tokens[0].Kind != token.StringLit {
			t.Errorf("input %q: first token %s, want StringLit", input, tokens[0].Kind)
		}
		if !reporter.HasErrors() {
			t.Errorf("input %q: expected an unterminated-string diagnostic", input)
		}
	}
}

func TestTemplateLiteral(t *testing.T) {
	input := "`before ${ {a: '}'} } after`"
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)

	if tokens[0].Kind != token.TemplateLit || tokens[0].Text != input {
		t.Errorf("template not scanned as one token: %s %q", tokens[0].Kind, tokens[0].Text)
	}
	if tokens[1].Kind != token.EOF {
		t.Errorf("expected EOF after template, got %s", tokens[1].Kind)
	}
	if reporter.HasErrors() {
		t.Errorf("unexpected errors: %v", reporter.ErrorMessages())
	}
}

func TestUnterminatedTemplate(t *testing.T) {
	lx, reporter := makeTestLexer("`never ends ${x")
	tokens := collectAllTokens(lx)
	if tokens[0].Kind != token.TemplateLit {
		t.Errorf("got %s, want TemplateLit", tokens[0].Kind)
	}
	if !reporter.HasErrors() {
		t.Error("expected an unterminated-template diagnostic")
	}
}

func TestComments(t *testing.T) {
	expectTokens(t, "// line\nx /* block */ y", []token.Kind{
		token.LineComment, token.Whitespace, token.Ident, token.Whitespace,
		token.BlockComment, token.Whitespace, token.Ident,
	})

	lx, reporter := makeTestLexer("/* never closed")
	tokens := collectAllTokens(lx)
	if tokens[0].Kind != token.BlockComment {
		t.Errorf("got %s, want BlockComment", tokens[0].Kind)
	}
	if !reporter.HasErrors() {
		t.Error("expected an unterminated-comment diagnostic")
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{".5", ".5"},
		{"1e10", "1e10"},
		{"2.5e-3", "2.5e-3"},
		{"0xFF", "0xFF"},
		{"0b1010", "0b1010"},
		{"0o777", "0o777"},
		{"1_000_000", "1_000_000"},
		{"123n", "123n"},
	}
	for _, tt := range tests {
		lx, reporter := makeTestLexer(tt.input)
		tokens := collectAllTokens(lx)
		if tokens[0].Kind != token.NumberLit || tokens[0].Text != tt.text {
			t.Errorf("input %q: got %s %q, want NumberLit %q",
				tt.input, tokens[0].Kind, tokens[0].Text, tt.text)
		}
		if reporter.HasErrors() {
			t.Errorf("input %q: unexpected errors: %v", tt.input, reporter.ErrorMessages())
		}
	}
}

func TestPunctMunching(t *testing.T) {
	tests := []struct {
		input string
		texts []string
	}{
		{"===", []string{"==="}},
		{"!==", []string{"!=="}},
		{"==", []string{"=="}},
		{"=>", []string{"=>"}},
		{"...", []string{"..."}},
		{"**=", []string{"**="}},
		{"??", []string{"??"}},
		{"?.", []string{"?."}},
		// angle brackets never combine, generic balancing counts singles
		{"<<", []string{"<", "<"}},
		{">>", []string{">", ">"}},
		{"<=", []string{"<", "="}},
		{">=", []string{">", "="}},
	}
	for _, tt := range tests {
		lx, _ := makeTestLexer(tt.input)
		tokens := collectAllTokens(lx)
		tokens = tokens[:len(tokens)-1] // drop EOF
		if len(tokens) != len(tt.texts) {
			t.Errorf("input %q: got %s, want %v", tt.input, tokensToString(tokens), tt.texts)
			continue
		}
		for i, want := range tt.texts {
			if tokens[i].Kind != token.Punct || tokens[i].Text != want {
				t.Errorf("input %q token %d: got %s %q, want Punct %q",
					tt.input, i, tokens[i].Kind, tokens[i].Text, want)
			}
		}
	}
}

func TestWhitespaceCoalescing(t *testing.T) {
	lx, _ := makeTestLexer("a \t\n\n  b")
	tokens := collectAllTokens(lx)
	if len(tokens) != 4 { // a, ws, b, EOF
		t.Fatalf("expected 4 tokens, got %s", tokensToString(tokens))
	}
	if tokens[1].Kind != token.Whitespace || tokens[1].Text != " \t\n\n  " {
		t.Errorf("whitespace run not coalesced: %s %q", tokens[1].Kind, tokens[1].Text)
	}
}

func TestUnicodeIdent(t *testing.T) {
	lx, reporter := makeTestLexer("const café = 1;")
	tokens := collectAllTokens(lx)
	if tokens[2].Kind != token.Ident || tokens[2].Text != "café" {
		t.Errorf("got %s %q, want Ident \"café\"", tokens[2].Kind, tokens[2].Text)
	}
	if reporter.HasErrors() {
		t.Errorf("unexpected errors: %v", reporter.ErrorMessages())
	}
}

func TestInvalidByte(t *testing.T) {
	lx, _ := makeTestLexer("a \x01 b")
	tokens := collectAllTokens(lx)
	found := false
	for _, tok := range tokens {
		if tok.Kind == token.Invalid {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an Invalid token: %s", tokensToString(tokens))
	}
}

func TestNonLetterRuneMakesProgress(t *testing.T) {
	// non-ASCII starters that are not identifier material must consume one
	// rune per token, never emit a zero-width token
	tests := []struct {
		input string
		text  string
	}{
		{"€", "€"},
		{"\xff", "\xff"},
		{"€x", "€"},
	}
	for _, tt := range tests {
		lx, reporter := makeTestLexer(tt.input)

		tok := lx.Next()
		if tok.Kind != token.Invalid || tok.Text != tt.text {
			t.Errorf("input %q: got %s %q, want Invalid %q", tt.input, tok.Kind, tok.Text, tt.text)
		}
		if tok.Span.End == tok.Span.Start {
			t.Fatalf("input %q: zero-width token, lexer would never advance", tt.input)
		}
		if !reporter.HasErrors() {
			t.Errorf("input %q: expected an unknown-character diagnostic", tt.input)
		}

		// the rest of the input still tokenizes to a clean EOF
		rest := collectAllTokens(lx)
		if rest[len(rest)-1].Kind != token.EOF {
			t.Errorf("input %q: no EOF after invalid rune", tt.input)
		}
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("x")
	collectAllTokens(lx)
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("Next after EOF returned %s", tok.Kind)
		}
	}
}
