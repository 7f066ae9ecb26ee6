package group

import (
	"strings"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// processObjectLiteral groups the `{...}` the stream currently sits at.
// name is the enclosing property or variable name, carried for diagnostics.
// Nested object- and array-valued properties become child groups; every
// other value is consumed opaquely. The stream ends up past the closing
// brace (or at EOF for unclosed input).
func (gr *Grouper) processObjectLiteral(name string) GroupID {
	gr.ts.SkipTrivia()
	openIdx := gr.ts.Pos()
	open := gr.ts.Next() // '{'

	id := gr.tree.alloc(Group{
		Kind:     ObjectLiteral,
		Name:     name,
		Span:     source.Span{File: gr.file.ID, Start: open.Span.Start, End: open.Span.End},
		FirstTok: openIdx,
		OpenTok:  openIdx,
		CloseTok: -1,
	})

	pendingName := ""
	afterColon := false
	for !gr.ts.EOF() {
		gr.ts.SkipTrivia()
		if gr.ts.EOF() {
			break
		}
		t := gr.ts.Peek()

		switch {
		case t.IsPunct("}"):
			closeIdx := gr.ts.Pos()
			gr.ts.Next()
			g := gr.tree.Get(id)
			g.CloseTok = closeIdx
			g.EndTok = closeIdx + 1
			g.Span.End = t.Span.End
			return id

		case t.IsPunct("{"):
			if afterColon {
				child := gr.processObjectLiteral(pendingName)
				gr.tree.attach(id, child)
				afterColon = false
			} else {
				gr.skipBalanced(diag.GrpUnclosedBrace, "brace")
			}

		case t.IsPunct("["):
			if afterColon {
				child := gr.processArrayLiteral(pendingName)
				gr.tree.attach(id, child)
				afterColon = false
			} else {
				gr.skipBalanced(diag.GrpUnclosedBracket, "bracket")
			}

		case t.IsPunct("("):
			gr.skipBalanced(diag.GrpUnclosedParen, "parenthesis")

		case t.IsPunct(":"):
			afterColon = true
			gr.ts.Next()

		case t.IsPunct(","):
			pendingName = ""
			afterColon = false
			gr.ts.Next()

		default:
			if !afterColon && (t.Kind == token.Ident || t.Kind == token.Keyword || t.Kind == token.StringLit || t.Kind == token.NumberLit) {
				pendingName = unquote(t.Text)
			}
			gr.ts.Next()
		}
	}

	// EOF before the closing brace: best-effort group ending at the last
	// consumed token.
	gr.report(diag.GrpUnclosedBrace, open.Span, "unclosed object literal"+nameSuffix(name))
	g := gr.tree.Get(id)
	g.EndTok = gr.ts.Pos()
	g.Span.End = gr.lastConsumedEnd()
	return id
}

// processArrayLiteral groups the `[...]` the stream currently sits at.
// Object and array elements become children; scalar elements are consumed
// opaquely.
func (gr *Grouper) processArrayLiteral(name string) GroupID {
	gr.ts.SkipTrivia()
	openIdx := gr.ts.Pos()
	open := gr.ts.Next() // '['

	id := gr.tree.alloc(Group{
		Kind:     ArrayLiteral,
		Name:     name,
		Span:     source.Span{File: gr.file.ID, Start: open.Span.Start, End: open.Span.End},
		FirstTok: openIdx,
		OpenTok:  openIdx,
		CloseTok: -1,
	})

	for !gr.ts.EOF() {
		gr.ts.SkipTrivia()
		if gr.ts.EOF() {
			break
		}
		t := gr.ts.Peek()

		switch {
		case t.IsPunct("]"):
			closeIdx := gr.ts.Pos()
			gr.ts.Next()
			g := gr.tree.Get(id)
			g.CloseTok = closeIdx
			g.EndTok = closeIdx + 1
			g.Span.End = t.Span.End
			return id

		case t.IsPunct("{"):
			child := gr.processObjectLiteral(name)
			gr.tree.attach(id, child)

		case t.IsPunct("["):
			child := gr.processArrayLiteral(name)
			gr.tree.attach(id, child)

		case t.IsPunct("("):
			gr.skipBalanced(diag.GrpUnclosedParen, "parenthesis")

		default:
			gr.ts.Next()
		}
	}

	gr.report(diag.GrpUnclosedBracket, open.Span, "unclosed array literal"+nameSuffix(name))
	g := gr.tree.Get(id)
	g.EndTok = gr.ts.Pos()
	g.Span.End = gr.lastConsumedEnd()
	return id
}

func nameSuffix(name string) string {
	if name == "" {
		return ""
	}
	return " '" + strings.TrimSpace(name) + "'"
}
