package group

import (
	"quill/internal/diag"
	"quill/internal/token"
)

// processFunction groups a top-level function declaration. The return type
// is everything between the parameter list's ')' and the body '{' (or ';'
// for a bodyless overload/declare signature).
func (gr *Grouper) processFunction(startTok int, mods []string) (GroupID, bool) {
	gr.ts.NextSignificant() // 'function'

	if gr.ts.PeekSignificant().IsPunct("*") {
		gr.ts.NextSignificant()
	}

	name := ""
	pk := gr.ts.PeekSignificant()
	switch {
	case pk.Kind == token.Ident:
		gr.ts.NextSignificant()
		name = pk.Text
	case pk.IsPunct("(") || pk.IsPunct("<"):
		// anonymous function (e.g. `export default function () {...}`)
	default:
		gr.report(diag.GrpMissingName, pk.Span, "missing name after 'function'")
	}

	templateParams := gr.readGenericParams()

	if gr.ts.PeekSignificant().IsPunct("(") {
		gr.ts.SkipTrivia()
		gr.skipBalanced(diag.GrpUnclosedParen, "parameter list"+nameSuffix(name))
	} else {
		gr.warn(diag.GrpUnexpectedToken, gr.ts.PeekSignificant().Span,
			"missing parameter list"+nameSuffix(name))
	}

	returnType := ""
	if gr.ts.PeekSignificant().IsPunct(":") {
		gr.ts.NextSignificant()
		returnType = gr.readTypeText(stopAt("{", ";"))
	}

	openTok, closeTok := -1, -1
	if gr.ts.PeekSignificant().IsPunct("{") {
		gr.ts.SkipTrivia()
		openTok = gr.ts.Pos()
		if idx, ok := gr.findBalancedClose(openTok); ok {
			closeTok = idx
			gr.ts.Reset(token.Mark(idx + 1))
		} else {
			open := gr.ts.Peek()
			gr.report(diag.GrpUnclosedBrace, open.Span, "unclosed function body"+nameSuffix(name))
			for !gr.ts.EOF() {
				gr.ts.Next()
			}
		}
	} else {
		gr.ts.EatPunct(";")
	}

	id := gr.tree.alloc(Group{
		Kind:           FunctionDecl,
		Name:           name,
		Span:           gr.spanFromTok(startTok),
		TemplateParams: templateParams,
		FirstTok:       startTok,
		EndTok:         gr.ts.Pos(),
		OpenTok:        openTok,
		CloseTok:       closeTok,
		Meta:           FnMeta{ReturnType: returnType, Modifiers: mods},
	})
	return id, true
}
