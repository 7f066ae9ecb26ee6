package group

import (
	"quill/internal/diag"
	"quill/internal/token"
)

// processVariable groups a const/let/var statement. The binding may be a
// plain identifier or a destructuring pattern (grouped under the synthetic
// names "ObjectPattern"/"ArrayPattern"). An object or array initializer is
// recursed into and attached as a child literal group.
func (gr *Grouper) processVariable(startTok int, mods []string) (GroupID, bool) {
	kw := gr.ts.NextSignificant() // const/let/var

	name := ""
	t := gr.ts.PeekSignificant()
	switch {
	case t.Kind == token.Ident:
		gr.ts.NextSignificant()
		name = t.Text
	case t.IsPunct("{"):
		gr.ts.SkipTrivia()
		gr.skipBalanced(diag.GrpUnclosedBrace, "destructuring pattern")
		name = "ObjectPattern"
	case t.IsPunct("["):
		gr.ts.SkipTrivia()
		gr.skipBalanced(diag.GrpUnclosedBracket, "destructuring pattern")
		name = "ArrayPattern"
	default:
		gr.report(diag.GrpMissingName, t.Span, "missing binding after '"+kw.Text+"'")
	}

	id := gr.tree.alloc(Group{
		Kind:     VariableDecl,
		Name:     name,
		Span:     gr.spanFromTok(startTok),
		FirstTok: startTok,
		OpenTok:  -1,
		CloseTok: -1,
	})

	meta := VarMeta{DeclKeyword: kw.Text, Modifiers: mods}

	if gr.ts.PeekSignificant().IsPunct(":") {
		gr.ts.NextSignificant()
		meta.TypeAnnotation = gr.readTypeText(stopAt("=", ";"))
	}

	if gr.ts.PeekSignificant().IsPunct("=") {
		gr.ts.NextSignificant()
		v := gr.ts.PeekSignificant()
		switch {
		case v.IsPunct("{"):
			meta.Init = InitObject
			child := gr.processObjectLiteral(name)
			gr.tree.attach(id, child)
		case v.IsPunct("["):
			meta.Init = InitArray
			child := gr.processArrayLiteral(name)
			gr.tree.attach(id, child)
		default:
			meta.Init = InitOther
		}
	}
	gr.scanToStmtEnd()

	g := gr.tree.Get(id)
	g.Span = gr.spanFromTok(startTok)
	g.EndTok = gr.ts.Pos()
	g.Meta = meta
	return id, true
}

// processTypeAlias groups `type Name<...> = RHS;`. The right-hand side is
// captured as raw text; union, intersection, conditional and mapped
// constructs are traversed by depth, never interpreted.
func (gr *Grouper) processTypeAlias(startTok int, mods []string) (GroupID, bool) {
	gr.ts.NextSignificant() // 'type'

	name := gr.readName(token.KwType)
	templateParams := gr.readGenericParams()

	meta := TypeMeta{Modifiers: mods}
	if gr.ts.PeekSignificant().IsPunct("=") {
		gr.ts.NextSignificant()
		meta.RHS = gr.readTypeText(stopAt(";"))
		gr.ts.EatPunct(";")
	} else {
		gr.warn(diag.GrpUnexpectedToken, gr.ts.PeekSignificant().Span,
			"expected '=' in type alias"+nameSuffix(name))
		gr.scanToStmtEnd()
	}

	id := gr.tree.alloc(Group{
		Kind:           TypeDecl,
		Name:           name,
		Span:           gr.spanFromTok(startTok),
		TemplateParams: templateParams,
		FirstTok:       startTok,
		EndTok:         gr.ts.Pos(),
		OpenTok:        -1,
		CloseTok:       -1,
		Meta:           meta,
	})
	return id, true
}
