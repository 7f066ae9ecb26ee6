package group

import (
	"quill/internal/diag"
	"quill/internal/token"
)

// processImport groups an import statement: side-effect (`import "p"`),
// default, namespace (`* as x`), named (`{ a, b as c }`), and combinations,
// with optional `import type`.
func (gr *Grouper) processImport(startTok int) (GroupID, bool) {
	gr.ts.NextSignificant() // 'import'

	meta := ImportMeta{}

	t := gr.ts.PeekSignificant()
	if t.IsKeywordWord(token.KwType) {
		// Only a type-only marker when a binding follows; `import type from
		// "m"` would make "type" the default binding, which nobody writes.
		m := gr.ts.Mark()
		gr.ts.NextSignificant()
		after := gr.ts.PeekSignificant()
		if after.Kind == token.Ident || after.IsPunct("{") || after.IsPunct("*") {
			meta.TypeOnly = true
			t = after
		} else {
			gr.ts.Reset(m)
		}
	}

	switch {
	case t.Kind == token.StringLit:
		// side-effect import
		gr.ts.NextSignificant()
		meta.Path = unquote(t.Text)
		gr.ts.EatPunct(";")
		return gr.finishImport(startTok, meta), true

	case t.Kind == token.Ident:
		gr.ts.NextSignificant()
		meta.Default = t.Text
		if gr.ts.EatPunct(",") {
			next := gr.ts.PeekSignificant()
			switch {
			case next.IsPunct("{"):
				meta.Named = gr.readImportSpecifiers()
			case next.IsPunct("*"):
				meta.Namespace = gr.readNamespaceBinding()
			}
		}

	case t.IsPunct("{"):
		meta.Named = gr.readImportSpecifiers()

	case t.IsPunct("*"):
		meta.Namespace = gr.readNamespaceBinding()

	default:
		gr.report(diag.GrpUnexpectedToken, t.Span, "unexpected token after 'import'")
		gr.scanToStmtEnd()
		return gr.finishImport(startTok, meta), true
	}

	if gr.ts.EatKeyword("from") {
		p := gr.ts.PeekSignificant()
		if p.Kind == token.StringLit {
			gr.ts.NextSignificant()
			meta.Path = unquote(p.Text)
		} else {
			gr.report(diag.GrpMissingImportPath, p.Span, "missing module path after 'from'")
		}
	} else {
		gr.report(diag.GrpMissingImportPath, gr.ts.PeekSignificant().Span, "missing 'from' clause in import")
	}
	gr.ts.EatPunct(";")

	return gr.finishImport(startTok, meta), true
}

// readImportSpecifiers consumes `{ a, b as c }` and returns the specifiers.
func (gr *Grouper) readImportSpecifiers() []ImportSpecifier {
	var specs []ImportSpecifier
	gr.ts.EatPunct("{")
	for !gr.ts.EOF() {
		t := gr.ts.PeekSignificant()
		switch {
		case t.IsPunct("}"):
			gr.ts.NextSignificant()
			return specs
		case t.IsPunct(","):
			gr.ts.NextSignificant()
		case t.Kind == token.Ident || t.Kind == token.Keyword || t.Kind == token.StringLit:
			gr.ts.NextSignificant()
			spec := ImportSpecifier{Name: unquote(t.Text)}
			if gr.ts.EatKeyword("as") {
				if alias := gr.ts.PeekSignificant(); alias.Kind == token.Ident {
					gr.ts.NextSignificant()
					spec.Alias = alias.Text
				}
			}
			specs = append(specs, spec)
		default:
			// something unexpected; bail out rather than loop forever
			gr.warn(diag.GrpUnexpectedToken, t.Span, "unexpected token in import specifiers")
			return specs
		}
	}
	return specs
}

// readNamespaceBinding consumes `* as name` and returns the binding name.
func (gr *Grouper) readNamespaceBinding() string {
	gr.ts.EatPunct("*")
	if gr.ts.EatKeyword("as") {
		if t := gr.ts.PeekSignificant(); t.Kind == token.Ident {
			gr.ts.NextSignificant()
			return t.Text
		}
	}
	gr.report(diag.GrpMissingName, gr.ts.PeekSignificant().Span, "missing binding in namespace import")
	return ""
}

func (gr *Grouper) finishImport(startTok int, meta ImportMeta) GroupID {
	return gr.tree.alloc(Group{
		Kind:     ImportDecl,
		Name:     meta.Path,
		Span:     gr.spanFromTok(startTok),
		FirstTok: startTok,
		EndTok:   gr.ts.Pos(),
		OpenTok:  -1,
		CloseTok: -1,
		Meta:     meta,
	})
}
