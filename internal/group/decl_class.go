package group

import (
	"strings"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// memberModifiers are the keywords tolerated before a class member name.
var memberModifiers = map[string]struct{}{
	"static":    {},
	"readonly":  {},
	"public":    {},
	"private":   {},
	"protected": {},
	"abstract":  {},
	"async":     {},
	"declare":   {},
}

// processClass groups a class declaration. Methods become FunctionDecl
// children; fields initialized with object or array literals contribute
// literal children. Everything else in the body is consumed opaquely.
func (gr *Grouper) processClass(startTok int, mods []string) (GroupID, bool) {
	gr.ts.NextSignificant() // 'class'

	name := gr.readName(token.KwClass)
	templateParams := gr.readGenericParams()

	meta := ClassMeta{Modifiers: mods}
	gr.readClassHeritage(&meta)

	id := gr.tree.alloc(Group{
		Kind:           ClassDecl,
		Name:           name,
		Span:           gr.spanFromTok(startTok),
		TemplateParams: templateParams,
		FirstTok:       startTok,
		OpenTok:        -1,
		CloseTok:       -1,
	})

	openTok, closeTok := gr.groupBody(id, name, true)

	g := gr.tree.Get(id)
	g.Span = gr.spanFromTok(startTok)
	g.EndTok = gr.ts.Pos()
	g.OpenTok = openTok
	g.CloseTok = closeTok
	g.Meta = meta
	return id, true
}

// processInterface groups an interface declaration. Interface bodies hold
// only signatures, so no children are produced; the group is a navigation
// endpoint.
func (gr *Grouper) processInterface(startTok int, mods []string) (GroupID, bool) {
	gr.ts.NextSignificant() // 'interface'

	name := gr.readName(token.KwInterface)
	templateParams := gr.readGenericParams()

	meta := InterfaceMeta{Modifiers: mods}
	if gr.ts.EatKeyword("extends") {
		for {
			ref := gr.readHeritageRef()
			if ref != "" {
				meta.Extends = append(meta.Extends, ref)
			}
			if !gr.ts.EatPunct(",") {
				break
			}
		}
	}

	id := gr.tree.alloc(Group{
		Kind:           InterfaceDecl,
		Name:           name,
		Span:           gr.spanFromTok(startTok),
		TemplateParams: templateParams,
		FirstTok:       startTok,
		OpenTok:        -1,
		CloseTok:       -1,
	})

	openTok, closeTok := gr.groupBody(id, name, false)

	g := gr.tree.Get(id)
	g.Span = gr.spanFromTok(startTok)
	g.EndTok = gr.ts.Pos()
	g.OpenTok = openTok
	g.CloseTok = closeTok
	g.Meta = meta
	return id, true
}

// processEnum groups an enum declaration, `const enum` included. Members are
// not grouped; the body is located and consumed.
func (gr *Grouper) processEnum(startTok int, mods []string, isConst bool) (GroupID, bool) {
	gr.ts.NextSignificant() // 'enum'

	name := gr.readName(token.KwEnum)

	id := gr.tree.alloc(Group{
		Kind:     EnumDecl,
		Name:     name,
		Span:     gr.spanFromTok(startTok),
		FirstTok: startTok,
		OpenTok:  -1,
		CloseTok: -1,
	})

	openTok, closeTok := gr.groupBody(id, name, false)

	g := gr.tree.Get(id)
	g.Span = gr.spanFromTok(startTok)
	g.EndTok = gr.ts.Pos()
	g.OpenTok = openTok
	g.CloseTok = closeTok
	g.Meta = EnumMeta{IsConst: isConst, Modifiers: mods}
	return id, true
}

// readClassHeritage consumes `extends X` and `implements A, B` clauses up to
// the body brace.
func (gr *Grouper) readClassHeritage(meta *ClassMeta) {
	for {
		t := gr.ts.PeekSignificant()
		switch {
		case t.IsKeywordWord("extends"):
			gr.ts.NextSignificant()
			meta.Extends = gr.readHeritageRef()
		case t.IsKeywordWord("implements"):
			gr.ts.NextSignificant()
			for {
				ref := gr.readHeritageRef()
				if ref != "" {
					meta.Implements = append(meta.Implements, ref)
				}
				if !gr.ts.EatPunct(",") {
					break
				}
			}
		default:
			return
		}
	}
}

// readHeritageRef reads one heritage type reference: a dotted identifier
// path with optional generic arguments, stopping at '{', ',', another
// heritage keyword, or end of input.
func (gr *Grouper) readHeritageRef() string {
	gr.ts.SkipTrivia()
	startOff := gr.ts.Peek().Span.Start
	endOff := startOff
	for !gr.ts.EOF() {
		t := gr.ts.PeekSignificant()
		switch {
		case t.Kind == token.Ident:
			gr.ts.NextSignificant()
			endOff = t.Span.End
		case t.IsPunct("."):
			gr.ts.NextSignificant()
			endOff = t.Span.End
		case t.IsPunct("<"):
			if raw := gr.readGenericParams(); raw != "" {
				endOff = gr.lastConsumedEnd()
			} else {
				return strings.TrimSpace(gr.text(source.Span{File: gr.file.ID, Start: startOff, End: endOff}))
			}
		default:
			return strings.TrimSpace(gr.text(source.Span{File: gr.file.ID, Start: startOff, End: endOff}))
		}
	}
	return strings.TrimSpace(gr.text(source.Span{File: gr.file.ID, Start: startOff, End: endOff}))
}

// groupBody locates the `{...}` body for a declaration, walks members when
// wanted, and leaves the stream past the closing brace. Returns the body
// bracket token indices (-1 when absent or unclosed).
func (gr *Grouper) groupBody(id GroupID, name string, walkMembers bool) (openTok, closeTok int) {
	openTok, closeTok = -1, -1
	if !gr.ts.PeekSignificant().IsPunct("{") {
		gr.warn(diag.GrpUnexpectedToken, gr.ts.PeekSignificant().Span,
			"missing body"+nameSuffix(name))
		return
	}
	gr.ts.SkipTrivia()
	openTok = gr.ts.Pos()
	open := gr.ts.Next()

	idx, ok := gr.findBalancedClose(openTok)
	if !ok {
		gr.report(diag.GrpUnclosedBrace, open.Span, "unclosed body"+nameSuffix(name))
		if walkMembers {
			gr.walkClassMembers(id, len(gr.toks))
		}
		for !gr.ts.EOF() {
			gr.ts.Next()
		}
		return openTok, -1
	}

	if walkMembers {
		gr.walkClassMembers(id, idx)
	}
	gr.ts.Reset(token.Mark(idx + 1))
	return openTok, idx
}

// walkClassMembers scans the class body tokens in [current, bound) and
// attaches method and literal-field children to classID.
func (gr *Grouper) walkClassMembers(classID GroupID, bound int) {
	for {
		gr.ts.SkipTrivia()
		if gr.ts.EOF() || gr.ts.Pos() >= bound {
			return
		}
		memberStart := gr.ts.Pos()
		t := gr.ts.Peek()

		if t.IsPunct(";") || t.IsPunct(",") {
			gr.ts.Next()
			continue
		}
		if t.IsPunct("@") {
			// decorator: @name or @name(...)
			gr.ts.Next()
			gr.ts.NextSignificant()
			if gr.ts.PeekSignificant().IsPunct("(") {
				gr.ts.SkipTrivia()
				gr.skipBalanced(diag.GrpUnclosedParen, "decorator arguments")
			}
			continue
		}

		var memberMods []string
		for t.Kind == token.Keyword {
			if _, ok := memberModifiers[t.Text]; !ok {
				break
			}
			gr.ts.Next()
			memberMods = append(memberMods, t.Text)
			gr.ts.SkipTrivia()
			if gr.ts.Pos() >= bound {
				return
			}
			t = gr.ts.Peek()
		}

		memberName := ""
		switch {
		case t.Kind == token.Ident || t.Kind == token.Keyword:
			gr.ts.Next()
			memberName = t.Text
		case t.Kind == token.StringLit || t.Kind == token.NumberLit:
			gr.ts.Next()
			memberName = unquote(t.Text)
		case t.IsPunct("["):
			gr.skipBalanced(diag.GrpUnclosedBracket, "computed member name")
		case t.IsPunct("*"):
			gr.ts.Next()
			if n := gr.ts.PeekSignificant(); n.Kind == token.Ident {
				gr.ts.NextSignificant()
				memberName = n.Text
			}
		default:
			gr.ts.Next()
			continue
		}

		// get foo() / set foo()
		if (memberName == "get" || memberName == "set") && gr.ts.PeekSignificant().Kind == token.Ident {
			n := gr.ts.NextSignificant()
			memberName = n.Text
		}

		for {
			pk := gr.ts.PeekSignificant()
			if pk.IsPunct("?") || pk.IsPunct("!") {
				gr.ts.NextSignificant()
				continue
			}
			break
		}

		templateParams := gr.readGenericParams()

		if gr.ts.PeekSignificant().IsPunct("(") {
			gr.method(classID, memberStart, memberName, templateParams, memberMods)
			continue
		}

		// field
		if gr.ts.PeekSignificant().IsPunct(":") {
			gr.ts.NextSignificant()
			gr.readTypeText(stopAt("=", ";"))
		}
		if gr.ts.PeekSignificant().IsPunct("=") {
			gr.ts.NextSignificant()
			v := gr.ts.PeekSignificant()
			switch {
			case v.IsPunct("{"):
				child := gr.processObjectLiteral(memberName)
				gr.tree.attach(classID, child)
			case v.IsPunct("["):
				child := gr.processArrayLiteral(memberName)
				gr.tree.attach(classID, child)
			default:
				gr.scanToStmtEnd()
			}
		}
		gr.ts.EatPunct(";")
	}
}

// method groups one class method (or overload signature) as a FunctionDecl
// child.
func (gr *Grouper) method(classID GroupID, memberStart int, name, templateParams string, mods []string) {
	gr.ts.SkipTrivia()
	gr.skipBalanced(diag.GrpUnclosedParen, "parameter list"+nameSuffix(name))

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
			gr.report(diag.GrpUnclosedBrace, gr.ts.Peek().Span, "unclosed method body"+nameSuffix(name))
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
		Span:           gr.spanFromTok(memberStart),
		TemplateParams: templateParams,
		FirstTok:       memberStart,
		EndTok:         gr.ts.Pos(),
		OpenTok:        openTok,
		CloseTok:       closeTok,
		Meta:           FnMeta{ReturnType: returnType, Modifiers: mods},
	})
	gr.tree.attach(classID, id)
}
