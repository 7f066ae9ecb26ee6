package group

import (
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// Grouper performs the single recursive pass that turns a token sequence
// into a Tree. One instance handles one file and is not reused.
type Grouper struct {
	file     *source.File
	toks     []token.Token
	ts       *token.Stream
	tree     *Tree
	reporter diag.Reporter
}

// Build groups the token sequence of file into a structural tree. The
// returned tree always has a CodeFile root spanning the whole file; malformed
// input degrades into diagnostics and best-effort partial groups, never an
// error.
func Build(file *source.File, tokens []token.Token, reporter diag.Reporter) *Tree {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	gr := &Grouper{
		file:     file,
		toks:     tokens,
		ts:       token.NewStream(tokens),
		reporter: reporter,
		tree: &Tree{
			File:   file,
			Tokens: tokens,
			nodes:  make([]Group, 0, 16),
		},
	}

	gr.tree.alloc(Group{
		Kind:     CodeFile,
		Span:     source.Span{File: file.ID, Start: 0, End: uint32(len(file.Content))},
		FirstTok: 0,
		EndTok:   len(tokens),
		OpenTok:  -1,
		CloseTok: -1,
		Parent:   NoGroupID,
	})

	gr.walkTopLevel()
	return gr.tree
}

// walkTopLevel scans the whole file, grouping every declaration it
// recognizes and silently consuming everything else until the next starter.
func (gr *Grouper) walkTopLevel() {
	root := gr.tree.Root()
	for {
		gr.ts.SkipTrivia()
		if gr.ts.EOF() {
			return
		}

		startTok := gr.ts.Pos()
		mods := gr.eatModifiers()

		t := gr.ts.PeekSignificant()
		if t.Kind != token.Keyword || !token.IsDeclStarter(t.Text) {
			// Not a declaration after all: rewind past the modifiers and skip
			// one token so the walk always advances.
			gr.ts.Reset(token.Mark(startTok))
			gr.ts.Next()
			continue
		}

		var id GroupID
		var ok bool
		switch t.Text {
		case token.KwClass:
			id, ok = gr.processClass(startTok, mods)
		case token.KwInterface:
			id, ok = gr.processInterface(startTok, mods)
		case token.KwEnum:
			id, ok = gr.processEnum(startTok, mods, false)
		case token.KwType:
			id, ok = gr.processTypeAlias(startTok, mods)
		case token.KwFunction:
			id, ok = gr.processFunction(startTok, mods)
		case token.KwConst, token.KwLet, token.KwVar:
			if gr.constEnumAhead() {
				gr.ts.NextSignificant() // const
				id, ok = gr.processEnum(startTok, append(mods, token.KwConst), true)
			} else {
				id, ok = gr.processVariable(startTok, mods)
			}
		case token.KwImport:
			id, ok = gr.processImport(startTok)
		}

		if ok {
			gr.tree.attach(root, id)
		} else if gr.ts.Pos() == startTok {
			gr.ts.Next()
		}
	}
}

// eatModifiers consumes a run of declaration modifiers (export, default,
// declare, abstract, async) and returns their words.
func (gr *Grouper) eatModifiers() []string {
	var mods []string
	for {
		t := gr.ts.PeekSignificant()
		if t.Kind != token.Keyword || !token.IsDeclModifier(t.Text) {
			return mods
		}
		gr.ts.NextSignificant()
		mods = append(mods, t.Text)
	}
}

// constEnumAhead reports whether the stream sits at `const enum`.
func (gr *Grouper) constEnumAhead() bool {
	m := gr.ts.Mark()
	defer gr.ts.Reset(m)
	kw := gr.ts.NextSignificant()
	if !kw.IsKeywordWord(token.KwConst) {
		return false
	}
	return gr.ts.PeekSignificant().IsKeywordWord(token.KwEnum)
}

// report emits a grouping diagnostic.
func (gr *Grouper) report(code diag.Code, sp source.Span, msg string) {
	gr.reporter.Report(code, diag.SevError, sp, msg, nil)
}

// warn emits a grouping warning.
func (gr *Grouper) warn(code diag.Code, sp source.Span, msg string) {
	gr.reporter.Report(code, diag.SevWarning, sp, msg, nil)
}

// text returns the raw source slice under sp.
func (gr *Grouper) text(sp source.Span) string {
	return string(gr.file.Content[sp.Start:sp.End])
}

// tokenAt returns the token at index i, saturating to EOF.
func (gr *Grouper) tokenAt(i int) token.Token {
	return gr.ts.At(i)
}

// lastConsumedEnd returns the end offset of the token before the current
// position, used to close best-effort groups on malformed input.
func (gr *Grouper) lastConsumedEnd() uint32 {
	i := gr.ts.Pos() - 1
	if i < 0 {
		return 0
	}
	return gr.tokenAt(i).Span.End
}

// spanFromTok builds a group span from a starting token index to the last
// consumed token.
func (gr *Grouper) spanFromTok(startTok int) source.Span {
	return source.Span{
		File:  gr.file.ID,
		Start: gr.tokenAt(startTok).Span.Start,
		End:   gr.lastConsumedEnd(),
	}
}
