// Package builder is the query-and-edit surface over a grouped content file.
// A CodeBuilder owns the original text, its structural tree, and a queue of
// surgical edits; the nested builders it hands out (objects, arrays, classes)
// all feed the same queue, so one Render produces the combined result with
// every untouched byte intact.
package builder

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"quill/internal/diag"
	"quill/internal/edit"
	"quill/internal/group"
	"quill/internal/lexer"
	"quill/internal/source"
)

// defaultMaxDiagnostics caps the bag of one builder's parse.
const defaultMaxDiagnostics = 256

// CodeBuilder is the facade over one parsed file.
type CodeBuilder struct {
	fs    *source.FileSet
	name  string
	file  *source.File
	tree  *group.Tree
	edits *edit.List
	bag   *diag.Bag
}

// New parses text under the given display name and returns a builder over it.
// Parsing never fails; malformed input shows up in Diagnostics.
func New(name, text string) *CodeBuilder {
	cb := &CodeBuilder{fs: source.NewFileSet(), name: name}
	cb.load(text)
	return cb
}

// NewFromFile builds over a file already loaded into fs.
func NewFromFile(fs *source.FileSet, id source.FileID) *CodeBuilder {
	cb := &CodeBuilder{fs: fs}
	f := fs.Get(id)
	cb.name = f.Path
	cb.parse(f)
	return cb
}

func (b *CodeBuilder) load(text string) {
	id := b.fs.AddVirtual(b.name, []byte(text))
	b.parse(b.fs.Get(id))
}

func (b *CodeBuilder) parse(f *source.File) {
	b.file = f
	b.bag = diag.NewBag(defaultMaxDiagnostics)
	rep := diag.BagReporter{Bag: b.bag}
	toks := lexer.Tokenize(f, lexer.Options{Reporter: rep})
	b.tree = group.Build(f, toks, rep)
	b.edits = edit.NewList(f.ID, uint32(len(f.Content)), rep)
}

// Original returns the unmodified text this builder was parsed from. Every
// edit offset references this string, regardless of what has been queued
// since.
func (b *CodeBuilder) Original() string {
	return string(b.file.Content)
}

// File returns the parsed source file.
func (b *CodeBuilder) File() *source.File {
	return b.file
}

// FileSet returns the file set the parsed file lives in.
func (b *CodeBuilder) FileSet() *source.FileSet {
	return b.fs
}

// Tree returns the structural tree of the original text.
func (b *CodeBuilder) Tree() *group.Tree {
	return b.tree
}

// Diagnostics returns the bag collected while parsing and editing.
func (b *CodeBuilder) Diagnostics() *diag.Bag {
	return b.bag
}

// PendingEdits returns the number of queued, unrendered edits.
func (b *CodeBuilder) PendingEdits() int {
	return b.edits.Len()
}

// AddEdit queues a raw replacement of original[start:end) with text. Invalid
// ranges are dropped with a warning diagnostic and a false return.
func (b *CodeBuilder) AddEdit(start, end uint32, text string) bool {
	return b.edits.Add(start, end, text)
}

// Render applies the queued edits to the original text. The edits stay
// queued; call ResetTo or Flush to continue editing the result.
func (b *CodeBuilder) Render() (string, error) {
	return b.edits.Apply(b.Original())
}

// Flush renders the queued edits and re-parses the result, so subsequent
// queries see the edited structure. Offsets held by previously obtained
// builders become stale.
func (b *CodeBuilder) Flush() (string, error) {
	out, err := b.Render()
	if err != nil {
		return "", err
	}
	b.load(out)
	return out, nil
}

// ResetTo discards all pending edits and re-parses text from scratch.
func (b *CodeBuilder) ResetTo(text string) {
	b.load(text)
}

// InsertCodeAtIndex inserts text as a new top-level statement before the
// index-th top-level group; index equal to the child count appends after the
// last one. The statement is placed on its own line and nothing around it is
// reflowed, so existing blank-line separation survives untouched.
func (b *CodeBuilder) InsertCodeAtIndex(index int, text string) error {
	children := b.tree.Get(b.tree.Root()).Children
	if index < 0 || index > len(children) {
		return fmt.Errorf("insert index %d out of range [0, %d]", index, len(children))
	}

	original := b.Original()
	if index < len(children) {
		g := b.tree.Get(children[index])
		at := uint32(lineStartAt(original, g.Span.Start))
		if !b.edits.Add(at, at, text+"\n") {
			return fmt.Errorf("insert at offset %d rejected", at)
		}
		return nil
	}

	if len(children) == 0 {
		if !b.edits.Add(0, 0, text+"\n") {
			return fmt.Errorf("insert at offset 0 rejected")
		}
		return nil
	}
	last := b.tree.Get(children[len(children)-1])
	at := last.Span.End
	if !b.edits.Add(at, at, "\n"+text) {
		return fmt.Errorf("insert at offset %d rejected", at)
	}
	return nil
}

// FindObject returns a builder for the object literal initializing the named
// top-level const/let/var, if one exists.
func (b *CodeBuilder) FindObject(name string) (*ObjectBuilder, bool) {
	id, ok := b.findLiteralDecl(name, group.InitObject, group.ObjectLiteral)
	if !ok {
		return nil, false
	}
	return &ObjectBuilder{cb: b, id: id}, true
}

// FindArray returns a builder for the array literal initializing the named
// top-level const/let/var, if one exists.
func (b *CodeBuilder) FindArray(name string) (*ArrayBuilder, bool) {
	id, ok := b.findLiteralDecl(name, group.InitArray, group.ArrayLiteral)
	if !ok {
		return nil, false
	}
	return &ArrayBuilder{cb: b, id: id}, true
}

// FindClass returns a builder for the named top-level class.
func (b *CodeBuilder) FindClass(name string) (*ClassBuilder, bool) {
	id, ok := b.findTopLevel(group.ClassDecl, name)
	if !ok {
		return nil, false
	}
	return &ClassBuilder{cb: b, id: id}, true
}

// FindInterface returns a builder for the named top-level interface.
func (b *CodeBuilder) FindInterface(name string) (*InterfaceBuilder, bool) {
	id, ok := b.findTopLevel(group.InterfaceDecl, name)
	if !ok {
		return nil, false
	}
	return &InterfaceBuilder{cb: b, id: id}, true
}

// FindEnum returns a builder for the named top-level enum.
func (b *CodeBuilder) FindEnum(name string) (*EnumBuilder, bool) {
	id, ok := b.findTopLevel(group.EnumDecl, name)
	if !ok {
		return nil, false
	}
	return &EnumBuilder{cb: b, id: id}, true
}

// FindFunction returns a builder for the named top-level function.
func (b *CodeBuilder) FindFunction(name string) (*FunctionBuilder, bool) {
	id, ok := b.findTopLevel(group.FunctionDecl, name)
	if !ok {
		return nil, false
	}
	return &FunctionBuilder{cb: b, id: id}, true
}

// FindType returns a builder over the type text attached to name: the
// annotation of a top-level variable, or the right-hand side of a type
// alias.
func (b *CodeBuilder) FindType(name string) (*TypeBuilder, bool) {
	for _, c := range b.tree.Get(b.tree.Root()).Children {
		g := b.tree.Get(c)
		if !nameEq(g.Name, name) {
			continue
		}
		switch m := g.Meta.(type) {
		case group.VarMeta:
			if m.TypeAnnotation != "" {
				return &TypeBuilder{cb: b, id: c, text: m.TypeAnnotation}, true
			}
		case group.TypeMeta:
			return &TypeBuilder{cb: b, id: c, text: m.RHS}, true
		}
	}
	return nil, false
}

// findTopLevel scans the root's children for a kind/name match.
func (b *CodeBuilder) findTopLevel(kind group.Kind, name string) (group.GroupID, bool) {
	for _, c := range b.tree.Get(b.tree.Root()).Children {
		g := b.tree.Get(c)
		if g.Kind == kind && nameEq(g.Name, name) {
			return c, true
		}
	}
	return group.NoGroupID, false
}

// findLiteralDecl locates the literal child of a top-level variable whose
// initializer has the wanted shape.
func (b *CodeBuilder) findLiteralDecl(name string, init group.InitKind, litKind group.Kind) (group.GroupID, bool) {
	for _, c := range b.tree.Get(b.tree.Root()).Children {
		g := b.tree.Get(c)
		if g.Kind != group.VariableDecl || !nameEq(g.Name, name) {
			continue
		}
		m, ok := g.Meta.(group.VarMeta)
		if !ok || m.Init != init {
			continue
		}
		for _, lc := range g.Children {
			if b.tree.Get(lc).Kind == litKind {
				return lc, true
			}
		}
	}
	return group.NoGroupID, false
}

// nameEq compares declaration names under NFC so visually identical Unicode
// spellings match.
func nameEq(a, b string) bool {
	if a == b {
		return true
	}
	return norm.NFC.String(a) == norm.NFC.String(b)
}
