// Package group recovers the declaration structure of a content source file
// from its token sequence. It is deliberately not a full parser: it only
// understands enough of the language to locate declarations and literal
// containers, and it never fails on malformed input — the editor must stay
// usable on files a human is halfway through typing.
package group

import (
	"quill/internal/source"
	"quill/internal/token"
)

// Kind identifies the construct a Group covers.
type Kind uint8

const (
	// CodeFile is the root group spanning the whole file.
	CodeFile Kind = iota
	// ClassDecl covers a class declaration, body included.
	ClassDecl
	// InterfaceDecl covers an interface declaration.
	InterfaceDecl
	// EnumDecl covers an enum declaration.
	EnumDecl
	// FunctionDecl covers a function declaration or a class method.
	FunctionDecl
	// VariableDecl covers a const/let/var statement, terminator included.
	VariableDecl
	// TypeDecl covers a type alias declaration.
	TypeDecl
	// ImportDecl covers an import statement.
	ImportDecl
	// ObjectLiteral covers a `{...}` literal container.
	ObjectLiteral
	// ArrayLiteral covers a `[...]` literal container.
	ArrayLiteral
)

func (k Kind) String() string {
	switch k {
	case CodeFile:
		return "CodeFile"
	case ClassDecl:
		return "ClassDecl"
	case InterfaceDecl:
		return "InterfaceDecl"
	case EnumDecl:
		return "EnumDecl"
	case FunctionDecl:
		return "FunctionDecl"
	case VariableDecl:
		return "VariableDecl"
	case TypeDecl:
		return "TypeDecl"
	case ImportDecl:
		return "ImportDecl"
	case ObjectLiteral:
		return "ObjectLiteral"
	case ArrayLiteral:
		return "ArrayLiteral"
	}
	return "Unknown"
}

// GroupID indexes a Group inside its Tree's arena.
//
// Builders hold a Tree reference plus a GroupID, never a *Group: re-parsing
// replaces the whole arena, so a stale id can at worst read the old tree, not
// dangle.
type GroupID uint32

// NoGroupID marks an absent group reference.
const NoGroupID GroupID = ^GroupID(0)

// Group is one node of the structural tree.
type Group struct {
	Kind Kind
	// Name is the declared identifier. Destructuring bindings use the
	// synthetic markers "ObjectPattern"/"ArrayPattern". Literals inherit the
	// enclosing property or variable name for diagnostics only.
	Name string
	// Span covers the construct, leading keyword and trailing terminator
	// included where applicable.
	Span source.Span
	// TemplateParams is the raw text of the generic parameter list, if any.
	TemplateParams string

	// FirstTok/EndTok delimit the token range [FirstTok, EndTok) this group
	// covers in the tree's token slice.
	FirstTok int
	EndTok   int
	// OpenTok/CloseTok are the body bracket token indices for literals and
	// bodied declarations; -1 when absent or unclosed.
	OpenTok  int
	CloseTok int

	Parent   GroupID
	Children []GroupID

	// Meta holds kind-specific facts; its dynamic type is fixed by Kind.
	Meta Meta
}

// Meta is the kind-specific metadata attached to a Group. Exactly one
// concrete type exists per declaration kind, so callers switch on the type
// instead of probing optional fields.
type Meta interface{ isMeta() }

// ClassMeta describes a class declaration.
type ClassMeta struct {
	Extends    string
	Implements []string
	Modifiers  []string
}

// InterfaceMeta describes an interface declaration.
type InterfaceMeta struct {
	Extends   []string
	Modifiers []string
}

// EnumMeta describes an enum declaration.
type EnumMeta struct {
	IsConst   bool
	Modifiers []string
}

// FnMeta describes a function declaration or method.
type FnMeta struct {
	ReturnType string
	Modifiers  []string
}

// InitKind classifies a variable declaration's initializer.
type InitKind uint8

const (
	InitNone InitKind = iota
	InitObject
	InitArray
	InitOther
)

// VarMeta describes a const/let/var statement.
type VarMeta struct {
	DeclKeyword    string // const, let or var
	TypeAnnotation string // raw text between ':' and '=' or ';', "" if absent
	Init           InitKind
	Modifiers      []string
}

// TypeMeta describes a type alias.
type TypeMeta struct {
	RHS       string // raw right-hand side text, terminator excluded
	Modifiers []string
}

// ImportSpecifier is one named import, with an optional local alias.
type ImportSpecifier struct {
	Name  string
	Alias string // "" when not aliased
}

// ImportMeta describes an import statement.
type ImportMeta struct {
	Path      string // unquoted module path
	Default   string // default-import binding, "" if absent
	Namespace string // `* as ns` binding, "" if absent
	Named     []ImportSpecifier
	TypeOnly  bool
}

func (ClassMeta) isMeta()     {}
func (InterfaceMeta) isMeta() {}
func (EnumMeta) isMeta()      {}
func (FnMeta) isMeta()        {}
func (VarMeta) isMeta()       {}
func (TypeMeta) isMeta()      {}
func (ImportMeta) isMeta()    {}

// Tree is the arena of Groups for one parsed file, plus the token sequence
// every group range points into.
type Tree struct {
	File   *source.File
	Tokens []token.Token
	nodes  []Group
}

// Root returns the CodeFile group's id (always 0 in a non-empty tree).
func (t *Tree) Root() GroupID {
	return 0
}

// Get returns the group for id. The pointer is valid until the next parse.
func (t *Tree) Get(id GroupID) *Group {
	return &t.nodes[id]
}

// Len returns the number of groups in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Children returns the resolved child groups of id in document order.
func (t *Tree) Children(id GroupID) []*Group {
	node := t.Get(id)
	out := make([]*Group, 0, len(node.Children))
	for _, c := range node.Children {
		out = append(out, t.Get(c))
	}
	return out
}

// FindChild returns the first direct child of parent with the given kind and
// name.
func (t *Tree) FindChild(parent GroupID, kind Kind, name string) (GroupID, bool) {
	for _, c := range t.Get(parent).Children {
		g := t.Get(c)
		if g.Kind == kind && g.Name == name {
			return c, true
		}
	}
	return NoGroupID, false
}

// alloc appends a node and returns its id.
func (t *Tree) alloc(g Group) GroupID {
	id := GroupID(len(t.nodes))
	t.nodes = append(t.nodes, g)
	return id
}

// attach links child into parent's ordered child list.
func (t *Tree) attach(parent, child GroupID) {
	t.nodes[child].Parent = parent
	t.nodes[parent].Children = append(t.nodes[parent].Children, child)
}
