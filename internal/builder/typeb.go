package builder

import "quill/internal/group"

// TypeBuilder exposes the raw type text attached to a declaration: the
// annotation of a variable, or the right-hand side of a type alias. Type
// text is never interpreted, only carried.
type TypeBuilder struct {
	cb   *CodeBuilder
	id   group.GroupID
	text string
}

// Group returns the declaration the type text belongs to.
func (t *TypeBuilder) Group() *group.Group {
	return t.cb.tree.Get(t.id)
}

// Text returns the raw type text.
func (t *TypeBuilder) Text() string {
	return t.text
}

// IsAlias reports whether the text is a type alias right-hand side rather
// than a variable annotation.
func (t *TypeBuilder) IsAlias() bool {
	return t.Group().Kind == group.TypeDecl
}
