package builder

import "quill/internal/group"

// ClassBuilder navigates one class declaration. Class bodies are edited
// through their literal-field children; the class itself is a read surface.
type ClassBuilder struct {
	cb *CodeBuilder
	id group.GroupID
}

// Group returns the underlying declaration group.
func (c *ClassBuilder) Group() *group.Group {
	return c.cb.tree.Get(c.id)
}

// Name returns the declared class name.
func (c *ClassBuilder) Name() string {
	return c.Group().Name
}

// FullText returns the declaration's original text, body included.
func (c *ClassBuilder) FullText() string {
	g := c.Group()
	return c.cb.Original()[g.Span.Start:g.Span.End]
}

// TemplateParams returns the raw generic parameter list text, if any.
func (c *ClassBuilder) TemplateParams() string {
	return c.Group().TemplateParams
}

// Extends returns the base class reference, "" when absent.
func (c *ClassBuilder) Extends() string {
	if m, ok := c.Group().Meta.(group.ClassMeta); ok {
		return m.Extends
	}
	return ""
}

// Implements returns the implemented interface references.
func (c *ClassBuilder) Implements() []string {
	if m, ok := c.Group().Meta.(group.ClassMeta); ok {
		return m.Implements
	}
	return nil
}

// Methods returns the method children in document order.
func (c *ClassBuilder) Methods() []*group.Group {
	var out []*group.Group
	for _, id := range c.Group().Children {
		g := c.cb.tree.Get(id)
		if g.Kind == group.FunctionDecl {
			out = append(out, g)
		}
	}
	return out
}

// FindMethod returns the named method child.
func (c *ClassBuilder) FindMethod(name string) (*FunctionBuilder, bool) {
	for _, id := range c.Group().Children {
		g := c.cb.tree.Get(id)
		if g.Kind == group.FunctionDecl && nameEq(g.Name, name) {
			return &FunctionBuilder{cb: c.cb, id: id}, true
		}
	}
	return nil, false
}

// FindObject returns a builder for the object literal initializing the named
// field.
func (c *ClassBuilder) FindObject(name string) (*ObjectBuilder, bool) {
	for _, id := range c.Group().Children {
		g := c.cb.tree.Get(id)
		if g.Kind == group.ObjectLiteral && nameEq(g.Name, name) {
			return &ObjectBuilder{cb: c.cb, id: id}, true
		}
	}
	return nil, false
}

// FindArray returns a builder for the array literal initializing the named
// field.
func (c *ClassBuilder) FindArray(name string) (*ArrayBuilder, bool) {
	for _, id := range c.Group().Children {
		g := c.cb.tree.Get(id)
		if g.Kind == group.ArrayLiteral && nameEq(g.Name, name) {
			return &ArrayBuilder{cb: c.cb, id: id}, true
		}
	}
	return nil, false
}

// InterfaceBuilder navigates one interface declaration.
type InterfaceBuilder struct {
	cb *CodeBuilder
	id group.GroupID
}

// Group returns the underlying declaration group.
func (i *InterfaceBuilder) Group() *group.Group {
	return i.cb.tree.Get(i.id)
}

// Name returns the declared interface name.
func (i *InterfaceBuilder) Name() string {
	return i.Group().Name
}

// FullText returns the declaration's original text, body included.
func (i *InterfaceBuilder) FullText() string {
	g := i.Group()
	return i.cb.Original()[g.Span.Start:g.Span.End]
}

// BodyText returns the original text between the body braces.
func (i *InterfaceBuilder) BodyText() string {
	g := i.Group()
	if g.OpenTok < 0 {
		return ""
	}
	toks := i.cb.tree.Tokens
	start := toks[g.OpenTok].Span.End
	end := g.Span.End
	if g.CloseTok >= 0 {
		end = toks[g.CloseTok].Span.Start
	}
	if end < start {
		end = start
	}
	return i.cb.Original()[start:end]
}

// TemplateParams returns the raw generic parameter list text, if any.
func (i *InterfaceBuilder) TemplateParams() string {
	return i.Group().TemplateParams
}

// Extends returns the extended interface references.
func (i *InterfaceBuilder) Extends() []string {
	if m, ok := i.Group().Meta.(group.InterfaceMeta); ok {
		return m.Extends
	}
	return nil
}

// EnumBuilder navigates one enum declaration.
type EnumBuilder struct {
	cb *CodeBuilder
	id group.GroupID
}

// Group returns the underlying declaration group.
func (e *EnumBuilder) Group() *group.Group {
	return e.cb.tree.Get(e.id)
}

// Name returns the declared enum name.
func (e *EnumBuilder) Name() string {
	return e.Group().Name
}

// FullText returns the declaration's original text, body included.
func (e *EnumBuilder) FullText() string {
	g := e.Group()
	return e.cb.Original()[g.Span.Start:g.Span.End]
}

// IsConst reports whether this is a `const enum`.
func (e *EnumBuilder) IsConst() bool {
	if m, ok := e.Group().Meta.(group.EnumMeta); ok {
		return m.IsConst
	}
	return false
}

// FunctionBuilder navigates one function declaration or class method.
type FunctionBuilder struct {
	cb *CodeBuilder
	id group.GroupID
}

// Group returns the underlying declaration group.
func (f *FunctionBuilder) Group() *group.Group {
	return f.cb.tree.Get(f.id)
}

// Name returns the declared name, "" for anonymous functions.
func (f *FunctionBuilder) Name() string {
	return f.Group().Name
}

// FullText returns the declaration's original text, body included.
func (f *FunctionBuilder) FullText() string {
	g := f.Group()
	return f.cb.Original()[g.Span.Start:g.Span.End]
}

// ReturnType returns the raw return type annotation text, "" when absent.
func (f *FunctionBuilder) ReturnType() string {
	if m, ok := f.Group().Meta.(group.FnMeta); ok {
		return m.ReturnType
	}
	return ""
}

// BodyText returns the original text between the body braces, "" for
// bodyless signatures.
func (f *FunctionBuilder) BodyText() string {
	g := f.Group()
	if g.OpenTok < 0 || g.CloseTok < 0 {
		return ""
	}
	toks := f.cb.tree.Tokens
	return f.cb.Original()[toks[g.OpenTok].Span.End:toks[g.CloseTok].Span.Start]
}
