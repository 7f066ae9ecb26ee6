package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"quill/internal/group"
	"quill/internal/source"
)

// OutlineNode is one group for JSON output, children nested.
type OutlineNode struct {
	Kind           string        `json:"kind"`
	Name           string        `json:"name,omitempty"`
	TemplateParams string        `json:"template_params,omitempty"`
	Span           source.Span   `json:"span"`
	StartLine      uint32        `json:"start_line"`
	StartCol       uint32        `json:"start_col"`
	Detail         string        `json:"detail,omitempty"`
	Children       []OutlineNode `json:"children,omitempty"`
}

// FormatOutlinePretty prints the group tree with two-space indentation.
func FormatOutlinePretty(w io.Writer, tree *group.Tree, fs *source.FileSet) error {
	var walk func(id group.GroupID, depth int)
	walk = func(id group.GroupID, depth int) {
		g := tree.Get(id)
		start, _ := fs.Resolve(g.Span)

		fmt.Fprintf(w, "%s%s", strings.Repeat("  ", depth), g.Kind.String())
		if g.Name != "" {
			fmt.Fprintf(w, " %s", g.Name)
		}
		if g.TemplateParams != "" {
			fmt.Fprintf(w, "%s", g.TemplateParams)
		}
		if d := metaDetail(g); d != "" {
			fmt.Fprintf(w, " [%s]", d)
		}
		fmt.Fprintf(w, " (%d:%d)\n", start.Line, start.Col)

		for _, c := range g.Children {
			walk(c, depth+1)
		}
	}
	walk(tree.Root(), 0)
	return nil
}

// FormatOutlineJSON prints the group tree as indented JSON.
func FormatOutlineJSON(w io.Writer, tree *group.Tree, fs *source.FileSet) error {
	var build func(id group.GroupID) OutlineNode
	build = func(id group.GroupID) OutlineNode {
		g := tree.Get(id)
		start, _ := fs.Resolve(g.Span)
		node := OutlineNode{
			Kind:           g.Kind.String(),
			Name:           g.Name,
			TemplateParams: g.TemplateParams,
			Span:           g.Span,
			StartLine:      start.Line,
			StartCol:       start.Col,
			Detail:         metaDetail(g),
		}
		for _, c := range g.Children {
			node.Children = append(node.Children, build(c))
		}
		return node
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(build(tree.Root()))
}

// metaDetail renders the kind-specific metadata as a short one-liner.
func metaDetail(g *group.Group) string {
	switch m := g.Meta.(type) {
	case group.ClassMeta:
		var parts []string
		if m.Extends != "" {
			parts = append(parts, "extends "+m.Extends)
		}
		if len(m.Implements) > 0 {
			parts = append(parts, "implements "+strings.Join(m.Implements, ", "))
		}
		return strings.Join(parts, "; ")
	case group.InterfaceMeta:
		if len(m.Extends) > 0 {
			return "extends " + strings.Join(m.Extends, ", ")
		}
	case group.EnumMeta:
		if m.IsConst {
			return "const"
		}
	case group.FnMeta:
		if m.ReturnType != "" {
			return ": " + m.ReturnType
		}
	case group.VarMeta:
		var parts []string
		parts = append(parts, m.DeclKeyword)
		if m.TypeAnnotation != "" {
			parts = append(parts, ": "+m.TypeAnnotation)
		}
		switch m.Init {
		case group.InitObject:
			parts = append(parts, "= {...}")
		case group.InitArray:
			parts = append(parts, "= [...]")
		case group.InitOther:
			parts = append(parts, "= ...")
		}
		return strings.Join(parts, " ")
	case group.TypeMeta:
		if m.RHS != "" {
			return "= " + m.RHS
		}
	case group.ImportMeta:
		var parts []string
		if m.TypeOnly {
			parts = append(parts, "type-only")
		}
		if m.Default != "" {
			parts = append(parts, "default "+m.Default)
		}
		if m.Namespace != "" {
			parts = append(parts, "* as "+m.Namespace)
		}
		if n := len(m.Named); n > 0 {
			parts = append(parts, fmt.Sprintf("%d named", n))
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
