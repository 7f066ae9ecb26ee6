package group_test

import (
	"strings"
	"testing"

	"quill/internal/diag"
	"quill/internal/group"
	"quill/internal/lexer"
	"quill/internal/source"
)

// buildTree lexes and groups input under a virtual file.
func buildTree(t *testing.T, input string) (*group.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ts", []byte(input)))

	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	return group.Build(file, tokens, rep), bag
}

// topLevel returns the root's children.
func topLevel(tree *group.Tree) []*group.Group {
	return tree.Children(tree.Root())
}

// spanText returns the original text under g's span.
func spanText(tree *group.Tree, g *group.Group) string {
	return string(tree.File.Content[g.Span.Start:g.Span.End])
}

func expectDecl(t *testing.T, g *group.Group, kind group.Kind, name string) {
	t.Helper()
	if g.Kind != kind || g.Name != name {
		t.Errorf("got %s %q, want %s %q", g.Kind, g.Name, kind, name)
	}
}

func TestTopLevelDeclarationKinds(t *testing.T) {
	src := strings.Join([]string{
		`import { x } from "./x";`,
		`class Alpha {}`,
		`interface Beta {}`,
		`enum Gamma { A, B }`,
		`const enum Delta { C }`,
		`type Epsilon = string;`,
		`function zeta() {}`,
		`const eta = 1;`,
		`let theta;`,
		`var iota = [];`,
	}, "\n")
	tree, bag := buildTree(t, src)

	decls := topLevel(tree)
	want := []struct {
		kind group.Kind
		name string
	}{
		{group.ImportDecl, "./x"},
		{group.ClassDecl, "Alpha"},
		{group.InterfaceDecl, "Beta"},
		{group.EnumDecl, "Gamma"},
		{group.EnumDecl, "Delta"},
		{group.TypeDecl, "Epsilon"},
		{group.FunctionDecl, "zeta"},
		{group.VariableDecl, "eta"},
		{group.VariableDecl, "theta"},
		{group.VariableDecl, "iota"},
	}
	if len(decls) != len(want) {
		for _, d := range decls {
			t.Logf("  %s %q", d.Kind, d.Name)
		}
		t.Fatalf("got %d top-level groups, want %d", len(decls), len(want))
	}
	for i, w := range want {
		expectDecl(t, decls[i], w.kind, w.name)
	}
	if bag.HasErrors() {
		t.Errorf("unexpected errors: %+v", bag.Items())
	}

	if m, ok := decls[4].Meta.(group.EnumMeta); !ok || !m.IsConst {
		t.Error("const enum not marked IsConst")
	}
}

func TestModifiersAndGenerics(t *testing.T) {
	tree, _ := buildTree(t, "export default abstract class Base<T extends object = {}> {}\n")

	decls := topLevel(tree)
	if len(decls) != 1 {
		t.Fatalf("got %d groups", len(decls))
	}
	g := decls[0]
	expectDecl(t, g, group.ClassDecl, "Base")
	if g.TemplateParams != "<T extends object = {}>" {
		t.Errorf("TemplateParams = %q", g.TemplateParams)
	}
	m, ok := g.Meta.(group.ClassMeta)
	if !ok {
		t.Fatalf("Meta is %T", g.Meta)
	}
	wantMods := []string{"export", "default", "abstract"}
	if len(m.Modifiers) != len(wantMods) {
		t.Fatalf("Modifiers = %v", m.Modifiers)
	}
	for i, w := range wantMods {
		if m.Modifiers[i] != w {
			t.Fatalf("Modifiers = %v", m.Modifiers)
		}
	}
}

func TestClassHeritageAndMembers(t *testing.T) {
	src := strings.Join([]string{
		"class Door extends Fixture implements Openable, Lockable {",
		"    private locked = false;",
		"    static defaults = { material: 'wood' };",
		"    open(): boolean {",
		"        return !this.locked;",
		"    }",
		"    get isLocked() { return this.locked; }",
		"}",
		"",
	}, "\n")
	tree, bag := buildTree(t, src)

	decls := topLevel(tree)
	if len(decls) != 1 {
		t.Fatalf("got %d groups", len(decls))
	}
	g := decls[0]
	expectDecl(t, g, group.ClassDecl, "Door")
	if bag.HasErrors() {
		t.Errorf("unexpected errors: %+v", bag.Items())
	}

	m := g.Meta.(group.ClassMeta)
	if m.Extends != "Fixture" {
		t.Errorf("Extends = %q", m.Extends)
	}
	if len(m.Implements) != 2 || m.Implements[0] != "Openable" || m.Implements[1] != "Lockable" {
		t.Errorf("Implements = %v", m.Implements)
	}
	if g.OpenTok < 0 || g.CloseTok < 0 {
		t.Error("body brackets not recorded")
	}

	// scalar fields contribute nothing; the literal field and the two
	// methods become children in source order
	kids := make([]*group.Group, 0, len(g.Children))
	for _, c := range g.Children {
		kids = append(kids, tree.Get(c))
	}
	if len(kids) != 3 {
		for _, k := range kids {
			t.Logf("  %s %q", k.Kind, k.Name)
		}
		t.Fatalf("got %d members, want 3", len(kids))
	}
	expectDecl(t, kids[0], group.ObjectLiteral, "defaults")
	expectDecl(t, kids[1], group.FunctionDecl, "open")
	expectDecl(t, kids[2], group.FunctionDecl, "isLocked")
	if fm := kids[1].Meta.(group.FnMeta); fm.ReturnType != "boolean" {
		t.Errorf("open ReturnType = %q", fm.ReturnType)
	}
}

func TestVariableInitializers(t *testing.T) {
	src := strings.Join([]string{
		"const config = { a: 1, nested: { b: 2 } };",
		"const items = [{ c: 3 }, [4]];",
		"const scalar = 42;",
		"let bare;",
	}, "\n")
	tree, bag := buildTree(t, src)

	decls := topLevel(tree)
	if len(decls) != 4 {
		t.Fatalf("got %d groups", len(decls))
	}
	if bag.HasErrors() {
		t.Errorf("unexpected errors: %+v", bag.Items())
	}

	cfg := decls[0]
	if m := cfg.Meta.(group.VarMeta); m.Init != group.InitObject || m.DeclKeyword != "const" {
		t.Errorf("config meta = %+v", m)
	}
	if len(cfg.Children) != 1 {
		t.Fatalf("config children = %d", len(cfg.Children))
	}
	obj := tree.Get(cfg.Children[0])
	expectDecl(t, obj, group.ObjectLiteral, "config")
	if len(obj.Children) != 1 {
		t.Fatalf("object children = %d", len(obj.Children))
	}
	expectDecl(t, tree.Get(obj.Children[0]), group.ObjectLiteral, "nested")

	items := decls[1]
	if m := items.Meta.(group.VarMeta); m.Init != group.InitArray {
		t.Errorf("items meta = %+v", m)
	}
	arr := tree.Get(items.Children[0])
	expectDecl(t, arr, group.ArrayLiteral, "items")
	if len(arr.Children) != 2 {
		t.Fatalf("array children = %d", len(arr.Children))
	}
	if tree.Get(arr.Children[0]).Kind != group.ObjectLiteral {
		t.Error("first array child should be an object literal")
	}
	if tree.Get(arr.Children[1]).Kind != group.ArrayLiteral {
		t.Error("second array child should be an array literal")
	}

	if m := decls[2].Meta.(group.VarMeta); m.Init != group.InitOther {
		t.Errorf("scalar meta = %+v", m)
	}
	if m := decls[3].Meta.(group.VarMeta); m.Init != group.InitNone || m.DeclKeyword != "let" {
		t.Errorf("bare meta = %+v", m)
	}
}

func TestVariableTypeAnnotation(t *testing.T) {
	tree, _ := buildTree(t, "const handler: (e: Event) => Promise<void> = async () => {};\n")

	decls := topLevel(tree)
	m := decls[0].Meta.(group.VarMeta)
	if m.TypeAnnotation != "(e: Event) => Promise<void>" {
		t.Errorf("TypeAnnotation = %q", m.TypeAnnotation)
	}
}

func TestTypeAlias(t *testing.T) {
	tree, _ := buildTree(t, "export type Result<T> = { ok: true; value: T } | { ok: false };\n")

	decls := topLevel(tree)
	g := decls[0]
	expectDecl(t, g, group.TypeDecl, "Result")
	if g.TemplateParams != "<T>" {
		t.Errorf("TemplateParams = %q", g.TemplateParams)
	}
	m := g.Meta.(group.TypeMeta)
	if m.RHS != "{ ok: true; value: T } | { ok: false }" {
		t.Errorf("RHS = %q", m.RHS)
	}
}

func TestImportForms(t *testing.T) {
	src := strings.Join([]string{
		`import "./side-effect";`,
		`import def from "./default";`,
		`import { one, two as alias } from "./named";`,
		`import * as ns from "./namespace";`,
		`import def2, { three } from "./mixed";`,
		`import type { Shape } from "./types";`,
	}, "\n")
	tree, bag := buildTree(t, src)

	decls := topLevel(tree)
	if len(decls) != 6 {
		t.Fatalf("got %d groups", len(decls))
	}
	if bag.HasErrors() {
		t.Errorf("unexpected errors: %+v", bag.Items())
	}

	metas := make([]group.ImportMeta, len(decls))
	for i, d := range decls {
		if d.Kind != group.ImportDecl {
			t.Fatalf("decl %d is %s", i, d.Kind)
		}
		metas[i] = d.Meta.(group.ImportMeta)
	}

	if metas[0].Path != "./side-effect" || metas[0].Default != "" || len(metas[0].Named) != 0 {
		t.Errorf("side-effect meta = %+v", metas[0])
	}
	if metas[1].Default != "def" {
		t.Errorf("default meta = %+v", metas[1])
	}
	if len(metas[2].Named) != 2 || metas[2].Named[0].Name != "one" ||
		metas[2].Named[1].Name != "two" || metas[2].Named[1].Alias != "alias" {
		t.Errorf("named meta = %+v", metas[2])
	}
	if metas[3].Namespace != "ns" {
		t.Errorf("namespace meta = %+v", metas[3])
	}
	if metas[4].Default != "def2" || len(metas[4].Named) != 1 {
		t.Errorf("mixed meta = %+v", metas[4])
	}
	if !metas[5].TypeOnly || len(metas[5].Named) != 1 || metas[5].Named[0].Name != "Shape" {
		t.Errorf("type-only meta = %+v", metas[5])
	}
}

func TestImportMissingPath(t *testing.T) {
	_, bag := buildTree(t, "import { a };\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.GrpMissingImportPath {
			found = true
		}
	}
	if !found {
		t.Error("expected a missing-import-path diagnostic")
	}
}

func TestFunctionDeclaration(t *testing.T) {
	src := "async function fetchAll<T>(urls: string[]): Promise<T[]> {\n    return [];\n}\n"
	tree, bag := buildTree(t, "export "+src)

	decls := topLevel(tree)
	g := decls[0]
	expectDecl(t, g, group.FunctionDecl, "fetchAll")
	m := g.Meta.(group.FnMeta)
	if m.ReturnType != "Promise<T[]>" {
		t.Errorf("ReturnType = %q", m.ReturnType)
	}
	if len(m.Modifiers) != 2 || m.Modifiers[0] != "export" || m.Modifiers[1] != "async" {
		t.Errorf("Modifiers = %v", m.Modifiers)
	}
	if g.OpenTok < 0 || g.CloseTok < 0 {
		t.Error("body brackets not recorded")
	}
	if bag.HasErrors() {
		t.Errorf("unexpected errors: %+v", bag.Items())
	}
}

func TestSpanCoversWholeDeclaration(t *testing.T) {
	src := "const obj = { a: 1 };\nclass C {}\n"
	tree, _ := buildTree(t, src)

	decls := topLevel(tree)
	if got := spanText(tree, decls[0]); got != "const obj = { a: 1 };" {
		t.Errorf("variable span = %q", got)
	}
	if got := spanText(tree, decls[1]); got != "class C {}" {
		t.Errorf("class span = %q", got)
	}
}

func TestMissingSemicolonRecovery(t *testing.T) {
	src := "const a = 1\nconst b = 2\n"
	tree, _ := buildTree(t, src)

	decls := topLevel(tree)
	if len(decls) != 2 {
		t.Fatalf("got %d groups, want 2", len(decls))
	}
	expectDecl(t, decls[0], group.VariableDecl, "a")
	expectDecl(t, decls[1], group.VariableDecl, "b")
}

func TestUnclosedBodyDiagnostic(t *testing.T) {
	tree, bag := buildTree(t, "class Broken {\n    method() {\n")

	decls := topLevel(tree)
	if len(decls) != 1 {
		t.Fatalf("got %d groups", len(decls))
	}
	expectDecl(t, decls[0], group.ClassDecl, "Broken")
	if !bag.HasErrors() {
		t.Error("expected an unclosed-brace diagnostic")
	}
}

func TestMissingNameDiagnostic(t *testing.T) {
	_, bag := buildTree(t, "class {}\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.GrpMissingName {
			found = true
		}
	}
	if !found {
		t.Error("expected a missing-name diagnostic")
	}
}

func TestDestructuringBindings(t *testing.T) {
	src := "const { a, b } = pair;\nconst [x, y] = coords;\n"
	tree, _ := buildTree(t, src)

	decls := topLevel(tree)
	if len(decls) != 2 {
		t.Fatalf("got %d groups", len(decls))
	}
	expectDecl(t, decls[0], group.VariableDecl, "ObjectPattern")
	expectDecl(t, decls[1], group.VariableDecl, "ArrayPattern")
}

func TestNonDeclarationCodeIsSkipped(t *testing.T) {
	src := "console.log('hi');\nif (x) { doThing(); }\nconst real = 1;\n"
	tree, _ := buildTree(t, src)

	decls := topLevel(tree)
	if len(decls) != 1 {
		t.Fatalf("got %d groups, want only the declaration", len(decls))
	}
	expectDecl(t, decls[0], group.VariableDecl, "real")
}

func TestBracesInLiteralsDoNotConfuseBalancing(t *testing.T) {
	src := "const tricky = { a: '}', b: `}`, c: \"{{\" };\nconst after = 1;\n"
	tree, bag := buildTree(t, src)

	decls := topLevel(tree)
	if len(decls) != 2 {
		t.Fatalf("got %d groups, want 2", len(decls))
	}
	if bag.HasErrors() {
		t.Errorf("unexpected errors: %+v", bag.Items())
	}
}

func TestInterfaceExtends(t *testing.T) {
	tree, _ := buildTree(t, "interface Both extends Left, Right<T> {}\n")

	g := topLevel(tree)[0]
	m := g.Meta.(group.InterfaceMeta)
	if len(m.Extends) != 2 || m.Extends[0] != "Left" || m.Extends[1] != "Right<T>" {
		t.Errorf("Extends = %v", m.Extends)
	}
}
