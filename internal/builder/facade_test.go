package builder

import (
	"strings"
	"testing"
)

func TestFindObjectMissing(t *testing.T) {
	cb := New("test.ts", "const obj = { a: 1 };\n")

	if _, ok := cb.FindObject("missing"); ok {
		t.Error("found an object that does not exist")
	}
	if _, ok := cb.FindObject("a"); ok {
		t.Error("property name must not match as a top-level object")
	}
	if got := mustRender(t, cb); got != cb.Original() {
		t.Errorf("failed lookups must not change the text, got %q", got)
	}
}

func TestFindObjectIgnoresNonObjectInit(t *testing.T) {
	cb := New("test.ts", "const a = [1, 2];\nconst b = 42;\nconst c = { x: 1 };\n")

	if _, ok := cb.FindObject("a"); ok {
		t.Error("array initializer matched FindObject")
	}
	if _, ok := cb.FindObject("b"); ok {
		t.Error("scalar initializer matched FindObject")
	}
	if _, ok := cb.FindObject("c"); !ok {
		t.Error("object initializer not found")
	}
	if _, ok := cb.FindArray("a"); !ok {
		t.Error("array initializer not found by FindArray")
	}
}

func TestFindClassAndInterface(t *testing.T) {
	src := strings.Join([]string{
		"export interface Shape {",
		"    area(): number;",
		"}",
		"",
		"export class Circle implements Shape {",
		"    radius = 1;",
		"    area(): number { return 3.14 * this.radius ** 2; }",
		"}",
		"",
	}, "\n")
	cb := New("test.ts", src)

	iface, ok := cb.FindInterface("Shape")
	if !ok {
		t.Fatal("interface Shape not found")
	}
	if !strings.Contains(iface.BodyText(), "area(): number;") {
		t.Errorf("unexpected interface body %q", iface.BodyText())
	}

	cls, ok := cb.FindClass("Circle")
	if !ok {
		t.Fatal("class Circle not found")
	}
	if got := cls.Implements(); len(got) != 1 || got[0] != "Shape" {
		t.Errorf("Implements() = %v", got)
	}
	m, ok := cls.FindMethod("area")
	if !ok {
		t.Fatal("method area not found")
	}
	if m.ReturnType() != "number" {
		t.Errorf("ReturnType() = %q", m.ReturnType())
	}
}

func TestFindType(t *testing.T) {
	src := "type ID = string | number;\nconst port: number = 8080;\n"
	cb := New("test.ts", src)

	alias, ok := cb.FindType("ID")
	if !ok {
		t.Fatal("type alias ID not found")
	}
	if !alias.IsAlias() || alias.Text() != "string | number" {
		t.Errorf("alias text = %q, isAlias = %v", alias.Text(), alias.IsAlias())
	}

	ann, ok := cb.FindType("port")
	if !ok {
		t.Fatal("annotated variable port not found")
	}
	if ann.IsAlias() || ann.Text() != "number" {
		t.Errorf("annotation text = %q, isAlias = %v", ann.Text(), ann.IsAlias())
	}

	if _, ok := cb.FindType("missing"); ok {
		t.Error("found a type that does not exist")
	}
}

func TestInsertCodeAtIndex(t *testing.T) {
	src := strings.Join([]string{
		`import { a } from "a";`,
		"",
		"const x = {};",
		"",
	}, "\n")
	cb := New("test.ts", src)

	if err := cb.InsertCodeAtIndex(1, `import { b } from "b";`); err != nil {
		t.Fatalf("InsertCodeAtIndex: %v", err)
	}

	want := strings.Join([]string{
		`import { a } from "a";`,
		"",
		`import { b } from "b";`,
		"const x = {};",
		"",
	}, "\n")
	if got := mustRender(t, cb); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestInsertCodeAtIndexBounds(t *testing.T) {
	cb := New("test.ts", "const x = 1;\n")

	if err := cb.InsertCodeAtIndex(0, "const y = 0;"); err != nil {
		t.Fatalf("insert at 0: %v", err)
	}
	got := mustRender(t, cb)
	want := "const y = 0;\nconst x = 1;\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if err := cb.InsertCodeAtIndex(7, "const z = 2;"); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestInsertCodeAppend(t *testing.T) {
	cb := New("test.ts", "const x = 1;")

	if err := cb.InsertCodeAtIndex(1, "const y = 2;"); err != nil {
		t.Fatalf("append: %v", err)
	}
	got := mustRender(t, cb)
	want := "const x = 1;\nconst y = 2;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFlushReparses(t *testing.T) {
	cb := New("test.ts", "const obj = {};\n")
	ob := mustFindObject(t, cb, "obj")
	if err := ob.SetPropertyValue("a", "1"); err != nil {
		t.Fatalf("SetPropertyValue: %v", err)
	}

	out, err := cb.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if out != "const obj = {a: 1};\n" {
		t.Fatalf("flushed text = %q", out)
	}
	if cb.PendingEdits() != 0 {
		t.Errorf("edits survived Flush: %d", cb.PendingEdits())
	}

	ob2 := mustFindObject(t, cb, "obj")
	if err := ob2.SetPropertyValue("a", "2"); err != nil {
		t.Fatalf("SetPropertyValue after Flush: %v", err)
	}
	got := mustRender(t, cb)
	if got != "const obj = {a: 2};\n" {
		t.Errorf("got %q", got)
	}
}

func TestResetToDiscardsEdits(t *testing.T) {
	cb := New("test.ts", "const obj = { a: 1 };\n")
	ob := mustFindObject(t, cb, "obj")
	if err := ob.SetPropertyValue("a", "2"); err != nil {
		t.Fatalf("SetPropertyValue: %v", err)
	}

	cb.ResetTo("const other = {};\n")
	if cb.PendingEdits() != 0 {
		t.Errorf("edits survived ResetTo: %d", cb.PendingEdits())
	}
	if got := mustRender(t, cb); got != "const other = {};\n" {
		t.Errorf("got %q", got)
	}
}

func TestUnicodeNameMatching(t *testing.T) {
	// e-acute spelled precomposed in the source, decomposed in the query
	cb := New("test.ts", "const café = { a: 1 };\n")

	if _, ok := cb.FindObject("café"); !ok {
		t.Error("NFC-equivalent name did not match")
	}
}

func TestMalformedInputStillQueryable(t *testing.T) {
	cb := New("test.ts", "const obj = { a: 1\n")

	ob, ok := cb.FindObject("obj")
	if !ok {
		t.Fatal("unclosed object not found")
	}
	props := ob.ParseProperties()
	if len(props) != 1 || props[0].Name != "a" {
		t.Errorf("props = %+v", props)
	}
	if !cb.Diagnostics().HasErrors() {
		t.Error("expected an unclosed-brace diagnostic")
	}
}
