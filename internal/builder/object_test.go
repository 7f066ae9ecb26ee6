package builder

import (
	"strings"
	"testing"
)

func mustFindObject(t *testing.T, cb *CodeBuilder, name string) *ObjectBuilder {
	t.Helper()
	ob, ok := cb.FindObject(name)
	if !ok {
		t.Fatalf("object %q not found", name)
	}
	return ob
}

func mustRender(t *testing.T, cb *CodeBuilder) string {
	t.Helper()
	out, err := cb.Render()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return out
}

func TestSetPropertyValueOnEmptyObject(t *testing.T) {
	cb := New("test.ts", "const obj = {};\n")
	ob := mustFindObject(t, cb, "obj")

	if err := ob.SetPropertyValue("first", "value"); err != nil {
		t.Fatalf("SetPropertyValue: %v", err)
	}

	got := mustRender(t, cb)
	want := "const obj = {first: value};\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAddPropertyPreservesSingleLineStyle(t *testing.T) {
	cb := New("test.ts", "const obj = { existing: 'value' };\n")
	ob := mustFindObject(t, cb, "obj")

	if err := ob.SetPropertyValue("newProp", "newValue"); err != nil {
		t.Fatalf("SetPropertyValue: %v", err)
	}

	got := mustRender(t, cb)
	want := "const obj = { existing: 'value', newProp: newValue };\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAddPropertyPreservesMultilineStyle(t *testing.T) {
	src := strings.Join([]string{
		"const config = {",
		"    first: 1,",
		"    second: 2,",
		"};",
		"",
	}, "\n")
	cb := New("test.ts", src)
	ob := mustFindObject(t, cb, "config")

	if err := ob.SetPropertyValue("third", "3"); err != nil {
		t.Fatalf("SetPropertyValue: %v", err)
	}

	want := strings.Join([]string{
		"const config = {",
		"    first: 1,",
		"    second: 2,",
		"    third: 3,",
		"};",
		"",
	}, "\n")
	if got := mustRender(t, cb); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormattingDetectionIdempotent(t *testing.T) {
	src := strings.Join([]string{
		"const config = {",
		"    first: 1,",
		"};",
		"",
	}, "\n")
	cb := New("test.ts", src)
	ob := mustFindObject(t, cb, "config")

	if err := ob.SetPropertyValue("second", "2"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	once := mustRender(t, cb)

	// re-parse the rendered output and insert again: the detected indent
	// must come out identical both times
	cb2 := New("test.ts", once)
	ob2 := mustFindObject(t, cb2, "config")
	if err := ob2.SetPropertyValue("third", "3"); err != nil {
		t.Fatalf("second insert: %v", err)
	}

	want := strings.Join([]string{
		"const config = {",
		"    first: 1,",
		"    second: 2,",
		"    third: 3,",
		"};",
		"",
	}, "\n")
	if got := mustRender(t, cb2); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestAddPropertyWithoutTrailingComma(t *testing.T) {
	src := strings.Join([]string{
		"const config = {",
		"  first: 1,",
		"  second: 2",
		"};",
		"",
	}, "\n")
	cb := New("test.ts", src)
	ob := mustFindObject(t, cb, "config")

	if err := ob.SetPropertyValue("third", "3"); err != nil {
		t.Fatalf("SetPropertyValue: %v", err)
	}

	want := strings.Join([]string{
		"const config = {",
		"  first: 1,",
		"  second: 2,",
		"  third: 3",
		"};",
		"",
	}, "\n")
	if got := mustRender(t, cb); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSetPropertyValueReplacesExactValueSpan(t *testing.T) {
	src := strings.Join([]string{
		"const config = {",
		"    first: 1,",
		"    second: 2,",
		"};",
		"",
	}, "\n")
	cb := New("test.ts", src)
	ob := mustFindObject(t, cb, "config")

	before := len(ob.ParseProperties())
	if err := ob.SetPropertyValue("second", "99"); err != nil {
		t.Fatalf("SetPropertyValue: %v", err)
	}

	got := mustRender(t, cb)
	if !strings.Contains(got, "second: 99,") {
		t.Errorf("value not replaced:\n%s", got)
	}

	cb2 := New("test.ts", got)
	ob2 := mustFindObject(t, cb2, "config")
	if after := len(ob2.ParseProperties()); after != before {
		t.Errorf("property count changed: %d -> %d", before, after)
	}
}

func TestAddPropertyAtIndexOrdering(t *testing.T) {
	src := strings.Join([]string{
		"const obj = {",
		"    a: 1,",
		"    c: 3",
		"};",
		"",
	}, "\n")
	cb := New("test.ts", src)
	ob := mustFindObject(t, cb, "obj")

	if err := ob.AddPropertyAtIndex(1, "b", "2"); err != nil {
		t.Fatalf("AddPropertyAtIndex: %v", err)
	}

	got := mustRender(t, cb)
	cb2 := New("test.ts", got)
	ob2 := mustFindObject(t, cb2, "obj")
	names := ob2.PropertyNames()
	want := []string{"a", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestAddPropertyAtIndexOutOfRange(t *testing.T) {
	cb := New("test.ts", "const obj = { a: 1 };\n")
	ob := mustFindObject(t, cb, "obj")

	if err := ob.AddPropertyAtIndex(5, "b", "2"); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if err := ob.AddPropertyAtIndex(-1, "b", "2"); err == nil {
		t.Error("expected error for negative index")
	}
	if got := mustRender(t, cb); got != cb.Original() {
		t.Errorf("failed insert must not change the text, got %q", got)
	}
}

func TestAddPropertyAfterItem(t *testing.T) {
	src := strings.Join([]string{
		"const obj = {",
		"    a: 1,",
		"    c: 3",
		"};",
		"",
	}, "\n")
	cb := New("test.ts", src)
	ob := mustFindObject(t, cb, "obj")

	if err := ob.AddPropertyAfterItem("a", "b", "2"); err != nil {
		t.Fatalf("AddPropertyAfterItem: %v", err)
	}
	got := mustRender(t, cb)
	aIdx := strings.Index(got, "a: 1")
	bIdx := strings.Index(got, "b: 2")
	cIdx := strings.Index(got, "c: 3")
	if aIdx < 0 || bIdx < 0 || cIdx < 0 || !(aIdx < bIdx && bIdx < cIdx) {
		t.Errorf("wrong ordering:\n%s", got)
	}

	if err := ob.AddPropertyAfterItem("missing", "x", "1"); err == nil {
		t.Error("expected error for unknown anchor property")
	}
}

func TestRemovePropertyMiddle(t *testing.T) {
	src := strings.Join([]string{
		"const obj = {",
		"    a: 1,",
		"    b: 2,",
		"    c: 3",
		"};",
		"",
	}, "\n")
	cb := New("test.ts", src)
	ob := mustFindObject(t, cb, "obj")

	if !ob.RemoveProperty("b") {
		t.Fatal("RemoveProperty returned false")
	}

	want := strings.Join([]string{
		"const obj = {",
		"    a: 1,",
		"    c: 3",
		"};",
		"",
	}, "\n")
	if got := mustRender(t, cb); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRemovePropertyLast(t *testing.T) {
	cb := New("test.ts", "const obj = { a: 1, b: 2 };\n")
	ob := mustFindObject(t, cb, "obj")

	if !ob.RemoveProperty("b") {
		t.Fatal("RemoveProperty returned false")
	}
	got := mustRender(t, cb)
	want := "const obj = { a: 1 };\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRemoveSolePropertyCollapses(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"padded", "const obj = { only: 1 };\n", "const obj = { };\n"},
		{"bare", "const obj = {only: 1};\n", "const obj = {};\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := New("test.ts", tt.src)
			ob := mustFindObject(t, cb, "obj")
			if !ob.RemoveProperty("only") {
				t.Fatal("RemoveProperty returned false")
			}
			if got := mustRender(t, cb); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemovePropertyMissing(t *testing.T) {
	cb := New("test.ts", "const obj = { a: 1 };\n")
	ob := mustFindObject(t, cb, "obj")

	if ob.RemoveProperty("nope") {
		t.Error("RemoveProperty reported success for a missing property")
	}
	if got := mustRender(t, cb); got != cb.Original() {
		t.Errorf("miss must not change the text, got %q", got)
	}
}

func TestNestedObjectIndentPreserved(t *testing.T) {
	src := strings.Join([]string{
		"const data = {",
		"    outer: {",
		"        inner: {",
		"            value: 1",
		"        }",
		"    }",
		"};",
		"",
	}, "\n")
	cb := New("test.ts", src)
	inner, ok := mustFindObject(t, cb, "data").FindObject("outer")
	if !ok {
		t.Fatal("outer not found")
	}
	innermost, ok := inner.FindObject("inner")
	if !ok {
		t.Fatal("inner not found")
	}

	if err := innermost.SetPropertyValue("second", "2"); err != nil {
		t.Fatalf("SetPropertyValue: %v", err)
	}

	want := strings.Join([]string{
		"const data = {",
		"    outer: {",
		"        inner: {",
		"            value: 1,",
		"            second: 2",
		"        }",
		"    }",
		"};",
		"",
	}, "\n")
	if got := mustRender(t, cb); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestShorthandPropertyExpansion(t *testing.T) {
	cb := New("test.ts", "const obj = { a, b: 2 };\n")
	ob := mustFindObject(t, cb, "obj")

	if err := ob.SetPropertyValue("a", "10"); err != nil {
		t.Fatalf("SetPropertyValue: %v", err)
	}
	got := mustRender(t, cb)
	want := "const obj = { a: 10, b: 2 };\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAddNestedLiterals(t *testing.T) {
	cb := New("test.ts", "const obj = { a: 1 };\n")
	ob := mustFindObject(t, cb, "obj")

	if err := ob.AddObjectAfterItem("a", "nested"); err != nil {
		t.Fatalf("AddObjectAfterItem: %v", err)
	}
	got := mustRender(t, cb)
	want := "const obj = { a: 1, nested: {} };\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	cb2 := New("test.ts", got)
	ob2 := mustFindObject(t, cb2, "obj")
	if err := ob2.AddArrayAtIndex(0, "list"); err != nil {
		t.Fatalf("AddArrayAtIndex: %v", err)
	}
	got2 := mustRender(t, cb2)
	want2 := "const obj = { list: [], a: 1, nested: {} };\n"
	if got2 != want2 {
		t.Errorf("got %q, want %q", got2, want2)
	}
}

func TestParsePropertiesSkipsNestedCommas(t *testing.T) {
	cb := New("test.ts", "const obj = { a: f(1, 2), b: [3, 4], c: { d: 5, e: 6 } };\n")
	ob := mustFindObject(t, cb, "obj")

	names := ob.PropertyNames()
	want := []string{"a", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}

	if v, ok := ob.PropertyValueText("a"); !ok || v != "f(1, 2)" {
		t.Errorf("value of a = %q, ok=%v", v, ok)
	}
}

func TestQuotedAndNumericKeys(t *testing.T) {
	cb := New("test.ts", "const obj = { 'first key': 1, \"second\": 2, 3: 'x' };\n")
	ob := mustFindObject(t, cb, "obj")

	names := ob.PropertyNames()
	want := []string{"first key", "second", "3"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestOverlappingEditsFailAtRender(t *testing.T) {
	cb := New("test.ts", "const obj = { a: 1 };\n")
	ob := mustFindObject(t, cb, "obj")

	if err := ob.SetPropertyValue("a", "2"); err != nil {
		t.Fatalf("first edit: %v", err)
	}
	if err := ob.SetPropertyValue("a", "3"); err != nil {
		t.Fatalf("second edit: %v", err)
	}
	if _, err := cb.Render(); err == nil {
		t.Error("expected overlap error from Render")
	}
}
