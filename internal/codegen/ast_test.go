package codegen

import "testing"

func TestTableLuauBracketQuotesNonIdentifiers(t *testing.T) {
	table := Table{
		{Key: "plain", Value: String("a")},
		{Key: "200", Value: String("b")},
		{Key: "two words", Value: String("c")},
	}

	got := RenderLuau(ExportAssignment{Value: table})
	want := "return {\n" +
		"\tplain = \"a\",\n" +
		"\t[\"200\"] = \"b\",\n" +
		"\t[\"two words\"] = \"c\",\n" +
		"}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInterfaceDeclarationTS(t *testing.T) {
	decl := InterfaceDeclaration{
		Name:    "Sprite",
		Declare: true,
		Members: Table{
			{Key: "Image", Value: Identifier("string")},
			{Key: "2x", Value: Identifier("string")},
		},
	}

	got := RenderTypeScript(decl)
	want := "declare interface Sprite {\n" +
		"\treadonly Image: string;\n" +
		"\treadonly [\"2x\"]: string;\n" +
		"}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestVariableDeclarationTS(t *testing.T) {
	decl := VariableDeclaration{
		Name:    "Assets",
		Declare: true,
		Type:    Identifier("Assets"),
	}
	if got, want := RenderTypeScript(decl), "declare const Assets: Assets;\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFunctionType(t *testing.T) {
	fn := FunctionType{
		Params: []Param{{Name: "dpiScale", Type: Identifier("number")}},
		Return: Identifier("string"),
	}

	s := NewStream()
	fn.emitTS(s)
	if got, want := s.String(), "(dpiScale: number) => string"; got != want {
		t.Errorf("ts: got %q, want %q", got, want)
	}

	s = NewStream()
	fn.emitLuau(s)
	if got, want := s.String(), "(dpiScale: number) -> string"; got != want {
		t.Errorf("luau: got %q, want %q", got, want)
	}
}

func TestTemplateInterpolation(t *testing.T) {
	tmpl := Template{String("asset-"), Identifier("id")}

	s := NewStream()
	tmpl.emitTS(s)
	if got, want := s.String(), "`asset-${id}`"; got != want {
		t.Errorf("ts: got %q, want %q", got, want)
	}

	s = NewStream()
	tmpl.emitLuau(s)
	if got, want := s.String(), "`asset-{id}`"; got != want {
		t.Errorf("luau: got %q, want %q", got, want)
	}
}

func TestCommentRendering(t *testing.T) {
	if got, want := RenderLuau(Comment("one\ntwo")), "-- one\n-- two\n"; got != want {
		t.Errorf("luau: got %q, want %q", got, want)
	}
	if got, want := RenderTypeScript(Comment("one")), "// one\n"; got != want {
		t.Errorf("ts: got %q, want %q", got, want)
	}
}

func TestNestedTableIndentation(t *testing.T) {
	table := Table{
		{Key: "outer", Value: Table{
			{Key: "inner", Value: String("x")},
		}},
	}

	got := RenderLuau(ExportAssignment{Value: table})
	want := "return {\n" +
		"\touter = {\n" +
		"\t\tinner = \"x\",\n" +
		"\t},\n" +
		"}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
