package codegen

import (
	"strings"
	"testing"

	"macadam/internal/assetid"
	"macadam/internal/catalog"
	"macadam/internal/preprocess"
)

func TestEmitOrderIndependence(t *testing.T) {
	forward := []*catalog.Input{
		codegenInput("assets/zebra.png", 100, "assets", assetid.Remote(1)),
		codegenInput("assets/ui/button.png", 100, "assets", assetid.Remote(2)),
		codegenInput("assets/ui/button.png", 200, "assets", assetid.Remote(3)),
		codegenInput("assets/apple.png", 100, "assets", assetid.Remote(4)),
	}
	backward := []*catalog.Input{forward[3], forward[2], forward[1], forward[0]}

	first, err := BuildTree(forward)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	second, err := BuildTree(backward)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	if EmitLuau(first) != EmitLuau(second) {
		t.Error("luau output depends on insertion order")
	}
	if EmitTypeScript(first) != EmitTypeScript(second) {
		t.Error("typescript output depends on insertion order")
	}
}

func TestEmitLuauMultiDPILeaf(t *testing.T) {
	tree, err := BuildTree([]*catalog.Input{
		codegenInput("assets/icon.png", 200, "assets", assetid.Remote(20)),
		codegenInput("assets/icon.png", 100, "assets", assetid.Remote(10)),
	})
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	got := EmitLuau(tree)
	want := "-- " + fileHeader + "\n" +
		"return {\n" +
		"\ticon = {\n" +
		"\t\t[\"100\"] = \"remoteasset://10\",\n" +
		"\t\t[\"200\"] = \"remoteasset://20\",\n" +
		"\t},\n" +
		"}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmitTypeScriptDeclarationShape(t *testing.T) {
	tree, err := BuildTree([]*catalog.Input{
		codegenInput("assets/ui/button.png", 100, "assets", assetid.Remote(5)),
	})
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	got := EmitTypeScript(tree)
	want := "// " + fileHeader + "\n" +
		"declare interface Assets {\n" +
		"\treadonly ui: {\n" +
		"\t\treadonly button: \"remoteasset://5\";\n" +
		"\t};\n" +
		"}\n" +
		"declare const Assets: Assets;\n" +
		"export = Assets;\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmitSlicedInput(t *testing.T) {
	input := codegenInput("assets/sheet-part.png", 100, "assets", assetid.Remote(7))
	input.Slice = &preprocess.Slice{MinX: 10, MinY: 20, MaxX: 74, MaxY: 52}

	tree, err := BuildTree([]*catalog.Input{input})
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	got := EmitLuau(tree)
	for _, fragment := range []string{
		"Image = \"remoteasset://7\"",
		"SliceOffset = {",
		"X = 10",
		"Y = 20",
		"SliceSize = {",
		"X = 64",
		"Y = 32",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, got)
		}
	}
}

func TestEmitLocalIdentifiers(t *testing.T) {
	tree, err := BuildTree([]*catalog.Input{
		codegenInput("assets/button.png", 100, "assets", assetid.Local(".macadam/button.png")),
	})
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	got := EmitLuau(tree)
	if !strings.Contains(got, `button = "localasset://.macadam/button.png"`) {
		t.Errorf("output missing local identifier:\n%s", got)
	}
}
