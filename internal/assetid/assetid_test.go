package assetid

import (
	"errors"
	"testing"
)

func TestRemoteRendering(t *testing.T) {
	id := Remote(12345)
	if got, want := id.String(), "remoteasset://12345"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestLocalRenderingUsesForwardSlashes(t *testing.T) {
	id := Local(`icons\toolbar\save.png`)
	if got, want := id.String(), "localasset://icons/toolbar/save.png"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestParseRoundTrip(t *testing.T) {
	cases := []ID{
		Remote(1),
		Remote(18446744073709551615),
		Local("a/b/c.png"),
		Local(".macadam/project/button.png"),
	}
	for _, id := range cases {
		parsed, err := Parse(id.String())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", id.String(), err)
		}
		if parsed != id {
			t.Errorf("round trip mismatch: got %#v, want %#v", parsed, id)
		}
	}
}

func TestParseNeverConfusesVariants(t *testing.T) {
	remote, err := Parse("remoteasset://42")
	if err != nil {
		t.Fatalf("Parse remote: %v", err)
	}
	if _, ok := remote.LocalPath(); ok {
		t.Error("remote identifier parsed as local")
	}

	local, err := Parse("localasset://42")
	if err != nil {
		t.Fatalf("Parse local: %v", err)
	}
	if _, ok := local.RemoteID(); ok {
		t.Error("local identifier parsed as remote")
	}
	if rel, _ := local.LocalPath(); rel != "42" {
		t.Errorf("local path = %q, want %q", rel, "42")
	}
}

func TestParseRejectsUnknownScheme(t *testing.T) {
	if _, err := Parse("https://example.com/asset/1"); !errors.Is(err, ErrUnrecognized) {
		t.Fatalf("expected ErrUnrecognized, got %v", err)
	}
}

func TestParseRejectsMalformedRemote(t *testing.T) {
	if _, err := Parse("remoteasset://not-a-number"); err == nil {
		t.Fatal("expected error for non-numeric remote id")
	}
}

func TestTextMarshalRoundTrip(t *testing.T) {
	original := Remote(777)
	text, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var decoded ID
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if decoded != original {
		t.Fatalf("round trip mismatch: got %#v, want %#v", decoded, original)
	}
}

func TestIsZero(t *testing.T) {
	var id ID
	if !id.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if Remote(1).IsZero() {
		t.Error("assigned identifier should not report IsZero")
	}
}
