package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	inner := errors.New("boom")
	err := Wrap(ErrTransport, "assetcloud", "upload", "submit failed", inner)
	if !errors.Is(err, ErrTransport) {
		t.Fatal("wrapped error should match its marker")
	}
	if !errors.Is(err, inner) {
		t.Fatal("wrapped error should preserve the inner error")
	}
}

func TestWrapNilMarkerDefaultsToTransport(t *testing.T) {
	err := Wrap(nil, "assetcloud", "poll", "", nil)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("nil marker should default to ErrTransport, got %v", err)
	}
}

func TestWrapDetailOmitsEmptyParts(t *testing.T) {
	err := Wrap(ErrValidation, "", "", "", nil)
	if got, want := err.Error(), "validation error: service failure"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(Wrap(ErrConfiguration, "backend", "select", "none target", nil)) {
		t.Error("configuration errors must be fatal")
	}
	if IsFatal(Wrap(ErrRateLimited, "backend", "upload", "", nil)) {
		t.Error("rate limiting must not be fatal to the pass")
	}
}
