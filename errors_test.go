package typf

import (
	"errors"
	"testing"
)

func TestErrorMessageFormat(t *testing.T) {
	e := newError("shape", KindGlyphNotFound, "missing cmap entry", nil)
	want := "shape: glyph_not_found: missing cmap entry"
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestErrorWrapsUnderlyingCause(t *testing.T) {
	cause := errors.New("boom")
	e := newError("render", KindRenderFailed, "", cause)
	if !errors.Is(e, cause) {
		t.Fatal("expected errors.Is to see through to the wrapped cause")
	}
}

func TestErrorIsMatchesByKindOnly(t *testing.T) {
	a := newError("shape", KindGlyphNotFound, "a", nil)
	b := newError("render", KindGlyphNotFound, "b", errors.New("x"))
	if !errors.Is(a, b) {
		t.Fatal("expected two errors with the same Kind to satisfy errors.Is")
	}

	c := newError("shape", KindInvalidFont, "a", nil)
	if errors.Is(a, c) {
		t.Fatal("expected different Kinds to not satisfy errors.Is")
	}
}

func TestRenderFailedErrorCarriesGlyphID(t *testing.T) {
	e := newRenderFailedError("render", 42, errors.New("bbox too large"))
	if e.GlyphID != 42 {
		t.Fatalf("GlyphID = %d, want 42", e.GlyphID)
	}
	if e.Kind != KindRenderFailed {
		t.Fatalf("Kind = %v, want KindRenderFailed", e.Kind)
	}
}
