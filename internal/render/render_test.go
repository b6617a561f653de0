package render

import (
	"errors"
	"testing"

	"github.com/fontlaborg/typf/internal/fontsrc"
)

func TestCanvasSize(t *testing.T) {
	w, h := canvasSize(100, 18, 4, 5)
	if w != 110 {
		t.Fatalf("w = %d, want 110 (ceil(100) + 2*5)", w)
	}
	if h != 32 {
		t.Fatalf("h = %d, want 32 (ceil(22) + 2*5)", h)
	}
}

func TestCanvasSizeRoundsUpFractionalAdvance(t *testing.T) {
	w, _ := canvasSize(99.1, 0, 0, 0)
	if w != 100 {
		t.Fatalf("w = %d, want 100 (ceil(99.1))", w)
	}
}

func TestPremul(t *testing.T) {
	if premul(255, 255) != 255 {
		t.Fatalf("premul(255,255) = %d, want 255", premul(255, 255))
	}
	if premul(255, 0) != 0 {
		t.Fatalf("premul(255,0) = %d, want 0", premul(255, 0))
	}
	if premul(128, 128) != 64 {
		t.Fatalf("premul(128,128) = %d, want 64", premul(128, 128))
	}
}

func TestZeroDimensionsError(t *testing.T) {
	err := &ZeroDimensionsError{Width: 0, Height: 10}
	if err.Error() == "" {
		t.Fatal("expected a non-empty error message")
	}
}

func TestGlyphRenderErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &GlyphRenderError{GlyphID: 3, Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("GlyphRenderError should unwrap to its inner error")
	}
}

func TestEffectiveOrderDefaultsWhenUnset(t *testing.T) {
	order := effectiveOrder(Params{})
	if len(order) != len(fontsrc.DefaultGlyphSourceOrder) {
		t.Fatalf("expected the default glyph source order when none is set, got %v", order)
	}
}

func TestEffectiveOrderHonorsCustomPreference(t *testing.T) {
	custom := []fontsrc.GlyphSource{fontsrc.SourceCFF, fontsrc.SourceGlyf}
	order := effectiveOrder(Params{GlyphOrder: custom})
	if len(order) != 2 || order[0] != fontsrc.SourceCFF {
		t.Fatalf("custom preference not honored: %v", order)
	}
}

func TestFillBackground(t *testing.T) {
	canvas := make([]byte, 8)
	fillBackground(canvas, Color{R: 1, G: 2, B: 3, A: 4})
	want := []byte{1, 2, 3, 4, 1, 2, 3, 4}
	for i := range want {
		if canvas[i] != want[i] {
			t.Fatalf("canvas = %v, want %v", canvas, want)
		}
	}
}

func TestParamsOversampleLevel(t *testing.T) {
	if (Params{Antialias: false}).oversample() != 2 {
		t.Fatal("non-antialiased params should use the lowest oversample level")
	}
	if (Params{Antialias: true}).oversample() <= (Params{Antialias: false}).oversample() {
		t.Fatal("antialiased params should oversample more than non-antialiased")
	}
}
