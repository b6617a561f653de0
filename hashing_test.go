package typf

import (
	"testing"

	"github.com/fontlaborg/typf/internal/fontsrc"
)

func TestHashShapingParamsDeterministic(t *testing.T) {
	a := ShapingParams{SizePixels: 16, Direction: DirectionLTR, Language: "en"}
	b := ShapingParams{SizePixels: 16, Direction: DirectionLTR, Language: "en"}
	if hashShapingParams(a) != hashShapingParams(b) {
		t.Fatal("expected identical params to hash identically")
	}
}

func TestHashShapingParamsDistinguishesFields(t *testing.T) {
	base := ShapingParams{SizePixels: 16, Direction: DirectionLTR}
	variant := base
	variant.Direction = DirectionRTL
	if hashShapingParams(base) == hashShapingParams(variant) {
		t.Fatal("expected different directions to hash differently")
	}
}

func TestHashShapingResultDeterministic(t *testing.T) {
	r := &ShapingResult{
		Direction:    DirectionLTR,
		AdvanceWidth: 10,
		Glyphs:       []PositionedGlyph{{GlyphID: 1, Cluster: 0, XAdvance: 10}},
	}
	if hashShapingResult(r) != hashShapingResult(r) {
		t.Fatal("expected a stable result to hash identically across calls")
	}
}

func TestHashRenderParamsDistinguishesBackground(t *testing.T) {
	base := RenderParams{Foreground: Color{A: 255}}
	withBg := base
	bg := Color{R: 1, A: 255}
	withBg.Background = &bg
	if hashRenderParams(base) == hashRenderParams(withBg) {
		t.Fatal("expected nil vs non-nil background to hash differently")
	}
}

func TestHashRenderParamsGlyphDenyOrderIndependent(t *testing.T) {
	rp := RenderParams{
		Foreground: Color{A: 255},
		GlyphDeny: map[fontsrc.GlyphSource]bool{
			fontsrc.SourceCFF:  true,
			fontsrc.SourceSBIX: true,
			fontsrc.SourceSVG:  true,
		},
	}
	want := hashRenderParams(rp)
	for i := 0; i < 20; i++ {
		// Map iteration order is randomized per run; rebuilding the map
		// from scratch each time exercises that randomization, and the
		// hash must come out the same regardless.
		rp.GlyphDeny = map[fontsrc.GlyphSource]bool{
			fontsrc.SourceCFF:  true,
			fontsrc.SourceSBIX: true,
			fontsrc.SourceSVG:  true,
		}
		if got := hashRenderParams(rp); got != want {
			t.Fatalf("hashRenderParams with a 3-entry GlyphDeny was non-deterministic: got %d, want %d", got, want)
		}
	}
}
