package shape

import "testing"

func TestDirectionIsVertical(t *testing.T) {
	cases := []struct {
		d    Direction
		want bool
	}{
		{DirectionLTR, false},
		{DirectionRTL, false},
		{DirectionTTB, true},
		{DirectionBTT, true},
	}
	for _, c := range cases {
		if got := c.d.IsVertical(); got != c.want {
			t.Errorf("%v.IsVertical() = %v, want %v", c.d, got, c.want)
		}
	}
}

func TestDirectionString(t *testing.T) {
	if DirectionRTL.String() != "rtl" {
		t.Fatalf("DirectionRTL.String() = %q, want rtl", DirectionRTL.String())
	}
	if Direction(99).String() != "unknown" {
		t.Fatalf("unknown direction should stringify to 'unknown'")
	}
}

func TestApplyLetterSpacingHorizontal(t *testing.T) {
	glyphs := []PositionedGlyph{
		{XAdvance: 10},
		{XAdvance: 20},
		{XAdvance: 5},
	}
	advanceW, advanceH := applyLetterSpacing(glyphs, 2, false)

	if glyphs[0].X != 0 {
		t.Fatalf("glyphs[0].X = %v, want 0", glyphs[0].X)
	}
	if glyphs[1].X != 12 {
		t.Fatalf("glyphs[1].X = %v, want 12 (10 advance + 2 spacing)", glyphs[1].X)
	}
	if glyphs[2].X != 34 {
		t.Fatalf("glyphs[2].X = %v, want 34", glyphs[2].X)
	}
	// total = 10+2+20+2+5, no trailing spacing after the last glyph.
	if advanceW != 39 {
		t.Fatalf("advanceW = %v, want 39", advanceW)
	}
	if advanceH != 0 {
		t.Fatalf("advanceH = %v, want 0 for horizontal layout", advanceH)
	}
}

func TestApplyLetterSpacingEmpty(t *testing.T) {
	w, h := applyLetterSpacing(nil, 5, false)
	if w != 0 || h != 0 {
		t.Fatalf("empty glyph slice should produce zero advances, got (%v,%v)", w, h)
	}
}

func TestApplyLetterSpacingPreservesGPOSOffset(t *testing.T) {
	// X/Y on entry hold a mark/diacritic's GPOS offset; the pen position
	// must be added to it, not overwrite it.
	glyphs := []PositionedGlyph{
		{XAdvance: 10},
		{X: 3, XAdvance: 0}, // combining mark riding on the previous glyph
	}
	applyLetterSpacing(glyphs, 0, false)
	if glyphs[0].X != 0 {
		t.Fatalf("glyphs[0].X = %v, want 0", glyphs[0].X)
	}
	if glyphs[1].X != 13 {
		t.Fatalf("glyphs[1].X = %v, want 13 (10 pen position + 3 GPOS offset)", glyphs[1].X)
	}
}

func TestApplyLetterSpacingVertical(t *testing.T) {
	glyphs := []PositionedGlyph{{YAdvance: 10}, {YAdvance: 10}}
	_, advanceH := applyLetterSpacing(glyphs, 1, true)
	if advanceH != 21 {
		t.Fatalf("advanceH = %v, want 21", advanceH)
	}
	if glyphs[1].Y != 11 {
		t.Fatalf("glyphs[1].Y = %v, want 11", glyphs[1].Y)
	}
}
