package shape

import (
	"fmt"

	"github.com/fontlaborg/typf/internal/fontsrc"
)

// BuiltinShaper lays out one glyph per rune using only cmap lookup and
// the font's own advance widths: no ligatures, no kerning, no
// contextual forms, no bidi reordering of the kind a full OpenType
// shaping engine performs. It exists as the always-available fallback
// and is grounded on gogpu-gg's text.BuiltinShaper.
//
// BuiltinShaper is stateless and safe for concurrent use.
type BuiltinShaper struct{}

// NewBuiltinShaper returns a BuiltinShaper.
func NewBuiltinShaper() *BuiltinShaper { return &BuiltinShaper{} }

func (s *BuiltinShaper) Name() string { return "builtin" }

// Shape implements Shaper. Clusters are byte offsets into text (matching
// GoTextShaper's TextIndex()-derived clusters, per the cluster
// invariant), not rune indices; for RTL and BTT the glyph slice is
// reversed so it remains in visual order with clusters non-increasing,
// matching the result invariant.
func (s *BuiltinShaper) Shape(text string, src *fontsrc.Source, p Params) (*Result, error) {
	if text == "" {
		return &Result{Direction: p.Direction}, nil
	}
	if src == nil {
		return nil, fmt.Errorf("shape: builtin: nil font source")
	}

	glyphs := make([]PositionedGlyph, 0, len(text))

	for byteOffset, r := range text {
		gid, _ := src.GlyphID(r)
		advance := float64(src.AdvanceWidth(gid)) * p.SizePixels / 1000

		g := PositionedGlyph{
			GlyphID: gid,
			Cluster: uint32(byteOffset),
		}
		if p.Direction.IsVertical() {
			g.YAdvance = advance
		} else {
			g.XAdvance = advance
		}
		glyphs = append(glyphs, g)
	}

	if p.Direction == DirectionRTL || p.Direction == DirectionBTT {
		reverseGlyphs(glyphs)
	}

	advanceW, advanceH := applyLetterSpacing(glyphs, p.LetterSpacing, p.Direction.IsVertical())

	return &Result{
		Direction:     p.Direction,
		AdvanceWidth:  advanceW,
		AdvanceHeight: advanceH,
		Glyphs:        glyphs,
	}, nil
}

func reverseGlyphs(g []PositionedGlyph) {
	for i, j := 0, len(g)-1; i < j; i, j = i+1, j-1 {
		g[i], g[j] = g[j], g[i]
	}
}

var _ Shaper = (*BuiltinShaper)(nil)
