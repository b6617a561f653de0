// Package shape turns a Unicode string plus a font into a sequence of
// positioned glyphs. It defines the Shaper contract and two
// implementations: BuiltinShaper (simple left-to-right/advance-only
// positioning, no OpenType layout) and GoTextShaper (full OpenType
// shaping via go-text/typesetting's HarfBuzz port), mirroring
// gogpu-gg's text.BuiltinShaper / text.GoTextShaper split.
package shape

import "github.com/fontlaborg/typf/internal/fontsrc"

// Direction is the writing direction a shaping result is laid out in.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
	DirectionTTB
	DirectionBTT
)

func (d Direction) IsVertical() bool { return d == DirectionTTB || d == DirectionBTT }

func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "ltr"
	case DirectionRTL:
		return "rtl"
	case DirectionTTB:
		return "ttb"
	case DirectionBTT:
		return "btt"
	default:
		return "unknown"
	}
}

// FeatureSetting is an OpenType feature tag plus the integer value to apply
// it with (1 enables a boolean feature, 0 disables it, larger values select
// an alternate for features like stylistic sets).
type FeatureSetting struct {
	Tag   [4]byte
	Value uint32
}

// VariationSetting is a variable font axis tag plus the requested value.
type VariationSetting struct {
	Tag   [4]byte
	Value float64
}

// Params bundles everything a Shaper needs beyond the text and font.
type Params struct {
	SizePixels    float64
	Direction     Direction
	Language      string
	Script        string
	Features      []FeatureSetting
	Variations    []VariationSetting
	LetterSpacing float64
}

// PositionedGlyph is one shaped glyph: its id, the source text cluster it
// belongs to, its pen position, and its advance.
type PositionedGlyph struct {
	GlyphID   uint32
	Cluster   uint32
	X, Y      float64
	XAdvance  float64
	YAdvance  float64
}

// Result is the output of shaping: resolved direction, total advance, and
// the ordered positioned glyphs in visual order.
type Result struct {
	Direction     Direction
	AdvanceWidth  float64
	AdvanceHeight float64
	Glyphs        []PositionedGlyph
}

// Shaper converts text into positioned glyphs against a font source. A
// shaper must be safe for concurrent use: the pipeline coordinator may
// invoke it from multiple goroutines against the same instance.
type Shaper interface {
	Name() string
	Shape(text string, src *fontsrc.Source, p Params) (*Result, error)
}

// applyLetterSpacing adds uniform extra space after every glyph but the
// last, along the primary advance axis (Y when vertical, else X). Matches the
// "letter spacing" shaping parameter in isolation from any specific
// shaper backend, since both BuiltinShaper and GoTextShaper need it.
//
// glyphs[i].X/Y must hold each glyph's GPOS offset (zero if the shaper
// has none) on entry; this accumulates the pen position separately and
// adds that offset back in, rather than overwriting it, so mark/
// diacritic positioning from a shaper backend survives letter spacing.
func applyLetterSpacing(glyphs []PositionedGlyph, spacing float64, vertical bool) (advanceW, advanceH float64) {
	if len(glyphs) == 0 {
		return 0, 0
	}
	var pos float64
	for i := range glyphs {
		if vertical {
			offsetY := glyphs[i].Y
			glyphs[i].Y = pos + offsetY
			pos += glyphs[i].YAdvance
		} else {
			offsetX := glyphs[i].X
			glyphs[i].X = pos + offsetX
			pos += glyphs[i].XAdvance
		}
		if i != len(glyphs)-1 {
			pos += spacing
		}
	}
	if vertical {
		return 0, pos
	}
	return pos, 0
}
