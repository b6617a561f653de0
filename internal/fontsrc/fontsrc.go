// Package fontsrc owns font bytes and lazily parses them per query, the
// same on-demand-FontRef pattern the teacher corpus uses in gogpu-gg's
// ximageParsedFont (golang.org/x/image/font/sfnt): the parser borrows the
// byte slice and is cheap enough to reconstruct on every call instead of
// caching a long-lived reference into it.
package fontsrc

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
	xfixed "golang.org/x/image/math/fixed"
)

// GlyphSource names a table a glyph's outline or bitmap data can come from.
type GlyphSource int

const (
	SourceGlyf GlyphSource = iota
	SourceCFF
	SourceCFF2
	SourceCOLR0
	SourceCOLR1
	SourceSVG
	SourceSBIX
	SourceCBDT
	SourceEBDT
)

func (s GlyphSource) String() string {
	switch s {
	case SourceGlyf:
		return "glyf"
	case SourceCFF:
		return "cff"
	case SourceCFF2:
		return "cff2"
	case SourceCOLR0:
		return "colr0"
	case SourceCOLR1:
		return "colr1"
	case SourceSVG:
		return "svg"
	case SourceSBIX:
		return "sbix"
	case SourceCBDT:
		return "cbdt"
	case SourceEBDT:
		return "ebdt"
	default:
		return "unknown"
	}
}

// DefaultGlyphSourceOrder is outlines first, then color formats, then
// bitmaps, per spec.
var DefaultGlyphSourceOrder = []GlyphSource{
	SourceGlyf, SourceCFF, SourceCFF2,
	SourceCOLR0, SourceCOLR1, SourceSVG,
	SourceSBIX, SourceCBDT, SourceEBDT,
}

// EffectiveOrder returns preference with denied entries removed and
// duplicates dropped, preserving first occurrence.
func EffectiveOrder(preference []GlyphSource, deny map[GlyphSource]bool) []GlyphSource {
	seen := make(map[GlyphSource]bool, len(preference))
	out := make([]GlyphSource, 0, len(preference))
	for _, s := range preference {
		if deny[s] || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Pen receives a glyph's outline as a stream of drawing commands, scaled to
// the requested pixel size. Coordinates are font-space Y-up.
type Pen interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	CurveTo(cx0, cy0, cx1, cy1, x, y float64)
	Close()
}

// Source owns immutable font bytes plus a face index into a possible
// collection (TTC). Every query method parses a fresh, cheap view over the
// bytes rather than caching a parsed struct across calls, so the source
// never hands out a reference that outlives its own byte slice.
type Source struct {
	data       []byte
	faceIndex  int
	unitsPerEm uint16
}

// New parses data (TTF/OTF/TTC) to validate it and capture units-per-em,
// then returns a Source holding the raw bytes.
func New(data []byte) (*Source, error) {
	return NewFaceIndex(data, 0)
}

// NewFaceIndex is New for a specific face of a font collection.
func NewFaceIndex(data []byte, faceIndex int) (*Source, error) {
	f, err := parseFace(data, faceIndex)
	if err != nil {
		return nil, fmt.Errorf("fontsrc: parse: %w", err)
	}
	upem := f.UnitsPerEm()
	return &Source{data: data, faceIndex: faceIndex, unitsPerEm: uint16(upem)}, nil
}

func parseFace(data []byte, faceIndex int) (*sfnt.Font, error) {
	if faceIndex == 0 {
		if f, err := sfnt.Parse(data); err == nil {
			return f, nil
		}
	}
	collection, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	return collection.Font(faceIndex)
}

// face reconstructs the parser for this call. Cheap: sfnt.Font retains no
// heap allocation beyond table offsets computed from data.
func (s *Source) face() *sfnt.Font {
	f, err := parseFace(s.data, s.faceIndex)
	if err != nil {
		// Data was already validated in New; this can only fail if the
		// caller mutated the slice backing s.data after construction,
		// which violates the font source's immutability contract.
		panic("fontsrc: font data became invalid after construction: " + err.Error())
	}
	return f
}

// Data returns the raw font bytes. Callers must not mutate them.
func (s *Source) Data() []byte { return s.data }

// FaceIndex returns the TTC face index this source was opened with.
func (s *Source) FaceIndex() int { return s.faceIndex }

// UnitsPerEm returns the font's design grid size.
func (s *Source) UnitsPerEm() uint16 { return s.unitsPerEm }

// GlyphID looks up the glyph id mapped to a character via the font's cmap.
// Returns (0, false) for an unmapped character, matching the convention
// that glyph id 0 is .notdef.
func (s *Source) GlyphID(ch rune) (uint32, bool) {
	var buf sfnt.Buffer
	idx, err := s.face().GlyphIndex(&buf, ch)
	if err != nil || idx == 0 {
		return 0, false
	}
	return uint32(idx), true
}

// AdvanceWidth returns the glyph's unhinted advance width rescaled into a
// 1000-unit-per-em space, matching the Rust original's convention that
// renderers rescale by the font's actual unitsPerEm as needed.
func (s *Source) AdvanceWidth(glyphID uint32) float32 {
	var buf sfnt.Buffer
	adv, err := s.face().GlyphAdvance(&buf, sfnt.GlyphIndex(glyphID), xfixed.Int26_6(int(s.unitsPerEm)*64), 0)
	if err != nil {
		return 500 // reasonable default when metrics are unavailable
	}
	upem := float32(s.unitsPerEm)
	if upem == 0 {
		upem = 1000
	}
	return float32(adv) / 64 / upem * 1000
}

// Metrics returns the font's ascent and descent at sizePixels, both
// positive pixel distances from the baseline. Falls back to 0.8/0.2 of
// the requested size if the font's hhea/OS2 metrics can't be read.
func (s *Source) Metrics(sizePixels float64) (ascent, descent float64) {
	var buf sfnt.Buffer
	ppem := xfixed.Int26_6(sizePixels * 64)
	m, err := s.face().Metrics(&buf, ppem, 0)
	if err != nil {
		return sizePixels * 0.8, sizePixels * 0.2
	}
	return float64(m.Ascent) / 64, float64(m.Descent) / 64
}

// GlyphCount returns the number of glyphs in the font, if known.
func (s *Source) GlyphCount() (int, bool) {
	n := s.face().NumGlyphs()
	if n <= 0 {
		return 0, false
	}
	return n, true
}

// OutlineWithPen drives pen with the glyph's outline scaled to sizePixels,
// optionally under a variation location. A glyph with no outline (e.g.
// space) drives no calls at all, which is not an error.
func (s *Source) OutlineWithPen(glyphID uint32, sizePixels float64, pen Pen) error {
	var buf sfnt.Buffer
	ppem := xfixed.Int26_6(sizePixels * 64)
	segs, err := s.face().LoadGlyph(&buf, sfnt.GlyphIndex(glyphID), ppem, nil)
	if err != nil {
		return fmt.Errorf("fontsrc: load glyph %d: %w", glyphID, err)
	}
	if len(segs) == 0 {
		return nil // empty outline (e.g. space): not an error
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			pen.MoveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			pen.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			pen.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			cx0, cy0 := pt(seg.Args[0])
			cx1, cy1 := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			pen.CurveTo(cx0, cy0, cx1, cy1, x, y)
		}
	}
	pen.Close()
	return nil
}

// pt converts an sfnt segment point, whose Y axis increases downward, to
// the Y-up coordinates Pen receives.
func pt(p xfixed.Point26_6) (float64, float64) {
	return float64(p.X) / 64, -float64(p.Y) / 64
}
