// Package glyph rasterizes a single glyph outline into an anti-aliased
// alpha bitmap, bridging a font source's outline pen (internal/fontsrc)
// with the scan converter (internal/raster) and downsampler
// (internal/grayscale). The two-pass bounds-then-replay structure follows
// the Rust original's BoundsCalculator/TransformPen pair in
// typf-render-orge/src/rasterizer.rs.
package glyph

import (
	"fmt"
	"math"

	"github.com/fontlaborg/typf/internal/fixed"
	"github.com/fontlaborg/typf/internal/fontsrc"
	"github.com/fontlaborg/typf/internal/grayscale"
	"github.com/fontlaborg/typf/internal/raster"
)

// MaxDimension is the largest width or height a rasterized glyph bitmap may
// have; larger outlines abort rather than risk memory exhaustion on
// pathological font data.
const MaxDimension = 4096

// Bitmap is a rasterized glyph: an 8-bit alpha buffer plus the offset from
// the glyph's origin to its top-left corner.
type Bitmap struct {
	Width, Height int
	Left, Top     int // bbox.min_x, bbox.max_y, in pixels
	Alpha         []byte
}

// Empty reports whether the bitmap has no pixels (e.g. the space glyph).
func (b *Bitmap) Empty() bool { return b.Width == 0 || b.Height == 0 }

// RenderError reports a failure to rasterize a specific glyph.
type RenderError struct {
	GlyphID uint32
	Reason  string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("glyph %d: render failed: %s", e.GlyphID, e.Reason)
}

// Params bundles the knobs Render needs beyond the font and glyph id.
type Params struct {
	SizePixels float64
	FillRule   raster.FillRule
	Dropout    raster.DropoutMode
	Oversample grayscale.Level
}

// Render rasterizes glyphID from src at the requested size and returns an
// anti-aliased alpha bitmap. An empty outline (e.g. space) returns a
// zero-sized bitmap, not an error.
func Render(src *fontsrc.Source, glyphID uint32, p Params) (*Bitmap, error) {
	bb := &boundsPen{minX: math.MaxFloat64, minY: math.MaxFloat64, maxX: -math.MaxFloat64, maxY: -math.MaxFloat64}
	if err := src.OutlineWithPen(glyphID, p.SizePixels, bb); err != nil {
		return nil, &RenderError{GlyphID: glyphID, Reason: err.Error()}
	}
	if !bb.hasPoints {
		return &Bitmap{}, nil
	}

	xMin := int(math.Floor(bb.minX))
	yMin := int(math.Floor(bb.minY))
	xMax := int(math.Ceil(bb.maxX))
	yMax := int(math.Ceil(bb.maxY))

	width := xMax - xMin
	height := yMax - yMin
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if width > MaxDimension || height > MaxDimension {
		return nil, &RenderError{GlyphID: glyphID, Reason: fmt.Sprintf("bitmap %dx%d exceeds max dimension %d", width, height, MaxDimension)}
	}

	factor := p.Oversample.Factor()
	conv := raster.NewConverter(width*factor, height*factor)
	tp := &transformPen{
		conv:   conv,
		originX: float64(xMin),
		originY: float64(yMax),
		scale:   float64(factor),
	}
	if err := src.OutlineWithPen(glyphID, p.SizePixels, tp); err != nil {
		return nil, &RenderError{GlyphID: glyphID, Reason: err.Error()}
	}

	mono := conv.Rasterize(p.FillRule, p.Dropout)
	alpha := grayscale.Downsample(mono, width*factor, height*factor, width, height, p.Oversample)

	return &Bitmap{
		Width: width, Height: height,
		Left: xMin, Top: yMax,
		Alpha: alpha,
	}, nil
}

// boundsPen replays an outline purely to measure its extent, including
// control points, matching the original's conservative (not exact curve
// extremum) bounding box.
type boundsPen struct {
	minX, minY, maxX, maxY float64
	hasPoints              bool
}

func (b *boundsPen) update(x, y float64) {
	if x < b.minX {
		b.minX = x
	}
	if y < b.minY {
		b.minY = y
	}
	if x > b.maxX {
		b.maxX = x
	}
	if y > b.maxY {
		b.maxY = y
	}
	b.hasPoints = true
}

func (b *boundsPen) MoveTo(x, y float64)                             { b.update(x, y) }
func (b *boundsPen) LineTo(x, y float64)                             { b.update(x, y) }
func (b *boundsPen) QuadTo(cx, cy, x, y float64)                     { b.update(cx, cy); b.update(x, y) }
func (b *boundsPen) CurveTo(cx0, cy0, cx1, cy1, x, y float64)        { b.update(cx0, cy0); b.update(cx1, cy1); b.update(x, y) }
func (b *boundsPen) Close()                                          {}

var _ fontsrc.Pen = (*boundsPen)(nil)

// transformPen replays an outline into a raster.Converter, translating by
// the bbox origin and flipping Y so positive Y runs downward in image
// space, then scaling by the oversample factor.
type transformPen struct {
	conv            *raster.Converter
	originX, originY float64
	scale           float64
}

func (t *transformPen) xf(x, y float64) (fixed.Int, fixed.Int) {
	tx := (x - t.originX) * t.scale
	ty := (t.originY - y) * t.scale
	return fixed.FromFloat64(tx), fixed.FromFloat64(ty)
}

func (t *transformPen) MoveTo(x, y float64) {
	tx, ty := t.xf(x, y)
	t.conv.MoveTo(tx, ty)
}

func (t *transformPen) LineTo(x, y float64) {
	tx, ty := t.xf(x, y)
	t.conv.LineTo(tx, ty)
}

func (t *transformPen) QuadTo(cx, cy, x, y float64) {
	tcx, tcy := t.xf(cx, cy)
	tx, ty := t.xf(x, y)
	t.conv.QuadTo(tcx, tcy, tx, ty)
}

func (t *transformPen) CurveTo(cx0, cy0, cx1, cy1, x, y float64) {
	tcx0, tcy0 := t.xf(cx0, cy0)
	tcx1, tcy1 := t.xf(cx1, cy1)
	tx, ty := t.xf(x, y)
	t.conv.CubicTo(tcx0, tcy0, tcx1, tcy1, tx, ty)
}

func (t *transformPen) Close() { t.conv.Close() }

var _ fontsrc.Pen = (*transformPen)(nil)
