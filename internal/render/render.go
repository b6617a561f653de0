// Package render drives a shaping result through the glyph rasterizer
// (internal/glyph) and compositor (internal/compose) to produce a
// complete rendered artifact: an RGBA bitmap canvas or an SVG document,
// depending on the renderer. No renderer here produces a structured
// glyph-position record; internal/export's JSONExporter builds that from
// the shaping result.
// The Renderer contract's shape (name/render/supports_format/clear_cache)
// follows the teacher's BaseRendererInterface/ScanlineRendererInterface
// split in internal/renderer/raster_text.go, adapted from AGG's
// template-parameterized solid-color text renderer to a plain interface.
package render

import (
	"fmt"
	"math"

	"github.com/fontlaborg/typf/internal/compose"
	"github.com/fontlaborg/typf/internal/fontsrc"
	"github.com/fontlaborg/typf/internal/glyph"
	"github.com/fontlaborg/typf/internal/grayscale"
	"github.com/fontlaborg/typf/internal/raster"
	"github.com/fontlaborg/typf/internal/shape"
)

// Color is a straight (non-premultiplied) RGBA8 color.
type Color struct {
	R, G, B, A uint8
}

// OutputMode selects whether a renderer produces a raster bitmap or a
// vector document.
type OutputMode int

const (
	OutputBitmap OutputMode = iota
	OutputVector
)

// Params bundles the render parameters a renderer needs beyond the
// shaping result and font: colors, padding, antialiasing, variation
// settings, color palette selection, and the glyph source search order.
type Params struct {
	Foreground Color
	Background *Color // nil means transparent
	Padding    int
	Antialias  bool
	Variations []shape.VariationSetting
	Palette    uint16
	GlyphOrder []fontsrc.GlyphSource
	GlyphDeny  map[fontsrc.GlyphSource]bool
	Mode       OutputMode
}

func (p Params) oversample() grayscale.Level {
	if !p.Antialias {
		return grayscale.Level2x
	}
	return grayscale.Level4x
}

// Output is a rendered artifact. Exactly one of RGBA or Bytes is
// populated, depending on the producing renderer's format.
type Output struct {
	Format string // "rgba8", "svg", "json"
	Width  int
	Height int
	RGBA   []byte // width*height*4 bytes, composited with premultiplied source-over, for "rgba8"
	Bytes  []byte // raw document bytes, for "svg"/"json"
}

// ZeroDimensionsError reports a computed canvas with no area.
type ZeroDimensionsError struct{ Width, Height int }

func (e *ZeroDimensionsError) Error() string {
	return fmt.Sprintf("render: zero canvas dimensions (%d x %d)", e.Width, e.Height)
}

// GlyphRenderError wraps a per-glyph rasterization failure with its
// position in the render call.
type GlyphRenderError struct {
	GlyphID uint32
	Err     error
}

func (e *GlyphRenderError) Error() string {
	return fmt.Sprintf("render: glyph %d: %v", e.GlyphID, e.Err)
}
func (e *GlyphRenderError) Unwrap() error { return e.Err }

// Renderer turns a shaping result into a rendered artifact.
type Renderer interface {
	Name() string
	Render(shaped *shape.Result, src *fontsrc.Source, sizePixels float64, p Params) (*Output, error)
	SupportsFormat(name string) bool
	ClearCache()
}

// effectiveOrder returns p's glyph source preference with the default
// order substituted when none was set.
func effectiveOrder(p Params) []fontsrc.GlyphSource {
	order := p.GlyphOrder
	if len(order) == 0 {
		order = fontsrc.DefaultGlyphSourceOrder
	}
	return fontsrc.EffectiveOrder(order, p.GlyphDeny)
}

// renderGlyphBitmap renders one glyph honoring the glyph source
// preference (§4.7.1): the first source that yields data wins, and a
// renderer skips sources it can't service. internal/glyph's rasterizer
// path corresponds to the outline-backed sources (glyf, cff, cff2); a
// renderer that has no bitmap/color-table backend simply never tries
// the others, which is the "skip silently" contract, not a failure.
func renderGlyphBitmap(src *fontsrc.Source, glyphID uint32, sizePixels float64, p Params) (*glyph.Bitmap, error) {
	order := effectiveOrder(p)
	var lastErr error
	for _, s := range order {
		switch s {
		case fontsrc.SourceGlyf, fontsrc.SourceCFF, fontsrc.SourceCFF2:
			bmp, err := glyph.Render(src, glyphID, glyph.Params{
				SizePixels: sizePixels,
				FillRule:   raster.NonZero,
				Dropout:    raster.DropoutOff,
				Oversample: p.oversample(),
			})
			if err != nil {
				lastErr = err
				continue
			}
			return bmp, nil
		default:
			// Color and bitmap glyph tables (COLR, SVG, sbix, CBDT/EBDT)
			// have no backend in this renderer; skip silently per §4.7.1.
			continue
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return &glyph.Bitmap{}, nil
}

// compositeGlyph blends bmp's alpha, tinted by fg, onto canvas at the
// pixel position (px, py) using Porter-Duff source-over (internal/compose).
func compositeGlyph(canvas []byte, canvasW, canvasH int, bmp *glyph.Bitmap, px, py int, fg Color) {
	if bmp.Empty() {
		return
	}
	row := make([]byte, bmp.Width*4)
	for y := 0; y < bmp.Height; y++ {
		cy := py + y
		if cy < 0 || cy >= canvasH {
			continue
		}
		for x := 0; x < bmp.Width; x++ {
			a := bmp.Alpha[y*bmp.Width+x]
			row[x*4+0] = premul(fg.R, a)
			row[x*4+1] = premul(fg.G, a)
			row[x*4+2] = premul(fg.B, a)
			row[x*4+3] = premul(fg.A, a)
		}

		lo, hi := 0, bmp.Width
		if px < 0 {
			lo = -px
		}
		if px+bmp.Width > canvasW {
			hi = canvasW - px
		}
		if lo >= hi {
			continue
		}

		dstOff := (cy*canvasW + px + lo) * 4
		srcOff := lo * 4
		n := hi - lo
		compose.SourceOver(canvas[dstOff:dstOff+n*4], row[srcOff:srcOff+n*4])
	}
}

// premul multiplies an 8-bit channel by an 8-bit coverage, both in
// [0,255], rounding to nearest.
func premul(channel, coverage uint8) byte {
	return byte((uint32(channel)*uint32(coverage) + 127) / 255)
}

// canvasSize computes W/H per spec.md's canonical raster algorithm:
// ceil(advance + 2*padding) by ceil(ascent + descent + 2*padding).
func canvasSize(advanceWidth, ascent, descent float64, padding int) (int, int) {
	w := int(math.Ceil(advanceWidth)) + 2*padding
	h := int(math.Ceil(ascent+descent)) + 2*padding
	return w, h
}
