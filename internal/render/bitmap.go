package render

import (
	"github.com/fontlaborg/typf/internal/fontsrc"
	"github.com/fontlaborg/typf/internal/shape"
)

// BitmapRenderer implements the canonical raster algorithm of §4.7: a
// padded RGBA8 canvas, one glyph bitmap rasterized and composited per
// positioned glyph. It caches nothing across calls except what
// internal/fontsrc itself already amortizes; ClearCache is a no-op
// documented as such, matching renderers in the corpus that are purely
// functional (no cache) and still need to satisfy the contract.
type BitmapRenderer struct{}

// NewBitmapRenderer returns a BitmapRenderer.
func NewBitmapRenderer() *BitmapRenderer { return &BitmapRenderer{} }

func (r *BitmapRenderer) Name() string { return "bitmap" }

func (r *BitmapRenderer) SupportsFormat(name string) bool { return name == "rgba8" }

// ClearCache is a no-op: BitmapRenderer holds no cross-call state.
func (r *BitmapRenderer) ClearCache() {}

// Render implements Renderer.
func (r *BitmapRenderer) Render(shaped *shape.Result, src *fontsrc.Source, sizePixels float64, p Params) (*Output, error) {
	ascent, descent := src.Metrics(sizePixels)
	w, h := canvasSize(shaped.AdvanceWidth, ascent, descent, p.Padding)
	if w <= 0 || h <= 0 {
		return nil, &ZeroDimensionsError{Width: w, Height: h}
	}

	canvas := make([]byte, w*h*4)
	if p.Background != nil {
		fillBackground(canvas, *p.Background)
	}

	for _, g := range shaped.Glyphs {
		bmp, err := renderGlyphBitmap(src, g.GlyphID, sizePixels, p)
		if err != nil {
			return nil, &GlyphRenderError{GlyphID: g.GlyphID, Err: err}
		}
		if bmp.Empty() {
			continue
		}
		px := p.Padding + int(g.X) + bmp.Left
		py := p.Padding + int(ascent) + int(g.Y) - bmp.Top
		compositeGlyph(canvas, w, h, bmp, px, py, p.Foreground)
	}

	return &Output{Format: "rgba8", Width: w, Height: h, RGBA: canvas}, nil
}

func fillBackground(canvas []byte, bg Color) {
	for i := 0; i < len(canvas); i += 4 {
		canvas[i+0] = bg.R
		canvas[i+1] = bg.G
		canvas[i+2] = bg.B
		canvas[i+3] = bg.A
	}
}

var _ Renderer = (*BitmapRenderer)(nil)
