package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/fontlaborg/typf/internal/fontsrc"
	"github.com/fontlaborg/typf/internal/shape"
)

// SVGRenderer extracts each glyph's outline straight from the font and
// emits a document of <path> elements, scaling without the rasterizer.
// Two-phase rendering (extract all paths and their bounds, then emit a
// viewBox sized to the actual content) is ported from
// typf-render-svg/src/lib.rs's SvgRenderer.render.
type SVGRenderer struct {
	Padding float64
}

// NewSVGRenderer returns an SVGRenderer with the original's default
// padding.
func NewSVGRenderer() *SVGRenderer { return &SVGRenderer{Padding: 10} }

func (r *SVGRenderer) Name() string { return "svg" }

func (r *SVGRenderer) SupportsFormat(name string) bool {
	n := strings.ToLower(name)
	return n == "svg" || n == "vector"
}

func (r *SVGRenderer) ClearCache() {}

type extractedGlyph struct {
	path string
	x, y float64
}

// Render implements Renderer.
func (r *SVGRenderer) Render(shaped *shape.Result, src *fontsrc.Source, sizePixels float64, p Params) (*Output, error) {
	padding := float64(p.Padding)
	if padding == 0 {
		padding = r.Padding
	}

	var extracted []extractedGlyph
	minY, maxY := 0.0, 0.0

	for _, g := range shaped.Glyphs {
		pen := &svgPathPen{}
		if err := src.OutlineWithPen(g.GlyphID, sizePixels, pen); err != nil {
			return nil, &GlyphRenderError{GlyphID: g.GlyphID, Err: err}
		}
		if pen.buf.Len() == 0 {
			continue // no outline (space, etc.)
		}

		glyphMinY := pen.minY + g.Y
		glyphMaxY := pen.maxY + g.Y
		minY = math.Min(minY, glyphMinY)
		maxY = math.Max(maxY, glyphMaxY)

		extracted = append(extracted, extractedGlyph{path: pen.buf.String(), x: g.X, y: g.Y})
	}

	width := shaped.AdvanceWidth + padding*2
	contentHeight := shaped.AdvanceHeight
	if len(extracted) > 0 {
		contentHeight = maxY - minY
	}
	height := contentHeight + padding*2
	if width <= 0 || height <= 0 {
		return nil, &ZeroDimensionsError{Width: int(math.Ceil(width)), Height: int(math.Ceil(height))}
	}

	baselineY := padding - minY

	var svg strings.Builder
	fmt.Fprintf(&svg, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&svg, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %.2f %.2f\" width=\"%.0f\" height=\"%.0f\">\n",
		width, height, width, height)

	fg := p.Foreground
	for _, eg := range extracted {
		x := padding + eg.x
		y := baselineY + eg.y
		fmt.Fprintf(&svg, "  <path d=\"%s\" fill=\"rgb(%d,%d,%d)\" fill-opacity=\"%.2f\" transform=\"translate(%.2f,%.2f)\"/>\n",
			eg.path, fg.R, fg.G, fg.B, float64(fg.A)/255, x, y)
	}
	svg.WriteString("</svg>\n")

	return &Output{Format: "svg", Bytes: []byte(svg.String())}, nil
}

// svgPathPen builds an SVG path data string directly from the outline
// pen callbacks. Y is negated, since font space is Y-up and SVG is
// Y-down.
type svgPathPen struct {
	buf        strings.Builder
	minY, maxY float64
	started    bool
}

func (p *svgPathPen) track(y float64) {
	if !p.started {
		p.minY, p.maxY = y, y
		p.started = true
		return
	}
	if y < p.minY {
		p.minY = y
	}
	if y > p.maxY {
		p.maxY = y
	}
}

func (p *svgPathPen) MoveTo(x, y float64) {
	p.track(-y)
	fmt.Fprintf(&p.buf, "M%.2f,%.2f ", x, -y)
}

func (p *svgPathPen) LineTo(x, y float64) {
	p.track(-y)
	fmt.Fprintf(&p.buf, "L%.2f,%.2f ", x, -y)
}

func (p *svgPathPen) QuadTo(cx, cy, x, y float64) {
	p.track(-cy)
	p.track(-y)
	fmt.Fprintf(&p.buf, "Q%.2f,%.2f %.2f,%.2f ", cx, -cy, x, -y)
}

func (p *svgPathPen) CurveTo(cx0, cy0, cx1, cy1, x, y float64) {
	p.track(-cy0)
	p.track(-cy1)
	p.track(-y)
	fmt.Fprintf(&p.buf, "C%.2f,%.2f %.2f,%.2f %.2f,%.2f ", cx0, -cy0, cx1, -cy1, x, -y)
}

func (p *svgPathPen) Close() { p.buf.WriteString("Z ") }

var (
	_ fontsrc.Pen = (*svgPathPen)(nil)
	_ Renderer    = (*SVGRenderer)(nil)
)
