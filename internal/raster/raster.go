// Package raster converts a path (moves, lines, quads, cubics, closes) in
// 26.6 fixed point into a monochrome coverage bitmap using an active-edge
// scanline algorithm, in the spirit of the teacher's cell-based
// rasterizer.RasterizerScanlineAA but with an explicit edge table instead of
// signed-area cell accumulation.
package raster

import (
	"github.com/fontlaborg/typf/internal/bezier"
	"github.com/fontlaborg/typf/internal/fixed"
)

// FillRule selects how accumulated winding maps to "inside".
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// DropoutMode controls stem-preserving dropout control on thin features.
type DropoutMode int

const (
	DropoutOff DropoutMode = iota
	DropoutSimple
	DropoutSmart
)

type edge struct {
	topY, bottomY fixed.Int // topY < bottomY always
	topX          fixed.Int // x at topY
	dxdy          fixed.Int // change in x per unit y
	winding       int       // +1 descending in source order, -1 ascending
}

func (e edge) xAt(y fixed.Int) fixed.Int {
	return e.topX + e.dxdy.Mul(y-e.topY)
}

// Converter accumulates path geometry and rasterizes it into a coverage
// bitmap. The zero value is not usable; build one with NewConverter.
type Converter struct {
	width, height int
	edges         []edge

	penX, penY     fixed.Int
	startX, startY fixed.Int
	open           bool
}

// NewConverter returns a converter targeting a width x height bitmap.
func NewConverter(width, height int) *Converter {
	return &Converter{width: width, height: height}
}

// MoveTo starts a new subpath at (x, y).
func (c *Converter) MoveTo(x, y fixed.Int) {
	if c.open {
		c.addEdge(c.penX, c.penY, c.startX, c.startY)
	}
	c.penX, c.penY = x, y
	c.startX, c.startY = x, y
	c.open = true
}

// LineTo draws a straight line from the current point to (x, y). It also
// implements bezier.Sink, so a Converter can be passed directly to
// bezier.FlattenQuadratic/FlattenCubic.
func (c *Converter) LineTo(x, y fixed.Int) {
	c.addEdge(c.penX, c.penY, x, y)
	c.penX, c.penY = x, y
}

var _ bezier.Sink = (*Converter)(nil)

// QuadTo draws a quadratic Bézier through control point (cx, cy) to (x, y).
func (c *Converter) QuadTo(cx, cy, x, y fixed.Int) {
	x0, y0 := c.penX, c.penY
	bezier.FlattenQuadratic(x0, y0, cx, cy, x, y, c)
	c.penX, c.penY = x, y
}

// CubicTo draws a cubic Bézier through control points (cx0,cy0), (cx1,cy1)
// to (x, y).
func (c *Converter) CubicTo(cx0, cy0, cx1, cy1, x, y fixed.Int) {
	x0, y0 := c.penX, c.penY
	bezier.FlattenCubic(x0, y0, cx0, cy0, cx1, cy1, x, y, c)
	c.penX, c.penY = x, y
}

// Close draws an implicit line back to the subpath's starting point.
func (c *Converter) Close() {
	if !c.open {
		return
	}
	c.addEdge(c.penX, c.penY, c.startX, c.startY)
	c.penX, c.penY = c.startX, c.startY
	c.open = false
}

func (c *Converter) addEdge(x0, y0, x1, y1 fixed.Int) {
	if y0 == y1 {
		return // horizontal segments contribute zero coverage
	}
	winding := 1
	topX, topY, botX, botY := x0, y0, x1, y1
	if y0 > y1 {
		winding = -1
		topX, topY, botX, botY = x1, y1, x0, y0
	}
	dxdy := (botX - topX).Div(botY - topY)
	c.edges = append(c.edges, edge{
		topY: topY, bottomY: botY, topX: topX, dxdy: dxdy, winding: winding,
	})
}

type activeEdge struct {
	x       fixed.Int
	winding int
}

func insideFor(winding int, rule FillRule) bool {
	if rule == EvenOdd {
		return winding&1 != 0
	}
	return winding != 0
}

// Rasterize scan-converts the accumulated path and returns a tightly packed
// width*height buffer of bytes valued 0 or 1.
func (c *Converter) Rasterize(rule FillRule, dropout DropoutMode) []byte {
	if c.open {
		c.Close()
	}
	out := make([]byte, c.width*c.height)
	if len(c.edges) == 0 {
		return out
	}

	var active []activeEdge
	for y := 0; y < c.height; y++ {
		rowTop := fixed.FromInt(y)
		rowBottom := fixed.FromInt(y + 1)
		mid := rowTop + fixed.Half

		active = active[:0]
		for _, e := range c.edges {
			if e.topY <= rowBottom && e.bottomY > rowTop {
				sampleY := mid
				if sampleY < e.topY {
					sampleY = e.topY
				} else if sampleY > e.bottomY {
					sampleY = e.bottomY
				}
				active = append(active, activeEdge{x: e.xAt(sampleY), winding: e.winding})
			}
		}
		if len(active) == 0 {
			continue
		}
		insertionSort(active)

		row := out[y*c.width : (y+1)*c.width]
		filledAny := fillSpans(row, active, rule, c.width)

		if dropout != DropoutOff && !filledAny {
			applyDropout(row, active, dropout, c.width)
		}
	}
	return out
}

func fillSpans(row []byte, active []activeEdge, rule FillRule, width int) bool {
	filled := false
	winding := 0
	for i := 0; i < len(active)-1; i++ {
		winding += active[i].winding
		if insideFor(winding, rule) {
			x0 := clampCol(active[i].x.ToIntRound(), width)
			x1 := clampCol(active[i+1].x.ToIntRound(), width)
			if x1 > x0 {
				filled = true
			}
			for x := x0; x < x1; x++ {
				row[x] = 1
			}
		}
	}
	return filled
}

// applyDropout fills a single pixel to preserve stem continuity when winding
// crossings exist on a scanline but sub-pixel geometry left it empty.
// Smart mode additionally requires the crossing to look like a genuine thin
// stem rather than a glancing edge touch, approximated by requiring at
// least two crossings on the scanline; their winding signs are not checked.
func applyDropout(row []byte, active []activeEdge, mode DropoutMode, width int) {
	if mode == DropoutSmart && len(active) < 2 {
		return
	}
	x := clampCol(active[0].x.ToIntRound(), width)
	if x >= width {
		x = width - 1
	}
	if x < 0 {
		x = 0
	}
	row[x] = 1
}

func clampCol(x, width int) int {
	if x < 0 {
		return 0
	}
	if x > width {
		return width
	}
	return x
}

func insertionSort(a []activeEdge) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j].x > v.x {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}
