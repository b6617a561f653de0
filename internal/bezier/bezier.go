// Package bezier flattens quadratic and cubic Bézier curves into line
// segments via recursive de Casteljau subdivision, the same control-flow
// shape as the teacher's curves.Curve4Div.recursiveBezier but operating on
// 26.6 fixed-point coordinates with a Manhattan-distance flatness metric and
// a caller-supplied line sink instead of a buffered vertex source.
package bezier

import "github.com/fontlaborg/typf/internal/fixed"

// FlatnessThreshold is the maximum tolerated deviation of a curve's control
// points from the chord between its endpoints, in 26.6 units (1/16 pixel).
const FlatnessThreshold fixed.Int = 4

// MaxDepth bounds recursion so malformed font data cannot exhaust the stack.
const MaxDepth = 16

// Sink receives flattened line segments. LineTo is called once per emitted
// segment, always ending at the curve's terminal point on the final call.
type Sink interface {
	LineTo(x, y fixed.Int)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(x, y fixed.Int)

func (f SinkFunc) LineTo(x, y fixed.Int) { f(x, y) }

func mid(a, b fixed.Int) fixed.Int {
	return (a + b) / 2
}

func quadraticFlatness(x0, y0, x1, y1, x2, y2 fixed.Int) fixed.Int {
	midX, midY := mid(x0, x2), mid(y0, y2)
	return (x1 - midX).Abs() + (y1 - midY).Abs()
}

// FlattenQuadratic subdivides a quadratic Bézier (one control point) into
// line segments and feeds them to sink.
func FlattenQuadratic(x0, y0, x1, y1, x2, y2 fixed.Int, sink Sink) {
	subdivideQuadratic(x0, y0, x1, y1, x2, y2, sink, 0)
}

func subdivideQuadratic(x0, y0, x1, y1, x2, y2 fixed.Int, sink Sink, depth int) {
	if depth >= MaxDepth {
		sink.LineTo(x2, y2)
		return
	}
	if quadraticFlatness(x0, y0, x1, y1, x2, y2) <= FlatnessThreshold {
		sink.LineTo(x2, y2)
		return
	}

	m01x, m01y := mid(x0, x1), mid(y0, y1)
	m12x, m12y := mid(x1, x2), mid(y1, y2)
	m012x, m012y := mid(m01x, m12x), mid(m01y, m12y)

	subdivideQuadratic(x0, y0, m01x, m01y, m012x, m012y, sink, depth+1)
	subdivideQuadratic(m012x, m012y, m12x, m12y, x2, y2, sink, depth+1)
}

func cubicFlatness(x0, y0, x1, y1, x2, y2, x3, y3 fixed.Int) fixed.Int {
	midX, midY := mid(x0, x3), mid(y0, y3)

	d1 := (x1 - midX).Abs() + (y1 - midY).Abs()
	d2 := (x2 - midX).Abs() + (y2 - midY).Abs()
	if d1 > d2 {
		return d1
	}
	return d2
}

// FlattenCubic subdivides a cubic Bézier (two control points) into line
// segments and feeds them to sink.
func FlattenCubic(x0, y0, x1, y1, x2, y2, x3, y3 fixed.Int, sink Sink) {
	subdivideCubic(x0, y0, x1, y1, x2, y2, x3, y3, sink, 0)
}

func subdivideCubic(x0, y0, x1, y1, x2, y2, x3, y3 fixed.Int, sink Sink, depth int) {
	if depth >= MaxDepth {
		sink.LineTo(x3, y3)
		return
	}
	if cubicFlatness(x0, y0, x1, y1, x2, y2, x3, y3) <= FlatnessThreshold {
		sink.LineTo(x3, y3)
		return
	}

	// De Casteljau subdivision at t=1/2: eight new control points split the
	// curve into two cubics that together trace the same path.
	m01x, m01y := mid(x0, x1), mid(y0, y1)
	m12x, m12y := mid(x1, x2), mid(y1, y2)
	m23x, m23y := mid(x2, x3), mid(y2, y3)

	m012x, m012y := mid(m01x, m12x), mid(m01y, m12y)
	m123x, m123y := mid(m12x, m23x), mid(m12y, m23y)

	m0123x, m0123y := mid(m012x, m123x), mid(m012y, m123y)

	subdivideCubic(x0, y0, m01x, m01y, m012x, m012y, m0123x, m0123y, sink, depth+1)
	subdivideCubic(m0123x, m0123y, m123x, m123y, m23x, m23y, x3, y3, sink, depth+1)
}
