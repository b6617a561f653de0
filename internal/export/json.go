package export

import (
	"encoding/json"

	"github.com/fontlaborg/typf/internal/shape"
)

// JSONExporter serializes a shaping result to a HarfBuzz-compatible
// JSON schema, ported field-for-field from typf-export's json.rs
// (including its short rename tags: g/cl/ax/ay/dx/dy). This is the
// collapsed "structured exporter" of §4.9 — it consumes a ShapingResult
// directly rather than a rendered bitmap, per the REDESIGN FLAGS note
// that the source's JSON renderer and JSON exporter overlap.
type JSONExporter struct {
	Pretty bool
}

// NewJSONExporter returns a compact JSONExporter.
func NewJSONExporter() *JSONExporter { return &JSONExporter{} }

// NewPrettyJSONExporter returns a JSONExporter that indents its output.
func NewPrettyJSONExporter() *JSONExporter { return &JSONExporter{Pretty: true} }

func (e *JSONExporter) Name() string      { return "json" }
func (e *JSONExporter) Extension() string { return "json" }
func (e *JSONExporter) MimeType() string  { return "application/json" }

type harfbuzzGlyph struct {
	GlyphID  uint32 `json:"g"`
	Cluster  uint32 `json:"cl"`
	XAdvance int32  `json:"ax"`
	YAdvance int32  `json:"ay"`
	XOffset  int32  `json:"dx"`
	YOffset  int32  `json:"dy"`
}

type harfbuzzOutput struct {
	Glyphs        []harfbuzzGlyph `json:"glyphs"`
	AdvanceWidth  float64         `json:"advance_width"`
	AdvanceHeight float64         `json:"advance_height"`
	Direction     string          `json:"direction"`
}

func directionTag(d shape.Direction) string {
	switch d {
	case shape.DirectionLTR:
		return "ltr"
	case shape.DirectionRTL:
		return "rtl"
	case shape.DirectionTTB:
		return "ttb"
	case shape.DirectionBTT:
		return "btt"
	default:
		return "ltr"
	}
}

// ExportShaping serializes a shaping result to its JSON bytes, 26.6
// fixed-point-scaled (x64) advances and offsets per §4.9.
func (e *JSONExporter) ExportShaping(result *shape.Result) ([]byte, error) {
	out := harfbuzzOutput{
		Glyphs:        make([]harfbuzzGlyph, len(result.Glyphs)),
		AdvanceWidth:  result.AdvanceWidth,
		AdvanceHeight: result.AdvanceHeight,
		Direction:     directionTag(result.Direction),
	}
	for i, g := range result.Glyphs {
		out.Glyphs[i] = harfbuzzGlyph{
			GlyphID:  g.GlyphID,
			Cluster:  g.Cluster,
			XAdvance: int32(g.XAdvance * 64),
			YAdvance: int32(g.YAdvance * 64),
			XOffset:  int32(g.X * 64),
			YOffset:  int32(g.Y * 64),
		}
	}

	if e.Pretty {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

var (
	_ Exporter        = (*JSONExporter)(nil)
	_ ShapingExporter = (*JSONExporter)(nil)
)
