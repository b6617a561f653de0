// Package typf is a pluggable six-stage text rendering pipeline: shape,
// cache, render (rasterizing glyphs as needed), cache, export. It turns
// a Unicode string plus a font into rasterized pixels, a vector
// document, or a structured glyph record.
//
// The package is organized into focused internal packages the pipeline
// composes; this root package exposes the public contract:
//
//   - types.go    - font handle and shaping/render parameter aliases
//   - errors.go   - the sealed error taxonomy shared by every stage
//   - logging.go  - opt-in structured logging (silent by default)
//   - config.go   - builder-pattern pipeline construction
//   - pipeline.go - the Pipeline coordinator (Process / ProcessStages)
package typf

import (
	"github.com/fontlaborg/typf/internal/export"
	"github.com/fontlaborg/typf/internal/fontsrc"
	"github.com/fontlaborg/typf/internal/render"
	"github.com/fontlaborg/typf/internal/shape"
)

// FontHandle is a shared, immutable reference to font bytes plus a face
// index and cached metrics. Create one with LoadFont; share it across
// as many concurrent Pipeline.Process calls as needed.
type FontHandle = fontsrc.Source

// LoadFont parses font bytes (a single font, or face 0 of a collection)
// into a FontHandle.
func LoadFont(data []byte) (*FontHandle, error) {
	h, err := fontsrc.New(data)
	if err != nil {
		return nil, newError("font_load", KindFontLoad, "", err)
	}
	return h, nil
}

// LoadFontFace parses faceIndex of a font collection into a FontHandle.
func LoadFontFace(data []byte, faceIndex int) (*FontHandle, error) {
	h, err := fontsrc.NewFaceIndex(data, faceIndex)
	if err != nil {
		return nil, newError("font_load", KindFontLoad, "", err)
	}
	return h, nil
}

// Direction is a shaping/rendering text direction.
type Direction = shape.Direction

const (
	DirectionLTR = shape.DirectionLTR
	DirectionRTL = shape.DirectionRTL
	DirectionTTB = shape.DirectionTTB
	DirectionBTT = shape.DirectionBTT
)

// FeatureSetting is an OpenType feature tag plus its requested value.
type FeatureSetting = shape.FeatureSetting

// VariationSetting is a variable-font axis tag plus its requested value.
type VariationSetting = shape.VariationSetting

// ShapingParams configures how text is turned into positioned glyphs.
type ShapingParams = shape.Params

// PositionedGlyph is one shaped glyph: id, source cluster, and position.
type PositionedGlyph = shape.PositionedGlyph

// ShapingResult is the ordered output of a Shaper.
type ShapingResult = shape.Result

// Shaper turns text plus a font into a ShapingResult.
type Shaper = shape.Shaper

// Color is a straight-alpha RGBA8 color.
type Color = render.Color

// OutputMode selects whether a Renderer produces raster or vector output.
type OutputMode = render.OutputMode

const (
	OutputBitmap = render.OutputBitmap
	OutputVector = render.OutputVector
)

// RenderParams configures how a ShapingResult is turned into pixels or
// vector paths: colors, padding, antialiasing, the glyph-source
// preference order, and the requested OutputMode.
type RenderParams = render.Params

// RenderOutput is the tagged-union result of a Renderer: either an RGBA
// bitmap or raw document/structured bytes, depending on Format.
type RenderOutput = render.Output

// Renderer turns a ShapingResult into a RenderOutput.
type Renderer = render.Renderer

// GlyphSource names where a glyph's outline or image comes from
// (glyf/cff/cff2 outlines, or an embedded color/bitmap table).
type GlyphSource = fontsrc.GlyphSource

// Exporter converts a RenderOutput to a wire format's bytes.
type Exporter = export.Exporter

// BitmapExporter is an Exporter that only accepts raster bitmaps.
type BitmapExporter = export.BitmapExporter

// DocumentExporter is an Exporter that only accepts vector/structured documents.
type DocumentExporter = export.DocumentExporter

// Bitmap is a decoded raster buffer handed to a BitmapExporter.
type Bitmap = export.Bitmap

// Document is raw vector/structured bytes handed to a DocumentExporter.
type Document = export.Document
