package export

import (
	"bytes"
	"image"
	"image/png"
)

// PNGExporter converts a Bitmap to PNG. Any input format is first
// expanded to RGBA8 (toRGBA8 in export.go) and handed to the standard
// library's encoder, a stdlib-only substitute for the `image` crate's
// PngEncoder the original uses — Go's image/png is the idiomatic
// equivalent and every corpus repo that emits PNG (agg2d's platform
// support, gogpu-gg's texture loaders) reaches for it rather than a
// third-party encoder.
type PNGExporter struct{}

// NewPNGExporter returns a PNGExporter.
func NewPNGExporter() *PNGExporter { return &PNGExporter{} }

func (e *PNGExporter) Name() string      { return "png" }
func (e *PNGExporter) Extension() string { return "png" }
func (e *PNGExporter) MimeType() string  { return "image/png" }

// ExportBitmap implements BitmapExporter.
func (e *PNGExporter) ExportBitmap(b Bitmap) ([]byte, error) {
	rgba, err := toRGBA8(b)
	if err != nil {
		return nil, err
	}

	img := &image.RGBA{
		Pix:    rgba,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ BitmapExporter = (*PNGExporter)(nil)
