package export

import (
	"bytes"
	"fmt"
)

// PGMExporter writes a binary PGM (portable graymap, "P5"): a short
// ASCII header (magic, width, height, maxval) followed by one raw byte
// per pixel. This is the "simple text-based format" §4.9 asks for
// alongside PNG, grounded on the NetPBM format's own self-description
// (ASCII header, binary body) rather than any corpus source, since no
// example repo emits PBM/PGM; the format is simple enough that writing
// its six-line spec directly is more faithful than adapting an
// unrelated encoder.
type PGMExporter struct{}

// NewPGMExporter returns a PGMExporter.
func NewPGMExporter() *PGMExporter { return &PGMExporter{} }

func (e *PGMExporter) Name() string      { return "pgm" }
func (e *PGMExporter) Extension() string { return "pgm" }
func (e *PGMExporter) MimeType() string  { return "image/x-portable-graymap" }

// ExportBitmap implements BitmapExporter. Color input is flattened to
// luminance via the Rec. 601 weights; Gray8 and Gray1 pass through (or
// expand) directly.
func (e *PGMExporter) ExportBitmap(b Bitmap) ([]byte, error) {
	rgba, err := toRGBA8(b)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P5\n%d %d\n255\n", b.Width, b.Height)
	for i := 0; i < b.Width*b.Height; i++ {
		r, g, bch := rgba[i*4+0], rgba[i*4+1], rgba[i*4+2]
		lum := (299*int(r) + 587*int(g) + 114*int(bch)) / 1000
		buf.WriteByte(byte(lum))
	}
	return buf.Bytes(), nil
}

// PBMExporter writes a binary PBM (portable bitmap, "P4"): bit-packed
// monochrome rows, 1 bit per pixel MSB-first, 0 = white and 1 = black
// per the NetPBM convention (the inverse of a typical coverage alpha).
type PBMExporter struct {
	// Threshold is the luminance value at or above which a pixel is
	// considered white (bit 0). Defaults to 128 when zero.
	Threshold int
}

// NewPBMExporter returns a PBMExporter with the default threshold.
func NewPBMExporter() *PBMExporter { return &PBMExporter{Threshold: 128} }

func (e *PBMExporter) Name() string      { return "pbm" }
func (e *PBMExporter) Extension() string { return "pbm" }
func (e *PBMExporter) MimeType() string  { return "image/x-portable-bitmap" }

func (e *PBMExporter) ExportBitmap(b Bitmap) ([]byte, error) {
	rgba, err := toRGBA8(b)
	if err != nil {
		return nil, err
	}
	threshold := e.Threshold
	if threshold == 0 {
		threshold = 128
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P4\n%d %d\n", b.Width, b.Height)

	rowBytes := (b.Width + 7) / 8
	row := make([]byte, rowBytes)
	for y := 0; y < b.Height; y++ {
		for i := range row {
			row[i] = 0
		}
		for x := 0; x < b.Width; x++ {
			i := (y*b.Width + x) * 4
			lum := (299*int(rgba[i]) + 587*int(rgba[i+1]) + 114*int(rgba[i+2])) / 1000
			if lum < threshold {
				row[x/8] |= 1 << (7 - uint(x%8))
			}
		}
		buf.Write(row)
	}
	return buf.Bytes(), nil
}

var (
	_ BitmapExporter = (*PGMExporter)(nil)
	_ BitmapExporter = (*PBMExporter)(nil)
)
