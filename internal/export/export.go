// Package export serializes a rendered artifact (internal/render.Output)
// or a raw shaping result (internal/shape.Result) into bytes ready to
// write to a file or send over the wire. The Exporter contract
// (name/export/extension/mime_type) and the PNG/JSON implementations
// are ported from typf-export's png.rs and json.rs.
package export

import (
	"fmt"

	"github.com/fontlaborg/typf/internal/shape"
)

// BitmapFormat names the pixel layout a Bitmap's buffer is encoded in.
type BitmapFormat int

const (
	FormatRGBA8 BitmapFormat = iota
	FormatRGB8
	FormatGray8
	FormatGray1
)

// Bitmap is a raster image in one of the formats above, matching the
// shapes a Renderer can hand to a raster exporter.
type Bitmap struct {
	Width, Height int
	Format        BitmapFormat
	Data          []byte
}

// expectedSize returns how many bytes Data must contain for Width x
// Height pixels in Format, per §4.9's "reject buffers whose declared
// size does not match W*H*bpp" requirement.
func (b Bitmap) expectedSize() int {
	n := b.Width * b.Height
	switch b.Format {
	case FormatRGBA8:
		return n * 4
	case FormatRGB8:
		return n * 3
	case FormatGray8:
		return n
	case FormatGray1:
		return (n + 7) / 8
	default:
		return -1
	}
}

// SizeMismatchError reports a Bitmap whose buffer doesn't match its
// declared dimensions and format.
type SizeMismatchError struct {
	Expected, Got int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("export: buffer size mismatch: expected %d bytes, got %d", e.Expected, e.Got)
}

// Document is a pass-through vector or structured artifact (SVG, JSON):
// §4.9's vector exporter "passes the document text through unchanged".
type Document struct {
	Bytes []byte
}

// Exporter serializes one rendered artifact kind to its wire format.
type Exporter interface {
	Name() string
	Extension() string
	MimeType() string
}

// BitmapExporter serializes a Bitmap.
type BitmapExporter interface {
	Exporter
	ExportBitmap(b Bitmap) ([]byte, error)
}

// DocumentExporter serializes a pass-through Document (SVG/JSON text).
type DocumentExporter interface {
	Exporter
	ExportDocument(d Document) ([]byte, error)
}

// ShapingExporter consumes a shaping result directly, bypassing raster
// render entirely. Per §4.9, the structured/JSON renderer and JSON
// exporter overlap; this interface is the collapsed form — a pipeline
// that selects a ShapingExporter skips the render stage altogether.
type ShapingExporter interface {
	Exporter
	ExportShaping(result *shape.Result) ([]byte, error)
}

// toRGBA8 expands b's pixel data to straight RGBA8, per §4.9's
// raster-exporter conversion rules: gray -> (g,g,g,255), RGB -> (r,g,b,255),
// 1-bit -> (0,0,0,255)/(255,255,255,255).
func toRGBA8(b Bitmap) ([]byte, error) {
	want := b.expectedSize()
	if want < 0 {
		return nil, fmt.Errorf("export: unknown bitmap format %d", b.Format)
	}
	if len(b.Data) != want {
		return nil, &SizeMismatchError{Expected: want, Got: len(b.Data)}
	}

	n := b.Width * b.Height
	switch b.Format {
	case FormatRGBA8:
		out := make([]byte, n*4)
		copy(out, b.Data[:n*4])
		return out, nil
	case FormatRGB8:
		out := make([]byte, n*4)
		for i := 0; i < n; i++ {
			out[i*4+0] = b.Data[i*3+0]
			out[i*4+1] = b.Data[i*3+1]
			out[i*4+2] = b.Data[i*3+2]
			out[i*4+3] = 255
		}
		return out, nil
	case FormatGray8:
		out := make([]byte, n*4)
		for i := 0; i < n; i++ {
			g := b.Data[i]
			out[i*4+0], out[i*4+1], out[i*4+2], out[i*4+3] = g, g, g, 255
		}
		return out, nil
	case FormatGray1:
		out := make([]byte, n*4)
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				idx := y*b.Width + x
				byteIdx, bitIdx := idx/8, idx%8
				bit := (b.Data[byteIdx] >> (7 - bitIdx)) & 1
				v := byte(0)
				if bit == 1 {
					v = 255
				}
				out[idx*4+0], out[idx*4+1], out[idx*4+2], out[idx*4+3] = v, v, v, 255
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("export: unknown bitmap format %d", b.Format)
	}
}
