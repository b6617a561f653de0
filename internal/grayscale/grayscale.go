// Package grayscale turns an oversampled monochrome coverage bitmap (see
// the raster package) into an 8-bit alpha bitmap by box-filtering level x
// level blocks down to one output pixel each.
package grayscale

import "github.com/fontlaborg/typf/internal/raster"

// Level is the oversampling factor used before downsampling.
type Level int

const (
	Level2x Level = 2
	Level4x Level = 4
	Level8x Level = 8
)

// Factor returns the oversampling factor as an int.
func (l Level) Factor() int { return int(l) }

// SamplesPerPixel returns the number of mono samples folded into one output
// pixel, i.e. Factor() squared.
func (l Level) SamplesPerPixel() int { f := l.Factor(); return f * f }

// Downsample box-filters a monoWidth x monoHeight mono bitmap (bytes valued
// 0 or 1) down to an outWidth x outHeight alpha bitmap. monoWidth/monoHeight
// are expected to be outWidth/outHeight scaled by level.Factor(), though
// ragged edges (monoWidth or monoHeight not an exact multiple) are handled
// by a scalar fallback per block.
func Downsample(mono []byte, monoWidth, monoHeight, outWidth, outHeight int, level Level) []byte {
	factor := level.Factor()
	maxCoverage := level.SamplesPerPixel()
	out := make([]byte, outWidth*outHeight)

	for oy := 0; oy < outHeight; oy++ {
		srcYBase := oy * factor
		outRow := oy * outWidth

		for ox := 0; ox < outWidth; ox++ {
			srcXBase := ox * factor
			coverage := 0

			for dy := 0; dy < factor; dy++ {
				srcY := srcYBase + dy
				if srcY >= monoHeight {
					continue
				}
				rowStart := srcY*monoWidth + srcXBase

				if srcXBase+factor <= monoWidth {
					// Fast path: the whole block width is in bounds, so this
					// inner loop is a plain byte-sum the compiler can
					// auto-vectorize.
					for i := 0; i < factor; i++ {
						coverage += int(mono[rowStart+i])
					}
				} else {
					for i := 0; i < factor; i++ {
						x := srcXBase + i
						if x < monoWidth {
							coverage += int(mono[srcY*monoWidth+x])
						}
					}
				}
			}

			out[outRow+ox] = byte((coverage*255 + maxCoverage/2) / maxCoverage)
		}
	}
	return out
}

// DownsampleDirect builds an outline directly at oversampled resolution via
// buildOutline, rasterizes it once, and downsamples the result. This avoids
// requiring the caller to separately size and hand off an oversampled
// raster.Converter.
func DownsampleDirect(width, height int, level Level, rule raster.FillRule, dropout raster.DropoutMode, buildOutline func(*raster.Converter)) []byte {
	factor := level.Factor()
	overW, overH := width*factor, height*factor

	conv := raster.NewConverter(overW, overH)
	buildOutline(conv)
	mono := conv.Rasterize(rule, dropout)

	return Downsample(mono, overW, overH, width, height, level)
}
