package typf

import (
	"errors"

	"github.com/fontlaborg/typf/internal/cache"
	"github.com/fontlaborg/typf/internal/export"
	"github.com/fontlaborg/typf/internal/render"
)

// Pipeline dispatches the pipeline stages (shape, cache, render, cache,
// export; per-glyph rasterization happens inside the renderer) for one assembled (shaper, renderer, exporter) trio.
// Construct one with NewBuilder; a Pipeline is safe for concurrent use.
type Pipeline struct {
	shaper   Shaper
	renderer Renderer
	exporter Exporter

	shapingCacheEnabled bool
	renderCacheEnabled  bool
	caches              *cache.Manager
}

func newPipeline(b *Builder) *Pipeline {
	return &Pipeline{
		shaper:              b.shaper,
		renderer:            b.renderer,
		exporter:            b.exporter,
		shapingCacheEnabled: b.shapingCacheEnabled,
		renderCacheEnabled:  b.renderCacheEnabled,
		caches:              cache.NewManager(),
	}
}

// Process runs text through every configured stage and returns the
// exporter's output bytes. If the configured exporter consumes a
// shaping result directly (per §4.9's collapsed structured exporter),
// the render stage and render cache are skipped entirely.
func (p *Pipeline) Process(text string, font *FontHandle, sp ShapingParams, rp RenderParams) ([]byte, error) {
	shaped, err := p.shape(text, font, sp)
	if err != nil {
		return nil, err
	}

	if se, ok := p.exporter.(export.ShapingExporter); ok {
		data, err := se.ExportShaping(shaped)
		if err != nil {
			return nil, newError("export", KindEncodingFailed, se.Name(), err)
		}
		return data, nil
	}

	output, err := p.render(shaped, font, sp, rp)
	if err != nil {
		return nil, err
	}
	return p.export(output)
}

// ProcessStages runs shaping and rendering but omits the export stage,
// returning the RenderOutput directly for callers that want the
// structured form rather than wire-format bytes.
func (p *Pipeline) ProcessStages(text string, font *FontHandle, sp ShapingParams, rp RenderParams) (*RenderOutput, error) {
	shaped, err := p.shape(text, font, sp)
	if err != nil {
		return nil, err
	}
	return p.render(shaped, font, sp, rp)
}

func (p *Pipeline) shape(text string, font *FontHandle, sp ShapingParams) (*ShapingResult, error) {
	var key cache.ShapingKey
	if p.shapingCacheEnabled {
		key = cache.ShapingKey{
			TextHash:   cache.HashString(text),
			FontHash:   cache.HashBytes(font.Data()),
			FaceIndex:  font.FaceIndex(),
			ParamsHash: hashShapingParams(sp),
		}
		if cached, ok := p.caches.GetShaped(key); ok {
			return cached, nil
		}
	}

	result, err := p.shaper.Shape(text, font, sp)
	if err != nil {
		return nil, newError("shape", KindOther, p.shaper.Name(), err)
	}

	if p.shapingCacheEnabled {
		p.caches.CacheShaped(key, result)
	}
	return result, nil
}

func (p *Pipeline) render(shaped *ShapingResult, font *FontHandle, sp ShapingParams, rp RenderParams) (*RenderOutput, error) {
	var key cache.RenderKey
	if p.renderCacheEnabled {
		key = cache.RenderKey{
			ShapingHash:  hashShapingResult(shaped),
			FontHash:     cache.HashBytes(font.Data()),
			SizePixels:   uint32(sp.SizePixels * 64),
			ParamsHash:   hashRenderParams(rp),
			RendererName: p.renderer.Name(),
		}
		if cached, ok := p.caches.GetRendered(key); ok {
			return cached, nil
		}
	}

	output, err := p.renderer.Render(shaped, font, sp.SizePixels, rp)
	if err != nil {
		var glyphErr *render.GlyphRenderError
		if errors.As(err, &glyphErr) {
			return nil, newRenderFailedError("render", glyphErr.GlyphID, err)
		}
		return nil, newError("render", KindRenderFailed, p.renderer.Name(), err)
	}

	if p.renderCacheEnabled {
		p.caches.CacheRendered(key, output)
	}
	return output, nil
}

func (p *Pipeline) export(output *RenderOutput) ([]byte, error) {
	switch output.Format {
	case "rgba8":
		be, ok := p.exporter.(BitmapExporter)
		if !ok {
			return nil, newError("export", KindFormatNotSupported, p.exporter.Name(), nil)
		}
		data, err := be.ExportBitmap(Bitmap{
			Width: output.Width, Height: output.Height,
			Format: export.FormatRGBA8, Data: output.RGBA,
		})
		if err != nil {
			return nil, newError("export", KindEncodingFailed, p.exporter.Name(), err)
		}
		return data, nil
	default:
		de, ok := p.exporter.(DocumentExporter)
		if !ok {
			return nil, newError("export", KindFormatNotSupported, p.exporter.Name(), nil)
		}
		data, err := de.ExportDocument(Document{Bytes: output.Bytes})
		if err != nil {
			return nil, newError("export", KindEncodingFailed, p.exporter.Name(), err)
		}
		return data, nil
	}
}
