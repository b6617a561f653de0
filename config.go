package typf

// Builder assembles a Pipeline from exactly one Shaper, one Renderer,
// and one Exporter, plus flags enabling or disabling each cache tier.
// Both caches default to enabled; call DisableShapingCache/
// DisableRenderCache to opt out (useful for benchmarks that want to
// measure uncached cost without touching the process-wide kill switch).
type Builder struct {
	shaper   Shaper
	renderer Renderer
	exporter Exporter

	shapingCacheEnabled bool
	renderCacheEnabled  bool
}

// NewBuilder starts a Pipeline builder with both caches enabled.
func NewBuilder() *Builder {
	return &Builder{shapingCacheEnabled: true, renderCacheEnabled: true}
}

// WithShaper sets the pipeline's shaping backend.
func (b *Builder) WithShaper(s Shaper) *Builder {
	b.shaper = s
	return b
}

// WithRenderer sets the pipeline's rendering backend.
func (b *Builder) WithRenderer(r Renderer) *Builder {
	b.renderer = r
	return b
}

// WithExporter sets the pipeline's export backend.
func (b *Builder) WithExporter(e Exporter) *Builder {
	b.exporter = e
	return b
}

// DisableShapingCache turns off memoization of shaping results.
func (b *Builder) DisableShapingCache() *Builder {
	b.shapingCacheEnabled = false
	return b
}

// DisableRenderCache turns off memoization of render outputs.
func (b *Builder) DisableRenderCache() *Builder {
	b.renderCacheEnabled = false
	return b
}

// Build validates that a shaper, renderer, and exporter were all
// provided and returns the assembled Pipeline. Missing any one of the
// three is a KindMissingStage error, never a panic.
func (b *Builder) Build() (*Pipeline, error) {
	switch {
	case b.shaper == nil:
		return nil, newError("pipeline", KindMissingStage, "shaper", nil)
	case b.renderer == nil:
		return nil, newError("pipeline", KindMissingStage, "renderer", nil)
	case b.exporter == nil:
		return nil, newError("pipeline", KindMissingStage, "exporter", nil)
	}
	return newPipeline(b), nil
}
