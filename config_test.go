package typf

import "testing"

type stubShaper struct{ name string }

func (s stubShaper) Name() string { return s.name }
func (s stubShaper) Shape(text string, src *FontHandle, p ShapingParams) (*ShapingResult, error) {
	return &ShapingResult{Direction: p.Direction}, nil
}

type stubRenderer struct{ name string }

func (r stubRenderer) Name() string { return r.name }
func (r stubRenderer) Render(shaped *ShapingResult, src *FontHandle, sizePixels float64, p RenderParams) (*RenderOutput, error) {
	return &RenderOutput{Format: "rgba8", Width: 1, Height: 1, RGBA: make([]byte, 4)}, nil
}
func (r stubRenderer) SupportsFormat(name string) bool { return name == "rgba8" }
func (r stubRenderer) ClearCache()                     {}

type stubExporter struct{ name string }

func (e stubExporter) Name() string      { return e.name }
func (e stubExporter) Extension() string { return "bin" }
func (e stubExporter) MimeType() string  { return "application/octet-stream" }
func (e stubExporter) ExportBitmap(b Bitmap) ([]byte, error) {
	return b.Data, nil
}

func TestBuilderRequiresAllThreeStages(t *testing.T) {
	if _, err := NewBuilder().Build(); err == nil {
		t.Fatal("expected MissingStage error with nothing configured")
	}
	if _, err := NewBuilder().WithShaper(stubShaper{name: "s"}).Build(); err == nil {
		t.Fatal("expected MissingStage error with only a shaper configured")
	}
	if _, err := NewBuilder().
		WithShaper(stubShaper{name: "s"}).
		WithRenderer(stubRenderer{name: "r"}).
		Build(); err == nil {
		t.Fatal("expected MissingStage error with exporter missing")
	}
}

func TestBuilderBuildsWithAllThreeStages(t *testing.T) {
	p, err := NewBuilder().
		WithShaper(stubShaper{name: "s"}).
		WithRenderer(stubRenderer{name: "r"}).
		WithExporter(stubExporter{name: "e"}).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil {
		t.Fatal("expected a non-nil Pipeline")
	}
	if !p.shapingCacheEnabled || !p.renderCacheEnabled {
		t.Fatal("expected both caches enabled by default")
	}
}

func TestBuilderDisableCaches(t *testing.T) {
	p, err := NewBuilder().
		WithShaper(stubShaper{name: "s"}).
		WithRenderer(stubRenderer{name: "r"}).
		WithExporter(stubExporter{name: "e"}).
		DisableShapingCache().
		DisableRenderCache().
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.shapingCacheEnabled || p.renderCacheEnabled {
		t.Fatal("expected both caches disabled")
	}
}
