package typf

import (
	"errors"
	"testing"

	"github.com/fontlaborg/typf/internal/render"
)

func mustPipeline(t *testing.T, shaper Shaper, renderer Renderer, exporter Exporter) *Pipeline {
	t.Helper()
	p, err := NewBuilder().
		WithShaper(shaper).
		WithRenderer(renderer).
		WithExporter(exporter).
		DisableShapingCache().
		DisableRenderCache().
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return p
}

func TestPipelineProcessRoundTrip(t *testing.T) {
	p := mustPipeline(t, stubShaper{name: "s"}, stubRenderer{name: "r"}, stubExporter{name: "e"})
	data, err := p.Process("hi", nil, ShapingParams{SizePixels: 16}, RenderParams{})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if len(data) != 4 {
		t.Fatalf("len(data) = %d, want 4 (the stub renderer's 1x1 RGBA buffer)", len(data))
	}
}

func TestPipelineProcessStagesOmitsExport(t *testing.T) {
	p := mustPipeline(t, stubShaper{name: "s"}, stubRenderer{name: "r"}, stubExporter{name: "e"})
	out, err := p.ProcessStages("hi", nil, ShapingParams{SizePixels: 16}, RenderParams{})
	if err != nil {
		t.Fatalf("ProcessStages() error: %v", err)
	}
	if out.Format != "rgba8" {
		t.Fatalf("Format = %q, want rgba8", out.Format)
	}
}

type failingShaper struct{}

func (failingShaper) Name() string { return "failing" }
func (failingShaper) Shape(text string, src *FontHandle, p ShapingParams) (*ShapingResult, error) {
	return nil, errors.New("shape exploded")
}

func TestPipelineProcessPropagatesShapeError(t *testing.T) {
	p := mustPipeline(t, failingShaper{}, stubRenderer{name: "r"}, stubExporter{name: "e"})
	_, err := p.Process("hi", nil, ShapingParams{}, RenderParams{})
	if err == nil {
		t.Fatal("expected an error from a failing shaper")
	}
	var typfErr *Error
	if !errors.As(err, &typfErr) || typfErr.Stage != "shape" {
		t.Fatalf("expected a shape-stage *Error, got %v", err)
	}
}

type glyphFailingRenderer struct{ name string }

func (r glyphFailingRenderer) Name() string { return r.name }
func (r glyphFailingRenderer) Render(shaped *ShapingResult, src *FontHandle, sizePixels float64, p RenderParams) (*RenderOutput, error) {
	return nil, &render.GlyphRenderError{GlyphID: 7, Err: errors.New("outline extraction failed")}
}
func (r glyphFailingRenderer) SupportsFormat(name string) bool { return name == "rgba8" }
func (r glyphFailingRenderer) ClearCache()                     {}

func TestPipelineRenderErrorPreservesGlyphID(t *testing.T) {
	p := mustPipeline(t, stubShaper{name: "s"}, glyphFailingRenderer{name: "r"}, stubExporter{name: "e"})
	_, err := p.ProcessStages("hi", nil, ShapingParams{}, RenderParams{})
	if err == nil {
		t.Fatal("expected an error from a renderer that fails on a specific glyph")
	}
	var typfErr *Error
	if !errors.As(err, &typfErr) {
		t.Fatalf("expected a *Error, got %v", err)
	}
	if typfErr.Kind != KindRenderFailed || typfErr.GlyphID != 7 {
		t.Fatalf("got Kind=%v GlyphID=%d, want KindRenderFailed GlyphID=7", typfErr.Kind, typfErr.GlyphID)
	}
}

type jsonStubExporter struct{}

func (jsonStubExporter) Name() string      { return "json-stub" }
func (jsonStubExporter) Extension() string { return "json" }
func (jsonStubExporter) MimeType() string  { return "application/json" }
func (jsonStubExporter) ExportShaping(r *ShapingResult) ([]byte, error) {
	return []byte(`{"bypassed":true}`), nil
}

type recordingRenderer struct {
	stubRenderer
	called *bool
}

func (r recordingRenderer) Render(shaped *ShapingResult, src *FontHandle, sizePixels float64, p RenderParams) (*RenderOutput, error) {
	*r.called = true
	return r.stubRenderer.Render(shaped, src, sizePixels, p)
}

func TestPipelineProcessBypassesRenderForShapingExporter(t *testing.T) {
	renderCalled := false
	r := recordingRenderer{stubRenderer: stubRenderer{name: "r"}, called: &renderCalled}
	p := mustPipeline(t, stubShaper{name: "s"}, r, jsonStubExporter{})
	data, err := p.Process("hi", nil, ShapingParams{}, RenderParams{})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if string(data) != `{"bypassed":true}` {
		t.Fatalf("data = %q, want the shaping exporter's bypass output", data)
	}
	if renderCalled {
		t.Fatal("render should never have been invoked for a ShapingExporter")
	}
}

func TestPipelineExportRejectsMismatchedExporter(t *testing.T) {
	// stubExporter only implements BitmapExporter; an svg-format output
	// has no compatible exporter interface and must surface FormatNotSupported.
	svgOnlyRenderer := stubRenderer{name: "r"}
	p := mustPipeline(t, stubShaper{name: "s"}, svgOnlyRenderer, stubExporter{name: "e"})
	out, err := p.ProcessStages("hi", nil, ShapingParams{}, RenderParams{})
	if err != nil {
		t.Fatalf("ProcessStages() error: %v", err)
	}
	out.Format = "svg" // simulate a vector renderer's output
	_, err = p.export(out)
	if err == nil {
		t.Fatal("expected FormatNotSupported for a bitmap-only exporter given vector output")
	}
	var typfErr *Error
	if !errors.As(err, &typfErr) || typfErr.Kind != KindFormatNotSupported {
		t.Fatalf("expected KindFormatNotSupported, got %v", err)
	}
}
