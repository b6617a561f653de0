package cache

import (
	"testing"

	"github.com/fontlaborg/typf/internal/render"
	"github.com/fontlaborg/typf/internal/shape"
)

func TestManagerShapingRoundTrip(t *testing.T) {
	m := NewManager()
	key := ShapingKey{TextHash: 1, FontHash: 2, ParamsHash: 3}
	if _, ok := m.GetShaped(key); ok {
		t.Fatal("expected miss before caching")
	}
	result := &shape.Result{Direction: shape.DirectionLTR, AdvanceWidth: 42}
	m.CacheShaped(key, result)
	got, ok := m.GetShaped(key)
	if !ok || got != result {
		t.Fatalf("GetShaped = %v, %v; want original pointer, true", got, ok)
	}
}

func TestManagerRenderRoundTrip(t *testing.T) {
	m := NewManager()
	key := RenderKey{ShapingHash: 1, FontHash: 2, SizePixels: 16 * 64, ParamsHash: 3}
	out := &render.Output{Format: "rgba8", Width: 10, Height: 10, RGBA: make([]byte, 400)}
	m.CacheRendered(key, out)
	got, ok := m.GetRendered(key)
	if !ok || got != out {
		t.Fatalf("GetRendered = %v, %v; want original pointer, true", got, ok)
	}
}

func TestWeighOutputSumsBothBuffers(t *testing.T) {
	o := &render.Output{RGBA: make([]byte, 100), Bytes: make([]byte, 50)}
	if w := weighOutput(o); w != 150 {
		t.Fatalf("weighOutput = %d, want 150", w)
	}
	if weighOutput(nil) != 0 {
		t.Fatal("expected weighOutput(nil) = 0")
	}
}
