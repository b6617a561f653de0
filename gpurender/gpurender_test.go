//go:build gpu

package gpurender

import (
	"testing"

	"github.com/fontlaborg/typf/internal/render"
)

func TestRendererIdentityWithoutDevice(t *testing.T) {
	r := &Renderer{cpu: render.NewBitmapRenderer()}
	if r.Name() != "gpu" {
		t.Fatalf("Name() = %q, want gpu", r.Name())
	}
	if !r.SupportsFormat("rgba8") {
		t.Fatal("expected rgba8 to be supported")
	}
	if r.SupportsFormat("svg") {
		t.Fatal("expected svg to be unsupported")
	}
}

func TestCloseWithoutDeviceIsNoop(t *testing.T) {
	r := &Renderer{cpu: render.NewBitmapRenderer()}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() on an uninitialized renderer returned an error: %v", err)
	}
}
