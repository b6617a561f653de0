//go:build gpu

// Package gpurender is an optional Renderer backend that uploads the
// CPU raster renderer's output to a GPU texture, built only with the
// "gpu" build tag. It is not part of the core pipeline contract
// (spec.md explicitly scopes GPU rendering out as a core concern): it
// exists so a caller who already has a wgpu surface can skip a
// CPU-to-GPU copy for a texture it would otherwise have to do itself.
//
// The CPU raster path (internal/render.BitmapRenderer) remains the
// source of truth for pixels; this backend never rasterizes on the
// GPU, so its output is always byte-identical to the CPU renderer's,
// satisfying the determinism contract trivially.
package gpurender

import (
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/core"
	"github.com/gogpu/wgpu/types"

	"github.com/fontlaborg/typf"
	"github.com/fontlaborg/typf/internal/fontsrc"
	"github.com/fontlaborg/typf/internal/render"
	"github.com/fontlaborg/typf/internal/shape"
)

// Renderer composites glyphs on the CPU via render.BitmapRenderer, then
// uploads the resulting RGBA buffer into a GPU texture on the device it
// lazily acquires on first use.
type Renderer struct {
	cpu *render.BitmapRenderer

	mu       sync.Mutex
	instance core.InstanceID
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID
	ready    bool
}

// New acquires a GPU adapter and device and returns a typf.Renderer
// backed by it. If no adapter is available it returns a typf.Error with
// Kind typf.KindOther; callers that want a renderer regardless of GPU
// availability should fall back to typf's default CPU bitmap renderer
// in that case.
func New() (typf.Renderer, error) {
	r := &Renderer{cpu: render.NewBitmapRenderer()}
	if err := r.ensureDevice(); err != nil {
		return nil, typf.NewBackendUnavailableError("gpu", err)
	}
	return r, nil
}

func (r *Renderer) ensureDevice() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ready {
		return nil
	}

	instance, err := core.CreateInstance(&types.InstanceDescriptor{})
	if err != nil {
		return fmt.Errorf("gpurender: create instance: %w", err)
	}

	adapter, err := core.RequestAdapter(instance, &types.RequestAdapterOptions{
		PowerPreference: types.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("gpurender: request adapter: %w", err)
	}

	device, err := core.RequestDevice(adapter, &types.DeviceDescriptor{
		Label:            "typf-gpurender-device",
		RequiredFeatures: nil,
		RequiredLimits:   types.DefaultLimits(),
	})
	if err != nil {
		_ = core.AdapterDrop(adapter)
		return fmt.Errorf("gpurender: create device: %w", err)
	}

	queue, err := core.GetDeviceQueue(device)
	if err != nil {
		_ = core.DeviceDrop(device)
		_ = core.AdapterDrop(adapter)
		return fmt.Errorf("gpurender: get queue: %w", err)
	}

	r.instance, r.adapter, r.device, r.queue = instance, adapter, device, queue
	r.ready = true
	return nil
}

// Name identifies this backend.
func (r *Renderer) Name() string { return "gpu" }

// SupportsFormat reports whether format can be produced; like the CPU
// bitmap renderer, only "rgba8" is supported.
func (r *Renderer) SupportsFormat(format string) bool { return format == "rgba8" }

// ClearCache clears the underlying CPU renderer's cache (a no-op today,
// mirrored from render.BitmapRenderer.ClearCache for interface parity).
func (r *Renderer) ClearCache() { r.cpu.ClearCache() }

// Render composites shaped glyphs on the CPU, then uploads the result
// into a freshly created GPU texture sized to match. The returned
// Output's RGBA bytes are the same bytes written to the texture, so
// callers reading either the Output or the texture see identical pixels.
func (r *Renderer) Render(shaped *shape.Result, src *fontsrc.Source, sizePixels float64, p render.Params) (*render.Output, error) {
	out, err := r.cpu.Render(shaped, src, sizePixels, p)
	if err != nil {
		return nil, err
	}
	if err := r.uploadTexture(out); err != nil {
		return nil, fmt.Errorf("gpurender: upload: %w", err)
	}
	return out, nil
}

func (r *Renderer) uploadTexture(out *render.Output) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return fmt.Errorf("gpurender: device not initialized")
	}

	texture, err := core.CreateTexture(r.device, &types.TextureDescriptor{
		Label:     "typf-glyph-run",
		Size:      types.Extent3D{Width: uint32(out.Width), Height: uint32(out.Height), DepthOrArrayLayers: 1},
		Format:    types.TextureFormatRGBA8Unorm,
		Usage:     types.TextureUsageTextureBinding | types.TextureUsageCopyDst,
		MipLevels: 1,
	})
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}
	defer core.TextureDrop(texture)

	return core.QueueWriteTexture(r.queue, texture, out.RGBA, uint32(out.Width*4), uint32(out.Height))
}

// Close releases the GPU device and adapter acquired by New.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil
	}
	if err := core.DeviceDrop(r.device); err != nil {
		return err
	}
	if err := core.AdapterDrop(r.adapter); err != nil {
		return err
	}
	r.ready = false
	return nil
}

var (
	_ render.Renderer = (*Renderer)(nil)
	_ typf.Renderer   = (*Renderer)(nil)
)
