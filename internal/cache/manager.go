package cache

import (
	"github.com/fontlaborg/typf/internal/render"
	"github.com/fontlaborg/typf/internal/shape"
)

// Default tier sizes, carried over from the two-tier design this
// package is modeled on: small hot L1s, larger L2s, with the render
// cache's L2 bounded by bytes instead of entry count.
const (
	defaultShapingL1 = 100
	defaultShapingL2 = 10_000
	defaultRenderL1  = 50
)

// Manager owns the two caches a pipeline needs: shaping results keyed
// by text/font/params, and render outputs keyed by shaping/font/size/
// params. It is the Go analogue of a CacheManager that wraps both
// MultiLevelCache instances with the weigher the render cache needs.
type Manager struct {
	Shaping *MultiLevelCache[ShapingKey, *shape.Result]
	Render  *MultiLevelCache[RenderKey, *render.Output]
}

// NewManager builds a Manager with default tier sizes and the render
// cache's byte budget taken from RenderCacheMaxBytes(). It also applies
// the TYPF_CACHING_ENABLED kill switch from the environment the first
// time any Manager is constructed, so the documented external toggle
// (spec §6) takes effect without callers having to invoke it themselves.
func NewManager() *Manager {
	ApplyCachingEnabledEnv()
	return &Manager{
		Shaping: NewMultiLevelCache[ShapingKey, *shape.Result](defaultShapingL1, defaultShapingL2),
		Render: NewByteWeightedMultiLevelCache[RenderKey, *render.Output](
			defaultRenderL1, RenderCacheMaxBytes(), weighOutput,
		),
	}
}

// weighOutput estimates a render.Output's memory footprint: the RGBA
// canvas dominates for bitmap output, the raw bytes for vector/JSON.
func weighOutput(o *render.Output) int64 {
	if o == nil {
		return 0
	}
	return int64(len(o.RGBA) + len(o.Bytes))
}

// GetShaped looks up a cached shaping result.
func (m *Manager) GetShaped(key ShapingKey) (*shape.Result, bool) {
	return m.Shaping.Get(key)
}

// CacheShaped stores a shaping result.
func (m *Manager) CacheShaped(key ShapingKey, result *shape.Result) {
	m.Shaping.Insert(key, result)
}

// GetRendered looks up a cached render output.
func (m *Manager) GetRendered(key RenderKey) (*render.Output, bool) {
	return m.Render.Get(key)
}

// CacheRendered stores a render output.
func (m *Manager) CacheRendered(key RenderKey, output *render.Output) {
	m.Render.Insert(key, output)
}
