package cache

import (
	"hash/fnv"
	"os"
	"strconv"
	"sync"
)

// ShapingKey identifies a cached shaping result. Equal keys must imply
// identical shaping output, so FontHash is derived from the font's raw
// bytes rather than a handle's identity: two loads of the same file
// hash the same and share an entry.
type ShapingKey struct {
	TextHash   uint64
	FontHash   uint64
	FaceIndex  int
	ParamsHash uint64
}

// RenderKey identifies a cached render output, keyed by a hash of the
// shaping result, the font-bytes hash, the requested pixel size, the
// render parameter hash, and the name of the renderer that produced it
// (spec §3). It carries no text hash or face index. Two renderers
// given identical shaping/size/params can disagree on output, so the
// renderer identity is part of the key even though today each Pipeline
// owns exactly one renderer and one Manager.
type RenderKey struct {
	ShapingHash  uint64
	FontHash     uint64
	SizePixels   uint32 // size*64, fixed-point, for stable map keys
	ParamsHash   uint64
	RendererName string
}

// HashBytes returns an FNV-1a hash of b, used to derive FontHash from
// raw font bytes and TextHash from UTF-8 text.
func HashBytes(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b) // fnv.Write never returns an error
	return h.Sum64()
}

// HashString returns an FNV-1a hash of s.
func HashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

var (
	maxBytesOnce sync.Once
	maxBytes     int64
)

// RenderCacheMaxBytes returns the render cache's byte budget, read from
// TYPF_CACHE_MAX_BYTES on first call and cached for the life of the
// process (mirroring a OnceLock-parsed global in the runtime this
// engine was distilled from).
func RenderCacheMaxBytes() int64 {
	maxBytesOnce.Do(func() {
		maxBytes = DefaultRenderCacheMaxBytes
		if v := os.Getenv("TYPF_CACHE_MAX_BYTES"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				maxBytes = n
			}
		}
	})
	return maxBytes
}

var cachingEnvOnce sync.Once

// ApplyCachingEnabledEnv sets the Enabled kill switch from
// TYPF_CACHING_ENABLED (0/1) the first time it is called; later calls
// are no-ops. Construction code calls this once during pipeline setup
// rather than on every cache operation.
func ApplyCachingEnabledEnv() {
	cachingEnvOnce.Do(func() {
		v := os.Getenv("TYPF_CACHING_ENABLED")
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return
		}
		Enabled.Store(n != 0)
	})
}
