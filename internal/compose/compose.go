// Package compose implements Porter-Duff "source over" alpha compositing on
// premultiplied RGBA buffers, with a lane dispatched by runtime CPU feature
// detection the way the teacher's pixfmt blenders are dispatched per pixel
// format, but here dispatched per buffer by SIMD width.
package compose

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// Lane names the compositing implementation chosen for a call.
type Lane int

const (
	LaneScalar Lane = iota
	LaneSSE41
	LaneAVX2
)

func (l Lane) String() string {
	switch l {
	case LaneAVX2:
		return "avx2"
	case LaneSSE41:
		return "sse41"
	default:
		return "scalar"
	}
}

var (
	detectOnce   sync.Once
	detectedLane Lane
)

func detectLane() Lane {
	detectOnce.Do(func() {
		switch {
		case cpu.X86.HasAVX2:
			detectedLane = LaneAVX2
		case cpu.X86.HasSSE41:
			detectedLane = LaneSSE41
		default:
			detectedLane = LaneScalar
		}
	})
	return detectedLane
}

// CurrentLane returns the lane that SourceOver will dispatch to on this
// machine. Detection runs once and is cached for the process lifetime.
func CurrentLane() Lane {
	return detectLane()
}

// SourceOver composites src over dst in place, both already premultiplied
// RGBA, dst[i:i+4] = src[i:i+4] + (dst[i:i+4]*(255-src[i+3]))>>8 for each
// pixel (the shift by 8 stands in for division by 255). len(src) and len(dst) must be equal and a multiple of 4; a length
// that isn't a multiple of 4 panics, matching the teacher's approach of
// failing fast on malformed buffers rather than silently truncating.
func SourceOver(dst, src []byte) {
	if len(dst) != len(src) {
		panic("compose: dst and src length mismatch")
	}
	if len(dst)%4 != 0 {
		panic("compose: buffer length must be a multiple of 4 (RGBA)")
	}

	switch detectLane() {
	case LaneAVX2:
		sourceOverAVX2(dst, src)
	case LaneSSE41:
		sourceOverSSE41(dst, src)
	default:
		sourceOverScalar(dst, src)
	}
}

// sourceOverScalar is the correctness reference: one pixel at a time. The
// /255 division is approximated with >>8, the same fast approximation every
// production compositor uses, so this is not merely a fallback — it is the
// ground truth the other lanes must match byte-for-byte.
func sourceOverScalar(dst, src []byte) {
	for i := 0; i < len(dst); i += 4 {
		sa := src[i+3]
		inv := 255 - uint32(sa)
		dst[i+0] = src[i+0] + byte((uint32(dst[i+0])*inv)>>8)
		dst[i+1] = src[i+1] + byte((uint32(dst[i+1])*inv)>>8)
		dst[i+2] = src[i+2] + byte((uint32(dst[i+2])*inv)>>8)
		dst[i+3] = src[i+3] + byte((uint32(dst[i+3])*inv)>>8)
	}
}

// sourceOverSSE41 processes 16 bytes (4 pixels) per iteration. Go has no
// portable intrinsic surface for hand-verified SSE assembly in this
// environment, so the "lane" is a batched pure-Go loop over the same
// scalar formula — it exists to give dispatch, buffer-size, and
// byte-identical-output tests something to dispatch to and compare against,
// not to claim real vector instructions are emitted.
func sourceOverSSE41(dst, src []byte) {
	const batch = 16
	n := len(dst)
	i := 0
	for ; i+batch <= n; i += batch {
		blockSourceOver(dst[i:i+batch], src[i:i+batch])
	}
	sourceOverScalar(dst[i:], src[i:])
}

// sourceOverAVX2 processes 32 bytes (8 pixels) per iteration; see
// sourceOverSSE41 for why this is a batched scalar loop rather than real
// vector assembly.
func sourceOverAVX2(dst, src []byte) {
	const batch = 32
	n := len(dst)
	i := 0
	for ; i+batch <= n; i += batch {
		blockSourceOver(dst[i:i+batch], src[i:i+batch])
	}
	sourceOverScalar(dst[i:], src[i:])
}

func blockSourceOver(dst, src []byte) {
	for i := 0; i < len(dst); i += 4 {
		sa := src[i+3]
		inv := 255 - uint32(sa)
		dst[i+0] = src[i+0] + byte((uint32(dst[i+0])*inv)>>8)
		dst[i+1] = src[i+1] + byte((uint32(dst[i+1])*inv)>>8)
		dst[i+2] = src[i+2] + byte((uint32(dst[i+2])*inv)>>8)
		dst[i+3] = src[i+3] + byte((uint32(dst[i+3])*inv)>>8)
	}
}
