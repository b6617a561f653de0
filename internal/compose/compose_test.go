package compose

import (
	"bytes"
	"testing"
)

func makeBuffers(n int) (dst, src []byte) {
	dst = make([]byte, n)
	src = make([]byte, n)
	for i := 0; i < n; i += 4 {
		dst[i+0] = byte(i % 251)
		dst[i+1] = byte((i * 3) % 251)
		dst[i+2] = byte((i * 7) % 251)
		dst[i+3] = byte((i * 11) % 256)
		src[i+0] = byte((i * 13) % 256)
		src[i+1] = byte((i * 17) % 256)
		src[i+2] = byte((i * 19) % 256)
		src[i+3] = byte((i * 23) % 256)
	}
	return dst, src
}

func TestSourceOverOpaqueSourceReplacesDest(t *testing.T) {
	dst := []byte{10, 20, 30, 40}
	src := []byte{1, 2, 3, 255}
	SourceOver(dst, src)
	if !bytes.Equal(dst, []byte{1, 2, 3, 255}) {
		t.Fatalf("got %v, want fully-opaque source to win outright", dst)
	}
}

func TestSourceOverTransparentSourceLeavesDest(t *testing.T) {
	dst := []byte{10, 20, 30, 40}
	orig := append([]byte(nil), dst...)
	src := []byte{0, 0, 0, 0}
	SourceOver(dst, src)
	if !bytes.Equal(dst, orig) {
		t.Fatalf("got %v, want dest unchanged for fully-transparent source", dst)
	}
}

func TestLanesAreByteIdenticalToScalar(t *testing.T) {
	for _, size := range []int{4, 16, 32, 64, 100, 4096} {
		dstScalar, src := makeBuffers(size)
		dstSSE := append([]byte(nil), dstScalar...)
		dstAVX := append([]byte(nil), dstScalar...)

		sourceOverScalar(dstScalar, src)
		sourceOverSSE41(dstSSE, src)
		sourceOverAVX2(dstAVX, src)

		if !bytes.Equal(dstScalar, dstSSE) {
			t.Fatalf("size %d: SSE41 lane diverges from scalar reference", size)
		}
		if !bytes.Equal(dstScalar, dstAVX) {
			t.Fatalf("size %d: AVX2 lane diverges from scalar reference", size)
		}
	}
}

func TestSourceOverPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on length mismatch")
		}
	}()
	SourceOver(make([]byte, 4), make([]byte, 8))
}

func TestSourceOverPanicsOnNonMultipleOf4(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on non-RGBA-aligned length")
		}
	}()
	SourceOver(make([]byte, 5), make([]byte, 5))
}

func TestCurrentLaneIsStable(t *testing.T) {
	a := CurrentLane()
	b := CurrentLane()
	if a != b {
		t.Fatalf("CurrentLane changed between calls: %v then %v", a, b)
	}
}

func TestLaneString(t *testing.T) {
	cases := map[Lane]string{LaneScalar: "scalar", LaneSSE41: "sse41", LaneAVX2: "avx2"}
	for lane, want := range cases {
		if got := lane.String(); got != want {
			t.Fatalf("Lane(%d).String() = %q, want %q", lane, got, want)
		}
	}
}
