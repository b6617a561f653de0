package export

import "testing"

func TestToRGBA8Gray8(t *testing.T) {
	b := Bitmap{Width: 2, Height: 1, Format: FormatGray8, Data: []byte{0, 255}}
	rgba, err := toRGBA8(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{0, 0, 0, 255, 255, 255, 255, 255}
	for i := range want {
		if rgba[i] != want[i] {
			t.Fatalf("rgba = %v, want %v", rgba, want)
		}
	}
}

func TestToRGBA8RGB8AddsOpaqueAlpha(t *testing.T) {
	b := Bitmap{Width: 1, Height: 1, Format: FormatRGB8, Data: []byte{10, 20, 30}}
	rgba, err := toRGBA8(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{10, 20, 30, 255}
	for i := range want {
		if rgba[i] != want[i] {
			t.Fatalf("rgba = %v, want %v", rgba, want)
		}
	}
}

func TestToRGBA8Gray1(t *testing.T) {
	// One row of 8 bits: 10110000 -> pixels 0,2,3 are white(1), rest black(0).
	b := Bitmap{Width: 8, Height: 1, Format: FormatGray1, Data: []byte{0b10110000}}
	rgba, err := toRGBA8(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rgba[0*4] != 255 {
		t.Fatalf("pixel 0 should be white (bit set), got %d", rgba[0])
	}
	if rgba[1*4] != 0 {
		t.Fatalf("pixel 1 should be black (bit clear), got %d", rgba[4])
	}
}

func TestToRGBA8RejectsUndersizedBuffer(t *testing.T) {
	b := Bitmap{Width: 4, Height: 4, Format: FormatRGBA8, Data: make([]byte, 4)}
	if _, err := toRGBA8(b); err == nil {
		t.Fatal("expected a size mismatch error for an undersized buffer")
	}
}

func TestSizeMismatchErrorMessage(t *testing.T) {
	err := &SizeMismatchError{Expected: 16, Got: 4}
	if err.Error() == "" {
		t.Fatal("expected a non-empty error message")
	}
}
