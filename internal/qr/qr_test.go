package qr

import (
	"bytes"
	"image/png"
	"testing"
)

func TestPNGDecodesAtRequestedSize(t *testing.T) {
	data, err := PNG("deck:abc123", 256)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds().Dx(); got != 256 {
		t.Fatalf("width = %d, want 256", got)
	}
}

func TestPNGDefaultsSize(t *testing.T) {
	img, err := Image("deck:abc123", 0)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if got := img.Bounds().Dx(); got != DefaultSize {
		t.Fatalf("width = %d, want %d", got, DefaultSize)
	}
}
