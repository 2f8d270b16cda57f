// Package qr renders deck-share QR codes.
package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the QR edge length in pixels when the caller passes none.
const DefaultSize = 400

// PNG encodes a deck-share link as a QR code and returns the PNG bytes.
// The bytes are decode-checked before they leave, so a handler can serve
// them as-is.
func PNG(text string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	data, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding QR: %w", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("verifying QR PNG: %w", err)
	}
	return data, nil
}

// Image decodes a QR code for composition onto another surface.
func Image(text string, size int) (image.Image, error) {
	data, err := PNG(text, size)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(data))
}
