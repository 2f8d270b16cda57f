// Package raster captures a composited card as a bitmap.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"time"

	"github.com/youruser/cardforge/internal/compose"
	"github.com/youruser/cardforge/internal/geometry"
	"github.com/youruser/cardforge/internal/util"
)

// DefaultArtTimeout bounds the wait for a card's remote artwork. Past the
// bound the capture proceeds without the art rather than hanging the batch.
const DefaultArtTimeout = 5 * time.Second

// Options control one capture.
type Options struct {
	// PixelRatio scales the output against the template's native
	// resolution (1.0 = 661×1028 pixels).
	PixelRatio float64
	// ArtTimeout overrides DefaultArtTimeout when positive.
	ArtTimeout time.Duration
}

func (o Options) ratio() float64 {
	if o.PixelRatio <= 0 {
		return 1
	}
	return o.PixelRatio
}

func (o Options) artTimeout() time.Duration {
	if o.ArtTimeout <= 0 {
		return DefaultArtTimeout
	}
	return o.ArtTimeout
}

// Rasterize draws a composited unit at the requested pixel ratio. Remote
// art is fetched within a bounded timeout; fetch failure or timeout is a
// warning, not an error. A drawing failure is returned to the caller,
// which skips the card and keeps the batch alive.
func Rasterize(ctx context.Context, u *compose.RenderUnit, opts Options) (image.Image, error) {
	art := fetchArt(ctx, u, opts.artTimeout())
	img, err := u.Draw(geometry.ForScale(opts.ratio()), art)
	if err != nil {
		return nil, fmt.Errorf("rendering %q: %w", u.Card.Title, err)
	}
	return img, nil
}

func fetchArt(ctx context.Context, u *compose.RenderUnit, timeout time.Duration) image.Image {
	if u.Card.ArtURL == "" {
		return nil
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	art, err := util.FetchImage(fetchCtx, u.Card.ArtURL)
	if err != nil {
		log.Printf("Warning: art for %q unavailable, rendering without it: %v", u.Card.Title, err)
		return nil
	}
	return art
}

// EncodePNG encodes a captured bitmap. Batch jobs call this immediately
// after capture so the raw image can be dropped before the next card.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
