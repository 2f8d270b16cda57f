// Package export drives the rasterizer across a whole deck and bundles
// the captures into a zip archive or duplex-ready print PDFs. Cards are
// processed strictly in input order, one at a time; each capture is
// encoded and released before the next card starts.
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/fatih/color"

	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/compose"
	"github.com/youruser/cardforge/internal/config"
	"github.com/youruser/cardforge/internal/raster"
	"github.com/youruser/cardforge/internal/textfit"
)

// ArchiveProgress is invoked after every processed card.
type ArchiveProgress func(current, total int)

// ArchiveOptions tune one archive job.
type ArchiveOptions struct {
	PixelRatio float64
	Progress   ArchiveProgress
}

// BuildArchive composites, rasterizes and zips every card of the deck.
// Per-card failures are logged and skipped; only archive finalization
// failure fails the job. The returned bytes are the complete zip.
func BuildArchive(ctx context.Context, deck cards.Deck, cfg config.Config, fonts *textfit.FontManager, opts ArchiveOptions) ([]byte, error) {
	total := len(deck.Cards)
	progress := opts.Progress
	if progress == nil {
		progress = consoleArchiveProgress
	}

	compose.WarmFonts(fonts, opts.PixelRatio)
	assets := compose.NewAssetCache()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	skipped := 0
	for i, rec := range deck.Cards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := capture(ctx, rec, cfg, fonts, assets, opts.PixelRatio)
		if err != nil {
			log.Printf("Warning: skipping card %d (%q): %v", i+1, rec.Title, err)
			skipped++
			progress(i+1, total)
			continue
		}
		entry, err := zw.Create(CardFileName(rec, i))
		if err != nil {
			return nil, fmt.Errorf("adding archive entry: %w", err)
		}
		if _, err := entry.Write(data); err != nil {
			return nil, fmt.Errorf("writing archive entry: %w", err)
		}
		progress(i+1, total)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	if skipped > 0 {
		log.Printf("Archive done with %d of %d cards skipped", skipped, total)
	}
	return buf.Bytes(), nil
}

// capture is the per-card pipeline stage, indirected so tests can model a
// rasterization failure.
var capture = captureCard

// captureCard composes, rasterizes, encodes and releases one card. The
// raw bitmap never outlives this call.
func captureCard(ctx context.Context, rec cards.Card, cfg config.Config, fonts *textfit.FontManager, assets *compose.AssetCache, ratio float64) ([]byte, error) {
	unit, err := compose.ComposeWithAssets(rec, cfg, fonts, assets)
	if err != nil {
		return nil, err
	}
	img, err := raster.Rasterize(ctx, unit, raster.Options{PixelRatio: ratio})
	if err != nil {
		return nil, err
	}
	return raster.EncodePNG(img)
}

func consoleArchiveProgress(current, total int) {
	if current == total {
		color.Green("archive: %d/%d cards captured", current, total)
		return
	}
	fmt.Printf("\rarchive: %d/%d", current, total)
}
