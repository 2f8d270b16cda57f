package compose

import (
	"image"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardforge/internal/textfit"
)

// AssetCache holds decoded template images for one batch job, so a deck
// reusing a handful of templates decodes each once.
type AssetCache struct {
	mu        sync.Mutex
	templates map[string]image.Image
}

// NewAssetCache returns an empty cache.
func NewAssetCache() *AssetCache {
	return &AssetCache{templates: make(map[string]image.Image)}
}

// Load decodes a template through the cache. Batch jobs also call it
// ahead of processing to warm the cache; a failure there is tolerated, the
// affected cards degrade to placeholder styling instead of stalling.
func (c *AssetCache) Load(path string) (image.Image, error) {
	c.mu.Lock()
	if img, ok := c.templates[path]; ok {
		c.mu.Unlock()
		return img, nil
	}
	c.mu.Unlock()

	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.templates[path] = img
	c.mu.Unlock()
	return img, nil
}

// WarmFonts pre-builds the fit-range faces plus the fixed overlay faces
// for the given pixel ratio, so the first capture of a batch pays no
// face-construction cost.
func WarmFonts(fonts *textfit.FontManager, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	fonts.Warm(
		titleFontSize*pixelRatio,
		badgeFontSize*pixelRatio,
		labelFontSize*pixelRatio,
	)
}
