package textfit

import (
	"fmt"
	"log"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontManager loads the body and title fonts and caches faces per size.
// Custom TTF paths fall back to the embedded Go fonts when unreadable.
type FontManager struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	bold bool
	size float64
}

// NewFontManager parses the configured fonts. Empty paths select the
// embedded Go Regular / Go Bold fonts.
func NewFontManager(bodyPath, titlePath string) (*FontManager, error) {
	regular, err := parseFont(bodyPath, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("body font: %w", err)
	}
	bold, err := parseFont(titlePath, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("title font: %w", err)
	}
	return &FontManager{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

func parseFont(customPath string, fallback []byte) (*opentype.Font, error) {
	data := fallback
	if customPath != "" {
		if custom, err := os.ReadFile(customPath); err != nil {
			log.Printf("Warning: font %q unavailable, using default: %v", customPath, err)
		} else {
			data = custom
		}
	}
	return opentype.Parse(data)
}

// Face returns a cached face at the given size (points, 72 DPI).
func (fm *FontManager) Face(size float64, bold bool) (font.Face, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	key := faceKey{bold: bold, size: size}
	if f, ok := fm.faces[key]; ok {
		return f, nil
	}
	src := fm.regular
	if bold {
		src = fm.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face at %.1fpt: %w", size, err)
	}
	fm.faces[key] = face
	return face, nil
}

// Warm pre-builds every candidate fit size plus the fixed overlay sizes,
// so the first card of a batch pays no face-construction cost.
func (fm *FontManager) Warm(extra ...float64) {
	for size := FloorFontSize; size <= BaseFontSize; size += FontSizeStep {
		fm.Face(size, false)
		fm.Face(size, true)
	}
	for _, size := range extra {
		fm.Face(size, false)
		fm.Face(size, true)
	}
}
