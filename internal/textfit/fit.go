// Package textfit sizes a card's text block so it fits its box. The fit
// runs in reference units, so preview and export agree on the chosen size.
package textfit

import (
	"strings"

	"golang.org/x/image/font"
)

// Fit contract: the chosen size is the largest in [FloorFontSize,
// BaseFontSize], stepping by FontSizeStep, whose measured block height
// fits the box. Content that overflows even at the floor keeps the floor.
const (
	BaseFontSize  = 13.0
	FloorFontSize = 8.0
	FontSizeStep  = 0.5
)

// Block is one paragraph of the text box.
type Block struct {
	Text string
	Bold bool
}

// BlockGap separates consecutive non-empty blocks, in reference units.
// The compositor leaves the same gap when drawing.
const BlockGap = 6.0

// Fit returns the font size for the given blocks inside a box of the
// given reference-unit width and height.
func (fm *FontManager) Fit(blocks []Block, boxW, boxH float64) (float64, error) {
	for size := BaseFontSize; size >= FloorFontSize; size -= FontSizeStep {
		h, err := fm.MeasureBlocks(blocks, boxW, size)
		if err != nil {
			return 0, err
		}
		if h <= boxH {
			return size, nil
		}
	}
	return FloorFontSize, nil
}

// MeasureBlocks returns the total wrapped height of the blocks at a font
// size, including inter-block gaps.
func (fm *FontManager) MeasureBlocks(blocks []Block, boxW, size float64) (float64, error) {
	total := 0.0
	drawn := 0
	for _, b := range blocks {
		if strings.TrimSpace(b.Text) == "" {
			continue
		}
		face, err := fm.Face(size, b.Bold)
		if err != nil {
			return 0, err
		}
		lines := Wrap(face, b.Text, boxW)
		if drawn > 0 {
			total += BlockGap
		}
		total += float64(len(lines)) * LineHeight(face)
		drawn++
	}
	return total, nil
}

// LineHeight is the line advance of a face in the same units as its size.
func LineHeight(face font.Face) float64 {
	return float64(face.Metrics().Height) / 64
}

// Wrap greedily wraps text at maxWidth using the face's advance widths.
// Explicit newlines are respected. A word wider than the box gets its own
// line rather than being split.
func Wrap(face font.Face, text string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if measure(face, candidate) <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

func measure(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}
