package export

import (
	"fmt"

	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/layout"
)

// ArchiveName is the file name of the batch archive download.
const ArchiveName = "munchkin_cards.zip"

// printBaseName is the stem of print PDF files; multi-chunk output appends
// "_partie<N>".
const printBaseName = "munchkin_cards_print"

// NoIndex names a single-card export that has no position in a deck.
const NoIndex = -1

// CardFileName builds the deterministic export name of one card:
// <back>_<type-slug>_<NNN>_<title-slug>.png, with NNN the 1-based deck
// position zero-padded to three digits, or "XXX" for NoIndex.
func CardFileName(c cards.Card, index int) string {
	pos := "XXX"
	if index != NoIndex {
		pos = fmt.Sprintf("%03d", index+1)
	}
	return fmt.Sprintf("%s_%s_%s_%s.png",
		layout.BackFor(c), cards.TypeSlug(c.Category), pos, cards.Slug(c.Title))
}

// PrintFileName names one print chunk. A single-chunk export keeps the
// bare base name.
func PrintFileName(chunk, totalChunks int) string {
	if totalChunks <= 1 {
		return printBaseName + ".pdf"
	}
	return fmt.Sprintf("%s_partie%d.pdf", printBaseName, chunk+1)
}
