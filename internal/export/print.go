package export

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fatih/color"
	"github.com/jung-kurt/gofpdf"

	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/compose"
	"github.com/youruser/cardforge/internal/config"
	"github.com/youruser/cardforge/internal/layout"
	"github.com/youruser/cardforge/internal/raster"
	"github.com/youruser/cardforge/internal/textfit"
	"github.com/youruser/cardforge/internal/util"
)

// Physical print layout, millimeters. A4 pages carry a centered 3×3 card
// grid; the margins absorb the remainder.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	CardWidth  = 56.0
	CardHeight = 88.0
	GridCols   = 3
	GridRows   = 3

	MarginX = (PageWidth - GridCols*CardWidth) / 2
	MarginY = (PageHeight - GridRows*CardHeight) / 2
)

// CardsPerPage is one full grid; ChunkSize bounds a single PDF at nine
// face/back page pairs.
const (
	CardsPerPage = GridCols * GridRows
	ChunkSize    = 81
)

// Back-page background colors per back category.
var backPageColors = map[string][3]int{
	layout.BackDonjon: {84, 58, 34},
	layout.BackTresor: {164, 128, 54},
}

var facePageColor = [3]int{30, 30, 30}

// PrintProgress is invoked after every processed card.
type PrintProgress func(current, total, chunk, totalChunks int)

// PrintOptions tune one print job.
type PrintOptions struct {
	PixelRatio float64
	Progress   PrintProgress
}

// capturedCard is one rasterized front, already encoded; the raw bitmap
// was released at capture time.
type capturedCard struct {
	png  []byte
	back string
}

// printJob carries the per-job state of the paginator.
type printJob struct {
	cfg      config.Config
	fonts    *textfit.FontManager
	assets   *compose.AssetCache
	opts     PrintOptions
	backArts map[string][]byte
}

// ChunkCount returns the number of PDF chunks for n cards.
func ChunkCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + ChunkSize - 1) / ChunkSize
}

// PagePairCount returns the number of face/back page pairs for k cards of
// one chunk.
func PagePairCount(k int) int {
	if k <= 0 {
		return 0
	}
	return (k + CardsPerPage - 1) / CardsPerPage
}

// SlotRect returns the page position of the card at (col, row), in mm.
func SlotRect(col, row int) (x, y float64) {
	return MarginX + float64(col)*CardWidth, MarginY + float64(row)*CardHeight
}

// MirrorCol mirrors a column for the back page so fronts and backs align
// after a duplex flip along the long edge.
func MirrorCol(col int) int {
	return (GridCols - 1) - col
}

// DominantBack returns the most frequent back category of a page. Ties go
// to the dungeon back.
func DominantBack(backs []string) string {
	tresor := 0
	for _, b := range backs {
		if b == layout.BackTresor {
			tresor++
		}
	}
	if tresor*2 > len(backs) {
		return layout.BackTresor
	}
	return layout.BackDonjon
}

// BuildPrintPDFs runs the full paginator over a deck, writing one PDF per
// chunk of 81 cards into the configured output directory. It returns the
// written file paths. Per-card failures are logged and skipped; a chunk
// that fails to flush fails the job, but files already written stay valid.
func BuildPrintPDFs(ctx context.Context, deck cards.Deck, cfg config.Config, fonts *textfit.FontManager, opts PrintOptions) ([]string, error) {
	total := len(deck.Cards)
	if total == 0 {
		return nil, nil
	}
	if opts.Progress == nil {
		opts.Progress = consolePrintProgress
	}
	if err := util.EnsureDir(cfg.OutputDir); err != nil {
		return nil, err
	}

	job := &printJob{
		cfg:    cfg,
		fonts:  fonts,
		assets: compose.NewAssetCache(),
		opts:   opts,
	}
	job.preload(deck)
	compose.WarmFonts(fonts, opts.PixelRatio)

	totalChunks := ChunkCount(total)
	var files []string
	for chunk := 0; chunk < totalChunks; chunk++ {
		start := chunk * ChunkSize
		end := start + ChunkSize
		if end > total {
			end = total
		}
		path := filepath.Join(cfg.OutputDir, PrintFileName(chunk, totalChunks))
		if err := job.runChunk(ctx, deck.Cards[start:end], start, total, chunk, totalChunks, path); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

// preload decodes the back arts and the de-duplicated template set before
// processing starts. Failures are tolerated: affected cards degrade
// instead of stalling the batch.
func (j *printJob) preload(deck cards.Deck) {
	j.backArts = make(map[string][]byte)
	for back, path := range j.cfg.Backs {
		img, err := imaging.Open(path)
		if err != nil {
			log.Printf("Warning: back art %q unavailable: %v", path, err)
			continue
		}
		data, err := raster.EncodePNG(img)
		if err != nil {
			log.Printf("Warning: back art %q unusable: %v", path, err)
			continue
		}
		j.backArts[back] = data
	}

	seen := make(map[string]bool)
	for _, rec := range deck.Cards {
		name := layout.TemplateFor(rec, j.cfg)
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, res := layout.Load(name, j.cfg, j.assets.Load); res.State != layout.StateResolved {
			log.Printf("Warning: template %q unavailable, affected cards degrade: %v", name, res.Tried)
		}
	}
}

// runChunk captures up to ChunkSize cards and flushes them to one PDF.
// Page pairs are emitted every full grid, so at most one grid of encoded
// captures is buffered at a time.
func (j *printJob) runChunk(ctx context.Context, chunkCards []cards.Card, offset, total, chunk, totalChunks int, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	j.registerBackArts(pdf)

	var pagebuf []capturedCard
	for i, rec := range chunkCards {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := capture(ctx, rec, j.cfg, j.fonts, j.assets, j.opts.PixelRatio)
		if err != nil {
			log.Printf("Warning: skipping card %d (%q): %v", offset+i+1, rec.Title, err)
		} else {
			pagebuf = append(pagebuf, capturedCard{png: data, back: layout.BackFor(rec)})
		}
		j.opts.Progress(offset+i+1, total, chunk+1, totalChunks)

		if len(pagebuf) == CardsPerPage {
			j.emitPagePair(pdf, pagebuf, chunk, offset+i)
			pagebuf = pagebuf[:0]
		}
	}
	if len(pagebuf) > 0 {
		j.emitPagePair(pdf, pagebuf, chunk, offset+len(chunkCards))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (j *printJob) registerBackArts(pdf *gofpdf.Fpdf) {
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for back, data := range j.backArts {
		pdf.RegisterImageOptionsReader("back_"+back, opts, bytes.NewReader(data))
	}
}

// emitPagePair adds one face page and its column-mirrored back page for up
// to nine captured cards. The captures' encoded bytes are registered into
// the document and not needed afterwards.
func (j *printJob) emitPagePair(pdf *gofpdf.Fpdf, page []capturedCard, chunk, lastIndex int) {
	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}

	// Face page: dark background, cut lines, fronts in input order.
	pdf.AddPage()
	fillPage(pdf, facePageColor)
	drawCutLines(pdf)
	for i, c := range page {
		col, row := i%GridCols, i/GridCols
		x, y := SlotRect(col, row)
		name := fmt.Sprintf("front_%d_%d_%d", chunk, lastIndex, i)
		pdf.RegisterImageOptionsReader(name, imgOpts, bytes.NewReader(c.png))
		pdf.ImageOptions(name, x, y, CardWidth, CardHeight, false, imgOpts, 0, "")
	}

	// Back page: background by dominant back category, backs mirrored
	// column-wise so a long-edge duplex flip aligns both sides.
	backs := make([]string, len(page))
	for i, c := range page {
		backs[i] = c.back
	}
	pdf.AddPage()
	fillPage(pdf, backPageColors[DominantBack(backs)])
	drawCutLines(pdf)
	for i, c := range page {
		col, row := i%GridCols, i/GridCols
		x, y := SlotRect(MirrorCol(col), row)
		if _, ok := j.backArts[c.back]; ok {
			pdf.ImageOptions("back_"+c.back, x, y, CardWidth, CardHeight, false, imgOpts, 0, "")
		} else {
			rgb := backPageColors[c.back]
			pdf.SetFillColor(rgb[0]/2, rgb[1]/2, rgb[2]/2)
			pdf.Rect(x, y, CardWidth, CardHeight, "F")
		}
	}
}

func fillPage(pdf *gofpdf.Fpdf, rgb [3]int) {
	pdf.SetFillColor(rgb[0], rgb[1], rgb[2])
	pdf.Rect(0, 0, PageWidth, PageHeight, "F")
}

// drawCutLines draws thin registration lines at every grid boundary,
// inside the margins only so they never cross a card.
func drawCutLines(pdf *gofpdf.Fpdf) {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	for col := 0; col <= GridCols; col++ {
		x := MarginX + float64(col)*CardWidth
		pdf.Line(x, 0, x, MarginY)
		pdf.Line(x, PageHeight-MarginY, x, PageHeight)
	}
	for row := 0; row <= GridRows; row++ {
		y := MarginY + float64(row)*CardHeight
		pdf.Line(0, y, MarginX, y)
		pdf.Line(PageWidth-MarginX, y, PageWidth, y)
	}
}

func consolePrintProgress(current, total, chunk, totalChunks int) {
	if current == total {
		color.Green("print: %d/%d cards captured (%d/%d chunks)", current, total, chunk, totalChunks)
		return
	}
	fmt.Printf("\rprint: %d/%d (chunk %d/%d)", current, total, chunk, totalChunks)
}
