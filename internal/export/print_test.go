package export

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/config"
	"github.com/youruser/cardforge/internal/layout"
	"github.com/youruser/cardforge/internal/textfit"
)

func TestChunkCount(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0}, {1, 1}, {9, 1}, {81, 1}, {82, 2}, {162, 2}, {163, 3},
	}
	for _, tc := range tests {
		if got := ChunkCount(tc.n); got != tc.want {
			t.Errorf("ChunkCount(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestPagePairCount(t *testing.T) {
	tests := []struct{ k, want int }{
		{0, 0}, {1, 1}, {9, 1}, {10, 2}, {18, 2}, {81, 9},
	}
	for _, tc := range tests {
		if got := PagePairCount(tc.k); got != tc.want {
			t.Errorf("PagePairCount(%d) = %d, want %d", tc.k, got, tc.want)
		}
	}
}

func TestMirrorCol(t *testing.T) {
	for col, want := range map[int]int{0: 2, 1: 1, 2: 0} {
		if got := MirrorCol(col); got != want {
			t.Errorf("MirrorCol(%d) = %d, want %d", col, got, want)
		}
	}
}

func TestSlotRect(t *testing.T) {
	x, y := SlotRect(0, 0)
	if x != MarginX || y != MarginY {
		t.Errorf("slot (0,0) at (%v, %v)", x, y)
	}
	x, y = SlotRect(2, 2)
	if x != MarginX+2*CardWidth || y != MarginY+2*CardHeight {
		t.Errorf("slot (2,2) at (%v, %v)", x, y)
	}
	// the grid plus margins fills the page exactly
	if MarginX*2+GridCols*CardWidth != PageWidth {
		t.Error("columns do not center on the page")
	}
	if MarginY*2+GridRows*CardHeight != PageHeight {
		t.Error("rows do not center on the page")
	}
}

func TestDominantBack(t *testing.T) {
	tests := []struct {
		backs []string
		want  string
	}{
		{[]string{"donjon", "donjon", "tresor"}, layout.BackDonjon},
		{[]string{"tresor", "tresor", "donjon"}, layout.BackTresor},
		{[]string{"donjon", "tresor"}, layout.BackDonjon}, // tie
		{nil, layout.BackDonjon},
	}
	for _, tc := range tests {
		if got := DominantBack(tc.backs); got != tc.want {
			t.Errorf("DominantBack(%v) = %q, want %q", tc.backs, got, tc.want)
		}
	}
}

func testSetup(t *testing.T) (config.Config, *textfit.FontManager) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.TemplateDir = filepath.Join(dir, "templates")
	cfg.OutputDir = filepath.Join(dir, "out")
	fonts, err := textfit.NewFontManager("", "")
	if err != nil {
		t.Fatal(err)
	}
	return cfg, fonts
}

func monsterDeck(n int) cards.Deck {
	d := cards.Deck{Name: "test"}
	for i := 0; i < n; i++ {
		d.Cards = append(d.Cards, cards.Card{
			Category:    cards.CategoryMonster,
			Title:       fmt.Sprintf("Monstre %d", i+1),
			Level:       i + 1,
			Description: "Un monstre de test.",
			BadStuff:    "Perdez un niveau.",
			Treasures:   1,
		})
	}
	return d
}

func TestPrintNineMonstersSingleChunk(t *testing.T) {
	cfg, fonts := testSetup(t)
	deck := monsterDeck(9)

	var calls []int
	files, err := BuildPrintPDFs(context.Background(), deck, cfg, fonts, PrintOptions{
		PixelRatio: 0.25,
		Progress: func(current, total, chunk, totalChunks int) {
			if total != 9 || chunk != 1 || totalChunks != 1 {
				t.Errorf("progress(%d, %d, %d, %d)", current, total, chunk, totalChunks)
			}
			calls = append(calls, current)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected one chunk file, got %v", files)
	}
	if filepath.Base(files[0]) != "munchkin_cards_print.pdf" {
		t.Errorf("file name %q", filepath.Base(files[0]))
	}
	info, err := os.Stat(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty PDF written")
	}
	if len(calls) != 9 {
		t.Errorf("progress called %d times, want 9", len(calls))
	}
	for i, c := range calls {
		if c != i+1 {
			t.Fatalf("progress out of order: %v", calls)
		}
	}
}

func TestPrintMultiChunkNaming(t *testing.T) {
	cfg, fonts := testSetup(t)
	deck := monsterDeck(ChunkSize + 1)

	files, err := BuildPrintPDFs(context.Background(), deck, cfg, fonts, PrintOptions{
		PixelRatio: 0.1,
		Progress:   func(current, total, chunk, totalChunks int) {},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 chunk files, got %v", files)
	}
	if filepath.Base(files[0]) != "munchkin_cards_print_partie1.pdf" ||
		filepath.Base(files[1]) != "munchkin_cards_print_partie2.pdf" {
		t.Errorf("chunk names: %v", files)
	}
}

func TestPrintSkipsFailedCard(t *testing.T) {
	cfg, fonts := testSetup(t)
	failCaptureAt(t, 3)

	var logged bytes.Buffer
	log.SetOutput(&logged)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	var calls []int
	files, err := BuildPrintPDFs(context.Background(), monsterDeck(10), cfg, fonts, PrintOptions{
		PixelRatio: 0.1,
		Progress: func(current, total, chunk, totalChunks int) {
			calls = append(calls, current)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected one chunk file, got %v", files)
	}
	if _, err := os.Stat(files[0]); err != nil {
		t.Fatal(err)
	}
	// progress still fires for the skipped card
	if len(calls) != 10 {
		t.Errorf("progress called %d times, want 10", len(calls))
	}
	if !strings.Contains(logged.String(), "skipping card 4") {
		t.Errorf("skip not logged: %q", logged.String())
	}
}

func TestPrintCancellation(t *testing.T) {
	cfg, fonts := testSetup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files, err := BuildPrintPDFs(ctx, monsterDeck(3), cfg, fonts, PrintOptions{
		Progress: func(current, total, chunk, totalChunks int) {
			t.Error("no card should be processed after cancellation")
		},
	})
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
	if len(files) != 0 {
		t.Errorf("no chunk should have been flushed, got %v", files)
	}
}
