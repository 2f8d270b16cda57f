package compose

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/config"
	"github.com/youruser/cardforge/internal/geometry"
	"github.com/youruser/cardforge/internal/layout"
	"github.com/youruser/cardforge/internal/textfit"
)

func testEnv(t *testing.T) (config.Config, *textfit.FontManager) {
	t.Helper()
	cfg := config.Default()
	cfg.TemplateDir = filepath.Join(t.TempDir(), "templates")
	fonts, err := textfit.NewFontManager("", "")
	if err != nil {
		t.Fatal(err)
	}
	return cfg, fonts
}

func TestComposeMissingTemplate(t *testing.T) {
	cfg, fonts := testEnv(t)
	unit, err := Compose(cards.Card{
		Category:    cards.CategoryMonster,
		Title:       "Le Troll",
		Level:       10,
		Description: "Un troll.",
	}, cfg, fonts)
	if err != nil {
		t.Fatal(err)
	}
	if !unit.Missing {
		t.Error("expected the missing-background state")
	}
	if unit.Back != layout.BackDonjon {
		t.Errorf("back = %q", unit.Back)
	}
	if unit.FitSize < textfit.FloorFontSize || unit.FitSize > textfit.BaseFontSize {
		t.Errorf("fit size %v out of range", unit.FitSize)
	}
}

func TestComposeWithTemplate(t *testing.T) {
	cfg, fonts := testEnv(t)
	if err := writeTemplate(cfg, layout.TemplateMonster); err != nil {
		t.Fatal(err)
	}
	unit, err := Compose(cards.Card{Category: cards.CategoryMonster, Title: "Le Troll"}, cfg, fonts)
	if err != nil {
		t.Fatal(err)
	}
	if unit.Missing {
		t.Error("template present but unit is missing")
	}
	if unit.Template == nil {
		t.Error("template image not loaded")
	}
}

func writeTemplate(cfg config.Config, name string) error {
	if err := os.MkdirAll(cfg.TemplateDir, 0o755); err != nil {
		return err
	}
	img := imaging.New(66, 102, color.NRGBA{R: 0x80, G: 0x70, B: 0x60, A: 0xff})
	return imaging.Save(img, filepath.Join(cfg.TemplateDir, name))
}

func TestComposeCorruptTemplateFallsThrough(t *testing.T) {
	// A template-dir file that exists but fails to decode must not end the
	// chain: the bare-name candidate still resolves the card.
	cfg, fonts := testEnv(t)
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })

	cfg.TemplateDir = filepath.Join(dir, "templates")
	if err := os.MkdirAll(cfg.TemplateDir, 0o755); err != nil {
		t.Fatal(err)
	}
	corrupt := filepath.Join(cfg.TemplateDir, layout.TemplateMonster)
	if err := os.WriteFile(corrupt, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	img := imaging.New(66, 102, color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff})
	if err := imaging.Save(img, layout.TemplateMonster); err != nil {
		t.Fatal(err)
	}

	unit, err := Compose(cards.Card{Category: cards.CategoryMonster, Title: "Le Troll"}, cfg, fonts)
	if err != nil {
		t.Fatal(err)
	}
	if unit.Missing {
		t.Fatal("corrupt template-dir candidate ended the chain despite a valid bare-name template")
	}
	if unit.Template == nil {
		t.Fatal("bare-name template not loaded")
	}
}

func TestMonsterBadStuffBlocks(t *testing.T) {
	cfg, fonts := testEnv(t)
	monster, err := Compose(cards.Card{
		Category:    cards.CategoryMonster,
		Description: "Un troll.",
		BadStuff:    "Perdez deux niveaux.",
	}, cfg, fonts)
	if err != nil {
		t.Fatal(err)
	}
	if len(monster.Blocks) != 3 {
		t.Fatalf("monster blocks = %d, want description + bad-stuff header + text", len(monster.Blocks))
	}

	// The penalty block is monster-only.
	curse, err := Compose(cards.Card{
		Category:    cards.CategoryCurse,
		Description: "Une malédiction.",
		BadStuff:    "ignoré",
	}, cfg, fonts)
	if err != nil {
		t.Fatal(err)
	}
	if len(curse.Blocks) != 1 {
		t.Fatalf("curse blocks = %d, want 1", len(curse.Blocks))
	}
}

func TestDefaultDescriptionPrefill(t *testing.T) {
	cfg, fonts := testEnv(t)
	cfg.DefaultDescription = "Texte par défaut."
	unit, err := Compose(cards.Card{Category: cards.CategoryRace}, cfg, fonts)
	if err != nil {
		t.Fatal(err)
	}
	if len(unit.Blocks) != 1 || unit.Blocks[0].Text != "Texte par défaut." {
		t.Errorf("blocks = %+v", unit.Blocks)
	}
}

func TestDrawSurfaceBounds(t *testing.T) {
	cfg, fonts := testEnv(t)
	unit, err := Compose(cards.Card{Category: cards.CategoryMonster, Title: "Le Troll"}, cfg, fonts)
	if err != nil {
		t.Fatal(err)
	}
	img, err := unit.Draw(geometry.ForScale(0.5), nil)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() != 331 || b.Dy() != 514 {
		t.Errorf("surface %dx%d, want 331x514", b.Dx(), b.Dy())
	}
}

func TestCornerLabelSuppression(t *testing.T) {
	tests := []struct {
		name        string
		card        cards.Card
		left, right string
	}{
		{
			"item with slot and price",
			cards.Card{Category: cards.CategoryItem, Slot: cards.SlotOneHand, Price: 400},
			"1 Main", "400 Pièces d'Or",
		},
		{
			"item without slot has no slot label",
			cards.Card{Category: cards.CategoryItem, Price: 200},
			"", "200 Pièces d'Or",
		},
		{
			"item enhancer suppresses the slot label",
			cards.Card{Category: cards.CategoryItem, Slot: cards.SlotEnhancement, Price: 100},
			"", "100 Pièces d'Or",
		},
		{
			"monster shows treasures",
			cards.Card{Category: cards.CategoryMonster, Treasures: 2},
			"", "2 Trésors",
		},
		{
			"curse shows nothing",
			cards.Card{Category: cards.CategoryCurse, Price: 999},
			"", "",
		},
		{
			"class shows nothing",
			cards.Card{Category: cards.CategoryClass},
			"", "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := &RenderUnit{Card: tc.card}
			left, right := u.cornerLabels()
			if left != tc.left || right != tc.right {
				t.Errorf("labels (%q, %q), want (%q, %q)", left, right, tc.left, tc.right)
			}
		})
	}
}
