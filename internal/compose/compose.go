// Package compose assembles one card's visual unit: resolved template,
// fitted text and overlay geometry. A RenderUnit is built fresh per card
// and carries no state from previous cards.
package compose

import (
	"image"
	"image/color"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/config"
	"github.com/youruser/cardforge/internal/geometry"
	"github.com/youruser/cardforge/internal/layout"
	"github.com/youruser/cardforge/internal/textfit"
)

// Overlay font sizes in reference units.
const (
	titleFontSize = 22.0
	badgeFontSize = 26.0
	labelFontSize = 12.0
)

// Art slot crop: the user-facing 100% art scale maps to this pre-multiplied
// default so authored artwork fills the frame.
const artBaseZoom = 1.3

const badStuffLabel = "Incident Fâcheux :"

// Horizontal inset of text inside the text box, reference units.
const textInset = 12.0

// RenderUnit is a composited, not-yet-rasterized card.
type RenderUnit struct {
	Card     cards.Card
	Back     string
	Template image.Image
	Missing  bool
	FitSize  float64
	Blocks   []textfit.Block

	fonts *textfit.FontManager
}

// Compose resolves the card's layout, loads its template and settles the
// text fit. A missing template is not an error: the unit renders with
// placeholder styling so batch export never aborts on one card.
func Compose(rec cards.Card, cfg config.Config, fonts *textfit.FontManager) (*RenderUnit, error) {
	return ComposeWithAssets(rec, cfg, fonts, nil)
}

// ComposeWithAssets is Compose with a shared per-job template cache.
func ComposeWithAssets(rec cards.Card, cfg config.Config, fonts *textfit.FontManager, assets *AssetCache) (*RenderUnit, error) {
	u := &RenderUnit{
		Card:  rec,
		Back:  layout.BackFor(rec),
		fonts: fonts,
	}

	img, res := layout.Load(layout.TemplateFor(rec, cfg), cfg, func(path string) (image.Image, error) {
		return openTemplate(path, assets)
	})
	if res.State == layout.StateResolved {
		u.Template = img
	} else {
		u.Missing = true
	}

	u.Blocks = textBlocks(rec, cfg)

	// The fit runs in reference units so every surface agrees on the size.
	ref := geometry.ForSurface(geometry.ForScale(1), rec.TextScaleOrDefault())
	size, err := fonts.Fit(u.Blocks, ref.TextBox.W-2*textInset, ref.TextBox.H)
	if err != nil {
		return nil, err
	}
	u.FitSize = size
	return u, nil
}

func openTemplate(path string, assets *AssetCache) (image.Image, error) {
	if assets != nil {
		return assets.Load(path)
	}
	return imaging.Open(path)
}

func textBlocks(rec cards.Card, cfg config.Config) []textfit.Block {
	var blocks []textfit.Block
	if rec.Restrictions != "" {
		blocks = append(blocks, textfit.Block{Text: rec.Restrictions, Bold: true})
	}
	desc := rec.Description
	if desc == "" {
		desc = cfg.DefaultDescription
	}
	if desc != "" {
		blocks = append(blocks, textfit.Block{Text: desc})
	}
	if rec.Category == cards.CategoryMonster && rec.BadStuff != "" {
		blocks = append(blocks,
			textfit.Block{Text: badStuffLabel, Bold: true},
			textfit.Block{Text: rec.BadStuff})
	}
	return blocks
}

// Draw renders the unit onto a surface described by m, with the card's
// art (nil when unavailable). Preview and export call this with different
// mappers and identical geometry.
func (u *RenderUnit) Draw(m geometry.Mapper, art image.Image) (image.Image, error) {
	bounds := m.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	geom := geometry.ForSurface(m, u.Card.TextScaleOrDefault())

	dc := gg.NewContext(w, h)
	if u.Missing {
		drawPlaceholder(dc, w, h)
	} else {
		bg := imaging.Resize(u.Template, w, h, imaging.Lanczos)
		dc.DrawImage(bg, 0, 0)
	}

	if art != nil {
		u.drawArt(dc, geom, art)
	}
	if err := u.drawTitle(dc, m, geom); err != nil {
		return nil, err
	}
	if err := u.drawBadges(dc, m, geom); err != nil {
		return nil, err
	}
	if err := u.drawTextBox(dc, m, geom); err != nil {
		return nil, err
	}
	if err := u.drawCornerLabels(dc, m, geom); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// faceScale converts a reference-unit font size to the surface.
func faceScale(m geometry.Mapper) float64 {
	return m.SurfaceW / geometry.RefWidth
}

func drawPlaceholder(dc *gg.Context, w, h int) {
	dc.SetColor(color.NRGBA{R: 0xdd, G: 0xd6, B: 0xc4, A: 0xff})
	dc.Clear()
	dc.SetColor(color.NRGBA{R: 0x66, G: 0x5f, B: 0x50, A: 0xff})
	dc.SetLineWidth(float64(w) / 60)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Stroke()
}

func (u *RenderUnit) drawArt(dc *gg.Context, geom geometry.CardGeometry, art image.Image) {
	slot := geom.ArtSlot
	b := art.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	cover := slot.W / float64(b.Dx())
	if s := slot.H / float64(b.Dy()); s > cover {
		cover = s
	}
	scale := cover * u.Card.ArtScaleOrDefault() / 100 * artBaseZoom
	dw := int(float64(b.Dx())*scale + 0.5)
	dh := int(float64(b.Dy())*scale + 0.5)
	if dw < 1 || dh < 1 {
		return
	}
	scaled := imaging.Resize(art, dw, dh, imaging.Lanczos)

	cx := slot.CenterX() + u.Card.ArtOffsetX/100*slot.W
	cy := slot.CenterY() + u.Card.ArtOffsetY/100*slot.H

	dc.Push()
	dc.DrawRectangle(slot.X, slot.Y, slot.W, slot.H)
	dc.Clip()
	dc.DrawImageAnchored(scaled, int(cx+0.5), int(cy+0.5), 0.5, 0.5)
	dc.Pop()
}

func (u *RenderUnit) drawTitle(dc *gg.Context, m geometry.Mapper, geom geometry.CardGeometry) error {
	if u.Card.Title == "" {
		return nil
	}
	face, err := u.fonts.Face(titleFontSize*faceScale(m), true)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	band := geom.TitleBand
	dc.DrawStringAnchored(u.Card.Title, band.CenterX(), band.CenterY(), 0.5, 0.4)
	return nil
}

// drawBadges fills the corner diamonds: the left one carries a monster's
// level, the right one an item's bonus. Irrelevant badges stay empty.
func (u *RenderUnit) drawBadges(dc *gg.Context, m geometry.Mapper, geom geometry.CardGeometry) error {
	left := ""
	if u.Card.Category == cards.CategoryMonster && u.Card.Level > 0 {
		left = strconv.Itoa(u.Card.Level)
	}
	right := cards.FormatBonus(u.Card.Bonus)
	if left == "" && right == "" {
		return nil
	}
	face, err := u.fonts.Face(badgeFontSize*faceScale(m), true)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	if left != "" {
		b := geom.LeftBadge
		dc.DrawStringAnchored(left, b.CenterX(), b.CenterY()+geom.BadgeDrop, 0.5, 0.4)
	}
	if right != "" {
		b := geom.RightBadge
		dc.DrawStringAnchored(right, b.CenterX(), b.CenterY()+geom.BadgeDrop, 0.5, 0.4)
	}
	return nil
}

func (u *RenderUnit) drawTextBox(dc *gg.Context, m geometry.Mapper, geom geometry.CardGeometry) error {
	if len(u.Blocks) == 0 {
		return nil
	}
	scale := faceScale(m)
	box := geom.TextBox
	x := box.X + textInset*scale
	maxW := box.W - 2*textInset*scale
	y := box.Y

	dc.SetColor(color.Black)
	drawn := 0
	for _, b := range u.Blocks {
		if b.Text == "" {
			continue
		}
		face, err := u.fonts.Face(u.FitSize*scale, b.Bold)
		if err != nil {
			return err
		}
		if drawn > 0 {
			y += textfit.BlockGap * scale
		}
		dc.SetFontFace(face)
		lh := textfit.LineHeight(face)
		for _, line := range textfit.Wrap(face, b.Text, maxW) {
			y += lh
			dc.DrawString(line, x, y)
		}
		drawn++
	}
	return nil
}

func (u *RenderUnit) drawCornerLabels(dc *gg.Context, m geometry.Mapper, geom geometry.CardGeometry) error {
	left, right := u.cornerLabels()
	if left == "" && right == "" {
		return nil
	}
	face, err := u.fonts.Face(labelFontSize*faceScale(m), true)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	if left != "" {
		r := geom.LeftLabel
		dc.DrawStringAnchored(left, r.X, r.CenterY(), 0, 0.4)
	}
	if right != "" {
		r := geom.RightLabel
		dc.DrawStringAnchored(right, r.X+r.W, r.CenterY(), 1, 0.4)
	}
	return nil
}

// cornerLabels applies the per-category suppression rules: no slot label
// without an equipment slot or big flag, and no value label for pure
// modifier categories.
func (u *RenderUnit) cornerLabels() (left, right string) {
	c := u.Card
	switch c.Category {
	case cards.CategoryItem:
		if c.Slot != cards.SlotEnhancement {
			left = cards.SlotLabel(c.Slot, c.Big)
		}
		right = cards.FormatPrice(c.Price)
	case cards.CategoryMonster:
		if c.Treasures == 1 {
			right = "1 Trésor"
		} else if c.Treasures > 1 {
			right = strconv.Itoa(c.Treasures) + " Trésors"
		}
	}
	return left, right
}
