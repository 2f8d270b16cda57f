// Package geometry maps the template's fixed authoring resolution onto an
// arbitrary render surface. Every overlay position in the project is
// expressed once here, in reference units; nothing outside this package
// carries an absolute pixel literal.
package geometry

import "image"

// Reference authoring resolution of the card templates.
const (
	RefWidth  = 661.0
	RefHeight = 1028.0
)

// Base height of the variable text box in reference units, before the
// user's text-box scale is applied.
const BaseTextBoxHeight = 325.0

// Mapper scales reference-space coordinates to one render surface.
type Mapper struct {
	SurfaceW float64
	SurfaceH float64
}

// ForScale returns a mapper whose surface is the reference resolution
// multiplied by ratio (1.0 = native template pixels).
func ForScale(ratio float64) Mapper {
	return Mapper{SurfaceW: RefWidth * ratio, SurfaceH: RefHeight * ratio}
}

// X maps a reference-space x coordinate to the surface.
func (m Mapper) X(refX float64) float64 {
	return refX / RefWidth * m.SurfaceW
}

// Y maps a reference-space y coordinate to the surface.
func (m Mapper) Y(refY float64) float64 {
	return refY / RefHeight * m.SurfaceH
}

// Rect maps a reference-space rectangle to the surface.
func (m Mapper) Rect(r RefRect) Rect {
	return Rect{
		X: m.X(r.X),
		Y: m.Y(r.Y),
		W: m.X(r.W),
		H: m.Y(r.H),
	}
}

// Bounds is the integer pixel rectangle of the whole surface.
func (m Mapper) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(m.SurfaceW+0.5), int(m.SurfaceH+0.5))
}

// RefRect is a rectangle in reference units.
type RefRect struct {
	X, Y, W, H float64
}

// Rect is a rectangle in surface units.
type Rect struct {
	X, Y, W, H float64
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Overlay placement in reference units. These literals come from the
// template authoring grid and must match the 661×1028 assets.
var (
	refTitleBand   = RefRect{X: 70, Y: 42, W: 521, H: 60}
	refLeftBadge   = RefRect{X: 22, Y: 28, W: 96, H: 96}
	refRightBadge  = RefRect{X: 543, Y: 28, W: 96, H: 96}
	refArtSlot     = RefRect{X: 80, Y: 128, W: 501, H: 372}
	refTextBox     = RefRect{X: 66, Y: 540, W: 529, H: BaseTextBoxHeight}
	refLeftLabel   = RefRect{X: 48, Y: 938, W: 280, H: 48}
	refRightLabel  = RefRect{X: 333, Y: 938, W: 280, H: 48}
	refBadgeInsetY = 14.0
)

// CardGeometry carries every overlay rectangle for one render surface.
type CardGeometry struct {
	TitleBand  Rect
	LeftBadge  Rect
	RightBadge Rect
	ArtSlot    Rect
	TextBox    Rect
	LeftLabel  Rect
	RightLabel Rect
	BadgeDrop  float64
}

// ForSurface computes the card geometry on m. The text box height honors
// the user's box scale (percent, 100 = authored height).
func ForSurface(m Mapper, textScalePct float64) CardGeometry {
	box := refTextBox
	box.H = BaseTextBoxHeight * textScalePct / 100
	return CardGeometry{
		TitleBand:  m.Rect(refTitleBand),
		LeftBadge:  m.Rect(refLeftBadge),
		RightBadge: m.Rect(refRightBadge),
		ArtSlot:    m.Rect(refArtSlot),
		TextBox:    m.Rect(box),
		LeftLabel:  m.Rect(refLeftLabel),
		RightLabel: m.Rect(refRightLabel),
		BadgeDrop:  m.Y(refBadgeInsetY),
	}
}
