// Package ebiten implements the render interfaces on Ebitengine.
package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"chosenoffset.com/arcats/internal/render"
)

// lineHeight is the advance between lines of the 7x13 face.
const lineHeight = 13

// Renderer draws with Ebitengine's vector and text packages.
type Renderer struct {
	face text.Face
}

// NewRenderer returns a renderer using the 7x13 bitmap face for all text.
func NewRenderer() render.Renderer {
	return &Renderer{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (r *Renderer) NewImage(width, height int) render.Image {
	return newImage(width, height)
}

func (r *Renderer) NewGeoM() render.GeoM {
	return NewGeoM()
}

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	vector.DrawFilledCircle(unwrap(dst), x, y, radius, clr, true)
}

func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	vector.StrokeCircle(unwrap(dst), x, y, radius, strokeWidth, clr, true)
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	vector.DrawFilledRect(unwrap(dst), x, y, width, height, clr, true)
}

func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height float32, strokeWidth float32, clr color.Color) {
	vector.StrokeRect(unwrap(dst), x, y, width, height, strokeWidth, clr, true)
}

// DrawText scales the bitmap face; a non-positive scale draws at 1x.
func (r *Renderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = lineHeight
	text.Draw(unwrap(dst), str, r.face, op)
}

func (r *Renderer) MeasureText(str string, scale float64) (width, height int) {
	if scale <= 0 {
		scale = 1
	}
	w, h := text.Measure(str, r.face, lineHeight)
	return int(w * scale), int(h * scale)
}
