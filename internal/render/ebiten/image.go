package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"chosenoffset.com/arcats/internal/render"
)

// Image adapts *ebiten.Image to render.Image.
type Image struct {
	img *ebiten.Image
}

func newImage(width, height int) *Image {
	return &Image{img: ebiten.NewImage(width, height)}
}

// Wrap adapts an existing Ebitengine image, such as the screen.
func Wrap(img *ebiten.Image) render.Image {
	return &Image{img: img}
}

// unwrap panics if img came from another backend.
func unwrap(img render.Image) *ebiten.Image {
	return img.(*Image).img
}

func (i *Image) Size() (width, height int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

func (i *Image) Fill(clr color.Color)   { i.img.Fill(clr) }
func (i *Image) Clear()                 { i.img.Clear() }
func (i *Image) WritePixels(pix []byte) { i.img.WritePixels(pix) }

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	op := &ebiten.DrawImageOptions{}
	if opts != nil {
		if g, ok := opts.GeoM.(*GeoM); ok {
			op.GeoM = g.m
		}
		if opts.Linear {
			op.Filter = ebiten.FilterLinear
		}
	}
	i.img.DrawImage(unwrap(src), op)
}

func (i *Image) DrawTriangles(vertices []render.Vertex, indices []uint16, img render.Image, opts *render.DrawTrianglesOptions) {
	vs := make([]ebiten.Vertex, len(vertices))
	for j, v := range vertices {
		vs[j] = ebiten.Vertex{
			DstX: v.DstX, DstY: v.DstY,
			SrcX: v.SrcX, SrcY: v.SrcY,
			ColorR: v.ColorR, ColorG: v.ColorG, ColorB: v.ColorB, ColorA: v.ColorA,
		}
	}
	op := &ebiten.DrawTrianglesOptions{}
	if opts != nil {
		op.AntiAlias = opts.AntiAlias
	}
	i.img.DrawTriangles(vs, indices, unwrap(img), op)
}

// GeoM adapts ebiten.GeoM to render.GeoM.
type GeoM struct {
	m ebiten.GeoM
}

// NewGeoM returns an identity transform.
func NewGeoM() render.GeoM {
	return &GeoM{}
}

func (g *GeoM) Translate(tx, ty float64) { g.m.Translate(tx, ty) }
func (g *GeoM) Scale(sx, sy float64)     { g.m.Scale(sx, sy) }
