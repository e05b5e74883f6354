// Package placeholders draws stand-in assets so the game runs without an
// art pipeline: a cat sprite for the targets and a low-poly cat mesh for the
// decorative viewer.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"chosenoffset.com/arcats/internal/model"
)

const (
	SpriteFile = "cat_transparent.png"
	MeshFile   = "cat.stl"
	SpriteSize = 128
)

// ColorPalette defines the cat's colours
var ColorPalette = struct {
	Fur      color.RGBA
	Stripe   color.RGBA
	InnerEar color.RGBA
	Eye      color.RGBA
	Nose     color.RGBA
	Outline  color.RGBA
}{
	Fur:      color.RGBA{255, 153, 102, 255}, // Ginger
	Stripe:   color.RGBA{214, 110, 60, 255},
	InnerEar: color.RGBA{255, 190, 190, 255},
	Eye:      color.RGBA{40, 40, 40, 255},
	Nose:     color.RGBA{230, 90, 110, 255},
	Outline:  color.RGBA{90, 50, 30, 255},
}

// CatSprite draws a front-facing cat head on a transparent background.
func CatSprite(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)

	s := float64(size)
	cx, cy := s/2, s*0.58
	r := s * 0.36

	// Ears first so the head overlaps their base.
	for _, dir := range []float64{-1, 1} {
		tip := [2]float64{cx + dir*r*0.75, cy - r*1.25}
		a := [2]float64{cx + dir*r*0.15, cy - r*0.6}
		b := [2]float64{cx + dir*r*0.95, cy - r*0.2}
		fillTriangle(img, tip, a, b, ColorPalette.Fur)
		inner := shrink(tip, a, b, 0.55)
		fillTriangle(img, inner[0], inner[1], inner[2], ColorPalette.InnerEar)
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			d := math.Hypot(dx, dy)
			switch {
			case d <= r-2:
				c := ColorPalette.Fur
				// Forehead stripes
				if dy < -r*0.45 && math.Mod(math.Abs(dx)+r, r*0.3) < r*0.08 {
					c = ColorPalette.Stripe
				}
				img.Set(x, y, c)
			case d <= r:
				img.Set(x, y, ColorPalette.Outline)
			}
		}
	}

	for _, dir := range []float64{-1, 1} {
		fillEllipse(img, cx+dir*r*0.38, cy-r*0.1, r*0.1, r*0.16, ColorPalette.Eye)
	}
	fillTriangle(img,
		[2]float64{cx - r*0.1, cy + r*0.15},
		[2]float64{cx + r*0.1, cy + r*0.15},
		[2]float64{cx, cy + r*0.28},
		ColorPalette.Nose)

	return img
}

func fillEllipse(img *image.RGBA, cx, cy, rx, ry float64, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				img.Set(x, y, c)
			}
		}
	}
}

func fillTriangle(img *image.RGBA, a, b, c [2]float64, col color.RGBA) {
	minX := int(math.Floor(math.Min(a[0], math.Min(b[0], c[0]))))
	maxX := int(math.Ceil(math.Max(a[0], math.Max(b[0], c[0]))))
	minY := int(math.Floor(math.Min(a[1], math.Min(b[1], c[1]))))
	maxY := int(math.Ceil(math.Max(a[1], math.Max(b[1], c[1]))))

	edge := func(p, q [2]float64, x, y float64) float64 {
		return (q[0]-p[0])*(y-p[1]) - (q[1]-p[1])*(x-p[0])
	}
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			w0 := edge(b, c, px, py)
			w1 := edge(c, a, px, py)
			w2 := edge(a, b, px, py)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				if image.Pt(x, y).In(img.Bounds()) {
					img.Set(x, y, col)
				}
			}
		}
	}
}

// shrink scales a triangle towards its centroid.
func shrink(a, b, c [2]float64, k float64) [3][2]float64 {
	gx := (a[0] + b[0] + c[0]) / 3
	gy := (a[1] + b[1] + c[1]) / 3
	out := [3][2]float64{a, b, c}
	for i := range out {
		out[i][0] = gx + (out[i][0]-gx)*k
		out[i][1] = gy + (out[i][1]-gy)*k
	}
	return out
}

// CatMesh builds a blocky sitting cat: body, head, two ears and a tail.
func CatMesh() *model.Mesh {
	m := &model.Mesh{}
	addBox(m, mgl64.Vec3{-0.5, 0, -0.35}, mgl64.Vec3{0.5, 0.8, 0.35})
	addBox(m, mgl64.Vec3{-0.4, 0.8, -0.3}, mgl64.Vec3{0.4, 1.4, 0.3})
	addBox(m, mgl64.Vec3{-0.08, 0.1, -0.75}, mgl64.Vec3{0.08, 0.25, -0.35})
	addPyramid(m, mgl64.Vec3{-0.38, 1.4, -0.12}, mgl64.Vec3{-0.12, 1.4, 0.12}, 0.3)
	addPyramid(m, mgl64.Vec3{0.12, 1.4, -0.12}, mgl64.Vec3{0.38, 1.4, 0.12}, 0.3)
	return m
}

func addQuad(m *model.Mesh, a, b, c, d mgl64.Vec3) {
	m.Triangles = append(m.Triangles,
		model.NewTriangle(a, b, c),
		model.NewTriangle(a, c, d))
}

// addBox appends an axis-aligned box with outward-facing windings.
func addBox(m *model.Mesh, lo, hi mgl64.Vec3) {
	x0, y0, z0 := lo.Elem()
	x1, y1, z1 := hi.Elem()
	v := func(x, y, z float64) mgl64.Vec3 { return mgl64.Vec3{x, y, z} }

	addQuad(m, v(x0, y0, z0), v(x0, y0, z1), v(x0, y1, z1), v(x0, y1, z0)) // -X
	addQuad(m, v(x1, y0, z0), v(x1, y1, z0), v(x1, y1, z1), v(x1, y0, z1)) // +X
	addQuad(m, v(x0, y0, z0), v(x1, y0, z0), v(x1, y0, z1), v(x0, y0, z1)) // -Y
	addQuad(m, v(x0, y1, z0), v(x0, y1, z1), v(x1, y1, z1), v(x1, y1, z0)) // +Y
	addQuad(m, v(x0, y0, z0), v(x0, y1, z0), v(x1, y1, z0), v(x1, y0, z0)) // -Z
	addQuad(m, v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1), v(x0, y1, z1)) // +Z
}

// addPyramid appends a square pyramid standing on the y=lo.Y plane.
func addPyramid(m *model.Mesh, lo, hi mgl64.Vec3, height float64) {
	y := lo.Y()
	p0 := mgl64.Vec3{lo.X(), y, hi.Z()}
	p1 := mgl64.Vec3{hi.X(), y, hi.Z()}
	p2 := mgl64.Vec3{hi.X(), y, lo.Z()}
	p3 := mgl64.Vec3{lo.X(), y, lo.Z()}
	apex := mgl64.Vec3{(lo.X() + hi.X()) / 2, y + height, (lo.Z() + hi.Z()) / 2}

	base := []mgl64.Vec3{p0, p1, p2, p3}
	for i := range base {
		m.Triangles = append(m.Triangles, model.NewTriangle(base[i], base[(i+1)%4], apex))
	}
	addQuad(m, p0, p3, p2, p1)
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// SaveSTL saves a mesh as binary STL
func SaveSTL(m *model.Mesh, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return model.WriteBinarySTL(file, m)
}

// GenerateAndSave writes the sprite and mesh into assetsDir.
func GenerateAndSave(assetsDir string) error {
	if err := os.MkdirAll(assetsDir, 0755); err != nil {
		return fmt.Errorf("failed to create assets directory: %w", err)
	}

	spritePath := filepath.Join(assetsDir, SpriteFile)
	if err := SavePNG(CatSprite(SpriteSize), spritePath); err != nil {
		return fmt.Errorf("failed to save %s: %w", SpriteFile, err)
	}
	log.Info().Str("path", spritePath).Int("size", SpriteSize).Msg("generated cat sprite")

	mesh := CatMesh()
	meshPath := filepath.Join(assetsDir, MeshFile)
	if err := SaveSTL(mesh, meshPath); err != nil {
		return fmt.Errorf("failed to save %s: %w", MeshFile, err)
	}
	log.Info().Str("path", meshPath).Int("triangles", len(mesh.Triangles)).Msg("generated cat mesh")

	return nil
}
