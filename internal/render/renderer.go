// Package render is the drawing and input surface the game is written
// against. The ebiten sub-package is the only backend; tests run the game
// logic without one.
package render

import (
	"image/color"
)

// Renderer creates images and draws shapes and text onto them.
type Renderer interface {
	NewImage(width, height int) Image
	// NewGeoM returns an identity transform for DrawImageOptions.
	NewGeoM() GeoM

	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height float32, strokeWidth float32, clr color.Color)

	// DrawText places text with its top-left corner at (x, y).
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)
}

// Image is an offscreen surface or the screen itself.
type Image interface {
	Size() (width, height int)

	Fill(clr color.Color)
	Clear()

	// WritePixels replaces the contents with premultiplied RGBA bytes,
	// len(pix) == 4*width*height.
	WritePixels(pix []byte)

	DrawImage(src Image, opts *DrawImageOptions)
	// DrawTriangles fills triangles sampled from img. Vertex colours
	// multiply the sampled texel, so a 1x1 white img gives flat colours.
	DrawTriangles(vertices []Vertex, indices []uint16, img Image, opts *DrawTrianglesOptions)
}

// DrawImageOptions positions a DrawImage call.
type DrawImageOptions struct {
	GeoM GeoM
	// Linear selects bilinear filtering when the image is scaled.
	Linear bool
}

// GeoM is an affine transform, applied in call order.
type GeoM interface {
	Translate(tx, ty float64)
	Scale(sx, sy float64)
}

// DrawTrianglesOptions configures a DrawTriangles call.
type DrawTrianglesOptions struct {
	AntiAlias bool
}

// Vertex is one corner of a triangle, in destination pixels.
type Vertex struct {
	DstX, DstY                     float32
	SrcX, SrcY                     float32
	ColorR, ColorG, ColorB, ColorA float32
}

// InputManager reports keyboard, mouse and touch state for the current tick.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	// JustTapped returns the position of a click or touch that began this tick.
	JustTapped() (x, y int, ok bool)
}

// Key is a keyboard key the game listens to.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
)

// ResourceLoader reads images from disk.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// Game is driven by an Engine: Update once per tick, Draw once per frame.
type Game interface {
	Update() error
	Draw(screen Image)
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine owns the window and the game loop.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)

	// TPS is the number of Update calls per second.
	TPS() int

	// RunGame blocks until the window closes or Update returns an error.
	RunGame(game Game) error
}
