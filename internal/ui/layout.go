package ui

import "image"

// Button is a clickable rectangle with a label.
type Button struct {
	Label string
	Rect  image.Rectangle
}

// Contains reports whether the point lies on the button.
func (b Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Center returns the button's midpoint.
func (b Button) Center() image.Point {
	return image.Pt((b.Rect.Min.X+b.Rect.Max.X)/2, (b.Rect.Min.Y+b.Rect.Max.Y)/2)
}

// Layout places every button for a given screen size.
type Layout struct {
	Width, Height int

	StartAR   Button // Landing
	StartGame Button // Pre-game
	Capture   Button // In-game
	PlayAgain Button // Result
	BackToTop Button // Result

	Inset image.Rectangle // Decorative viewer
}

// NewLayout computes button positions for a screen of w×h pixels.
func NewLayout(w, h, insetSize int) Layout {
	bw, bh := 220, 48
	cx := w / 2

	centered := func(label string, y int) Button {
		return Button{Label: label, Rect: image.Rect(cx-bw/2, y, cx+bw/2, y+bh)}
	}

	capture := 96
	return Layout{
		Width:     w,
		Height:    h,
		StartAR:   centered("Start AR", h/2+40),
		StartGame: centered("Start Game", h/2-bh/2),
		Capture: Button{
			Label: "Catch!",
			Rect:  image.Rect(cx-capture/2, h-capture-32, cx+capture/2, h-32),
		},
		PlayAgain: centered("Play Again", h/2+40),
		BackToTop: centered("Back to Top", h/2+40+bh+16),
		Inset:     image.Rect(w-insetSize-16, 16, w-16, 16+insetSize),
	}
}
