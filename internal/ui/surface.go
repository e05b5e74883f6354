// Package ui holds the visible state of the game's screens: which panels are
// shown, the numeric displays and the blocking alert. It knows nothing about
// drawing; the game manager renders whatever the Surface says.
package ui

import "strconv"

// Panel is a toggleable screen, sub-screen or element.
type Panel int

const (
	PanelLanding Panel = iota
	PanelGame
	PanelPreGame
	PanelHUD
	PanelResult

	// Elements inside the game screen
	ElementCat       // Screen-space cat target
	ElementAROverlay // Overlay shown while an AR session runs
	ElementCapture   // Capture control
)

func (p Panel) String() string {
	switch p {
	case PanelLanding:
		return "landing"
	case PanelGame:
		return "game"
	case PanelPreGame:
		return "pre-game"
	case PanelHUD:
		return "hud"
	case PanelResult:
		return "result"
	case ElementCat:
		return "cat"
	case ElementAROverlay:
		return "ar-overlay"
	case ElementCapture:
		return "capture"
	default:
		return "panel(" + strconv.Itoa(int(p)) + ")"
	}
}

// Display is a numeric text field.
type Display int

const (
	DisplayTimer Display = iota
	DisplayScore
	DisplayFinalScore
)

// Surface is the UI state shared by the session controller and the renderer.
type Surface struct {
	visible  map[Panel]bool
	text     map[Display]string
	pulse    float64
	alert    string
	hasAlert bool
}

// NewSurface returns a surface showing the landing screen with the game
// screen's pre-game UI ready underneath.
func NewSurface() *Surface {
	s := &Surface{
		visible: make(map[Panel]bool),
		text:    make(map[Display]string),
		pulse:   1,
	}
	s.visible[PanelLanding] = true
	s.visible[PanelPreGame] = true
	s.visible[ElementCapture] = true
	return s
}

// Show makes each panel visible.
func (s *Surface) Show(panels ...Panel) {
	for _, p := range panels {
		s.visible[p] = true
	}
}

// Hide makes each panel invisible.
func (s *Surface) Hide(panels ...Panel) {
	for _, p := range panels {
		s.visible[p] = false
	}
}

// Visible reports whether p is shown.
func (s *Surface) Visible(p Panel) bool {
	return s.visible[p]
}

// SetNumber writes n into display d.
func (s *Surface) SetNumber(d Display, n int) {
	s.text[d] = strconv.Itoa(n)
}

// Text returns the contents of display d.
func (s *Surface) Text(d Display) string {
	return s.text[d]
}

// SetPulse sets the capture control's scale.
func (s *Surface) SetPulse(scale float64) {
	s.pulse = scale
}

// Pulse returns the capture control's scale.
func (s *Surface) Pulse() float64 {
	return s.pulse
}

// Alert raises a blocking message. Input is swallowed until Dismiss.
func (s *Surface) Alert(msg string) {
	s.alert = msg
	s.hasAlert = true
}

// AlertText returns the pending alert, if any.
func (s *Surface) AlertText() (string, bool) {
	return s.alert, s.hasAlert
}

// Dismiss clears the alert.
func (s *Surface) Dismiss() {
	s.alert = ""
	s.hasAlert = false
}
