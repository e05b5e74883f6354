// Package game is the Ebitengine shell around a session: input routing,
// the loop clock and drawing.
package game

import (
	"time"

	"chosenoffset.com/arcats/internal/render"
	"chosenoffset.com/arcats/internal/session"
	"chosenoffset.com/arcats/internal/ui"
)

// Update advances the loop by one tick and handles this tick's input.
func (m *Manager) Update() error {
	m.ticks++
	now := time.Duration(m.ticks) * time.Second / time.Duration(m.tps)
	m.loop.Advance(now - m.lastStep)
	m.lastStep = now

	if m.input != nil {
		if x, y, ok := m.input.JustTapped(); ok {
			m.HandleTap(x, y)
		}
		m.handleKeys()
	}

	m.session.Update()
	return nil
}

func (m *Manager) handleKeys() {
	if _, ok := m.surface.AlertText(); ok {
		if m.input.IsKeyJustPressed(render.KeyEnter) || m.input.IsKeyJustPressed(render.KeyEscape) {
			m.surface.Dismiss()
		}
		return
	}
	if m.input.IsKeyJustPressed(render.KeyEscape) && !m.surface.Visible(ui.PanelLanding) {
		m.session.Exit()
		return
	}
	// Space stands in for the capture control.
	if m.screen != nil && m.session.Playing() && m.input.IsKeyJustPressed(render.KeySpace) {
		c := m.layout.Capture.Center()
		m.HandleTap(c.X, c.Y)
	}
}

// HandleTap routes a click or touch to whichever screen is showing. An
// open alert swallows the tap.
func (m *Manager) HandleTap(x, y int) {
	if _, ok := m.surface.AlertText(); ok {
		m.surface.Dismiss()
		return
	}

	switch {
	case m.surface.Visible(ui.PanelLanding):
		if m.layout.StartAR.Contains(x, y) {
			m.enter()
		}

	case m.surface.Visible(ui.PanelResult):
		switch {
		case m.layout.PlayAgain.Contains(x, y):
			m.arSeen = arView{}
			m.session.Reset()
		case m.layout.BackToTop.Contains(x, y):
			m.session.Exit()
		}

	case m.session.Playing():
		m.session.Tap(session.Tap{
			X:         float64(x),
			Y:         float64(y),
			Width:     float64(m.ScreenWidth),
			Height:    float64(m.ScreenHeight),
			OnCapture: m.surface.Visible(ui.ElementCapture) && m.layout.Capture.Contains(x, y),
		})

	case m.surface.Visible(ui.PanelPreGame):
		if m.layout.StartGame.Contains(x, y) {
			m.session.Start()
		}
	}
}
