package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/arcats/internal/ar"
	"chosenoffset.com/arcats/internal/camera"
	"chosenoffset.com/arcats/internal/model"
	"chosenoffset.com/arcats/internal/placeholders"
	"chosenoffset.com/arcats/internal/render"
	"chosenoffset.com/arcats/internal/ui"
)

// The synthetic camera backdrop is rendered small and scaled up.
const backdropW, backdropH = 160, 100

var (
	colorBackground = color.RGBA{16, 16, 24, 255}
	colorText       = color.RGBA{255, 255, 255, 255}
	colorButton     = color.RGBA{255, 153, 102, 255}
	colorButtonText = color.RGBA{40, 20, 10, 255}
	colorDim        = color.RGBA{0, 0, 0, 160}
	colorReticle    = color.RGBA{255, 255, 255, 220}
)

// Draw renders the current screen.
func (m *Manager) Draw(screen render.Image) {
	screen.Fill(colorBackground)

	if m.surface.Visible(ui.PanelLanding) {
		m.drawLanding(screen)
	} else if m.surface.Visible(ui.PanelGame) {
		m.drawGame(screen)
	}
	if m.surface.Visible(ui.PanelResult) {
		m.drawResult(screen)
	}
	if msg, ok := m.surface.AlertText(); ok {
		m.drawAlert(screen, msg)
	}
}

func (m *Manager) drawLanding(screen render.Image) {
	title := "AR Cat Catch"
	hint := "Catch as many cats as you can in 10 seconds"
	label := "Start"
	if m.arMode != nil {
		hint = "Look around with the arrow keys and tap the cats"
		label = m.layout.StartAR.Label
	}
	m.drawCentered(screen, title, m.ScreenHeight/3, 3)
	m.drawCentered(screen, hint, m.ScreenHeight/3+60, 1.5)
	m.drawButton(screen, ui.Button{Label: label, Rect: m.layout.StartAR.Rect}, 1)
}

func (m *Manager) drawGame(screen render.Image) {
	arActive := m.arMode != nil && m.arMode.Controller().State() == ar.StateActive
	if (m.feed != nil && m.feed.Playing()) || arActive {
		m.drawBackdrop(screen)
	}

	if arActive {
		m.drawARScene(screen)
	}
	if m.screen != nil && m.surface.Visible(ui.ElementCat) {
		mv := m.screen.Movement()
		x := mv.CurrentX / 100 * float64(m.ScreenWidth)
		y := mv.CurrentY / 100 * float64(m.ScreenHeight)
		m.drawCat(screen, x, y, float64(placeholders.SpriteSize))
	}
	if m.viewer != nil && m.viewer.Loaded() {
		inset := m.layout.Inset
		m.viewer.Draw(screen, m.renderer, float64(inset.Min.X), float64(inset.Min.Y))
	}

	if m.surface.Visible(ui.PanelHUD) {
		m.renderer.DrawText(screen, "Time: "+m.surface.Text(ui.DisplayTimer), 24, 24, colorText, 2)
		m.renderer.DrawText(screen, "Score: "+m.surface.Text(ui.DisplayScore), 24, 64, colorText, 2)
	}
	if m.surface.Visible(ui.ElementAROverlay) {
		m.drawCentered(screen, "Tap a cat to catch it", m.ScreenHeight-48, 1.5)
	}
	if m.surface.Visible(ui.PanelPreGame) {
		m.drawButton(screen, m.layout.StartGame, 1)
	}
	if m.session.Playing() && m.surface.Visible(ui.ElementCapture) {
		m.drawButton(screen, m.layout.Capture, m.surface.Pulse())
	}
}

func (m *Manager) drawBackdrop(screen render.Image) {
	if m.backdrop == nil {
		m.backdrop = m.renderer.NewImage(backdropW, backdropH)
		m.pix = make([]byte, backdropW*backdropH*4)
	}
	seconds := m.loop.Now().Seconds()
	for y := 0; y < backdropH; y++ {
		for x := 0; x < backdropW; x++ {
			c := camera.Backdrop(float64(x)/backdropW, float64(y)/backdropH, seconds)
			i := (y*backdropW + x) * 4
			m.pix[i], m.pix[i+1], m.pix[i+2], m.pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	m.backdrop.WritePixels(m.pix)

	op := &render.DrawImageOptions{GeoM: m.renderer.NewGeoM(), Linear: true}
	op.GeoM.Scale(float64(m.ScreenWidth)/backdropW, float64(m.ScreenHeight)/backdropH)
	screen.DrawImage(m.backdrop, op)
}

func (m *Manager) drawARScene(screen render.Image) {
	for _, s := range m.arSeen.sprites {
		m.drawCat(screen, s.X, s.Y, s.Size)
	}
	if m.arSeen.reticle {
		m.renderer.StrokeCircle(screen, float32(m.arSeen.reticleX), float32(m.arSeen.reticleY),
			float32(m.arSeen.reticleRad), 3, colorReticle)
	}
}

// drawCat centres a cat of the given edge length on (x, y).
func (m *Manager) drawCat(screen render.Image, x, y, size float64) {
	if m.sprite == nil {
		m.renderer.FillCircle(screen, float32(x), float32(y), float32(size/2), model.CatColor)
		return
	}
	w, h := m.sprite.Size()
	op := &render.DrawImageOptions{GeoM: m.renderer.NewGeoM(), Linear: true}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(size/float64(w), size/float64(h))
	op.GeoM.Translate(x, y)
	screen.DrawImage(m.sprite, op)
}

func (m *Manager) drawResult(screen render.Image) {
	m.renderer.FillRect(screen, 0, 0, float32(m.ScreenWidth), float32(m.ScreenHeight), colorDim)
	m.drawCentered(screen, "Time's up!", m.ScreenHeight/3, 3)
	m.drawCentered(screen, fmt.Sprintf("You caught %s cats", m.surface.Text(ui.DisplayFinalScore)), m.ScreenHeight/3+60, 2)
	m.drawButton(screen, m.layout.PlayAgain, 1)
	m.drawButton(screen, m.layout.BackToTop, 1)
}

func (m *Manager) drawAlert(screen render.Image, msg string) {
	m.renderer.FillRect(screen, 0, 0, float32(m.ScreenWidth), float32(m.ScreenHeight), colorDim)

	tw, th := m.renderer.MeasureText(msg, 1.5)
	pad := 24
	x := (m.ScreenWidth - tw) / 2
	y := (m.ScreenHeight - th) / 2
	m.renderer.FillRect(screen, float32(x-pad), float32(y-pad), float32(tw+2*pad), float32(th+2*pad+28), color.RGBA{40, 40, 56, 240})
	m.renderer.StrokeRect(screen, float32(x-pad), float32(y-pad), float32(tw+2*pad), float32(th+2*pad+28), 2, colorButton)
	m.renderer.DrawText(screen, msg, x, y, colorText, 1.5)
	m.drawCentered(screen, "Tap to dismiss", y+th+12, 1)
}

// drawButton draws b, scaled about its centre.
func (m *Manager) drawButton(screen render.Image, b ui.Button, scale float64) {
	c := b.Center()
	w := float64(b.Rect.Dx()) * scale
	h := float64(b.Rect.Dy()) * scale
	x := float64(c.X) - w/2
	y := float64(c.Y) - h/2
	m.renderer.FillRect(screen, float32(x), float32(y), float32(w), float32(h), colorButton)

	tw, th := m.renderer.MeasureText(b.Label, 1.5)
	m.renderer.DrawText(screen, b.Label, c.X-tw/2, c.Y-th/2, colorButtonText, 1.5)
}

func (m *Manager) drawCentered(screen render.Image, s string, y int, scale float64) {
	tw, _ := m.renderer.MeasureText(s, scale)
	m.renderer.DrawText(screen, s, (m.ScreenWidth-tw)/2, y, colorText, scale)
}
