package screenspace

import (
	"math/rand/v2"

	"chosenoffset.com/arcats/internal/config"
	"chosenoffset.com/arcats/internal/sched"
	"chosenoffset.com/arcats/internal/session"
	"chosenoffset.com/arcats/internal/ui"
)

// Decoration is ambient animation that runs alongside a game.
type Decoration interface {
	Start()
	Stop()
}

// Mode is the screen-space game: taps on the capture control score.
type Mode struct {
	cfg   config.MovementConfig
	sim   *Simulator
	deco  Decoration
	state Movement
	loop  sched.Handle
}

// NewMode creates the screen-space mode. deco may be nil.
func NewMode(cfg config.MovementConfig, deco Decoration, rng *rand.Rand) *Mode {
	m := &Mode{
		cfg:  cfg,
		sim:  NewSimulator(cfg, rng),
		deco: deco,
	}
	m.sim.Reset(&m.state)
	return m
}

func (m *Mode) Name() string { return config.ModeScreen }

// Movement returns the cat's current state.
func (m *Mode) Movement() Movement { return m.state }

// Start shows the cat, starts the decoration if it is not already running
// and starts the movement loop.
func (m *Mode) Start(c *session.Controller) {
	c.Surface().Show(ui.ElementCat)
	m.sim.Reset(&m.state)
	if m.deco != nil {
		m.deco.Start()
	}

	m.loop.Cancel()
	m.loop = c.Loop().Every(m.cfg.Tick(), func() {
		if !c.Playing() || !c.Surface().Visible(ui.ElementCat) {
			return
		}
		m.sim.Step(&m.state)
	})
}

func (m *Mode) Update(c *session.Controller) {}

// Catch scores any tap on the capture control.
func (m *Mode) Catch(c *session.Controller, tap session.Tap) {
	if tap.OnCapture {
		c.RegisterCatch()
	}
}

// End hides the cat and stops the movement loop. The decoration keeps
// running until Close. Nothing here is asynchronous, so done runs straight
// away.
func (m *Mode) End(c *session.Controller, done func()) {
	c.Surface().Hide(ui.ElementCat)
	m.loop.Cancel()
	done()
}

// Close stops the loop and decoration without touching the UI.
func (m *Mode) Close() {
	m.loop.Cancel()
	if m.deco != nil {
		m.deco.Stop()
	}
}

// LoopActive reports whether the movement loop is registered.
func (m *Mode) LoopActive() bool { return m.loop.Active() }
