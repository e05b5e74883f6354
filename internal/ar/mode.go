package ar

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"chosenoffset.com/arcats/internal/config"
	"chosenoffset.com/arcats/internal/sched"
	"chosenoffset.com/arcats/internal/session"
	"chosenoffset.com/arcats/internal/ui"
)

// Mode is the AR game: cats spawn around the player and taps pick them.
type Mode struct {
	spawnCfg config.SpawnConfig
	platform Platform
	loop     *sched.Scheduler
	rng      *rand.Rand
	scene    *Scene
	ctrl     *Controller

	// Renderer is handed to every controller the mode begins.
	Renderer SceneRenderer

	ctx     context.Context
	game    *session.Controller
	spawn   sched.Handle
	pending func()
}

// NewMode creates the AR mode. A nil rng uses a randomly seeded one.
func NewMode(cfg *config.Config, p Platform, loop *sched.Scheduler, rng *rand.Rand) *Mode {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	scene := NewScene(cfg.Camera)
	return &Mode{
		spawnCfg: cfg.Spawn,
		platform: p,
		loop:     loop,
		rng:      rng,
		scene:    scene,
		ctrl:     NewController(p, loop, scene),
		ctx:      context.Background(),
	}
}

func (m *Mode) Name() string { return config.ModeAR }

// Scene returns the live scene.
func (m *Mode) Scene() *Scene { return m.scene }

// Controller returns the current session's controller.
func (m *Mode) Controller() *Controller { return m.ctrl }

// SpawnActive reports whether the spawn loop is registered.
func (m *Mode) SpawnActive() bool { return m.spawn.Active() }

// Enter checks for AR support and begins a session. On success the game
// screen and AR overlay replace the landing screen; on failure the user is
// alerted and stays where they are.
func (m *Mode) Enter(ctx context.Context, game *session.Controller) {
	m.ctx = ctx
	m.game = game

	go func() {
		ok, err := m.platform.Supported(ctx)
		m.loop.Post(func() {
			if err != nil || !ok {
				if err == nil {
					err = ErrUnsupported
				}
				log.Warn().Err(err).Msg("AR unavailable")
				game.Surface().Alert("AR is not supported on this device")
				return
			}
			m.begin(func(err error) {
				if err != nil {
					game.Surface().Alert(fmt.Sprintf("Failed to start AR session: %v", err))
					return
				}
				game.Surface().Hide(ui.PanelLanding)
				game.Surface().Show(ui.PanelGame, ui.ElementAROverlay)
			})
		})
	}()
}

// begin starts a session, replacing the controller if its session has
// ended. A session already requesting or active is left alone.
func (m *Mode) begin(ready func(error)) {
	switch m.ctrl.State() {
	case StateRequesting, StateActive:
		return
	case StateEnded:
		m.ctrl = NewController(m.platform, m.loop, m.scene)
	}
	m.ctrl.Renderer = m.Renderer
	m.ctrl.OnEnd = m.sessionEnded
	m.ctrl.Begin(m.ctx, ready)
}

// Start spawns the first wave and then one wave per interval while the
// game is playing.
func (m *Mode) Start(c *session.Controller) {
	m.game = c
	m.scene.Clear()
	m.scene.Reticle.Visible = false
	m.spawnWave()

	m.spawn.Cancel()
	m.spawn = c.Loop().Every(m.spawnCfg.Interval(), func() {
		if c.Playing() {
			m.spawnWave()
		}
	})
}

func (m *Mode) spawnWave() {
	n := m.scene.Spawn(m.spawnCfg, m.rng)
	log.Debug().Int("spawned", n).Int("live", m.scene.Count()).Msg("cats spawned")
}

func (m *Mode) Update(c *session.Controller) {}

// Catch casts the tap through the camera and removes the nearest cat hit.
func (m *Mode) Catch(c *session.Controller, tap session.Tap) {
	if tap.Width <= 0 || tap.Height <= 0 {
		return
	}
	x := tap.X/tap.Width*2 - 1
	y := -(tap.Y/tap.Height)*2 + 1

	origin, dir := m.scene.Camera.Ray(x, y, tap.Width/tap.Height)
	id, ok := m.scene.Pick(origin, dir)
	if !ok {
		return
	}
	m.scene.Remove(id)
	log.Debug().Stringer("cat", id).Msg("cat caught")
	c.RegisterCatch()
}

// End clears the scene and ends the platform session. done runs once the
// platform reports the session over.
func (m *Mode) End(c *session.Controller, done func()) {
	m.spawn.Cancel()
	m.scene.Clear()

	if m.ctrl.State() != StateActive {
		m.ctrl.End()
		done()
		return
	}
	m.pending = done
	m.ctrl.End()
}

func (m *Mode) sessionEnded() {
	if m.pending != nil {
		done := m.pending
		m.pending = nil
		done()
		return
	}
	// The platform ended the session on its own.
	if m.game == nil {
		return
	}
	if m.game.Playing() {
		m.game.End()
	} else if m.game.Surface().Visible(ui.PanelPreGame) {
		m.game.Exit()
	}
}

// Reset begins a fresh session for another round.
func (m *Mode) Reset(c *session.Controller) {
	m.begin(func(err error) {
		if err != nil {
			c.Surface().Alert(fmt.Sprintf("Failed to start AR session: %v", err))
			c.Exit()
			return
		}
		c.Surface().Show(ui.ElementAROverlay)
	})
}

// Close abandons the session without a result screen.
func (m *Mode) Close() {
	m.spawn.Cancel()
	m.scene.Clear()
	m.pending = nil
	m.ctrl.OnEnd = nil
	m.ctrl.End()
}
