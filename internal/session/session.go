// Package session runs one game of cat catching: the countdown, the score
// and the screen transitions between pre-game, in-game and result. How cats
// are placed and caught is delegated to a Mode.
package session

import (
	"github.com/rs/zerolog/log"

	"chosenoffset.com/arcats/internal/config"
	"chosenoffset.com/arcats/internal/sched"
	"chosenoffset.com/arcats/internal/ui"
)

// Tap is a click or touch in screen pixels.
type Tap struct {
	X, Y          float64
	Width, Height float64 // Size of the surface the tap landed on
	OnCapture     bool    // True when the tap hit the capture control
}

// Mode places cats and decides which taps catch them.
type Mode interface {
	Name() string
	// Start begins placing cats. Called once per game, after the countdown
	// state has been reset.
	Start(c *Controller)
	// Update runs once per game loop tick, playing or not.
	Update(c *Controller)
	// Catch handles a tap while playing. Successful catches call
	// c.RegisterCatch.
	Catch(c *Controller, tap Tap)
	// End stops placing cats and calls done once teardown is confirmed.
	End(c *Controller, done func())
}

// Resetter is implemented by modes that need work before a replay.
type Resetter interface {
	Reset(c *Controller)
}

// Closer is implemented by modes holding platform resources.
type Closer interface {
	Close()
}

// Media is an acquired capture stream that must be released on exit.
type Media interface {
	Stop()
}

// State is a snapshot of the running game.
type State struct {
	Score    int
	TimeLeft int
	Playing  bool
}

// Controller owns the countdown and score for one mode.
type Controller struct {
	cfg     config.SessionConfig
	mode    Mode
	surface *ui.Surface
	loop    *sched.Scheduler

	state State
	timer sched.Handle
	pulse sched.Handle
	media []Media

	// Hooks
	OnCatch func(score int)
	OnEnd   func(score int)
	OnExit  func()
}

// New creates a controller in the pre-game state.
func New(cfg config.SessionConfig, mode Mode, surface *ui.Surface, loop *sched.Scheduler) *Controller {
	return &Controller{
		cfg:     cfg,
		mode:    mode,
		surface: surface,
		loop:    loop,
		state:   State{TimeLeft: cfg.DurationSeconds},
	}
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode { return c.mode }

// Surface returns the UI state the controller drives.
func (c *Controller) Surface() *ui.Surface { return c.surface }

// Loop returns the scheduler all callbacks run on.
func (c *Controller) Loop() *sched.Scheduler { return c.loop }

// State returns a copy of the current game state.
func (c *Controller) State() State { return c.state }

// Playing reports whether a game is in progress.
func (c *Controller) Playing() bool { return c.state.Playing }

// TimerActive reports whether the countdown is still registered.
func (c *Controller) TimerActive() bool { return c.timer.Active() }

// AttachMedia registers a stream to be stopped on Exit.
func (c *Controller) AttachMedia(m Media) {
	c.media = append(c.media, m)
}

// Start begins a game. It does nothing while a game is already running.
func (c *Controller) Start() {
	if c.state.Playing {
		return
	}
	c.state = State{TimeLeft: c.cfg.DurationSeconds, Playing: true}

	c.surface.SetNumber(ui.DisplayScore, 0)
	c.surface.SetNumber(ui.DisplayTimer, c.state.TimeLeft)
	c.surface.Hide(ui.PanelPreGame)
	c.surface.Show(ui.PanelHUD)

	c.mode.Start(c)
	c.timer = c.loop.Every(c.cfg.Tick(), c.tick)

	log.Debug().Str("mode", c.mode.Name()).Int("seconds", c.state.TimeLeft).Msg("game started")
}

func (c *Controller) tick() {
	if !c.state.Playing {
		return
	}
	c.state.TimeLeft--
	c.surface.SetNumber(ui.DisplayTimer, c.state.TimeLeft)
	if c.state.TimeLeft <= 0 {
		c.End()
	}
}

// Update runs the mode's per-frame work.
func (c *Controller) Update() {
	c.mode.Update(c)
}

// Tap hands a tap to the mode while playing.
func (c *Controller) Tap(t Tap) {
	if !c.state.Playing {
		return
	}
	c.mode.Catch(c, t)
}

// RegisterCatch scores one cat. Catches outside a game are ignored.
func (c *Controller) RegisterCatch() {
	if !c.state.Playing {
		return
	}
	c.state.Score++
	c.surface.SetNumber(ui.DisplayScore, c.state.Score)

	c.pulse.Cancel()
	c.surface.SetPulse(c.cfg.PulseScale)
	c.pulse = c.loop.After(c.cfg.Pulse(), func() {
		c.surface.SetPulse(1)
	})

	if c.OnCatch != nil {
		c.OnCatch(c.state.Score)
	}
}

// End finishes the game and publishes the final score. The result screen
// appears once the mode confirms its teardown.
func (c *Controller) End() {
	if !c.state.Playing {
		return
	}
	c.state.Playing = false
	c.timer.Cancel()
	c.surface.SetNumber(ui.DisplayFinalScore, c.state.Score)

	log.Debug().Str("mode", c.mode.Name()).Int("score", c.state.Score).Msg("game ended")

	score := c.state.Score
	c.mode.End(c, func() {
		c.surface.Hide(ui.PanelGame, ui.ElementAROverlay)
		c.surface.Show(ui.PanelResult)
		if c.OnEnd != nil {
			c.OnEnd(score)
		}
	})
}

// Reset returns from the result screen to the pre-game UI.
func (c *Controller) Reset() {
	c.surface.Hide(ui.PanelResult, ui.PanelHUD)
	c.surface.Show(ui.PanelGame, ui.PanelPreGame)
	c.state = State{TimeLeft: c.cfg.DurationSeconds}

	if r, ok := c.mode.(Resetter); ok {
		r.Reset(c)
	}
}

// Exit abandons everything and returns to the landing screen.
func (c *Controller) Exit() {
	c.state.Playing = false
	c.timer.Cancel()
	c.pulse.Cancel()
	c.surface.SetPulse(1)

	for _, m := range c.media {
		m.Stop()
	}
	c.media = nil

	if cl, ok := c.mode.(Closer); ok {
		cl.Close()
	}

	c.surface.Hide(ui.PanelGame, ui.PanelResult, ui.PanelHUD, ui.ElementCat, ui.ElementAROverlay)
	c.surface.Show(ui.PanelLanding, ui.PanelPreGame)

	log.Debug().Str("mode", c.mode.Name()).Msg("exited to landing")
	if c.OnExit != nil {
		c.OnExit()
	}
}
