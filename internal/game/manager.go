package game

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"chosenoffset.com/arcats/internal/ar"
	"chosenoffset.com/arcats/internal/audio"
	"chosenoffset.com/arcats/internal/camera"
	"chosenoffset.com/arcats/internal/config"
	"chosenoffset.com/arcats/internal/model"
	"chosenoffset.com/arcats/internal/placeholders"
	"chosenoffset.com/arcats/internal/render"
	"chosenoffset.com/arcats/internal/sched"
	"chosenoffset.com/arcats/internal/screenspace"
	"chosenoffset.com/arcats/internal/session"
	"chosenoffset.com/arcats/internal/ui"
)

// Manager is the app shell: it owns the loop, routes input by the visible
// screen and draws whatever the surface says.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int

	cfg      *config.Config
	renderer render.Renderer
	input    render.InputManager
	loop     *sched.Scheduler
	surface  *ui.Surface
	layout   ui.Layout
	session  *session.Controller
	ctx      context.Context

	// Mode collaborators; exactly one of screen and arMode is set.
	screen  *screenspace.Mode
	arMode  *ar.Mode
	viewer  *model.Viewer
	camSrc  camera.Source
	feed    *camera.Feed
	chirp   *audio.Chirp
	arSeen  arView
	opening bool

	tps      int
	ticks    int64
	lastStep time.Duration

	sprite   render.Image
	backdrop render.Image
	pix      []byte
}

// NewManager wires a game for the configured mode.
func NewManager(opts Options) *Manager {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	loop := opts.Loop
	if loop == nil {
		loop = sched.New()
	}
	tps := opts.TPS
	if tps <= 0 {
		tps = 60
	}

	m := &Manager{
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
		cfg:          cfg,
		renderer:     opts.Renderer,
		input:        opts.Input,
		loop:         loop,
		surface:      ui.NewSurface(),
		ctx:          context.Background(),
		camSrc:       opts.Camera,
		chirp:        opts.Chirp,
		tps:          tps,
	}
	m.layout = ui.NewLayout(m.ScreenWidth, m.ScreenHeight, cfg.Viewer.Size)

	var mode session.Mode
	switch cfg.Mode {
	case config.ModeAR:
		m.arMode = ar.NewMode(cfg, opts.AR, loop, opts.Rand)
		m.arMode.Renderer = m
		m.surface.Hide(ui.ElementCapture)
		mode = m.arMode
	default:
		m.viewer = model.NewViewer(cfg.Viewer, cfg.AssetsDir, loop)
		m.screen = screenspace.NewMode(cfg.Movement, m.viewer, opts.Rand)
		mode = m.screen
	}

	m.session = session.New(cfg.Session, mode, m.surface, loop)
	m.session.OnCatch = func(score int) { m.chirp.Play() }
	m.session.OnEnd = func(score int) {
		log.Info().Str("mode", mode.Name()).Int("score", score).Msg("round over")
	}
	m.session.OnExit = func() {
		m.feed = nil
		m.arSeen = arView{}
	}

	if opts.Loader != nil {
		path := filepath.Join(cfg.AssetsDir, placeholders.SpriteFile)
		img, err := opts.Loader.LoadImage(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("cat sprite unavailable, drawing circles")
		} else {
			m.sprite = img
		}
	}

	log.Debug().Str("mode", mode.Name()).Int("tps", tps).Msg("game manager ready")
	return m
}

// Surface returns the UI state.
func (m *Manager) Surface() *ui.Surface { return m.surface }

// Session returns the game session controller.
func (m *Manager) Session() *session.Controller { return m.session }

// Loop returns the scheduler driven by Update.
func (m *Manager) Loop() *sched.Scheduler { return m.loop }

// UILayout returns the current button placement.
func (m *Manager) UILayout() ui.Layout { return m.layout }

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		m.layout = ui.NewLayout(outsideWidth, outsideHeight, m.cfg.Viewer.Size)
	}
	return outsideWidth, outsideHeight
}

// enter leaves the landing screen the way the mode requires.
func (m *Manager) enter() {
	if m.arMode != nil {
		m.arMode.Enter(m.ctx, m.session)
		return
	}
	m.openCamera()
}

// openCamera requests the rear camera off the loop, then shows the game
// screen once the feed plays.
func (m *Manager) openCamera() {
	if m.opening {
		return
	}
	if m.camSrc == nil {
		m.surface.Alert("Camera access is required")
		return
	}
	m.opening = true

	ctx, src := m.ctx, m.camSrc
	go func() {
		feed := &camera.Feed{}
		err := camera.Open(ctx, src, feed)
		m.loop.Post(func() { m.cameraOpened(feed, err) })
	}()
}

func (m *Manager) cameraOpened(feed *camera.Feed, err error) {
	m.opening = false
	if err != nil {
		log.Error().Err(err).Str("mode", config.ModeScreen).Msg("camera unavailable")
		m.surface.Alert("Camera access is required")
		return
	}
	m.feed = feed
	m.session.AttachMedia(feed)
	m.surface.Hide(ui.PanelLanding)
	m.surface.Show(ui.PanelGame)
	m.viewer.Start()
}

// RenderScene snapshots the AR scene for the next Draw. It runs once per
// posed AR frame.
func (m *Manager) RenderScene(s *ar.Scene) {
	w, h := float64(m.ScreenWidth), float64(m.ScreenHeight)
	view := arView{sprites: s.Project(w, h)}
	if s.Reticle.Visible {
		pos := s.Reticle.Pose.Col(3).Vec3()
		if x, y, dist, ok := s.Camera.Project(pos, w, h); ok {
			view.reticle = true
			view.reticleX, view.reticleY = x, y
			view.reticleRad = 0.1 * s.Camera.PixelsPerMetre(dist, h)
		}
	}
	m.arSeen = view
}
