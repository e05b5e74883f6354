package ar

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"chosenoffset.com/arcats/internal/sched"
)

// State is the lifecycle of one AR session.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateActive
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SceneRenderer draws the scene for a frame that has a viewer pose.
type SceneRenderer interface {
	RenderScene(s *Scene)
}

// Controller drives one platform session through its lifecycle. A
// controller that has ended stays ended; replay needs a new one.
type Controller struct {
	platform Platform
	loop     *sched.Scheduler
	scene    *Scene

	// Renderer is optional.
	Renderer SceneRenderer
	// OnEnd runs on the loop once the platform confirms the session ended.
	OnEnd func()

	ctx    context.Context
	cancel context.CancelFunc

	state        State
	session      Session
	local        ReferenceSpace
	hitSource    HitTestSource
	hitRequested bool

	rendered int
	dropped  int
}

// NewController creates an idle controller drawing into scene.
func NewController(p Platform, loop *sched.Scheduler, scene *Scene) *Controller {
	return &Controller{platform: p, loop: loop, scene: scene}
}

func (c *Controller) State() State  { return c.state }
func (c *Controller) Scene() *Scene { return c.scene }

// Rendered returns the number of frames handed to the renderer.
func (c *Controller) Rendered() int { return c.rendered }

// Dropped returns the number of frames skipped for lack of a pose.
func (c *Controller) Dropped() int { return c.dropped }

// HitTestReady reports whether the hit-test source has resolved.
func (c *Controller) HitTestReady() bool { return c.hitSource != nil }

// Begin requests a session, a local reference space and the frame loop.
// ready runs on the loop with nil once the session is active, or with the
// error that ended it.
func (c *Controller) Begin(ctx context.Context, ready func(error)) {
	if c.state != StateIdle {
		ready(fmt.Errorf("begin in state %s: %w", c.state, ErrSessionEnded))
		return
	}
	c.setState(StateRequesting)
	c.ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		session, local, err := c.establish(c.ctx)
		c.loop.Post(func() { c.established(session, local, err, ready) })
	}()
}

func (c *Controller) establish(ctx context.Context) (Session, ReferenceSpace, error) {
	session, err := c.platform.RequestSession(ctx, SessionInit{
		Required: []Feature{FeatureHitTest},
		Optional: []Feature{FeatureDOMOverlay},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start AR session: %w", err)
	}
	local, err := session.RequestReferenceSpace(ctx, SpaceLocal)
	if err != nil {
		session.End()
		return nil, nil, fmt.Errorf("failed to get local reference space: %w", err)
	}
	return session, local, nil
}

func (c *Controller) established(session Session, local ReferenceSpace, err error, ready func(error)) {
	if c.state != StateRequesting {
		// Ended locally while the request was in flight; nobody waits on ready.
		if session != nil {
			session.End()
		}
		log.Debug().AnErr("request", err).Msg("AR request abandoned")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("AR session failed")
		c.cancel()
		c.setState(StateEnded)
		ready(err)
		return
	}

	c.session = session
	c.local = local
	session.OnEnd(c.handleEnd)
	session.SetAnimationLoop(c.onFrame)
	c.setState(StateActive)
	ready(nil)
}

func (c *Controller) onFrame(f Frame) {
	if c.state != StateActive {
		return
	}
	pose, ok := f.ViewerPose(c.local)

	if !c.hitRequested {
		c.hitRequested = true
		c.requestHitTest(c.session)
	}

	if c.hitSource != nil && ok {
		if hits := f.HitTestResults(c.hitSource, c.local); len(hits) > 0 {
			c.scene.Reticle.Visible = true
			c.scene.Reticle.Pose = hits[0]
		} else {
			c.scene.Reticle.Visible = false
		}
	}

	if !ok {
		c.dropped++
		return
	}
	c.scene.Camera.Pose = pose
	c.rendered++
	if c.Renderer != nil {
		c.Renderer.RenderScene(c.scene)
	}
}

func (c *Controller) requestHitTest(session Session) {
	ctx := c.ctx
	go func() {
		viewer, err := session.RequestReferenceSpace(ctx, SpaceViewer)
		if err != nil {
			log.Warn().Err(err).Msg("viewer reference space unavailable")
			return
		}
		src, err := session.RequestHitTestSource(ctx, viewer)
		if err != nil {
			log.Warn().Err(err).Msg("hit-test source unavailable")
			return
		}
		c.loop.Post(func() {
			if c.session != session {
				src.Cancel()
				return
			}
			c.hitSource = src
		})
	}()
}

// End asks the platform to end the session. OnEnd follows once it has.
// Ending a controller that is still requesting abandons the request and
// its ready callback never runs.
func (c *Controller) End() {
	switch c.state {
	case StateRequesting:
		c.cancel()
		c.setState(StateEnded)
	case StateActive:
		c.session.End()
	}
}

func (c *Controller) handleEnd() {
	if c.state == StateEnded {
		return
	}
	c.session.SetAnimationLoop(nil)
	if c.hitSource != nil {
		c.hitSource.Cancel()
	}
	c.session = nil
	c.hitSource = nil
	c.hitRequested = false
	c.scene.Reticle.Visible = false
	c.cancel()
	c.setState(StateEnded)

	if c.OnEnd != nil {
		c.OnEnd()
	}
}

func (c *Controller) setState(s State) {
	log.Debug().Stringer("from", c.state).Stringer("to", s).Msg("AR state")
	c.state = s
}
