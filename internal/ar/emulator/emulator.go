// Package emulator is a desktop stand-in for a device AR runtime. The
// viewer stands at eye height at the origin and looks around with the
// arrow keys; hit tests land on the floor plane.
package emulator

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/arcats/internal/ar"
	"chosenoffset.com/arcats/internal/render"
	"chosenoffset.com/arcats/internal/sched"
)

const (
	DefaultEyeHeight = 1.6
	DefaultTurnRate  = 0.03 // Radians per frame while a key is held
	maxPitch         = 1.4
)

// Platform emulates an AR runtime on the game loop.
type Platform struct {
	loop  *sched.Scheduler
	input render.InputManager

	// Unsupported makes Supported report false.
	Unsupported bool
	// SessionErr fails every session request.
	SessionErr error

	FrameInterval time.Duration
	EyeHeight     float64
	TurnRate      float64

	yaw, pitch   float64
	trackingLost atomic.Bool
}

// New creates an emulator. input may be nil for a fixed view.
func New(loop *sched.Scheduler, input render.InputManager) *Platform {
	return &Platform{
		loop:          loop,
		input:         input,
		FrameInterval: 16 * time.Millisecond,
		EyeHeight:     DefaultEyeHeight,
		TurnRate:      DefaultTurnRate,
	}
}

// SetTrackingLost makes frames report no viewer pose.
func (p *Platform) SetTrackingLost(lost bool) { p.trackingLost.Store(lost) }

// Look sets the view direction directly.
func (p *Platform) Look(yaw, pitch float64) {
	p.yaw = yaw
	p.pitch = clamp(pitch, -maxPitch, maxPitch)
}

func (p *Platform) Supported(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return !p.Unsupported, nil
}

func (p *Platform) RequestSession(ctx context.Context, init ar.SessionInit) (ar.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Unsupported {
		return nil, ar.ErrUnsupported
	}
	if p.SessionErr != nil {
		return nil, p.SessionErr
	}
	for _, f := range init.Required {
		if f != ar.FeatureHitTest {
			return nil, fmt.Errorf("required feature %q not available", f)
		}
	}
	return &session{platform: p}, nil
}

// pose returns the camera-to-world transform for the current view.
func (p *Platform) pose() mgl64.Mat4 {
	return mgl64.Translate3D(0, p.EyeHeight, 0).
		Mul4(mgl64.HomogRotate3DY(p.yaw)).
		Mul4(mgl64.HomogRotate3DX(p.pitch))
}

func (p *Platform) steer() {
	if p.input == nil {
		return
	}
	if p.input.IsKeyPressed(render.KeyLeft) {
		p.yaw += p.TurnRate
	}
	if p.input.IsKeyPressed(render.KeyRight) {
		p.yaw -= p.TurnRate
	}
	if p.input.IsKeyPressed(render.KeyUp) {
		p.pitch = clamp(p.pitch+p.TurnRate, -maxPitch, maxPitch)
	}
	if p.input.IsKeyPressed(render.KeyDown) {
		p.pitch = clamp(p.pitch-p.TurnRate, -maxPitch, maxPitch)
	}
}

type session struct {
	platform *Platform
	ended    atomic.Bool
	onEnd    []func()
	frames   sched.Handle
}

type space struct{ t ar.SpaceType }

func (s space) Type() ar.SpaceType { return s.t }

type hitSource struct{ cancelled bool }

func (h *hitSource) Cancel() { h.cancelled = true }

func (s *session) RequestReferenceSpace(ctx context.Context, t ar.SpaceType) (ar.ReferenceSpace, error) {
	if s.ended.Load() {
		return nil, ar.ErrSessionEnded
	}
	return space{t: t}, ctx.Err()
}

func (s *session) RequestHitTestSource(ctx context.Context, sp ar.ReferenceSpace) (ar.HitTestSource, error) {
	if s.ended.Load() {
		return nil, ar.ErrSessionEnded
	}
	if sp.Type() != ar.SpaceViewer {
		return nil, fmt.Errorf("hit-test source needs a viewer space, got %s", sp.Type())
	}
	return &hitSource{}, ctx.Err()
}

func (s *session) OnEnd(fn func()) {
	s.onEnd = append(s.onEnd, fn)
}

func (s *session) SetAnimationLoop(fn func(ar.Frame)) {
	s.frames.Cancel()
	if fn == nil || s.ended.Load() {
		return
	}
	p := s.platform
	s.frames = p.loop.Every(p.FrameInterval, func() {
		p.steer()
		fn(&frame{pose: p.pose(), tracked: !p.trackingLost.Load()})
	})
}

func (s *session) End() {
	if s.ended.Swap(true) {
		return
	}
	s.frames.Cancel()
	handlers := s.onEnd
	s.platform.loop.Post(func() {
		for _, fn := range handlers {
			fn()
		}
	})
}

type frame struct {
	pose    mgl64.Mat4
	tracked bool
}

func (f *frame) ViewerPose(ar.ReferenceSpace) (mgl64.Mat4, bool) {
	return f.pose, f.tracked
}

// HitTestResults casts the viewer's forward ray onto the floor.
func (f *frame) HitTestResults(src ar.HitTestSource, _ ar.ReferenceSpace) []mgl64.Mat4 {
	if h, ok := src.(*hitSource); !ok || h.cancelled || !f.tracked {
		return nil
	}
	origin := f.pose.Col(3).Vec3()
	dir := f.pose.Mul4x1(mgl64.Vec4{0, 0, -1, 0}).Vec3()
	if dir.Y() > -1e-6 {
		return nil
	}
	t := -origin.Y() / dir.Y()
	hit := origin.Add(dir.Mul(t))
	return []mgl64.Mat4{mgl64.Translate3D(hit.X(), 0, hit.Z())}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
