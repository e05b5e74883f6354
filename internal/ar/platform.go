// Package ar implements the device-tracked variant of the game: cats are
// placed in world space around the player and caught by tapping them
// through the camera view.
package ar

import (
	"context"
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrUnsupported is returned when the device cannot run immersive AR.
	ErrUnsupported = errors.New("immersive AR is not supported on this device")
	// ErrSessionEnded is returned by requests on a session that has ended.
	ErrSessionEnded = errors.New("AR session has ended")
)

// Feature is an optional capability of an AR session.
type Feature string

const (
	FeatureHitTest    Feature = "hit-test"
	FeatureDOMOverlay Feature = "dom-overlay"
)

// SessionInit lists the features a session needs or would like.
type SessionInit struct {
	Required []Feature
	Optional []Feature
}

// SpaceType names a reference space.
type SpaceType string

const (
	SpaceLocal  SpaceType = "local"
	SpaceViewer SpaceType = "viewer"
)

// Platform is the device AR runtime. Supported and RequestSession may block
// and are called off the game loop.
type Platform interface {
	Supported(ctx context.Context) (bool, error)
	RequestSession(ctx context.Context, init SessionInit) (Session, error)
}

// Session is a running AR session. Request methods may block and are
// called off the game loop. OnEnd and animation loop callbacks must be
// delivered on the game loop.
type Session interface {
	RequestReferenceSpace(ctx context.Context, t SpaceType) (ReferenceSpace, error)
	RequestHitTestSource(ctx context.Context, space ReferenceSpace) (HitTestSource, error)
	OnEnd(fn func())
	// SetAnimationLoop registers the per-frame callback. nil removes it.
	SetAnimationLoop(fn func(Frame))
	End()
}

// ReferenceSpace is a coordinate system poses are expressed in.
type ReferenceSpace interface {
	Type() SpaceType
}

// HitTestSource casts a ray from the viewer against detected surfaces.
type HitTestSource interface {
	Cancel()
}

// Frame is one tracked display frame.
type Frame interface {
	// ViewerPose returns the camera-to-world transform, or false when
	// tracking is unavailable this frame.
	ViewerPose(space ReferenceSpace) (mgl64.Mat4, bool)
	// HitTestResults returns surface hit poses, nearest first.
	HitTestResults(src HitTestSource, space ReferenceSpace) []mgl64.Mat4
}
