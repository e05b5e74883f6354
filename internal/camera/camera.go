// Package camera is the media-capture collaborator: it requests a video
// stream, binds it to a feed and stops its tracks when the player leaves.
package camera

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var (
	// ErrPermissionDenied is returned when the user refuses camera access.
	ErrPermissionDenied = errors.New("camera permission denied")
	// ErrNoDevice is returned when no camera matches the constraints.
	ErrNoDevice = errors.New("no camera device")
)

// Facing modes.
const (
	FacingUser        = "user"
	FacingEnvironment = "environment"
)

// Constraints describe the requested stream.
type Constraints struct {
	Video      bool
	Audio      bool
	FacingMode string
}

// RearVideo is the request used by the game: video only, rear camera.
var RearVideo = Constraints{Video: true, FacingMode: FacingEnvironment}

// Track is a single media track.
type Track interface {
	Kind() string
	Live() bool
	Stop()
}

// Stream is a set of tracks granted by the platform.
type Stream interface {
	Tracks() []Track
}

// Source grants streams.
type Source interface {
	Request(ctx context.Context, c Constraints) (Stream, error)
}

// Feed is the video element the stream is bound to.
type Feed struct {
	stream  Stream
	playing bool
}

// Bind attaches a stream to the feed, replacing any previous one.
func (f *Feed) Bind(s Stream) {
	if f.stream != nil && f.stream != s {
		f.Stop()
	}
	f.stream = s
	f.playing = false
}

// Play starts playback of the bound stream.
func (f *Feed) Play() error {
	if f.stream == nil {
		return fmt.Errorf("play: %w", ErrNoDevice)
	}
	for _, t := range f.stream.Tracks() {
		if t.Kind() == "video" && t.Live() {
			f.playing = true
			return nil
		}
	}
	return fmt.Errorf("play: no live video track: %w", ErrNoDevice)
}

// Playing reports whether a live stream is shown.
func (f *Feed) Playing() bool {
	return f.playing
}

// Stop stops every track of the bound stream and unbinds it.
func (f *Feed) Stop() {
	if f.stream == nil {
		return
	}
	for _, t := range f.stream.Tracks() {
		t.Stop()
	}
	log.Debug().Int("tracks", len(f.stream.Tracks())).Msg("camera tracks stopped")
	f.stream = nil
	f.playing = false
}

// Open requests a stream from src, binds it to f and starts playback.
func Open(ctx context.Context, src Source, f *Feed) error {
	stream, err := src.Request(ctx, RearVideo)
	if err != nil {
		return fmt.Errorf("request camera: %w", err)
	}
	f.Bind(stream)
	if err := f.Play(); err != nil {
		f.Stop()
		return err
	}
	return nil
}
