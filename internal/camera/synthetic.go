package camera

import (
	"context"
	"image/color"
	"math"
)

// Synthetic is a desktop stand-in for a device camera. It grants a single
// video track, or refuses with Deny.
type Synthetic struct {
	Deny error // Returned from Request when set

	issued []*SyntheticTrack
}

// Request implements Source.
func (s *Synthetic) Request(ctx context.Context, c Constraints) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Deny != nil {
		return nil, s.Deny
	}
	if !c.Video {
		return nil, ErrNoDevice
	}
	t := &SyntheticTrack{kind: "video", live: true, facing: c.FacingMode}
	s.issued = append(s.issued, t)
	return &syntheticStream{tracks: []Track{t}}, nil
}

// LiveTracks counts issued tracks that have not been stopped.
func (s *Synthetic) LiveTracks() int {
	n := 0
	for _, t := range s.issued {
		if t.live {
			n++
		}
	}
	return n
}

type syntheticStream struct {
	tracks []Track
}

func (s *syntheticStream) Tracks() []Track { return s.tracks }

// SyntheticTrack is a track issued by Synthetic.
type SyntheticTrack struct {
	kind   string
	facing string
	live   bool
}

func (t *SyntheticTrack) Kind() string { return t.kind }
func (t *SyntheticTrack) Live() bool   { return t.live }
func (t *SyntheticTrack) Stop()        { t.live = false }

// Facing returns the facing mode the track was requested with.
func (t *SyntheticTrack) Facing() string { return t.facing }

// Backdrop returns the colour of the synthetic scene at normalised screen
// position (u, v) and time seconds. It draws a slowly drifting room: warm
// wall, darker floor and a moving light patch.
func Backdrop(u, v, seconds float64) color.RGBA {
	horizon := 0.62 + 0.02*math.Sin(seconds*0.7)
	var r, g, b float64
	if v < horizon {
		r, g, b = 180, 170, 150
	} else {
		r, g, b = 110, 95, 80
	}
	dx := u - (0.5 + 0.3*math.Sin(seconds*0.3))
	dy := v - 0.35
	glow := math.Exp(-(dx*dx + dy*dy) * 12)
	r += 60 * glow
	g += 55 * glow
	b += 40 * glow
	shade := 0.85 + 0.15*(1-v)
	return color.RGBA{clampByte(r * shade), clampByte(g * shade), clampByte(b * shade), 255}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
