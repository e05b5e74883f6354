// Package audio plays the procedural catch chirp through Ebitengine's audio
// context.
package audio

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog/log"
)

const (
	SampleRate    = 44100
	chirpSeconds  = 0.12
	bytesPerFrame = 8 // Stereo float32
)

// Chirp plays a short rising meow-like chirp on every catch.
type Chirp struct {
	ctx     *audio.Context
	samples []byte
	volume  float64
}

// NewChirp prepares the chirp, reusing the process-wide audio context when
// one exists.
func NewChirp(volume float64) *Chirp {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(SampleRate)
	}
	return &Chirp{ctx: ctx, samples: ChirpSamples(), volume: volume}
}

// Play starts a fresh chirp. Overlapping chirps mix.
func (c *Chirp) Play() {
	if c == nil || c.ctx == nil {
		return
	}
	p := c.ctx.NewPlayerF32FromBytes(c.samples)
	p.SetVolume(c.volume)
	p.Play()
	log.Trace().Msg("chirp")
}

// ChirpSamples renders the chirp as interleaved stereo float32 LE.
func ChirpSamples() []byte {
	n := int(chirpSeconds * SampleRate)
	buf := make([]byte, n*bytesPerFrame)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		env := envelope(p, 0.05, 0.35)
		// Rise then fall, like a short meow.
		freq := 700 + 900*math.Sin(math.Pi*p)
		phase += 2 * math.Pi * freq / SampleRate
		s := math.Sin(phase) + 0.25*math.Sin(2*phase)
		putStereoF32(buf, i, softSat(s*env*0.5))
	}
	return buf
}

// envelope ramps up over attack and down over release, both fractions of
// the total length.
func envelope(p, attack, release float64) float64 {
	switch {
	case p < attack:
		return p / attack
	case p > 1-release:
		return (1 - p) / release
	default:
		return 1
	}
}

func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < 2; ch++ {
		o := i*bytesPerFrame + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

func softSat(x float64) float64 {
	if x > 1 {
		return 1 - 0.5/x
	}
	if x < -1 {
		return -1 + 0.5/(-x)
	}
	return x - x*x*x/3
}
