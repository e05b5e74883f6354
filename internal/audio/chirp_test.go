package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestChirpSamplesShape(t *testing.T) {
	buf := ChirpSamples()
	frames := len(buf) / bytesPerFrame
	if want := int(chirpSeconds * SampleRate); frames != want {
		t.Fatalf("got=%d frames want=%d", frames, want)
	}

	sample := func(i, ch int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*bytesPerFrame+ch*4:]))
	}
	if sample(0, 0) != 0 {
		t.Errorf("Expected silent start, got %v", sample(0, 0))
	}
	peak := float32(0)
	for i := 0; i < frames; i++ {
		l, r := sample(i, 0), sample(i, 1)
		if l != r {
			t.Fatalf("Expected mono content on both channels at %d", i)
		}
		if l > 1 || l < -1 {
			t.Fatalf("Sample %d out of range: %v", i, l)
		}
		if l > peak {
			peak = l
		}
	}
	if peak < 0.2 {
		t.Errorf("Expected an audible chirp, peak %v", peak)
	}
}

func TestNilChirpPlayIsSafe(t *testing.T) {
	var c *Chirp
	c.Play()
}
