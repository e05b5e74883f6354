// Package screenspace implements the camera-overlay variant of the game: a
// single cat wanders the screen in percent coordinates and now and then
// runs off an edge to hide.
package screenspace

import (
	"math"
	"math/rand/v2"
	"time"

	"chosenoffset.com/arcats/internal/config"
)

// Movement is the state of the on-screen cat. Coordinates are percent of
// the screen and range over [EdgeMin, EdgeMax].
type Movement struct {
	TargetX, TargetY   float64
	CurrentX, CurrentY float64
	Hiding             bool
	HideTimer          int // Ticks left before reappearing
	Speed              float64
}

// Simulator advances Movement one tick at a time.
type Simulator struct {
	cfg config.MovementConfig
	rng *rand.Rand
}

// NewSimulator creates a simulator. A nil rng uses a randomly seeded one.
func NewSimulator(cfg config.MovementConfig, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Simulator{cfg: cfg, rng: rng}
}

// Reset puts the cat back at the start position with a fresh target.
func (s *Simulator) Reset(m *Movement) {
	*m = Movement{
		CurrentX: s.cfg.StartX,
		CurrentY: s.cfg.StartY,
		Speed:    s.cfg.MoveSpeed,
	}
	s.retarget(m)
}

// Step advances one tick. The hide roll happens every tick, so how often
// the cat hides per second depends on the tick rate.
func (s *Simulator) Step(m *Movement) {
	if !m.Hiding && s.rng.Float64() < s.cfg.HideChance {
		s.startHiding(m)
	}

	if m.Hiding {
		s.approach(m)
		m.HideTimer--
		if m.HideTimer <= 0 {
			s.stopHiding(m)
		}
		return
	}

	dx := m.TargetX - m.CurrentX
	dy := m.TargetY - m.CurrentY
	if math.Hypot(dx, dy) < s.cfg.RetargetDistance {
		s.retarget(m)
		return
	}
	s.approach(m)
}

func (s *Simulator) approach(m *Movement) {
	m.CurrentX += (m.TargetX - m.CurrentX) * m.Speed
	m.CurrentY += (m.TargetY - m.CurrentY) * m.Speed
}

func (s *Simulator) retarget(m *Movement) {
	m.TargetX = s.inBounds()
	m.TargetY = s.inBounds()
}

func (s *Simulator) inBounds() float64 {
	return s.cfg.BoundsMin + s.rng.Float64()*(s.cfg.BoundsMax-s.cfg.BoundsMin)
}

func (s *Simulator) startHiding(m *Movement) {
	m.Hiding = true
	m.HideTimer = s.cfg.HideTicks
	m.Speed = s.cfg.HideSpeed

	along := s.rng.Float64() * 100
	switch s.rng.IntN(4) {
	case 0: // top
		m.TargetX, m.TargetY = along, s.cfg.EdgeMin
	case 1: // right
		m.TargetX, m.TargetY = s.cfg.EdgeMax, along
	case 2: // bottom
		m.TargetX, m.TargetY = along, s.cfg.EdgeMax
	default: // left
		m.TargetX, m.TargetY = s.cfg.EdgeMin, along
	}
}

func (s *Simulator) stopHiding(m *Movement) {
	m.Hiding = false
	m.Speed = s.cfg.MoveSpeed
	m.CurrentX = s.inBounds()
	m.CurrentY = s.inBounds()
	s.retarget(m)
}

// HideChanceForInterval returns the probability that the per-tick hide
// roll fires at least once during d.
func HideChanceForInterval(cfg config.MovementConfig, d time.Duration) float64 {
	ticks := float64(d) / float64(cfg.Tick())
	return 1 - math.Pow(1-cfg.HideChance, ticks)
}
