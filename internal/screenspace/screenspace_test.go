package screenspace

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"chosenoffset.com/arcats/internal/config"
	"chosenoffset.com/arcats/internal/sched"
	"chosenoffset.com/arcats/internal/session"
	"chosenoffset.com/arcats/internal/ui"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestStepRetargetsWhenCloseToTarget(t *testing.T) {
	cfg := config.Default().Movement
	cfg.HideChance = 0
	sim := NewSimulator(cfg, testRand())

	m := Movement{CurrentX: 50, CurrentY: 50, TargetX: 50, TargetY: 50.5, Speed: cfg.MoveSpeed}
	sim.Step(&m)

	if m.CurrentX != 50 || m.CurrentY != 50 {
		t.Errorf("Expected no movement on the retarget tick, got (%v,%v)", m.CurrentX, m.CurrentY)
	}
	if m.TargetX < 10 || m.TargetX > 90 || m.TargetY < 10 || m.TargetY > 90 {
		t.Errorf("Expected new target within [10,90], got (%v,%v)", m.TargetX, m.TargetY)
	}
	if m.TargetX == 50 && m.TargetY == 50.5 {
		t.Error("Expected target to change")
	}
}

func TestStepMovesTowardTarget(t *testing.T) {
	cfg := config.Default().Movement
	cfg.HideChance = 0
	sim := NewSimulator(cfg, testRand())

	m := Movement{CurrentX: 10, CurrentY: 10, TargetX: 60, TargetY: 10, Speed: cfg.MoveSpeed}
	sim.Step(&m)

	if math.Abs(m.CurrentX-11) > 1e-9 || m.CurrentY != 10 {
		t.Errorf("Expected (11,10) after one step at 0.02, got (%v,%v)", m.CurrentX, m.CurrentY)
	}
}

func TestHideCycleLastsSixtyTicks(t *testing.T) {
	cfg := config.Default().Movement
	cfg.HideChance = 1
	sim := NewSimulator(cfg, testRand())

	var m Movement
	sim.Reset(&m)
	sim.Step(&m)
	if !m.Hiding || m.Speed != 0.05 {
		t.Fatalf("Expected hiding at speed 0.05, got %+v", m)
	}
	edge := m.TargetX == -10 || m.TargetX == 110 || m.TargetY == -10 || m.TargetY == 110
	if !edge {
		t.Errorf("Expected an off-screen edge target, got (%v,%v)", m.TargetX, m.TargetY)
	}

	for i := 2; i < 60; i++ {
		sim.Step(&m)
		if !m.Hiding {
			t.Fatalf("Stopped hiding early on tick %d", i)
		}
	}
	sim.Step(&m)
	if m.Hiding {
		t.Fatal("Expected hiding to end on tick 60")
	}
	if m.Speed != 0.02 {
		t.Errorf("Expected speed back to 0.02, got %v", m.Speed)
	}
	if m.CurrentX < 10 || m.CurrentX > 90 || m.CurrentY < 10 || m.CurrentY > 90 {
		t.Errorf("Expected reappearance within bounds, got (%v,%v)", m.CurrentX, m.CurrentY)
	}
}

// The hide roll is per tick: at the default 16ms cadence a cat that is
// not hiding almost certainly starts within a second.
func TestHideChanceIsPerTick(t *testing.T) {
	cfg := config.Default().Movement
	sim := NewSimulator(cfg, testRand())

	const trials = 10000
	hides := 0
	for i := 0; i < trials; i++ {
		m := Movement{CurrentX: 50, CurrentY: 50, TargetX: 80, TargetY: 80, Speed: cfg.MoveSpeed}
		sim.Step(&m)
		if m.Hiding {
			hides++
		}
	}
	if hides < 400 || hides > 600 {
		t.Errorf("Expected about 5%% of ticks to start hiding, got %d/%d", hides, trials)
	}

	if p := HideChanceForInterval(cfg, time.Second); p < 0.95 || p > 0.97 {
		t.Errorf("Expected ~0.96 chance per second at 16ms ticks, got %v", p)
	}
}

type fakeDeco struct {
	starts, stops int
}

func (d *fakeDeco) Start() { d.starts++ }
func (d *fakeDeco) Stop()  { d.stops++ }

func newGame(t *testing.T) (*session.Controller, *Mode, *fakeDeco, *sched.Scheduler) {
	t.Helper()
	cfg := config.Default()
	deco := &fakeDeco{}
	mode := NewMode(cfg.Movement, deco, testRand())
	loop := sched.New()
	surface := ui.NewSurface()
	surface.Hide(ui.PanelLanding)
	surface.Show(ui.PanelGame)
	return session.New(cfg.Session, mode, surface, loop), mode, deco, loop
}

func TestModeMovesCatWhilePlaying(t *testing.T) {
	c, mode, deco, loop := newGame(t)
	c.Start()

	if !c.Surface().Visible(ui.ElementCat) {
		t.Fatal("Expected cat element visible")
	}
	if deco.starts != 1 || !mode.LoopActive() {
		t.Fatal("Expected viewer and movement loop started")
	}

	before := mode.Movement()
	loop.Advance(160 * time.Millisecond)
	if mode.Movement() == before {
		t.Error("Expected the cat to move after 10 ticks")
	}
}

func TestModeLoopIdlesWhileCatHidden(t *testing.T) {
	c, mode, _, loop := newGame(t)
	c.Start()
	c.Surface().Hide(ui.ElementCat)

	before := mode.Movement()
	loop.Advance(160 * time.Millisecond)
	if mode.Movement() != before {
		t.Error("Expected no movement while the element is hidden")
	}
}

func TestModeCatchesOnlyOnCapture(t *testing.T) {
	c, _, _, _ := newGame(t)
	c.Start()

	c.Tap(session.Tap{X: 10, Y: 10, Width: 100, Height: 100})
	if c.State().Score != 0 {
		t.Fatal("Expected taps outside the capture control to be ignored")
	}
	c.Tap(session.Tap{OnCapture: true})
	if c.State().Score != 1 {
		t.Fatalf("Expected score 1, got %d", c.State().Score)
	}
}

func TestModeEndReleasesEverything(t *testing.T) {
	c, mode, deco, loop := newGame(t)
	c.Start()
	loop.Advance(10 * time.Second)

	if c.Playing() {
		t.Fatal("Expected game over after 10s")
	}
	if mode.LoopActive() {
		t.Error("Expected movement loop stopped")
	}
	if deco.stops != 0 {
		t.Error("Expected the decoration to outlive the round")
	}
	if c.Surface().Visible(ui.ElementCat) {
		t.Error("Expected cat hidden")
	}
	if !c.Surface().Visible(ui.PanelResult) {
		t.Error("Expected result screen")
	}
	if loop.Active() != 0 {
		t.Errorf("Expected no callbacks left, got %d", loop.Active())
	}
}

func TestModeCloseOnExit(t *testing.T) {
	c, mode, deco, loop := newGame(t)
	c.Start()
	c.Exit()

	if mode.LoopActive() || deco.stops != 1 {
		t.Error("Expected Exit to stop the mode")
	}
	if loop.Active() != 0 {
		t.Errorf("Expected no callbacks left, got %d", loop.Active())
	}
}
