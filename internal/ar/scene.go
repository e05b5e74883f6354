package ar

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"chosenoffset.com/arcats/internal/config"
)

// CatData is a live cat placed in world space.
type CatData struct {
	ID       uuid.UUID
	Position mgl64.Vec3
	Scale    float64 // Edge length of the camera-facing sprite, metres
}

// Cat is the component every live cat carries.
var Cat = donburi.NewComponentType[CatData]()

// Reticle marks the latest surface hit.
type Reticle struct {
	Visible bool
	Pose    mgl64.Mat4
}

// Camera is the viewer's perspective camera.
type Camera struct {
	FOV  float64 // Vertical, degrees
	Near float64
	Far  float64
	Pose mgl64.Mat4 // Camera to world
}

// Position returns the camera origin in world space.
func (c Camera) Position() mgl64.Vec3 {
	return c.Pose.Col(3).Vec3()
}

func (c Camera) axis(i int) mgl64.Vec3 {
	return c.Pose.Col(i).Vec3().Normalize()
}

// Ray returns the world-space ray through normalised device coordinates.
func (c Camera) Ray(ndcX, ndcY, aspect float64) (origin, dir mgl64.Vec3) {
	t := math.Tan(mgl64.DegToRad(c.FOV) / 2)
	local := mgl64.Vec4{ndcX * t * aspect, ndcY * t, -1, 0}
	return c.Position(), c.Pose.Mul4x1(local).Vec3().Normalize()
}

// Project maps a world point to pixels. ok is false outside the clip
// range.
func (c Camera) Project(p mgl64.Vec3, width, height float64) (x, y, dist float64, ok bool) {
	view := c.Pose.Inv()
	eye := view.Mul4x1(p.Vec4(1)).Vec3()
	dist = -eye.Z()
	if dist < c.Near || dist > c.Far {
		return 0, 0, 0, false
	}
	proj := mgl64.Perspective(mgl64.DegToRad(c.FOV), width/height, c.Near, c.Far)
	clip := proj.Mul4x1(eye.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	return (ndc.X() + 1) / 2 * width, (1 - ndc.Y()) / 2 * height, dist, true
}

// PixelsPerMetre returns the on-screen size of one metre at dist.
func (c Camera) PixelsPerMetre(dist, height float64) float64 {
	return height / 2 / (math.Tan(mgl64.DegToRad(c.FOV)/2) * dist)
}

// Sprite is a live cat projected for drawing.
type Sprite struct {
	ID   uuid.UUID
	X, Y float64 // Centre, pixels
	Size float64 // Edge length, pixels
	Dist float64
}

// Scene holds the live cats, the reticle and the camera.
type Scene struct {
	world donburi.World
	cats  *donburi.Query

	Reticle Reticle
	Camera  Camera
}

// NewScene creates an empty scene with the viewer camera at the origin.
func NewScene(cam config.CameraConfig) *Scene {
	return &Scene{
		world: donburi.NewWorld(),
		cats:  donburi.NewQuery(filter.Contains(Cat)),
		Reticle: Reticle{
			Pose: mgl64.Ident4(),
		},
		Camera: Camera{
			FOV:  cam.FOV,
			Near: cam.Near,
			Far:  cam.Far,
			Pose: mgl64.Ident4(),
		},
	}
}

// AddCat places a cat and returns its id.
func (s *Scene) AddCat(pos mgl64.Vec3, scale float64) uuid.UUID {
	id := uuid.New()
	entry := s.world.Entry(s.world.Create(Cat))
	Cat.SetValue(entry, CatData{ID: id, Position: pos, Scale: scale})
	return id
}

// Cats returns a snapshot of the live cats.
func (s *Scene) Cats() []CatData {
	var out []CatData
	s.cats.Each(s.world, func(e *donburi.Entry) {
		out = append(out, *Cat.Get(e))
	})
	return out
}

// Count returns the number of live cats.
func (s *Scene) Count() int {
	return s.cats.Count(s.world)
}

// Remove deletes the cat with id. It reports whether one was found.
func (s *Scene) Remove(id uuid.UUID) bool {
	var found donburi.Entity
	ok := false
	s.cats.Each(s.world, func(e *donburi.Entry) {
		if !ok && Cat.Get(e).ID == id {
			found, ok = e.Entity(), true
		}
	})
	if ok {
		s.world.Remove(found)
	}
	return ok
}

// Clear removes every cat.
func (s *Scene) Clear() {
	var doomed []donburi.Entity
	s.cats.Each(s.world, func(e *donburi.Entry) {
		doomed = append(doomed, e.Entity())
	})
	for _, e := range doomed {
		s.world.Remove(e)
	}
}

// Spawn places one wave of cats in front of the origin.
func (s *Scene) Spawn(cfg config.SpawnConfig, rng *rand.Rand) int {
	n := cfg.MinPerWave + rng.IntN(cfg.MaxPerWave-cfg.MinPerWave+1)
	for i := 0; i < n; i++ {
		angle := (rng.Float64() - 0.5) * cfg.AngleSpread
		dist := cfg.DistanceMin + rng.Float64()*(cfg.DistanceMax-cfg.DistanceMin)
		height := cfg.HeightMin + rng.Float64()*(cfg.HeightMax-cfg.HeightMin)
		s.AddCat(SpawnPosition(angle, dist, height), cfg.CatScale)
	}
	return n
}

// SpawnPosition returns the point at angle from straight ahead (-Z),
// dist metres out and height metres up.
func SpawnPosition(angle, dist, height float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(angle) * dist, height, -math.Cos(angle) * dist}
}

// Pick returns the nearest cat whose camera-facing sprite the ray hits.
func (s *Scene) Pick(origin, dir mgl64.Vec3) (uuid.UUID, bool) {
	right := s.Camera.axis(0)
	up := s.Camera.axis(1)
	forward := s.Camera.axis(2).Mul(-1)

	var (
		best   uuid.UUID
		bestT  = math.Inf(1)
		hitAny bool
	)
	denom := dir.Dot(forward)
	if math.Abs(denom) < 1e-9 {
		return best, false
	}
	s.cats.Each(s.world, func(e *donburi.Entry) {
		cat := Cat.Get(e)
		t := cat.Position.Sub(origin).Dot(forward) / denom
		if t <= 0 || t >= bestT {
			return
		}
		offset := origin.Add(dir.Mul(t)).Sub(cat.Position)
		half := cat.Scale / 2
		if math.Abs(offset.Dot(right)) > half || math.Abs(offset.Dot(up)) > half {
			return
		}
		best, bestT, hitAny = cat.ID, t, true
	})
	return best, hitAny
}

// Project returns the visible cats in pixels, farthest first.
func (s *Scene) Project(width, height float64) []Sprite {
	var out []Sprite
	s.cats.Each(s.world, func(e *donburi.Entry) {
		cat := Cat.Get(e)
		x, y, dist, ok := s.Camera.Project(cat.Position, width, height)
		if !ok {
			return
		}
		out = append(out, Sprite{
			ID:   cat.ID,
			X:    x,
			Y:    y,
			Size: cat.Scale * s.Camera.PixelsPerMetre(dist, height),
			Dist: dist,
		})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Dist > out[j].Dist })
	return out
}
