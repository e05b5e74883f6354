package model

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is one mesh face.
type Triangle struct {
	Normal mgl64.Vec3
	V      [3]mgl64.Vec3
}

// NewTriangle returns the face a, b, c with its normal taken from the
// counter-clockwise winding.
func NewTriangle(a, b, c mgl64.Vec3) Triangle {
	return Triangle{V: [3]mgl64.Vec3{a, b, c}}.withNormal()
}

// withNormal fills in the face normal from the winding when the file left
// it zero.
func (t Triangle) withNormal() Triangle {
	if t.Normal.Len() > 1e-9 {
		t.Normal = t.Normal.Normalize()
		return t
	}
	n := t.V[1].Sub(t.V[0]).Cross(t.V[2].Sub(t.V[0]))
	if n.Len() > 1e-12 {
		t.Normal = n.Normalize()
	}
	return t
}

// Mesh is a triangle soup.
type Mesh struct {
	Triangles []Triangle
}

// Bounds returns the axis-aligned bounding box.
func (m *Mesh) Bounds() (min, max mgl64.Vec3) {
	if len(m.Triangles) == 0 {
		return
	}
	min = m.Triangles[0].V[0]
	max = min
	for _, t := range m.Triangles {
		for _, v := range t.V {
			for i := 0; i < 3; i++ {
				min[i] = math.Min(min[i], v[i])
				max[i] = math.Max(max[i], v[i])
			}
		}
	}
	return min, max
}

// Normalize moves the mesh's bounding-box centre to the origin and returns
// the uniform scale that makes its largest dimension equal fit.
func (m *Mesh) Normalize(fit float64) float64 {
	min, max := m.Bounds()
	center := min.Add(max).Mul(0.5)
	for i := range m.Triangles {
		for v := range m.Triangles[i].V {
			m.Triangles[i].V[v] = m.Triangles[i].V[v].Sub(center)
		}
	}
	size := max.Sub(min)
	maxDim := math.Max(size[0], math.Max(size[1], size[2]))
	if maxDim == 0 {
		return 1
	}
	return fit / maxDim
}

// Animator drives the idle animation: a steady spin plus a bob that follows
// the wall clock.
type Animator struct {
	RotationPerFrame float64
	BobAmplitude     float64
	BobFrequency     float64 // Radians per millisecond

	RotationY float64
	OffsetY   float64
}

// Step advances one frame.
func (a *Animator) Step(now time.Time) {
	a.RotationY += a.RotationPerFrame
	a.OffsetY = math.Sin(float64(now.UnixMilli())*a.BobFrequency) * a.BobAmplitude
}
