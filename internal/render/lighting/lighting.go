package lighting

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LightSource represents a single directional light
type LightSource struct {
	Direction mgl64.Vec3  // Points from the surface towards the light
	Intensity float64     // Light intensity (0.0 to 1.0)
	Color     color.NRGBA // Light color
}

// Manager handles all light sources in a scene
type Manager struct {
	lights       []LightSource
	ambientLight float64 // Global ambient light level (0.0 = pitch black, 1.0 = fully lit)
	ambientColor color.NRGBA
}

// NewManager creates a new lighting manager
func NewManager() *Manager {
	return &Manager{
		lights:       make([]LightSource, 0),
		ambientLight: 0.6,
		ambientColor: color.NRGBA{255, 255, 255, 255},
	}
}

// NewStudioManager returns the viewer's rig: soft white ambient plus one
// key light from the upper right front.
func NewStudioManager() *Manager {
	m := NewManager()
	m.AddDirectional(mgl64.Vec3{1, 1, 1}, 0.8, color.NRGBA{255, 255, 255, 255})
	return m
}

// SetAmbientLight sets the global ambient light level
func (m *Manager) SetAmbientLight(level float64) {
	m.ambientLight = level
}

// GetAmbientLight returns the current ambient light level
func (m *Manager) GetAmbientLight() float64 {
	return m.ambientLight
}

// AddDirectional adds a light shining from dir.
func (m *Manager) AddDirectional(dir mgl64.Vec3, intensity float64, col color.NRGBA) {
	if dir.Len() == 0 {
		return
	}
	m.lights = append(m.lights, LightSource{
		Direction: dir.Normalize(),
		Intensity: intensity,
		Color:     col,
	})
}

// GetAllLights returns all active light sources
func (m *Manager) GetAllLights() []LightSource {
	lights := make([]LightSource, len(m.lights))
	copy(lights, m.lights)
	return lights
}

// Shade returns base lit from the surface normal n with Lambert diffuse
// terms. Channels saturate at 255.
func (m *Manager) Shade(base color.NRGBA, n mgl64.Vec3) color.NRGBA {
	if n.Len() > 0 {
		n = n.Normalize()
	}
	r := m.ambientLight * float64(m.ambientColor.R) / 255
	g := m.ambientLight * float64(m.ambientColor.G) / 255
	b := m.ambientLight * float64(m.ambientColor.B) / 255

	for _, light := range m.lights {
		d := n.Dot(light.Direction)
		if d <= 0 {
			continue
		}
		r += d * light.Intensity * float64(light.Color.R) / 255
		g += d * light.Intensity * float64(light.Color.G) / 255
		b += d * light.Intensity * float64(light.Color.B) / 255
	}

	return color.NRGBA{
		R: channel(base.R, r),
		G: channel(base.G, g),
		B: channel(base.B, b),
		A: base.A,
	}
}

func channel(c uint8, k float64) uint8 {
	v := math.Round(float64(c) * k)
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}
