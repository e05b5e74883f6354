package model

import (
	"image/color"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"chosenoffset.com/arcats/internal/config"
	"chosenoffset.com/arcats/internal/render"
	"chosenoffset.com/arcats/internal/render/lighting"
	"chosenoffset.com/arcats/internal/sched"
)

// CatColor is the flat material colour of the decorative cat.
var CatColor = color.NRGBA{0xff, 0x99, 0x66, 0xff}

// Largest number of faces per DrawTriangles call, keeping indices in uint16.
const maxBatchFaces = 65535 / 3

// Face is a projected, lit triangle in viewport pixels.
type Face struct {
	Points [3][2]float32
	Depth  float64 // View-space z of the centroid; more negative is farther
	Color  color.NRGBA
}

// Viewer shows the cat mesh spinning and bobbing in a square inset.
type Viewer struct {
	cfg    config.ViewerConfig
	path   string
	loop   *sched.Scheduler
	lights *lighting.Manager

	// Clock drives the bob. Load reads the mesh off the loop goroutine.
	Clock func() time.Time
	Load  func(path string) (*Mesh, error)

	mesh     *Mesh
	scale    float64
	anim     Animator
	frame    sched.Handle
	loading  bool
	disabled bool

	canvas   render.Image
	whiteImg render.Image
}

// NewViewer creates a viewer for the mesh file under assetsDir.
func NewViewer(cfg config.ViewerConfig, assetsDir string, loop *sched.Scheduler) *Viewer {
	return &Viewer{
		cfg:    cfg,
		path:   filepath.Join(assetsDir, cfg.MeshFile),
		loop:   loop,
		lights: lighting.NewStudioManager(),
		Clock:  time.Now,
		Load:   LoadSTLFile,
		scale:  1,
		anim: Animator{
			RotationPerFrame: cfg.RotationPerFrame,
			BobAmplitude:     cfg.BobAmplitude,
			BobFrequency:     cfg.BobFrequency,
		},
	}
}

// Start begins animating, loading the mesh first if needed. A viewer whose
// mesh failed to load stays disabled.
func (v *Viewer) Start() {
	if v.disabled || v.frame.Active() {
		return
	}
	if v.mesh == nil && !v.loading {
		v.loading = true
		path := v.path
		load := v.Load
		go func() {
			m, err := load(path)
			v.loop.Post(func() { v.loaded(m, err) })
		}()
	}
	v.frame = v.loop.Every(v.cfg.Frame(), v.step)
}

func (v *Viewer) loaded(m *Mesh, err error) {
	v.loading = false
	if err != nil {
		log.Error().Err(err).Str("path", v.path).Msg("cat model unavailable, viewer disabled")
		v.disabled = true
		v.frame.Cancel()
		return
	}
	v.scale = m.Normalize(v.cfg.FitSize)
	v.mesh = m
	log.Debug().Int("triangles", len(m.Triangles)).Msg("cat model loaded")
}

func (v *Viewer) step() {
	if v.mesh == nil {
		return
	}
	v.anim.Step(v.Clock())
}

// Stop cancels the animation. The loaded mesh is kept for the next Start.
func (v *Viewer) Stop() {
	v.frame.Cancel()
}

// Running reports whether the animation is registered.
func (v *Viewer) Running() bool { return v.frame.Active() }

// Loaded reports whether the mesh is ready to draw.
func (v *Viewer) Loaded() bool { return v.mesh != nil }

// Disabled reports whether loading failed.
func (v *Viewer) Disabled() bool { return v.disabled }

// Animation returns the current animation state.
func (v *Viewer) Animation() Animator { return v.anim }

// Project transforms, lights and depth-sorts the visible faces, farthest
// first.
func (v *Viewer) Project() []Face {
	if v.mesh == nil {
		return nil
	}
	size := float64(v.cfg.Size)
	proj := mgl64.Perspective(mgl64.DegToRad(v.cfg.FOV), 1, 0.1, 100)
	view := mgl64.Translate3D(0, 0, -v.cfg.CameraZ)
	rot := mgl64.HomogRotate3DY(v.anim.RotationY)
	modelView := view.
		Mul4(mgl64.Translate3D(0, v.anim.OffsetY, 0)).
		Mul4(rot).
		Mul4(mgl64.Scale3D(v.scale, v.scale, v.scale))

	faces := make([]Face, 0, len(v.mesh.Triangles))
	for _, t := range v.mesh.Triangles {
		var eye [3]mgl64.Vec3
		for i, p := range t.V {
			eye[i] = modelView.Mul4x1(p.Vec4(1)).Vec3()
		}
		centroid := eye[0].Add(eye[1]).Add(eye[2]).Mul(1.0 / 3)
		normal := rot.Mul4x1(t.Normal.Vec4(0)).Vec3()
		// The camera sits at the eye-space origin.
		if normal.Dot(centroid) >= 0 {
			continue
		}

		f := Face{Depth: centroid.Z(), Color: v.lights.Shade(CatColor, normal)}
		behind := false
		for i, e := range eye {
			clip := proj.Mul4x1(e.Vec4(1))
			if clip.W() <= 0 {
				behind = true
				break
			}
			ndc := clip.Vec3().Mul(1 / clip.W())
			f.Points[i] = [2]float32{
				float32((ndc.X() + 1) / 2 * size),
				float32((1 - ndc.Y()) / 2 * size),
			}
		}
		if behind {
			continue
		}
		faces = append(faces, f)
	}

	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].Depth < faces[j].Depth
	})
	return faces
}

// Draw renders the inset with its top-left corner at (x, y).
func (v *Viewer) Draw(dst render.Image, r render.Renderer, x, y float64) {
	if v.mesh == nil {
		return
	}
	if v.canvas == nil {
		v.canvas = r.NewImage(v.cfg.Size, v.cfg.Size)
	}
	if v.whiteImg == nil {
		v.whiteImg = r.NewImage(1, 1)
		v.whiteImg.Fill(color.White)
	}
	v.canvas.Clear()

	faces := v.Project()
	opts := &render.DrawTrianglesOptions{AntiAlias: true}
	for start := 0; start < len(faces); start += maxBatchFaces {
		end := min(start+maxBatchFaces, len(faces))
		vertices, indices := batch(faces[start:end])
		v.canvas.DrawTriangles(vertices, indices, v.whiteImg, opts)
	}

	op := &render.DrawImageOptions{GeoM: r.NewGeoM()}
	op.GeoM.Translate(x, y)
	dst.DrawImage(v.canvas, op)
}

func batch(faces []Face) ([]render.Vertex, []uint16) {
	vertices := make([]render.Vertex, 0, len(faces)*3)
	indices := make([]uint16, 0, len(faces)*3)
	for _, f := range faces {
		for _, p := range f.Points {
			indices = append(indices, uint16(len(vertices)))
			vertices = append(vertices, render.Vertex{
				DstX:   p[0],
				DstY:   p[1],
				ColorR: float32(f.Color.R) / 255,
				ColorG: float32(f.Color.G) / 255,
				ColorB: float32(f.Color.B) / 255,
				ColorA: float32(f.Color.A) / 255,
			})
		}
	}
	return vertices, indices
}
