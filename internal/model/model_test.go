package model

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chosenoffset.com/arcats/internal/config"
	"chosenoffset.com/arcats/internal/render"
	"chosenoffset.com/arcats/internal/sched"
)

func tetrahedron() *Mesh {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{1, 0, 0}
	c := mgl64.Vec3{0, 1, 0}
	d := mgl64.Vec3{0, 0, 1}
	return &Mesh{Triangles: []Triangle{
		NewTriangle(a, c, b),
		NewTriangle(a, b, d),
		NewTriangle(a, d, c),
		NewTriangle(b, c, d),
	}}
}

func TestBinarySTLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBinarySTL(&buf, tetrahedron()); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 84+4*50 {
		t.Fatalf("Expected 284 bytes, got %d", buf.Len())
	}

	m, err := LoadSTL(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Triangles) != 4 {
		t.Fatalf("Expected 4 triangles, got %d", len(m.Triangles))
	}
	if got := m.Triangles[3].V[2]; got != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("vertex mismatch: %v", got)
	}
}

func TestASCIISTLComputesMissingNormals(t *testing.T) {
	src := `solid cat
  facet normal 0 0 0
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid cat
`
	m, err := LoadSTL(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Triangles) != 1 {
		t.Fatalf("Expected 1 triangle, got %d", len(m.Triangles))
	}
	if n := m.Triangles[0].Normal; n != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("Expected +Z normal, got %v", n)
	}
}

func TestLoadSTLRejectsGarbage(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"text":       "hello world",
		"no facets":  "solid x\nendsolid x\n",
		"bad vertex": "solid x\nfacet normal 0 0 1\nvertex 0 zero 0\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSTL(strings.NewReader(src))
			if !errors.Is(err, ErrInvalidMesh) {
				t.Fatalf("Expected ErrInvalidMesh, got %v", err)
			}
		})
	}
}

func TestNormalizeCentersAndScales(t *testing.T) {
	m := &Mesh{Triangles: []Triangle{
		NewTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 0, 0}, mgl64.Vec3{0, 2, 2}),
	}}
	scale := m.Normalize(2)
	if scale != 0.5 {
		t.Errorf("Expected scale 0.5, got %v", scale)
	}
	min, max := m.Bounds()
	if min != (mgl64.Vec3{-2, -1, -1}) || max != (mgl64.Vec3{2, 1, 1}) {
		t.Errorf("Expected centred bounds, got %v %v", min, max)
	}
}

func TestAnimatorSpinsAndBobs(t *testing.T) {
	a := Animator{RotationPerFrame: 0.01, BobAmplitude: 0.1, BobFrequency: 0.001}
	for i := 0; i < 3; i++ {
		a.Step(time.UnixMilli(0))
	}
	if math.Abs(a.RotationY-0.03) > 1e-12 {
		t.Errorf("Expected rotation 0.03, got %v", a.RotationY)
	}
	if a.OffsetY != 0 {
		t.Errorf("Expected no bob at t=0, got %v", a.OffsetY)
	}

	a.Step(time.UnixMilli(1571)) // sin(~pi/2)
	if math.Abs(a.OffsetY-0.1) > 1e-3 {
		t.Errorf("Expected bob peak 0.1, got %v", a.OffsetY)
	}
}

func waitFor(t *testing.T, loop *sched.Scheduler, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for loader")
		}
		time.Sleep(time.Millisecond)
		loop.Advance(0)
	}
}

func TestViewerDisablesOnLoadFailure(t *testing.T) {
	var logged bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&logged)
	t.Cleanup(func() { log.Logger = prev })

	loop := sched.New()
	v := NewViewer(config.Default().Viewer, "assets", loop)
	v.Load = func(string) (*Mesh, error) { return nil, ErrInvalidMesh }

	v.Start()
	waitFor(t, loop, v.Disabled)

	if v.Running() || v.Loaded() {
		t.Fatal("Expected disabled viewer to stop animating")
	}
	if loop.Active() != 0 {
		t.Errorf("Expected no registered callbacks, got %d", loop.Active())
	}
	v.Start()
	if v.Running() {
		t.Error("Expected Start to be a no-op once disabled")
	}
	if !strings.Contains(logged.String(), `"level":"error"`) {
		t.Errorf("Expected the load failure logged at error level, got %s", logged.String())
	}
}

func TestViewerAnimatesAfterLoad(t *testing.T) {
	loop := sched.New()
	v := NewViewer(config.Default().Viewer, "assets", loop)
	v.Clock = func() time.Time { return time.UnixMilli(0) }
	v.Load = func(string) (*Mesh, error) { return tetrahedron(), nil }

	v.Start()
	waitFor(t, loop, v.Loaded)

	loop.Advance(48 * time.Millisecond)
	if got := v.Animation().RotationY; math.Abs(got-0.03) > 1e-12 {
		t.Errorf("Expected 3 frames of rotation, got %v", got)
	}

	v.Stop()
	loop.Advance(time.Second)
	if got := v.Animation().RotationY; math.Abs(got-0.03) > 1e-12 {
		t.Errorf("Expected rotation frozen after Stop, got %v", got)
	}
}

func TestProjectCullsBackFacesAndLightsFront(t *testing.T) {
	loop := sched.New()
	v := NewViewer(config.Default().Viewer, "assets", loop)
	v.loaded(tetrahedron(), nil)

	faces := v.Project()
	if len(faces) != 1 {
		t.Fatalf("Expected only the slanted face visible, got %d", len(faces))
	}
	want := color.NRGBA{255, 214, 143, 255}
	if faces[0].Color != want {
		t.Errorf("Expected fully lit face %v, got %v", want, faces[0].Color)
	}
}

func TestProjectSortsFarthestFirst(t *testing.T) {
	near := NewTriangle(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 1}, mgl64.Vec3{0, 1, 1})
	far := NewTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})

	v := NewViewer(config.Default().Viewer, "assets", sched.New())
	v.loaded(&Mesh{Triangles: []Triangle{near, far}}, nil)

	faces := v.Project()
	if len(faces) != 2 {
		t.Fatalf("Expected 2 faces, got %d", len(faces))
	}
	if faces[0].Depth >= faces[1].Depth {
		t.Errorf("Expected farthest face first, depths %v %v", faces[0].Depth, faces[1].Depth)
	}
	if math.Abs(faces[0].Depth+4) > 1e-9 {
		t.Errorf("Expected far face at z=-4, got %v", faces[0].Depth)
	}
}

type fakeGeoM struct{ tx, ty float64 }

func (g *fakeGeoM) Translate(tx, ty float64) { g.tx += tx; g.ty += ty }
func (g *fakeGeoM) Scale(sx, sy float64)     { g.tx *= sx; g.ty *= sy }

type fakeImage struct {
	w, h      int
	triangles int
	drawn     []*render.DrawImageOptions
}

func (i *fakeImage) Size() (int, int) { return i.w, i.h }
func (i *fakeImage) Fill(color.Color)  {}
func (i *fakeImage) Clear()            {}

func (i *fakeImage) WritePixels([]byte) {}

func (i *fakeImage) DrawImage(_ render.Image, op *render.DrawImageOptions) {
	i.drawn = append(i.drawn, op)
}

func (i *fakeImage) DrawTriangles(vs []render.Vertex, _ []uint16, _ render.Image, _ *render.DrawTrianglesOptions) {
	i.triangles += len(vs) / 3
}

type fakeRenderer struct {
	render.Renderer
	images []*fakeImage
}

func (r *fakeRenderer) NewImage(w, h int) render.Image {
	img := &fakeImage{w: w, h: h}
	r.images = append(r.images, img)
	return img
}

func (r *fakeRenderer) NewGeoM() render.GeoM { return &fakeGeoM{} }

func TestDrawPlacesInsetThroughRenderer(t *testing.T) {
	v := NewViewer(config.Default().Viewer, "assets", sched.New())
	v.loaded(tetrahedron(), nil)

	r := &fakeRenderer{}
	screen := &fakeImage{w: 800, h: 600}
	v.Draw(screen, r, 600, 20)

	if len(screen.drawn) != 1 {
		t.Fatalf("Expected one inset draw, got %d", len(screen.drawn))
	}
	g, ok := screen.drawn[0].GeoM.(*fakeGeoM)
	if !ok {
		t.Fatalf("Expected the renderer's transform, got %T", screen.drawn[0].GeoM)
	}
	if g.tx != 600 || g.ty != 20 {
		t.Errorf("Expected inset at (600, 20), got (%v, %v)", g.tx, g.ty)
	}
	if len(r.images) == 0 || r.images[0].triangles != len(v.Project()) {
		t.Error("Expected visible faces drawn to the canvas")
	}
}
