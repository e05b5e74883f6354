package placeholders

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"chosenoffset.com/arcats/internal/model"
)

func TestGenerateAndSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets")
	if err := GenerateAndSave(dir); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, SpriteFile))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Dx(); got != SpriteSize {
		t.Errorf("got=%d want=%d", got, SpriteSize)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("Expected transparent corner")
	}
	if _, _, _, a := img.At(SpriteSize/2, SpriteSize*3/4).RGBA(); a == 0 {
		t.Error("Expected opaque face")
	}

	m, err := model.LoadSTLFile(filepath.Join(dir, MeshFile))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(m.Triangles), len(CatMesh().Triangles); got != want {
		t.Errorf("got=%d triangles want=%d", got, want)
	}
}

func TestCatMeshIsClosedOutward(t *testing.T) {
	m := CatMesh()
	// 3 boxes of 12 triangles plus 2 pyramids of 6
	if len(m.Triangles) != 48 {
		t.Fatalf("got=%d want=48", len(m.Triangles))
	}
	for i, tr := range m.Triangles {
		if tr.Normal.Len() < 0.99 {
			t.Fatalf("triangle %d has degenerate normal %v", i, tr.Normal)
		}
	}

	// Outward windings: the bottom face of the body points down.
	if n := m.Triangles[4].Normal; n.Y() > -0.99 {
		t.Errorf("Expected body bottom normal -Y, got %v", n)
	}
}
