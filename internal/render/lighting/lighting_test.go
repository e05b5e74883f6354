package lighting

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestShadeFacingAwayGetsAmbientOnly(t *testing.T) {
	m := NewStudioManager()
	base := color.NRGBA{200, 100, 50, 255}

	got := m.Shade(base, mgl64.Vec3{-1, -1, -1})
	want := color.NRGBA{120, 60, 30, 255}
	if got != want {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestShadeFacingLightIsBrighter(t *testing.T) {
	m := NewStudioManager()
	base := color.NRGBA{100, 100, 100, 255}

	lit := m.Shade(base, mgl64.Vec3{1, 1, 1})
	dark := m.Shade(base, mgl64.Vec3{0, 0, -1})
	if lit.R <= dark.R {
		t.Fatalf("Expected lit face brighter: lit=%v dark=%v", lit, dark)
	}
	if lit.R != 140 {
		t.Errorf("Expected 100*(0.6+0.8)=140, got %d", lit.R)
	}
}

func TestShadeSaturates(t *testing.T) {
	m := NewStudioManager()
	got := m.Shade(color.NRGBA{255, 255, 255, 255}, mgl64.Vec3{1, 1, 1})
	if got.R != 255 || got.A != 255 {
		t.Fatalf("Expected saturated white, got %v", got)
	}
}

func TestAddDirectionalIgnoresZeroVector(t *testing.T) {
	m := NewManager()
	m.AddDirectional(mgl64.Vec3{}, 1, color.NRGBA{255, 255, 255, 255})
	if len(m.GetAllLights()) != 0 {
		t.Fatal("zero direction light was added")
	}
}
