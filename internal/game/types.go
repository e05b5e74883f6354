package game

import (
	"math/rand/v2"

	"chosenoffset.com/arcats/internal/ar"
	"chosenoffset.com/arcats/internal/audio"
	"chosenoffset.com/arcats/internal/camera"
	"chosenoffset.com/arcats/internal/config"
	"chosenoffset.com/arcats/internal/render"
	"chosenoffset.com/arcats/internal/sched"
)

// Options carries the platform collaborators a Manager runs against.
type Options struct {
	Config   *config.Config
	Renderer render.Renderer
	Input    render.InputManager
	Loader   render.ResourceLoader // Optional; the cat is drawn as a circle without it

	Camera camera.Source // Screen mode
	AR     ar.Platform   // AR mode

	Chirp *audio.Chirp // Optional
	Loop  *sched.Scheduler
	Rand  *rand.Rand
	TPS   int
}

// arView is what the last AR frame saw, in screen pixels.
type arView struct {
	sprites    []ar.Sprite
	reticle    bool
	reticleX   float64
	reticleY   float64
	reticleRad float64
}
