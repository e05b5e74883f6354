package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"chosenoffset.com/arcats/internal/render"
)

// Loader reads images through ebitenutil.
type Loader struct{}

// NewResourceLoader returns the Ebitengine image loader.
func NewResourceLoader() render.ResourceLoader {
	return Loader{}
}

func (Loader) LoadImage(path string) (render.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return Wrap(img), nil
}

// Engine runs a render.Game on Ebitengine's window and loop.
type Engine struct{}

// NewEngine returns the Ebitengine engine.
func NewEngine() render.Engine {
	return Engine{}
}

func (Engine) SetWindowSize(width, height int) { ebiten.SetWindowSize(width, height) }
func (Engine) SetWindowTitle(title string)     { ebiten.SetWindowTitle(title) }
func (Engine) TPS() int                        { return ebiten.TPS() }

func (Engine) SetWindowResizable(resizable bool) {
	mode := ebiten.WindowResizingModeDisabled
	if resizable {
		mode = ebiten.WindowResizingModeEnabled
	}
	ebiten.SetWindowResizingMode(mode)
}

func (Engine) RunGame(game render.Game) error {
	return ebiten.RunGame(adapter{game})
}

type adapter struct {
	game render.Game
}

func (a adapter) Update() error               { return a.game.Update() }
func (a adapter) Draw(screen *ebiten.Image)   { a.game.Draw(Wrap(screen)) }
func (a adapter) Layout(w, h int) (int, int) { return a.game.Layout(w, h) }
