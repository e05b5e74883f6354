package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/arcats/internal/render"
)

var keys = map[render.Key]ebiten.Key{
	render.KeyUp:     ebiten.KeyArrowUp,
	render.KeyDown:   ebiten.KeyArrowDown,
	render.KeyLeft:   ebiten.KeyArrowLeft,
	render.KeyRight:  ebiten.KeyArrowRight,
	render.KeySpace:  ebiten.KeySpace,
	render.KeyEnter:  ebiten.KeyEnter,
	render.KeyEscape: ebiten.KeyEscape,
}

// Input reads keyboard, mouse and touch state from Ebitengine.
type Input struct {
	touches []ebiten.TouchID
}

// NewInputManager returns the Ebitengine input reader.
func NewInputManager() render.InputManager {
	return &Input{}
}

func (in *Input) IsKeyPressed(key render.Key) bool {
	k, ok := keys[key]
	return ok && ebiten.IsKeyPressed(k)
}

func (in *Input) IsKeyJustPressed(key render.Key) bool {
	k, ok := keys[key]
	return ok && inpututil.IsKeyJustPressed(k)
}

// JustTapped treats a left click and the first new touch alike.
func (in *Input) JustTapped() (x, y int, ok bool) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y = ebiten.CursorPosition()
		return x, y, true
	}
	in.touches = inpututil.AppendJustPressedTouchIDs(in.touches[:0])
	if len(in.touches) > 0 {
		x, y = ebiten.TouchPosition(in.touches[0])
		return x, y, true
	}
	return 0, 0, false
}
