// internal/state/input.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/pkg/utils"
)

// EbitenInput читает клавиатуру и мышь. Игрок всегда в центре экрана,
// поэтому прицел это направление от центра к курсору.
type EbitenInput struct {
	lastAim utils.Vector2D
}

func NewEbitenInput() *EbitenInput {
	return &EbitenInput{lastAim: utils.Vector2D{X: 1}}
}

// ReadInput вызывается из тика, в том же потоке, что и Update ebiten.
func (in *EbitenInput) ReadInput() component.InputState {
	move := MoveFromKeys(
		ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
	)
	x, y := ebiten.CursorPosition()
	in.lastAim = AimFromCursor(x, y, config.ScreenWidth, config.ScreenHeight, in.lastAim)
	return component.InputState{Move: move, Aim: in.lastAim}
}

// MoveFromKeys собирает вектор намерения из нажатых направлений.
func MoveFromKeys(up, down, left, right bool) utils.Vector2D {
	var v utils.Vector2D
	if up {
		v.Y--
	}
	if down {
		v.Y++
	}
	if left {
		v.X--
	}
	if right {
		v.X++
	}
	return v
}

// AimFromCursor направление от центра экрана к курсору;
// курсор в центре оставляет прежнее направление.
func AimFromCursor(x, y, screenWidth, screenHeight int, fallback utils.Vector2D) utils.Vector2D {
	v := utils.Vector2D{X: float64(x - screenWidth/2), Y: float64(y - screenHeight/2)}
	if v.IsZero() {
		return fallback
	}
	return utils.Normalize(v)
}
