// internal/component/input.go
package component

import "go-survivor/pkg/utils"

// InputState состояние ввода, считанное один раз за тик.
type InputState struct {
	Move utils.Vector2D // намерение движения, не нормализовано
	Aim  utils.Vector2D // направление прицела в мировых координатах
}
