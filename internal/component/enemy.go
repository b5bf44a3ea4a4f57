// internal/component/enemy.go
package component

import (
	"go-survivor/internal/types"
	"go-survivor/pkg/utils"
)

// Facing направление спрайта врага.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

// Enemy представляет вражескую сущность.
type Enemy struct {
	ID        types.EntityID
	TypeID    string // ID из enemies.json
	Position  utils.Vector2D
	Size      float64
	MaxHP     float64
	CurrentHP float64
	Speed     float64
	Damage    float64
	LastHitMs float64
	Facing    Facing
}
