// internal/component/turret.go
package component

import (
	"go-survivor/internal/types"
	"go-survivor/pkg/utils"
)

// Turret установленная турель или героическая мега-турель.
type Turret struct {
	ID             types.EntityID
	Position       utils.Vector2D
	Size           float64
	LifespanMs     float64
	FireCooldownMs float64
	WeaponID       string
	WeaponLevel    int // уровень оружия, чьи характеристики использует турель
	Mega           bool
	LastAngle      float64 // смещение спирали мега-турели
}
