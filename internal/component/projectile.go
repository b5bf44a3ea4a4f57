// internal/component/projectile.go
package component

import (
	"go-survivor/internal/types"
	"go-survivor/pkg/utils"
)

// Motion закрытый набор стратегий движения снаряда.
type Motion int

const (
	MotionLinear Motion = iota
	// MotionOrbit хранит угол в Velocity.X и скорость в Velocity.Y.
	MotionOrbit
	// MotionSerpentine колеблется перпендикулярно направлению полёта.
	MotionSerpentine
	// MotionHoming преследует ближайшего врага, скорость в Velocity.Y.
	MotionHoming
	// MotionSpiral: Velocity.X рад/с, Velocity.Y рост радиуса px/с.
	MotionSpiral
	// MotionAnchored всегда на позиции игрока.
	MotionAnchored
)

func (m Motion) String() string {
	switch m {
	case MotionLinear:
		return "linear"
	case MotionOrbit:
		return "orbit"
	case MotionSerpentine:
		return "serpentine"
	case MotionHoming:
		return "homing"
	case MotionSpiral:
		return "spiral"
	case MotionAnchored:
		return "anchored"
	}
	return "unknown"
}

// Projectile представляет летящий снаряд.
type Projectile struct {
	ID         types.EntityID
	Position   utils.Vector2D
	Size       float64
	Width      float64 // 0: используется Size
	Height     float64
	Velocity   utils.Vector2D
	Damage     float64
	LifespanMs float64
	Color      string
	WeaponID   string
	Piercing   bool
	Heroic     bool
	Knockback  float64

	Motion        Motion
	SpawnMs       float64
	SpawnPosition utils.Vector2D
	CurrentAngle  float64
	DisplayText   string
}
