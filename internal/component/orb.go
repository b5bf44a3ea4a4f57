// internal/component/orb.go
package component

import (
	"go-survivor/internal/types"
	"go-survivor/pkg/utils"
)

// Orb награда, выпадающая из врага.
type Orb struct {
	ID       types.EntityID
	Position utils.Vector2D
	Size     float64
	Value    float64
}

// ExperienceOrb даёт опыт при подборе.
type ExperienceOrb = Orb

// CurrencyOrb даёт валюту при подборе.
type CurrencyOrb = Orb
