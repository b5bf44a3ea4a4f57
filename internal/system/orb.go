// internal/system/orb.go
package system

import (
	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/entity"
	"go-survivor/pkg/utils"
)

// OrbSystem притягивает сферы к игроку и подбирает их.
type OrbSystem struct{}

func NewOrbSystem() *OrbSystem {
	return &OrbSystem{}
}

// Update возвращает опыт, собранный за тик, уже с множителем опыта.
// Валюта зачисляется игроку сразу.
func (s *OrbSystem) Update(w *entity.ECS) float64 {
	p := w.Player
	if p == nil {
		return 0
	}

	xp := 0.0
	w.XPOrbs = s.sweep(w.XPOrbs, p, func(v float64) { xp += v })
	w.CurrencyOrbs = s.sweep(w.CurrencyOrbs, p, func(v float64) { p.SessionCurrency += int(v) })
	return xp * p.Stats.XPMultiplier
}

func (s *OrbSystem) sweep(orbs []*component.Orb, p *component.Player, collect func(value float64)) []*component.Orb {
	return entity.Filter(orbs, func(o *component.Orb) bool {
		if utils.Distance(o.Position, p.Position) > config.OrbMagnetRadius {
			return true
		}
		o.Position = utils.StepToward(o.Position, p.Position, config.OrbSpeed)
		if utils.Distance(o.Position, p.Position) < p.Size/2 {
			collect(o.Value)
			return false
		}
		return true
	})
}
