// internal/system/aura.go
package system

import (
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/entity"
	"go-survivor/pkg/utils"
)

// AuraSystem наносит постоянный урон врагам вблизи игрока.
type AuraSystem struct {
	lib *defs.Library
}

func NewAuraSystem(lib *defs.Library) *AuraSystem {
	return &AuraSystem{lib: lib}
}

// Accumulate записывает урон ауры в журнал. Работает только первое оружие с аурой.
func (s *AuraSystem) Accumulate(w *entity.ECS, ledger DamageLedger) {
	p := w.Player
	if p == nil {
		return
	}
	for _, pw := range p.Weapons {
		level, ok := s.lib.MustWeapon(pw.ID).AuraLevel(pw.Level)
		if !ok {
			continue
		}
		damage := level.AuraDPS * config.TickMs / 1000
		for _, e := range w.Enemies {
			if utils.Distance(p.Position, e.Position) >= level.AuraRadius {
				continue
			}
			push := utils.Direction(p.Position, e.Position).Scale(config.AuraKnockback)
			ledger.Entry(e.ID).Add(damage, pw.ID, push)
		}
		return
	}
}
