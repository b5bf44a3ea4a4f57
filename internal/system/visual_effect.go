// internal/system/visual_effect.go
package system

import (
	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/entity"
)

// VisualEffectSystem гасит следы взрывов. На логику боя не влияет.
type VisualEffectSystem struct{}

func NewVisualEffectSystem() *VisualEffectSystem {
	return &VisualEffectSystem{}
}

func (s *VisualEffectSystem) Update(w *entity.ECS) {
	w.Explosions = entity.Filter(w.Explosions, func(e *component.ExplosionEffect) bool {
		e.RemainingMs -= config.TickMs
		return e.RemainingMs > 0
	})
}
