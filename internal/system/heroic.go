// internal/system/heroic.go
package system

import (
	"fmt"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/entity"
	"go-survivor/internal/event"
	"go-survivor/pkg/utils"
)

// HeroicWeaponID источник урона героического выстрела.
const HeroicWeaponID = "heroic_skill"

// HeroicSystem активирует героическое умение персонажа.
type HeroicSystem struct {
	lib             *defs.Library
	eventDispatcher *event.Dispatcher
}

func NewHeroicSystem(lib *defs.Library, eventDispatcher *event.Dispatcher) *HeroicSystem {
	return &HeroicSystem{lib: lib, eventDispatcher: eventDispatcher}
}

// CanActivate: шкала заполнена и умение ещё не действует.
func (s *HeroicSystem) CanActivate(w *entity.ECS) bool {
	p := w.Player
	return p != nil && !p.HeroicActive && p.HeroicGauge >= p.HeroicGaugeMax
}

// Activate применяет умение персонажа и обнуляет шкалу.
// Возвращает false, если активировать нельзя.
func (s *HeroicSystem) Activate(w *entity.ECS, char *defs.CharacterDefinition, aim utils.Vector2D) bool {
	if !s.CanActivate(w) {
		return false
	}
	p := w.Player

	switch char.Heroic {
	case defs.HeroicPiercingBlast:
		w.AddProjectile(&component.Projectile{
			Position:   p.Position,
			Size:       p.Size * config.HeroicBlastSizeFactor,
			Velocity:   utils.Normalize(aim).Scale(config.HeroicBlastSpeed),
			Damage:     config.HeroicBlastDamage * p.Stats.DamageMultiplier,
			LifespanMs: config.HeroicBlastTTL,
			Color:      "orangered",
			WeaponID:   HeroicWeaponID,
			Piercing:   true,
			Heroic:     true,
			Knockback:  config.HeroicBlastKnockback,
			SpawnMs:    w.ElapsedMs,
		})
	case defs.HeroicEmpower:
		p.HeroicActive = true
		p.HeroicRemainingMs = char.HeroicSkillDurationMs
	case defs.HeroicPurge:
		w.Enemies = entity.Filter(w.Enemies, func(e *component.Enemy) bool {
			def, err := s.lib.Enemy(e.TypeID)
			return err == nil && def.Boss
		})
	case defs.HeroicMegaTurret:
		w.AddTurret(&component.Turret{
			Position:    p.Position,
			Size:        config.MegaTurretSize,
			LifespanMs:  char.HeroicSkillDurationMs,
			WeaponID:    config.MegaTurretWeaponID,
			WeaponLevel: config.MegaTurretLevel,
			Mega:        true,
		})
	case defs.HeroicSanctuary:
		p.HeroicActive = true
		p.HeroicRemainingMs = char.HeroicSkillDurationMs
		p.InvulnerableUntilMs = w.ElapsedMs + char.HeroicSkillDurationMs
	default:
		panic(fmt.Sprintf("%v: %q", defs.ErrUnknownHeroic, char.Heroic))
	}

	p.HeroicGauge = 0
	s.eventDispatcher.Enqueue(event.Event{Type: event.HeroicActivated, Data: char.ID})
	return true
}
