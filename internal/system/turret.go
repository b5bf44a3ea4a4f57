// internal/system/turret.go
package system

import (
	"math"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/entity"
	"go-survivor/pkg/utils"
)

// TurretSystem стреляет из установленных турелей и убирает отслужившие.
type TurretSystem struct {
	lib *defs.Library
}

func NewTurretSystem(lib *defs.Library) *TurretSystem {
	return &TurretSystem{lib: lib}
}

func (s *TurretSystem) Update(w *entity.ECS) {
	damageMult, speedMult := 1.0, 1.0
	if w.Player != nil {
		damageMult = w.Player.Stats.DamageMultiplier
		speedMult = w.Player.Stats.ProjectileSpeedMultiplier
	}

	var fired []*component.Projectile
	for _, t := range w.Turrets {
		t.FireCooldownMs -= config.TickMs
		t.LifespanMs -= config.TickMs
		if t.FireCooldownMs > 0 {
			continue
		}
		def := s.lib.MustWeapon(t.WeaponID)
		level := def.Level(t.WeaponLevel)

		if t.Mega {
			fired = append(fired, s.fireRing(t, def, level, damageMult)...)
			t.FireCooldownMs = config.MegaTurretRefireMs
			continue
		}

		if target := findNearestEnemy(w.Enemies, t.Position, config.TurretDetectRadius); target != nil {
			vel := utils.Direction(t.Position, target.Position).Scale(level.ProjectileSpeed * speedMult)
			fired = append(fired, &component.Projectile{
				Position:   t.Position,
				Size:       config.TurretProjectileSize,
				Velocity:   vel,
				Damage:     level.Damage * damageMult,
				Knockback:  level.Knockback,
				LifespanMs: config.TurretProjectileTTL,
				Color:      def.Color,
				WeaponID:   t.WeaponID,
				SpawnMs:    w.ElapsedMs,
			})
		}
		t.FireCooldownMs = level.TurretFireCooldownMs
		if t.FireCooldownMs <= 0 {
			t.FireCooldownMs = config.DefaultTurretFireCooldownMs
		}
	}

	for _, p := range fired {
		w.AddProjectile(p)
	}
	w.Turrets = entity.Filter(w.Turrets, func(t *component.Turret) bool {
		return t.LifespanMs > 0
	})
}

// fireRing выпускает кольцо снарядов мега-турели, каждый залп повёрнут дальше.
// Скорость снарядов мега-турели не зависит от множителя игрока.
func (s *TurretSystem) fireRing(t *component.Turret, def *defs.WeaponDefinition, level defs.WeaponLevel, damageMult float64) []*component.Projectile {
	angle := t.LastAngle + config.MegaTurretSpiralStep
	step := 2 * math.Pi / config.MegaTurretRing
	out := make([]*component.Projectile, 0, config.MegaTurretRing)
	for i := 0; i < config.MegaTurretRing; i++ {
		out = append(out, &component.Projectile{
			Position:   t.Position,
			Size:       config.MegaTurretProjectileSz,
			Velocity:   utils.FromAngle(angle+float64(i)*step, level.ProjectileSpeed),
			Damage:     level.Damage * damageMult,
			Knockback:  level.Knockback,
			LifespanMs: config.MegaTurretProjectileTTL,
			Color:      "cyan",
			WeaponID:   def.ID,
			Piercing:   true,
		})
	}
	t.LastAngle = angle
	return out
}
