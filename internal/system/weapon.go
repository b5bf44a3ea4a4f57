// internal/system/weapon.go
package system

import (
	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/entity"
	"go-survivor/pkg/utils"
)

// WeaponSystem ведёт перезарядку оружия игрока, стреляет и ставит турели.
type WeaponSystem struct {
	lib      *defs.Library
	registry *WeaponRegistry
	rng      Random
}

func NewWeaponSystem(lib *defs.Library, registry *WeaponRegistry, rng Random) *WeaponSystem {
	return &WeaponSystem{
		lib:      lib,
		registry: registry,
		rng:      rng,
	}
}

// Update продвигает все таймеры оружия на один тик.
// duplicate включает копирование каждого выпущенного снаряда.
func (s *WeaponSystem) Update(w *entity.ECS, char *defs.CharacterDefinition, aim utils.Vector2D, duplicate bool) {
	p := w.Player
	if p == nil {
		return
	}

	s.updatePassives(p)

	for i := range p.Weapons {
		pw := &p.Weapons[i]
		pw.CooldownMs -= config.TickMs
		if pw.CooldownMs > 0 {
			continue
		}

		def := s.lib.MustWeapon(pw.ID)
		level := def.Level(pw.Level)
		cooldown := level.CooldownMs
		if p.HeroicActive && char != nil {
			if o := char.HeroicCooldownOverride; o != nil && o.WeaponID == pw.ID {
				cooldown = o.CooldownMs
			}
		}

		ctx := FireContext{
			Player:  p,
			Enemies: w.Enemies,
			Weapon:  def,
			Level:   level,
			Aim:     aim,
			NowMs:   w.ElapsedMs,
			RNG:     s.rng,
		}

		if def.Deploy != defs.DeployNone {
			s.deploy(w, ctx)
		}
		if def.Fire != defs.FireNone {
			fired := s.registry.Fire(def.Fire)(ctx)
			if def.Companion {
				w.Projectiles = entity.Filter(w.Projectiles, func(pr *component.Projectile) bool {
					return pr.WeaponID != def.ID
				})
			}
			s.addProjectiles(w, fired, duplicate)
		}

		pw.CooldownMs = cooldown
	}
}

// updatePassives лечит игрока оружием с собственным интервалом регенерации.
func (s *WeaponSystem) updatePassives(p *component.Player) {
	heal := 0.0
	for i := range p.Weapons {
		pw := &p.Weapons[i]
		level := s.lib.MustWeapon(pw.ID).Level(pw.Level)
		if !level.IsPassiveRegen() {
			continue
		}
		if pw.PassiveCooldownMs == 0 {
			pw.PassiveCooldownMs = level.RegenIntervalMs
		}
		pw.PassiveCooldownMs -= config.TickMs
		if pw.PassiveCooldownMs <= 0 {
			heal += level.HPRegen
			pw.PassiveCooldownMs = level.RegenIntervalMs
		}
	}
	if heal > 0 {
		p.Heal(heal)
	}
}

func (s *WeaponSystem) deploy(w *entity.ECS, ctx FireContext) {
	maxDeployed := ctx.Level.MaxDeployed
	if maxDeployed <= 0 {
		maxDeployed = config.DefaultMaxDeployed
	}
	deployed := 0
	for _, t := range w.Turrets {
		if t.WeaponID == ctx.Weapon.ID && !t.Mega {
			deployed++
		}
	}
	if deployed >= maxDeployed {
		return
	}
	t := s.registry.Deploy(ctx.Weapon.Deploy)(ctx)
	t.Position = ctx.Player.Position
	w.AddTurret(t)
}

func (s *WeaponSystem) addProjectiles(w *entity.ECS, fired []*component.Projectile, duplicate bool) {
	for _, pr := range fired {
		w.AddProjectile(pr)
	}
	if !duplicate {
		return
	}
	for _, pr := range fired {
		if pr.Motion == component.MotionAnchored {
			continue
		}
		dup := *pr
		dup.Position = pr.Position.Add(utils.Vector2D{
			X: s.rng.Range(-config.DuplicateJitter, config.DuplicateJitter),
			Y: s.rng.Range(-config.DuplicateJitter, config.DuplicateJitter),
		})
		if dup.Motion == component.MotionSpiral {
			dup.SpawnPosition = dup.Position
		}
		w.AddProjectile(&dup)
	}
}
