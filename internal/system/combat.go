// internal/system/combat.go
package system

import (
	"math"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/entity"
	"go-survivor/internal/event"
	"go-survivor/internal/types"
	"go-survivor/pkg/utils"
)

// CombatResult итог разрешения столкновений за тик.
type CombatResult struct {
	Kills       int
	DamageTaken float64
	PlayerDied  bool
}

// CombatSystem сводит урон от ауры, снарядов и взрывов, убирает убитых врагов,
// двигает выживших и наносит контактный урон игроку.
type CombatSystem struct {
	lib             *defs.Library
	eventDispatcher *event.Dispatcher
	rng             Random
	aura            *AuraSystem
}

func NewCombatSystem(lib *defs.Library, eventDispatcher *event.Dispatcher, rng Random) *CombatSystem {
	return &CombatSystem{
		lib:             lib,
		eventDispatcher: eventDispatcher,
		rng:             rng,
		aura:            NewAuraSystem(lib),
	}
}

// explosion взрыв убитого врага.
type explosion struct {
	position utils.Vector2D
	radius   float64
	damage   float64
	weaponID string
}

func (s *CombatSystem) Update(w *entity.ECS) CombatResult {
	var result CombatResult
	p := w.Player
	if p == nil {
		return result
	}

	ledger := make(DamageLedger)
	s.aura.Accumulate(w, ledger)
	s.applyProjectiles(w, ledger)
	blast, exploded := s.resolveExplosions(w, ledger)

	survivors := w.Enemies[:0]
	for _, e := range w.Enemies {
		total := ledger.Damage(e.ID) + blast[e.ID]
		if e.CurrentHP-total <= 0 {
			s.killEnemy(w, e, exploded[e.ID])
			result.Kills++
			continue
		}
		s.advanceEnemy(e, p.Position, ledger[e.ID], total, w.ElapsedMs)
		survivors = append(survivors, e)
	}
	for i := len(survivors); i < len(w.Enemies); i++ {
		w.Enemies[i] = nil
	}
	w.Enemies = survivors

	if result.Kills > 0 {
		p.AddHeroicGauge(float64(result.Kills) * config.HeroicGaugePerKill)
		w.Kills += result.Kills
	}

	result.DamageTaken, result.PlayerDied = s.applyContactDamage(w)
	return result
}

// applyProjectiles проверяет снаряды против врагов в порядке создания.
// Непробивающий снаряд поражает одного врага и удаляется.
func (s *CombatSystem) applyProjectiles(w *entity.ECS, ledger DamageLedger) {
	spent := make(map[types.EntityID]struct{})
	for _, pr := range w.Projectiles {
		if pr.Damage == 0 {
			continue
		}
		for _, e := range w.Enemies {
			if !utils.IsColliding(pr.Position, pr.Size, e.Position, e.Size) {
				continue
			}
			var push utils.Vector2D
			if pr.Knockback != 0 {
				push = utils.Direction(pr.Position, e.Position).Scale(pr.Knockback)
			}
			ledger.Entry(e.ID).Add(pr.Damage, pr.WeaponID, push)
			if !pr.Piercing {
				spent[pr.ID] = struct{}{}
				break
			}
		}
	}
	w.RemoveProjectiles(spent)
}

// resolveExplosions взрывает врагов, убитых взрывным оружием, и доводит цепочку
// до конца: враг, которого добил именно взрыв, тоже взрывается. Каждый враг взрывается не больше раза.
func (s *CombatSystem) resolveExplosions(w *entity.ECS, ledger DamageLedger) (map[types.EntityID]float64, map[types.EntityID]bool) {
	blast := make(map[types.EntityID]float64)
	exploded := make(map[types.EntityID]bool)

	var queue []explosion
	for _, e := range w.Enemies {
		entry, ok := ledger[e.ID]
		if !ok || e.CurrentHP-entry.Damage > 0 {
			continue
		}
		if weaponID, ok := s.explodingSource(entry); ok {
			exploded[e.ID] = true
			queue = append(queue, s.newExplosion(w.Player, e.Position, weaponID))
		}
	}

	for len(queue) > 0 {
		ex := queue[0]
		queue = queue[1:]
		w.Explosions = append(w.Explosions, &component.ExplosionEffect{
			Position:    ex.position,
			Radius:      ex.radius,
			RemainingMs: config.ExplosionEffectMs,
			DurationMs:  config.ExplosionEffectMs,
		})
		for _, e := range w.Enemies {
			if utils.Distance(e.Position, ex.position) >= ex.radius {
				continue
			}
			blast[e.ID] += ex.damage
			if exploded[e.ID] {
				continue
			}
			// Враг, уже убитый невзрывным уроном, не взрывается.
			if before := e.CurrentHP - ledger.Damage(e.ID); before <= 0 || before-blast[e.ID] > 0 {
				continue
			}
			exploded[e.ID] = true
			queue = append(queue, s.newExplosion(w.Player, e.Position, ex.weaponID))
		}
	}
	return blast, exploded
}

// explodingSource первое взрывное оружие среди источников урона, в порядке определений.
func (s *CombatSystem) explodingSource(entry *component.DamageEntry) (string, bool) {
	for _, id := range s.lib.WeaponOrder {
		if s.lib.Weapons[id].Exploding && entry.HasSource(id) {
			return id, true
		}
	}
	return "", false
}

// newExplosion берёт радиус и урон с уровня оружия игрока, либо с первого уровня.
func (s *CombatSystem) newExplosion(p *component.Player, at utils.Vector2D, weaponID string) explosion {
	def := s.lib.MustWeapon(weaponID)
	level := 1
	if pw, ok := p.Weapon(weaponID); ok {
		level = pw.Level
	}
	row := def.Level(level)
	return explosion{
		position: at,
		radius:   row.ExplosionRadius,
		damage:   row.ExplosionDamage * p.Stats.DamageMultiplier,
		weaponID: weaponID,
	}
}

func (s *CombatSystem) killEnemy(w *entity.ECS, e *component.Enemy, exploded bool) {
	def := s.lib.MustEnemy(e.TypeID)
	w.AddXPOrb(&component.ExperienceOrb{
		Position: e.Position,
		Size:     config.OrbSize,
		Value:    def.XP,
	})

	chance := def.DropChance
	if chance <= 0 {
		chance = config.DefaultDropChance
		if def.Elite {
			chance = config.EliteDropChance
		}
	}
	if s.rng.Chance(chance) {
		w.AddCurrencyOrb(&component.CurrencyOrb{
			Position: e.Position,
			Size:     config.OrbSize,
			Value:    float64(CurrencyValue(w.Player.Level, w.ElapsedMs, def.Elite)),
		})
	}

	s.eventDispatcher.Enqueue(event.Event{
		Type: event.EnemyKilled,
		Data: event.EnemyKilledData{TypeID: e.TypeID, Exploded: exploded},
	})
}

// advanceEnemy делает шаг к игроку с учётом отбрасывания и списывает урон.
func (s *CombatSystem) advanceEnemy(e *component.Enemy, target utils.Vector2D, entry *component.DamageEntry, damage, nowMs float64) {
	step := utils.Direction(e.Position, target).Scale(e.Speed)
	if entry != nil {
		step = step.Add(entry.Knockback)
	}
	e.Position = e.Position.Add(step)
	switch {
	case step.X < 0:
		e.Facing = component.FacingLeft
	case step.X > 0:
		e.Facing = component.FacingRight
	}
	if damage > 0 {
		e.CurrentHP -= damage
		e.LastHitMs = nowMs
	}
}

// applyContactDamage наносит игроку урон от касающихся врагов.
func (s *CombatSystem) applyContactDamage(w *entity.ECS) (float64, bool) {
	p := w.Player
	if p.IsInvulnerable(w.ElapsedMs) {
		return 0, false
	}
	total := 0.0
	for _, e := range w.Enemies {
		if utils.IsColliding(p.Position, p.Size, e.Position, e.Size) {
			total += e.Damage
		}
	}
	if total <= 0 || w.ElapsedMs <= p.LastHitMs+config.HitGraceMs {
		return 0, false
	}

	taken := math.Max(1, total-p.Stats.Defense)
	p.Stats.CurrentHP -= taken
	s.eventDispatcher.Enqueue(event.Event{Type: event.PlayerHit, Data: taken})
	if p.Stats.CurrentHP <= 0 {
		p.Stats.CurrentHP = 0
		return taken, true
	}
	p.LastHitMs = w.ElapsedMs
	return taken, false
}

// CurrencyValue стоимость монеты: растёт с уровнем игрока и минутами сессии.
func CurrencyValue(playerLevel int, elapsedMs float64, elite bool) int {
	minutes := int(elapsedMs / 60000)
	v := config.CurrencyBase + playerLevel*config.CurrencyPerLevel + minutes*config.CurrencyPerMinute
	if elite {
		v *= config.EliteCurrencyMultiplier
	}
	return v
}
