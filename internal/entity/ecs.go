// internal/entity/ecs.go
package entity

import (
	"go-survivor/internal/component"
	"go-survivor/internal/types"
)

// ECS снимок всего игрового мира на текущий тик.
// Коллекции хранятся в порядке создания: этот порядок определяет
// порядок разрешения столкновений.
type ECS struct {
	ElapsedMs     float64
	NextID        types.EntityID
	NextWaveIndex int
	Status        component.GameStatus

	Player        *component.Player
	Camera        component.Camera
	Enemies       []*component.Enemy
	Projectiles   []*component.Projectile
	Turrets       []*component.Turret
	XPOrbs        []*component.ExperienceOrb
	CurrencyOrbs  []*component.CurrencyOrb
	Explosions    []*component.ExplosionEffect
	PendingSpawns []component.PendingSpawn

	// PendingLevelUps число ещё не выбранных повышений уровня.
	PendingLevelUps int
	// LevelsGained повышения, полученные в текущем тике.
	LevelsGained int
	Options      component.LevelUpOptions

	ReviveUsed     bool
	Kills          int
	BankedCurrency int // часть SessionCurrency, уже записанная в сохранение
}

// NewECS создаёт пустой мир.
func NewECS() *ECS {
	return &ECS{
		NextID: 1,
		Status: component.StatusStartScreen,
	}
}

// NewEntity выдаёт следующий ID.
func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// Clone делает глубокую копию мира. Тик работает над копией,
// а зафиксированный мир заменяется только после успешного завершения.
func (ecs *ECS) Clone() *ECS {
	c := *ecs
	if ecs.Player != nil {
		p := *ecs.Player
		p.Weapons = append([]component.PlayerWeapon(nil), ecs.Player.Weapons...)
		c.Player = &p
	}
	c.Enemies = cloneAll(ecs.Enemies)
	c.Projectiles = cloneAll(ecs.Projectiles)
	c.Turrets = cloneAll(ecs.Turrets)
	c.XPOrbs = cloneAll(ecs.XPOrbs)
	c.CurrencyOrbs = cloneAll(ecs.CurrencyOrbs)
	c.Explosions = cloneAll(ecs.Explosions)
	c.PendingSpawns = append([]component.PendingSpawn(nil), ecs.PendingSpawns...)
	c.Options.Attributes = append([]component.LevelUpOption(nil), ecs.Options.Attributes...)
	c.Options.Weapons = append([]component.LevelUpOption(nil), ecs.Options.Weapons...)
	return &c
}

func cloneAll[T any](src []*T) []*T {
	if src == nil {
		return nil
	}
	dst := make([]*T, len(src))
	for i, v := range src {
		cp := *v
		dst[i] = &cp
	}
	return dst
}

// AddEnemy регистрирует врага с новым ID.
func (ecs *ECS) AddEnemy(e *component.Enemy) {
	e.ID = ecs.NewEntity()
	ecs.Enemies = append(ecs.Enemies, e)
}

// AddProjectile регистрирует снаряд с новым ID.
func (ecs *ECS) AddProjectile(p *component.Projectile) {
	p.ID = ecs.NewEntity()
	ecs.Projectiles = append(ecs.Projectiles, p)
}

// AddTurret регистрирует турель с новым ID.
func (ecs *ECS) AddTurret(t *component.Turret) {
	t.ID = ecs.NewEntity()
	ecs.Turrets = append(ecs.Turrets, t)
}

// AddXPOrb регистрирует сферу опыта.
func (ecs *ECS) AddXPOrb(o *component.ExperienceOrb) {
	o.ID = ecs.NewEntity()
	ecs.XPOrbs = append(ecs.XPOrbs, o)
}

// AddCurrencyOrb регистрирует сферу валюты.
func (ecs *ECS) AddCurrencyOrb(o *component.CurrencyOrb) {
	o.ID = ecs.NewEntity()
	ecs.CurrencyOrbs = append(ecs.CurrencyOrbs, o)
}

// RemoveProjectiles удаляет снаряды с указанными ID.
func (ecs *ECS) RemoveProjectiles(ids map[types.EntityID]struct{}) {
	if len(ids) == 0 {
		return
	}
	kept := ecs.Projectiles[:0]
	for _, p := range ecs.Projectiles {
		if _, drop := ids[p.ID]; !drop {
			kept = append(kept, p)
		}
	}
	clearTail(ecs.Projectiles, len(kept))
	ecs.Projectiles = kept
}

// Filter оставляет в срезе элементы, для которых keep вернул true.
func Filter[T any](items []*T, keep func(*T) bool) []*T {
	kept := items[:0]
	for _, it := range items {
		if keep(it) {
			kept = append(kept, it)
		}
	}
	clearTail(items, len(kept))
	return kept
}

func clearTail[T any](items []*T, from int) {
	for i := from; i < len(items); i++ {
		items[i] = nil
	}
}
