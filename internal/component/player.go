// internal/component/player.go
package component

import "go-survivor/pkg/utils"

// PlayerStats изменяемые характеристики игрока.
type PlayerStats struct {
	MaxHP                     float64
	CurrentHP                 float64
	MoveSpeed                 float64
	Defense                   float64
	DamageMultiplier          float64
	ProjectileSpeedMultiplier float64
	XPMultiplier              float64
}

// PlayerWeapon экземпляр оружия, которым владеет игрок.
type PlayerWeapon struct {
	ID                string
	Level             int
	CooldownMs        float64 // до следующего срабатывания
	PassiveCooldownMs float64 // до следующей регенерации, 0 если не задано
}

// Player единственный управляемый персонаж сессии.
type Player struct {
	Position    utils.Vector2D
	Size        float64
	Velocity    utils.Vector2D
	Stats       PlayerStats
	CharacterID string

	Level         int
	XP            float64
	XPToNextLevel float64

	Weapons []PlayerWeapon

	LastHitMs           float64
	InvulnerableUntilMs float64

	HeroicGauge       float64
	HeroicGaugeMax    float64
	HeroicActive      bool
	HeroicRemainingMs float64

	SessionCurrency int
}

// Weapon возвращает оружие игрока по ID.
func (p *Player) Weapon(id string) (*PlayerWeapon, bool) {
	for i := range p.Weapons {
		if p.Weapons[i].ID == id {
			return &p.Weapons[i], true
		}
	}
	return nil, false
}

// Heal восстанавливает здоровье, не превышая максимум.
func (p *Player) Heal(amount float64) {
	p.Stats.CurrentHP = min(p.Stats.MaxHP, p.Stats.CurrentHP+amount)
}

// AddHeroicGauge пополняет шкалу героического умения с ограничением сверху.
func (p *Player) AddHeroicGauge(amount float64) {
	p.HeroicGauge = max(0, min(p.HeroicGaugeMax, p.HeroicGauge+amount))
}

// IsInvulnerable сообщает, защищён ли игрок явной неуязвимостью.
func (p *Player) IsInvulnerable(nowMs float64) bool {
	return nowMs < p.InvulnerableUntilMs
}
