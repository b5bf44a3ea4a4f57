// internal/defs/characters.go
package defs

// BaseStats are the starting attributes of a character.
type BaseStats struct {
	MaxHP                     float64 `json:"max_hp"`
	MoveSpeed                 float64 `json:"move_speed"`
	Defense                   float64 `json:"defense"`
	DamageMultiplier          float64 `json:"damage_multiplier"`
	ProjectileSpeedMultiplier float64 `json:"projectile_speed_multiplier"`
	XPMultiplier              float64 `json:"xp_multiplier"`
}

// CooldownOverride forces a weapon's cooldown while the heroic skill is active.
type CooldownOverride struct {
	WeaponID   string  `json:"weapon_id"`
	CooldownMs float64 `json:"cooldown_ms"`
}

// CharacterDefinition holds all the static data for a playable character.
type CharacterDefinition struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	InitialStats          BaseStats  `json:"initial_stats"`
	InitialWeaponID       string     `json:"initial_weapon_id,omitempty"` // empty: chosen at session start
	HeroicGaugeMax        float64    `json:"heroic_gauge_max"`
	HeroicSkillDurationMs float64    `json:"heroic_skill_duration_ms"`
	Heroic                HeroicKind `json:"heroic"`

	HeroicCooldownOverride         *CooldownOverride `json:"heroic_cooldown_override,omitempty"`
	HeroicCompanionSpeedMultiplier float64           `json:"heroic_companion_speed_multiplier,omitempty"`
}

// CompanionSpeedMultiplier returns the companion speed factor while the heroic skill is active.
func (c *CharacterDefinition) CompanionSpeedMultiplier() float64 {
	if c.HeroicCompanionSpeedMultiplier > 0 {
		return c.HeroicCompanionSpeedMultiplier
	}
	return 1
}
