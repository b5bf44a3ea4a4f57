// internal/defs/weapons.go
package defs

// WeaponLevel is one row of a weapon's per-level stat table.
// Optional fields are zero when the level does not use them.
type WeaponLevel struct {
	Level           int     `json:"level"`
	Damage          float64 `json:"damage"`
	CooldownMs      float64 `json:"cooldown_ms"`
	Projectiles     int     `json:"projectiles"`
	ProjectileSpeed float64 `json:"projectile_speed"`
	Description     string  `json:"description"`

	ExplosionDamage float64 `json:"explosion_damage,omitempty"`
	ExplosionRadius float64 `json:"explosion_radius,omitempty"`

	MaxDeployed          int     `json:"max_deployed,omitempty"`
	TurretLifespanMs     float64 `json:"turret_lifespan_ms,omitempty"`
	TurretFireCooldownMs float64 `json:"turret_fire_cooldown_ms,omitempty"`

	Knockback float64 `json:"knockback,omitempty"`

	HPRegen         float64 `json:"hp_regen,omitempty"`
	RegenIntervalMs float64 `json:"regen_interval_ms,omitempty"`

	AuraRadius float64 `json:"aura_radius,omitempty"`
	AuraDPS    float64 `json:"aura_dps,omitempty"`
}

// IsPassiveRegen reports whether the level heals the player on its own interval.
func (l WeaponLevel) IsPassiveRegen() bool {
	return l.HPRegen > 0 && l.RegenIntervalMs > 0
}

// WeaponDefinition holds all the static data for a weapon.
type WeaponDefinition struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Icon   string         `json:"icon"`
	Fire   FireBehavior   `json:"fire,omitempty"`
	Deploy DeployBehavior `json:"deploy,omitempty"`

	// Companion weapons keep a single live set of projectiles.
	Companion bool `json:"companion,omitempty"`
	// Exploding weapons make lethal hits detonate the victim.
	Exploding bool `json:"exploding,omitempty"`
	// Offerable weapons may appear as new weapons on level-up.
	Offerable bool `json:"offerable,omitempty"`

	InitialCooldownMs    *float64 `json:"initial_cooldown_ms,omitempty"`
	ProjectileSize       float64  `json:"projectile_size,omitempty"`
	ProjectileLifespanMs float64  `json:"projectile_lifespan_ms,omitempty"`
	Piercing             bool     `json:"piercing,omitempty"`
	Color                string   `json:"color,omitempty"`

	Levels []WeaponLevel `json:"levels"`
}

// MaxLevel returns the number of levels in the stat table.
func (w *WeaponDefinition) MaxLevel() int {
	return len(w.Levels)
}

// Level returns the stat row for a 1-based level, clamped to the table.
func (w *WeaponDefinition) Level(level int) WeaponLevel {
	if level < 1 {
		level = 1
	}
	if level > len(w.Levels) {
		level = len(w.Levels)
	}
	return w.Levels[level-1]
}

// StartingCooldown is the cooldown a freshly acquired weapon begins with.
func (w *WeaponDefinition) StartingCooldown() float64 {
	if w.InitialCooldownMs != nil {
		return *w.InitialCooldownMs
	}
	return w.Levels[0].CooldownMs
}

// AuraLevel reports whether the given level defines an aura.
func (w *WeaponDefinition) AuraLevel(level int) (WeaponLevel, bool) {
	l := w.Level(level)
	return l, l.AuraRadius > 0
}
