// internal/defs/types.go
package defs

// FireBehavior names the projectile-producing behaviour of a weapon.
type FireBehavior string

const (
	FireNone             FireBehavior = ""
	FireNearestMissile   FireBehavior = "nearest_missile"
	FireOrbit            FireBehavior = "orbit"
	FireCone             FireBehavior = "cone"
	FireSeekingExplosive FireBehavior = "seeking_explosive"
	FireSerpentine       FireBehavior = "serpentine"
	FireCompanion        FireBehavior = "companion"
	FireCulinary         FireBehavior = "culinary"
	FireCardDeck         FireBehavior = "card_deck"
	FireGoldenSpiral     FireBehavior = "golden_spiral"
)

// DeployBehavior names the turret-producing behaviour of a weapon.
type DeployBehavior string

const (
	DeployNone   DeployBehavior = ""
	DeployTurret DeployBehavior = "turret"
)

// HeroicKind selects the effect of a character's heroic skill.
type HeroicKind string

const (
	HeroicPiercingBlast HeroicKind = "piercing_blast"
	HeroicEmpower       HeroicKind = "empower"
	HeroicPurge         HeroicKind = "purge"
	HeroicMegaTurret    HeroicKind = "mega_turret"
	HeroicSanctuary     HeroicKind = "sanctuary"
)

var knownFire = map[FireBehavior]bool{
	FireNone: true, FireNearestMissile: true, FireOrbit: true, FireCone: true,
	FireSeekingExplosive: true, FireSerpentine: true, FireCompanion: true,
	FireCulinary: true, FireCardDeck: true, FireGoldenSpiral: true,
}

var knownDeploy = map[DeployBehavior]bool{
	DeployNone: true, DeployTurret: true,
}

var knownHeroic = map[HeroicKind]bool{
	HeroicPiercingBlast: true, HeroicEmpower: true, HeroicPurge: true,
	HeroicMegaTurret: true, HeroicSanctuary: true,
}

// IsKnown reports whether the heroic kind has an implementation.
func (k HeroicKind) IsKnown() bool {
	return knownHeroic[k]
}
