// internal/config/config.go
package config

import (
	"image/color"
	"time"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720

	TickInterval = 50 * time.Millisecond
	TickMs       = 50.0 // длительность тика в мс игрового времени

	PlayerSize = 40.0
	OrbSize    = 12.0

	XPBase   = 100
	XPGrowth = 1.2

	FlashDurationMs = 150.0
	HitGraceMs      = 500.0 // неуязвимость после удара
	NeverHitMs      = -1e9  // отметка "ещё не получал урон"

	HeroicGaugePerSecond = 1.0
	HeroicGaugePerKill   = 8.0

	LevelUpWeaponChoices = 4
)

// Движение снарядов
const (
	OrbitRadius          = 100.0
	OrbitAngularDivisor  = 50.0
	SerpentineAmplitude  = 15.0
	SerpentineFrequency  = 0.01
	CompanionSeekRadius  = 400.0
	CompanionIdleRadius  = 60.0
	DuplicateJitter      = 10.0
	DefaultProjectileTTL = 3000.0

	ConeSpread       = 0.39269908169872414 // π/8
	SerpentineSpread = 0.19634954084936207 // π/16
	CulinarySpread   = 0.2617993877991494  // π/12
	CulinaryMinSize  = 0.25
	CulinarySizeSpan = 3.75

	SpiralAngularSpeed = 3.0  // рад/с
	SpiralGrowthFactor = 30.0 // px/с на единицу скорости снаряда

	CardDisplayTTL = 1000.0
	CardRanks      = 13
	CardMidRank    = 7.0
	CardWidth      = 12.0
	CardHeight     = 18.0
)

// Турели
const (
	TurretDetectRadius          = 400.0
	DefaultTurretFireCooldownMs = 1000.0
	TurretProjectileSize        = 14.0
	TurretProjectileTTL         = 2000.0
	DefaultMaxDeployed          = 1

	MegaTurretRing          = 16
	MegaTurretSpiralStep    = 0.4
	MegaTurretRefireMs      = 150.0
	MegaTurretProjectileTTL = 1500.0
	MegaTurretProjectileSz  = 18.0
	MegaTurretSize          = 45.0
	MegaTurretLevel         = 5
	MegaTurretWeaponID      = "deployable_turret"
	TurretSize              = 30.0
)

// Героические умения
const (
	HeroicBlastSizeFactor = 7.0
	HeroicBlastSpeed      = 6.0
	HeroicBlastDamage     = 250.0
	HeroicBlastTTL        = 5000.0
	HeroicBlastKnockback  = 15.0
)

// Бой и награды
const (
	AuraKnockback = 0.5

	SpawnRadius = ScreenWidth/2 + 50 // за краем экрана

	OrbSpeed        = 10.0
	OrbMagnetRadius = 150.0

	ExplosionEffectMs = 300.0

	CurrencyBase            = 5
	CurrencyPerLevel        = 1
	CurrencyPerMinute       = 2
	EliteCurrencyMultiplier = 2
	DefaultDropChance       = 0.1
	EliteDropChance         = 0.5

	ReviveInvulnerabilityMs = 3000.0
	ReviveClearRadius       = 400.0
)

// Атрибуты уровня
const (
	MightDamageFactor   = 1.1
	WillpowerDefense    = 5.0
	InsightMaxHPFactor  = 1.2
	DexteritySpeedBonus = 1.05
)

// Мета-улучшения
const (
	UpgradePercentPerLevel = 0.05
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	GridColor       = color.RGBA{35, 35, 50, 255}
	PlayerColor     = color.RGBA{70, 130, 180, 255}
	FlashColor      = color.RGBA{255, 255, 255, 255}
	TurretColor     = color.RGBA{150, 150, 160, 255}
	MegaTurretColor = color.RGBA{0, 200, 220, 255}
	XPOrbColor      = color.RGBA{80, 200, 255, 255}
	CurrencyColor   = color.RGBA{255, 215, 0, 255}
	ExplosionColor  = color.RGBA{255, 120, 40, 160}
	AuraColor       = color.RGBA{255, 255, 160, 60}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	TextDarkColor   = color.RGBA{20, 20, 30, 255}
	HPBarColor      = color.RGBA{220, 60, 60, 220}
	XPBarColor      = color.RGBA{70, 100, 120, 220}
	HeroicBarColor  = color.RGBA{194, 178, 128, 255}
	OverlayColor    = color.RGBA{0, 0, 0, 170}
	StrokeWidth     = 2.0
)
