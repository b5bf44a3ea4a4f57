// internal/system/weapon_behaviors.go
package system

import (
	"fmt"
	"math"
	"strconv"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/pkg/utils"
)

// FireContext всё, что нужно поведению оружия для выстрела.
type FireContext struct {
	Player  *component.Player
	Enemies []*component.Enemy
	Weapon  *defs.WeaponDefinition
	Level   defs.WeaponLevel
	Aim     utils.Vector2D
	NowMs   float64
	RNG     Random
}

// FireFunc создаёт снаряды одного срабатывания оружия.
type FireFunc func(ctx FireContext) []*component.Projectile

// DeployFunc создаёт турель. Позицию и ID назначает вызывающий.
type DeployFunc func(ctx FireContext) *component.Turret

// WeaponRegistry неизменяемая таблица поведений по тегам из определений оружия.
type WeaponRegistry struct {
	fire   map[defs.FireBehavior]FireFunc
	deploy map[defs.DeployBehavior]DeployFunc
}

// NewWeaponRegistry создаёт реестр со всеми встроенными поведениями.
func NewWeaponRegistry() *WeaponRegistry {
	return &WeaponRegistry{
		fire: map[defs.FireBehavior]FireFunc{
			defs.FireNearestMissile:   fireNearestMissile,
			defs.FireOrbit:            fireOrbit,
			defs.FireCone:             fireCone,
			defs.FireSeekingExplosive: fireSeekingExplosive,
			defs.FireSerpentine:       fireSerpentine,
			defs.FireCompanion:        fireCompanion,
			defs.FireCulinary:         fireCulinary,
			defs.FireCardDeck:         fireCardDeck,
			defs.FireGoldenSpiral:     fireGoldenSpiral,
		},
		deploy: map[defs.DeployBehavior]DeployFunc{
			defs.DeployTurret: deployTurret,
		},
	}
}

// Fire возвращает поведение выстрела. Неизвестный тег это ошибка программиста.
func (r *WeaponRegistry) Fire(tag defs.FireBehavior) FireFunc {
	f, ok := r.fire[tag]
	if !ok {
		panic(fmt.Sprintf("%v: fire %q", defs.ErrUnknownBehavior, tag))
	}
	return f
}

// Deploy возвращает поведение установки турели.
func (r *WeaponRegistry) Deploy(tag defs.DeployBehavior) DeployFunc {
	f, ok := r.deploy[tag]
	if !ok {
		panic(fmt.Sprintf("%v: deploy %q", defs.ErrUnknownBehavior, tag))
	}
	return f
}

// Check проверяет, что у оружия есть реализация для каждого тега.
func (r *WeaponRegistry) Check(def *defs.WeaponDefinition) error {
	if def.Fire != defs.FireNone {
		if _, ok := r.fire[def.Fire]; !ok {
			return fmt.Errorf("weapon %s: %w: fire %q", def.ID, defs.ErrUnknownBehavior, def.Fire)
		}
	}
	if def.Deploy != defs.DeployNone {
		if _, ok := r.deploy[def.Deploy]; !ok {
			return fmt.Errorf("weapon %s: %w: deploy %q", def.ID, defs.ErrUnknownBehavior, def.Deploy)
		}
	}
	return nil
}

// newProjectile заполняет общие поля снаряда из определения оружия.
func (ctx FireContext) newProjectile(pos, vel utils.Vector2D) *component.Projectile {
	ttl := ctx.Weapon.ProjectileLifespanMs
	if ttl <= 0 {
		ttl = config.DefaultProjectileTTL
	}
	return &component.Projectile{
		Position:   pos,
		Size:       ctx.Weapon.ProjectileSize,
		Velocity:   vel,
		Damage:     ctx.Level.Damage * ctx.Player.Stats.DamageMultiplier,
		LifespanMs: ttl,
		Color:      ctx.Weapon.Color,
		WeaponID:   ctx.Weapon.ID,
		Piercing:   ctx.Weapon.Piercing,
		Knockback:  ctx.Level.Knockback,
		SpawnMs:    ctx.NowMs,
	}
}

func (ctx FireContext) speed() float64 {
	return ctx.Level.ProjectileSpeed * ctx.Player.Stats.ProjectileSpeedMultiplier
}

// baseDirection: прицел, затем направление движения, затем ближайший враг, иначе вправо.
func (ctx FireContext) baseDirection() utils.Vector2D {
	if !ctx.Aim.IsZero() {
		return utils.Normalize(ctx.Aim)
	}
	if dir := utils.Normalize(ctx.Player.Velocity); !dir.IsZero() {
		return dir
	}
	if e := findNearestEnemy(ctx.Enemies, ctx.Player.Position, 0); e != nil {
		if dir := utils.Direction(ctx.Player.Position, e.Position); !dir.IsZero() {
			return dir
		}
	}
	return utils.Vector2D{X: 1}
}

func fireNearestMissile(ctx FireContext) []*component.Projectile {
	target := findNearestEnemy(ctx.Enemies, ctx.Player.Position, 0)
	if target == nil {
		return nil
	}
	vel := utils.Direction(ctx.Player.Position, target.Position).Scale(ctx.speed())
	out := make([]*component.Projectile, 0, ctx.Level.Projectiles)
	for i := 0; i < ctx.Level.Projectiles; i++ {
		out = append(out, ctx.newProjectile(ctx.Player.Position, vel))
	}
	return out
}

func fireOrbit(ctx FireContext) []*component.Projectile {
	n := ctx.Level.Projectiles
	if n <= 0 {
		return nil
	}
	step := 2 * math.Pi / float64(n)
	out := make([]*component.Projectile, 0, n)
	for i := 0; i < n; i++ {
		// Velocity.X хранит угол, Velocity.Y угловую скорость
		p := ctx.newProjectile(ctx.Player.Position, utils.Vector2D{X: float64(i) * step, Y: ctx.speed()})
		p.Motion = component.MotionOrbit
		p.LifespanMs = ctx.Level.CooldownMs - 100
		out = append(out, p)
	}
	return out
}

func fireCone(ctx FireContext) []*component.Projectile {
	n := ctx.Level.Projectiles
	base := ctx.baseDirection().Angle()
	angles := make([]float64, 0, n)
	if n == 1 {
		angles = append(angles, base)
	} else {
		for i := 0; i < n; i++ {
			angles = append(angles, base-config.ConeSpread+float64(i)*(2*config.ConeSpread/float64(n-1)))
		}
	}
	out := make([]*component.Projectile, 0, n)
	for _, a := range angles {
		vel := utils.FromAngle(a, ctx.speed())
		out = append(out, ctx.newProjectile(ctx.Player.Position.Add(vel.Scale(2)), vel))
	}
	return out
}

func fireSeekingExplosive(ctx FireContext) []*component.Projectile {
	targets := findNearestEnemies(ctx.Enemies, ctx.Player.Position, ctx.Level.Projectiles)
	out := make([]*component.Projectile, 0, len(targets))
	for _, t := range targets {
		vel := utils.Direction(ctx.Player.Position, t.Position).Scale(ctx.speed())
		out = append(out, ctx.newProjectile(ctx.Player.Position, vel))
	}
	return out
}

func fireSerpentine(ctx FireContext) []*component.Projectile {
	n := ctx.Level.Projectiles
	base := ctx.baseDirection().Angle()
	out := make([]*component.Projectile, 0, n)
	for i := 0; i < n; i++ {
		offset := (float64(i) - float64(n-1)/2) * config.SerpentineSpread
		p := ctx.newProjectile(ctx.Player.Position, utils.FromAngle(base+offset, ctx.speed()))
		p.Motion = component.MotionSerpentine
		out = append(out, p)
	}
	return out
}

// fireCompanion возвращает полный набор компаньонов; старые заменяет WeaponSystem.
func fireCompanion(ctx FireContext) []*component.Projectile {
	n := ctx.Level.Projectiles
	out := make([]*component.Projectile, 0, n)
	for i := 0; i < n; i++ {
		pos := ctx.Player.Position.Add(utils.Vector2D{
			X: ctx.RNG.Range(-config.DuplicateJitter, config.DuplicateJitter),
			Y: ctx.RNG.Range(-config.DuplicateJitter, config.DuplicateJitter),
		})
		// скорость в Velocity.Y
		p := ctx.newProjectile(pos, utils.Vector2D{Y: ctx.speed()})
		p.Motion = component.MotionHoming
		out = append(out, p)
	}
	return out
}

// fireCulinary бросает блюда случайного размера только по явному прицелу.
func fireCulinary(ctx FireContext) []*component.Projectile {
	if ctx.Aim.IsZero() {
		return nil
	}
	base := ctx.Aim.Angle()
	out := make([]*component.Projectile, 0, ctx.Level.Projectiles)
	for i := 0; i < ctx.Level.Projectiles; i++ {
		sizeMult := config.CulinaryMinSize + ctx.RNG.Float64()*config.CulinarySizeSpan
		speed := ctx.speed() * ctx.RNG.Range(0.8, 1.2)
		angle := base
		if i > 0 {
			angle += (ctx.RNG.Float64() - 0.5) * config.CulinarySpread
		}
		p := ctx.newProjectile(ctx.Player.Position, utils.FromAngle(angle, speed))
		p.Size = config.PlayerSize * sizeMult
		p.Damage *= sizeMult
		out = append(out, p)
	}
	return out
}

var (
	cardRanks = [config.CardRanks]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	cardSuits = [4]string{"S", "H", "D", "C"}
)

// fireCardDeck тянет карту: её ранг масштабирует урон кольца карт.
// Вытянутая карта висит над игроком и урона не наносит.
func fireCardDeck(ctx FireContext) []*component.Projectile {
	rank := ctx.RNG.Intn(config.CardRanks) + 1
	suit := cardSuits[ctx.RNG.Intn(len(cardSuits))]

	display := ctx.newProjectile(ctx.Player.Position, utils.Vector2D{})
	display.Motion = component.MotionAnchored
	display.Size = 0
	display.Damage = 0
	display.Width = config.CardWidth
	display.Height = config.CardHeight
	display.LifespanMs = config.CardDisplayTTL
	display.DisplayText = cardRanks[rank-1] + suit

	out := []*component.Projectile{display}
	n := ctx.Level.Projectiles
	if n <= 0 {
		return out
	}
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		p := ctx.newProjectile(ctx.Player.Position, utils.FromAngle(float64(i)*step, ctx.speed()))
		p.Damage *= float64(rank) / config.CardMidRank
		p.Width = config.CardWidth
		p.Height = config.CardHeight
		p.DisplayText = strconv.Itoa(rank)
		out = append(out, p)
	}
	return out
}

// fireGoldenSpiral выпускает рукава спирали, раскручивающиеся от точки выстрела.
func fireGoldenSpiral(ctx FireContext) []*component.Projectile {
	n := ctx.Level.Projectiles
	if n <= 0 {
		return nil
	}
	step := 2 * math.Pi / float64(n)
	out := make([]*component.Projectile, 0, n)
	for i := 0; i < n; i++ {
		p := ctx.newProjectile(ctx.Player.Position, utils.Vector2D{
			X: config.SpiralAngularSpeed,
			Y: ctx.speed() * config.SpiralGrowthFactor,
		})
		p.Motion = component.MotionSpiral
		p.SpawnPosition = ctx.Player.Position
		p.CurrentAngle = float64(i) * step
		out = append(out, p)
	}
	return out
}

func deployTurret(ctx FireContext) *component.Turret {
	return &component.Turret{
		Position:    ctx.Player.Position,
		Size:        config.TurretSize,
		LifespanMs:  ctx.Level.TurretLifespanMs,
		WeaponID:    ctx.Weapon.ID,
		WeaponLevel: ctx.Level.Level,
	}
}
