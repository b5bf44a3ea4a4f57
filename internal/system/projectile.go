// internal/system/projectile.go
package system

import (
	"math"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/entity"
	"go-survivor/pkg/utils"
)

// ProjectileSystem двигает снаряды и удаляет истёкшие.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{}
}

// Update сдвигает каждый снаряд по его стратегии движения.
// companionSpeed множитель скорости самонаводящихся снарядов.
func (s *ProjectileSystem) Update(w *entity.ECS, companionSpeed float64) {
	var playerPos utils.Vector2D
	if w.Player != nil {
		playerPos = w.Player.Position
	}

	for _, p := range w.Projectiles {
		switch p.Motion {
		case component.MotionLinear:
			p.Position = p.Position.Add(p.Velocity)
		case component.MotionOrbit:
			angle := p.Velocity.X + p.Velocity.Y/config.OrbitAngularDivisor
			p.Position = playerPos.Add(utils.FromAngle(angle, config.OrbitRadius))
			p.Velocity.X = angle
		case component.MotionSerpentine:
			s.moveSerpentine(p, w.ElapsedMs)
		case component.MotionHoming:
			s.moveHoming(p, w, playerPos, companionSpeed)
		case component.MotionSpiral:
			p.CurrentAngle += p.Velocity.X * config.TickMs / 1000
			ticks := (w.ElapsedMs - p.SpawnMs) / config.TickMs
			radius := ticks * p.Velocity.Y * config.TickMs / 1000
			p.Position = p.SpawnPosition.Add(utils.FromAngle(p.CurrentAngle, radius))
		case component.MotionAnchored:
			p.Position = playerPos
		default:
			panic("unknown projectile motion: " + p.Motion.String())
		}
		p.LifespanMs -= config.TickMs
	}

	w.Projectiles = entity.Filter(w.Projectiles, func(p *component.Projectile) bool {
		return p.LifespanMs > 0
	})
}

// moveSerpentine добавляет к прямому полёту приращение синусоиды поперёк направления.
func (s *ProjectileSystem) moveSerpentine(p *component.Projectile, nowMs float64) {
	t := nowMs - p.SpawnMs
	perp := utils.Normalize(utils.Vector2D{X: -p.Velocity.Y, Y: p.Velocity.X})
	a, f := config.SerpentineAmplitude, config.SerpentineFrequency
	delta := a*math.Sin(t*f) - a*math.Sin((t-config.TickMs)*f)
	p.Position = p.Position.Add(p.Velocity).Add(perp.Scale(delta))
}

// moveHoming ведёт компаньона к ближайшему врагу, а без цели кружит возле игрока.
func (s *ProjectileSystem) moveHoming(p *component.Projectile, w *entity.ECS, playerPos utils.Vector2D, speedMult float64) {
	var target utils.Vector2D
	if e := findNearestEnemy(w.Enemies, p.Position, config.CompanionSeekRadius); e != nil {
		target = e.Position
	} else {
		target = playerPos.Add(utils.FromAngle(w.ElapsedMs/1000, config.CompanionIdleRadius))
	}
	p.Position = utils.StepToward(p.Position, target, p.Velocity.Y*speedMult)
}
