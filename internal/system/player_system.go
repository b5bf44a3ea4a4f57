// internal/system/player_system.go
package system

import (
	"log"
	"math"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/entity"
	"go-survivor/internal/event"
	"go-survivor/pkg/utils"
)

// PlayerSystem управляет движением, шкалой героического умения и опытом игрока.
type PlayerSystem struct {
	eventDispatcher *event.Dispatcher
}

func NewPlayerSystem(eventDispatcher *event.Dispatcher) *PlayerSystem {
	return &PlayerSystem{eventDispatcher: eventDispatcher}
}

// Update двигает игрока по вектору ввода и ведёт таймер героического умения.
func (s *PlayerSystem) Update(w *entity.ECS, input component.InputState) {
	p := w.Player
	if p == nil {
		return
	}

	dir := utils.Normalize(input.Move)
	p.Position = p.Position.Add(dir.Scale(p.Stats.MoveSpeed))
	p.Velocity = dir

	p.AddHeroicGauge(config.TickMs / 1000 * config.HeroicGaugePerSecond)
	if p.HeroicActive {
		p.HeroicRemainingMs -= config.TickMs
		if p.HeroicRemainingMs <= 0 {
			p.HeroicActive = false
			p.HeroicRemainingMs = 0
		}
	}

	w.Camera.Position = p.Position
}

// GainExperience начисляет опыт и повышает уровень столько раз, сколько позволяет опыт.
// Возвращает число полученных уровней.
func (s *PlayerSystem) GainExperience(w *entity.ECS, amount float64) int {
	p := w.Player
	if p == nil || amount <= 0 {
		return 0
	}
	p.XP += amount
	gained := 0
	for p.XPToNextLevel > 0 && p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = math.Floor(p.XPToNextLevel * config.XPGrowth)
		gained++
		s.eventDispatcher.Enqueue(event.Event{Type: event.LevelUp, Data: p.Level})
	}
	if gained > 0 {
		w.PendingLevelUps += gained
		w.LevelsGained += gained
		log.Printf("Player reached level %d (%d pending)", p.Level, w.PendingLevelUps)
	}
	return gained
}
