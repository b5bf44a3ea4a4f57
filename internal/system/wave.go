// internal/system/wave.go
package system

import (
	"log"
	"math"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/entity"
	"go-survivor/internal/event"
	"go-survivor/pkg/utils"
)

// SpawnSystem активирует волны этапа и выпускает отложенных врагов.
type SpawnSystem struct {
	lib             *defs.Library
	eventDispatcher *event.Dispatcher
	rng             Random
}

func NewSpawnSystem(lib *defs.Library, eventDispatcher *event.Dispatcher, rng Random) *SpawnSystem {
	return &SpawnSystem{
		lib:             lib,
		eventDispatcher: eventDispatcher,
		rng:             rng,
	}
}

// Sweep ставит в очередь врагов всех волн, чьё время наступило.
// Курсор волн только растёт, поэтому повторный вызов в тот же момент ничего не делает.
func (s *SpawnSystem) Sweep(w *entity.ECS, stage *defs.StageDefinition) {
	for w.NextWaveIndex < len(stage.SpawnWaves) {
		wave := stage.SpawnWaves[w.NextWaveIndex]
		if wave.TimeMs() > w.ElapsedMs {
			break
		}
		for i := 0; i < wave.Count; i++ {
			w.PendingSpawns = append(w.PendingSpawns, component.PendingSpawn{
				DueMs:       w.ElapsedMs + float64(i)*wave.IntervalMs,
				EnemyTypeID: wave.EnemyTypeID,
			})
		}
		log.Printf("Wave %d: %d x %s", w.NextWaveIndex, wave.Count, wave.EnemyTypeID)
		s.eventDispatcher.Enqueue(event.Event{Type: event.WaveStarted, Data: w.NextWaveIndex})
		w.NextWaveIndex++
	}
}

// Drain создаёт врагов, чьё время появления наступило, на окружности вокруг игрока.
func (s *SpawnSystem) Drain(w *entity.ECS) {
	if len(w.PendingSpawns) == 0 || w.Player == nil {
		return
	}
	kept := w.PendingSpawns[:0]
	for _, ps := range w.PendingSpawns {
		if ps.DueMs > w.ElapsedMs {
			kept = append(kept, ps)
			continue
		}
		s.spawn(w, ps.EnemyTypeID)
	}
	w.PendingSpawns = kept
}

func (s *SpawnSystem) spawn(w *entity.ECS, typeID string) {
	def := s.lib.MustEnemy(typeID)
	angle := s.rng.Float64() * 2 * math.Pi
	w.AddEnemy(&component.Enemy{
		TypeID:    typeID,
		Position:  w.Player.Position.Add(utils.FromAngle(angle, config.SpawnRadius)),
		Size:      def.Size,
		MaxHP:     def.HP,
		CurrentHP: def.HP,
		Speed:     def.Speed,
		Damage:    def.Damage,
		LastHitMs: config.NeverHitMs,
	})
}
