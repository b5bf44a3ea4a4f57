// internal/app/snapshot.go
package app

import (
	"github.com/google/uuid"

	"go-survivor/internal/component"
	"go-survivor/internal/defs"
	"go-survivor/internal/entity"
	"go-survivor/internal/persistence"
	"go-survivor/internal/system"
	"go-survivor/pkg/utils"
)

// Snapshot копия зафиксированного мира для отрисовки и трансляции.
// Не разделяет память с миром: её можно читать из другой горутины.
type Snapshot struct {
	SessionID       string               `msgpack:"session_id"`
	Status          component.GameStatus `msgpack:"status"`
	StatusName      string               `msgpack:"status_name"`
	ElapsedMs       float64              `msgpack:"elapsed_ms"`
	CharacterID     string               `msgpack:"character_id"`
	StageID         string               `msgpack:"stage_id"`
	StageDurationMs float64              `msgpack:"stage_duration_ms"`
	Camera          utils.Vector2D       `msgpack:"camera"`

	Player       *component.Player           `msgpack:"player"`
	Enemies      []component.Enemy           `msgpack:"enemies"`
	Projectiles  []component.Projectile      `msgpack:"projectiles"`
	Turrets      []component.Turret          `msgpack:"turrets"`
	XPOrbs       []component.Orb             `msgpack:"xp_orbs"`
	CurrencyOrbs []component.Orb             `msgpack:"currency_orbs"`
	Explosions   []component.ExplosionEffect `msgpack:"explosions"`

	Options         component.LevelUpOptions `msgpack:"options"`
	PendingLevelUps int                      `msgpack:"pending_level_ups"`
	Kills           int                      `msgpack:"kills"`
	HeroicReady     bool                     `msgpack:"heroic_ready"`
	ReviveAvailable bool                     `msgpack:"revive_available"`
	SavedCurrency   int                      `msgpack:"saved_currency"`
}

func newSnapshot(
	w *entity.ECS,
	sessionID uuid.UUID,
	char *defs.CharacterDefinition,
	stage *defs.StageDefinition,
	save persistence.SaveRecord,
	heroic *system.HeroicSystem,
	revive bool,
) *Snapshot {
	s := &Snapshot{
		Status:          w.Status,
		StatusName:      w.Status.String(),
		ElapsedMs:       w.ElapsedMs,
		Camera:          w.Camera.Position,
		Enemies:         values(w.Enemies),
		Projectiles:     values(w.Projectiles),
		Turrets:         values(w.Turrets),
		XPOrbs:          values(w.XPOrbs),
		CurrencyOrbs:    values(w.CurrencyOrbs),
		Explosions:      values(w.Explosions),
		PendingLevelUps: w.PendingLevelUps,
		Kills:           w.Kills,
		HeroicReady:     heroic.CanActivate(w),
		ReviveAvailable: revive,
		SavedCurrency:   save.Currency,
	}
	if sessionID != uuid.Nil {
		s.SessionID = sessionID.String()
	}
	if char != nil {
		s.CharacterID = char.ID
	}
	if stage != nil {
		s.StageID = stage.ID
		s.StageDurationMs = stage.DurationMs()
	}
	if w.Player != nil {
		p := *w.Player
		p.Weapons = append([]component.PlayerWeapon(nil), w.Player.Weapons...)
		s.Player = &p
	}
	s.Options = component.LevelUpOptions{
		Attributes: append([]component.LevelUpOption(nil), w.Options.Attributes...),
		Weapons:    append([]component.LevelUpOption(nil), w.Options.Weapons...),
		Generation: w.Options.Generation,
	}
	return s
}

// RemainingMs время до конца этапа.
func (s *Snapshot) RemainingMs() float64 {
	return max(0, s.StageDurationMs-s.ElapsedMs)
}

func values[T any](items []*T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = *it
	}
	return out
}
