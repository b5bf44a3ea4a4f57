package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/entity"
	"go-survivor/internal/event"
	gameutils "go-survivor/internal/utils"
	"go-survivor/pkg/utils"
)

func testLibrary(t *testing.T) *defs.Library {
	t.Helper()
	lib, err := defs.Default()
	require.NoError(t, err)
	return lib
}

// testRNG returns a seeded RNG for deterministic tests
func testRNG() *gameutils.PRNGService {
	return gameutils.NewPRNGService(12345)
}

func newTestWorld(weapons ...component.PlayerWeapon) *entity.ECS {
	w := entity.NewECS()
	w.Status = component.StatusPlaying
	w.Player = &component.Player{
		Size: config.PlayerSize,
		Stats: component.PlayerStats{
			MaxHP:                     100,
			CurrentHP:                 100,
			MoveSpeed:                 3,
			DamageMultiplier:          1,
			ProjectileSpeedMultiplier: 1,
			XPMultiplier:              1,
		},
		Level:          1,
		XPToNextLevel:  config.XPBase,
		Weapons:        weapons,
		LastHitMs:      config.NeverHitMs,
		HeroicGaugeMax: 100,
	}
	return w
}

func addEnemy(t *testing.T, lib *defs.Library, w *entity.ECS, typeID string, x, y, hp float64) *component.Enemy {
	t.Helper()
	def, err := lib.Enemy(typeID)
	require.NoError(t, err)
	e := &component.Enemy{
		TypeID:    typeID,
		Position:  utils.Vector2D{X: x, Y: y},
		Size:      def.Size,
		MaxHP:     hp,
		CurrentHP: hp,
		Speed:     def.Speed,
		Damage:    def.Damage,
		LastHitMs: config.NeverHitMs,
	}
	w.AddEnemy(e)
	return e
}

// recorder collects flushed events by type.
type recorder struct {
	events []event.Event
}

func (r *recorder) OnEvent(e event.Event) { r.events = append(r.events, e) }

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func listen(d *event.Dispatcher, types ...event.EventType) *recorder {
	r := &recorder{}
	for _, t := range types {
		d.Subscribe(t, r)
	}
	return r
}
