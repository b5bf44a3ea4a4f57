package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-survivor/internal/component"
	"go-survivor/internal/defs"
	"go-survivor/pkg/utils"
)

func TestMissileFiresOnThirtiethTick(t *testing.T) {
	lib := testLibrary(t)
	ws := NewWeaponSystem(lib, NewWeaponRegistry(), testRNG())

	w := newTestWorld(component.PlayerWeapon{ID: "magic_missile", Level: 1, CooldownMs: 1500})
	addEnemy(t, lib, w, "skeleton", 300, 0, 100)

	for i := 1; i < 30; i++ {
		ws.Update(w, nil, utils.Vector2D{}, false)
		require.Empty(t, w.Projectiles, "tick %d", i)
	}
	ws.Update(w, nil, utils.Vector2D{}, false)

	require.Len(t, w.Projectiles, 1)
	p := w.Projectiles[0]
	assert.Equal(t, "magic_missile", p.WeaponID)
	assert.Greater(t, p.Velocity.X, 0.0)
	assert.Equal(t, 1500.0, w.Player.Weapons[0].CooldownMs)
}

func TestMissileWithoutTargetStillResetsCooldown(t *testing.T) {
	lib := testLibrary(t)
	ws := NewWeaponSystem(lib, NewWeaponRegistry(), testRNG())
	w := newTestWorld(component.PlayerWeapon{ID: "magic_missile", Level: 1, CooldownMs: 0})

	ws.Update(w, nil, utils.Vector2D{}, false)

	assert.Empty(t, w.Projectiles)
	assert.Equal(t, 1500.0, w.Player.Weapons[0].CooldownMs)
}

func TestDeployRespectsMaxDeployed(t *testing.T) {
	lib := testLibrary(t)
	ws := NewWeaponSystem(lib, NewWeaponRegistry(), testRNG())
	w := newTestWorld(component.PlayerWeapon{ID: "deployable_turret", Level: 1})

	for i := 0; i < 3; i++ {
		w.Player.Weapons[0].CooldownMs = 0
		ws.Update(w, nil, utils.Vector2D{}, false)
	}

	require.Len(t, w.Turrets, 1)
	assert.Equal(t, 1, w.Turrets[0].WeaponLevel)
	assert.Equal(t, 10000.0, w.Turrets[0].LifespanMs)
}

func TestMegaTurretDoesNotCountTowardsDeployLimit(t *testing.T) {
	lib := testLibrary(t)
	ws := NewWeaponSystem(lib, NewWeaponRegistry(), testRNG())
	w := newTestWorld(component.PlayerWeapon{ID: "deployable_turret", Level: 1})
	w.AddTurret(&component.Turret{WeaponID: "deployable_turret", Mega: true, LifespanMs: 1000})

	ws.Update(w, nil, utils.Vector2D{}, false)

	assert.Len(t, w.Turrets, 2)
}

func TestCompanionReplacesPreviousSet(t *testing.T) {
	lib := testLibrary(t)
	ws := NewWeaponSystem(lib, NewWeaponRegistry(), testRNG())
	w := newTestWorld(component.PlayerWeapon{ID: "kirin_companion", Level: 3})

	ws.Update(w, nil, utils.Vector2D{}, false)
	require.Len(t, w.Projectiles, 2)
	first := w.Projectiles[0].ID

	w.Player.Weapons[0].CooldownMs = 0
	ws.Update(w, nil, utils.Vector2D{}, false)

	require.Len(t, w.Projectiles, 2)
	for _, p := range w.Projectiles {
		assert.NotEqual(t, first, p.ID)
		assert.Equal(t, component.MotionHoming, p.Motion)
	}
}

func TestDuplicatorClonesProjectiles(t *testing.T) {
	lib := testLibrary(t)
	ws := NewWeaponSystem(lib, NewWeaponRegistry(), testRNG())
	w := newTestWorld(component.PlayerWeapon{ID: "magic_missile", Level: 1})
	addEnemy(t, lib, w, "skeleton", 300, 0, 100)

	ws.Update(w, nil, utils.Vector2D{}, true)

	require.Len(t, w.Projectiles, 2)
	a, b := w.Projectiles[0], w.Projectiles[1]
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Velocity, b.Velocity)
	assert.LessOrEqual(t, utils.Distance(a.Position, b.Position), 15.0)
}

func TestHeroicCooldownOverride(t *testing.T) {
	lib := testLibrary(t)
	ws := NewWeaponSystem(lib, NewWeaponRegistry(), testRNG())
	kazu, err := lib.Character("kazu")
	require.NoError(t, err)

	w := newTestWorld(component.PlayerWeapon{ID: "dragon_katana", Level: 1})
	w.Player.HeroicActive = true
	ws.Update(w, kazu, utils.Vector2D{X: 1}, false)
	assert.Equal(t, 50.0, w.Player.Weapons[0].CooldownMs)

	w.Player.HeroicActive = false
	w.Player.Weapons[0].CooldownMs = 0
	ws.Update(w, kazu, utils.Vector2D{X: 1}, false)
	assert.Equal(t, 200.0, w.Player.Weapons[0].CooldownMs)
}

func TestPassiveRegenHealsOnInterval(t *testing.T) {
	lib := testLibrary(t)
	ws := NewWeaponSystem(lib, NewWeaponRegistry(), testRNG())
	w := newTestWorld(component.PlayerWeapon{ID: "vital_charm", Level: 1, CooldownMs: 1000})
	w.Player.Stats.CurrentHP = 50

	for i := 0; i < 39; i++ {
		ws.Update(w, nil, utils.Vector2D{}, false)
	}
	assert.Equal(t, 50.0, w.Player.Stats.CurrentHP)
	ws.Update(w, nil, utils.Vector2D{}, false)
	assert.Equal(t, 51.0, w.Player.Stats.CurrentHP)
	assert.Equal(t, 2000.0, w.Player.Weapons[0].PassiveCooldownMs)
}

func TestPassiveRegenCapsAtMaxHP(t *testing.T) {
	lib := testLibrary(t)
	ws := NewWeaponSystem(lib, NewWeaponRegistry(), testRNG())
	w := newTestWorld(component.PlayerWeapon{ID: "vital_charm", Level: 5, PassiveCooldownMs: 50})
	w.Player.Stats.CurrentHP = 99

	ws.Update(w, nil, utils.Vector2D{}, false)

	assert.Equal(t, w.Player.Stats.MaxHP, w.Player.Stats.CurrentHP)
}

func TestCulinaryNeedsAim(t *testing.T) {
	lib := testLibrary(t)
	ws := NewWeaponSystem(lib, NewWeaponRegistry(), testRNG())
	w := newTestWorld(component.PlayerWeapon{ID: "chefs_gloves", Level: 1})

	ws.Update(w, nil, utils.Vector2D{}, false)
	assert.Empty(t, w.Projectiles)

	w.Player.Weapons[0].CooldownMs = 0
	ws.Update(w, nil, utils.Vector2D{Y: -1}, false)
	require.Len(t, w.Projectiles, 1)
	p := w.Projectiles[0]
	assert.Less(t, p.Velocity.Y, 0.0)
	assert.GreaterOrEqual(t, p.Size, 10.0)
	assert.LessOrEqual(t, p.Size, 160.0)
}

func TestConeSpreadsAroundAim(t *testing.T) {
	lib := testLibrary(t)
	ws := NewWeaponSystem(lib, NewWeaponRegistry(), testRNG())
	w := newTestWorld(component.PlayerWeapon{ID: "fist_of_fury", Level: 1})

	ws.Update(w, nil, utils.Vector2D{X: 1}, false)

	require.Len(t, w.Projectiles, 3)
	assert.InDelta(t, 0.0, w.Projectiles[1].Velocity.Angle(), 1e-9)
	assert.Less(t, w.Projectiles[0].Velocity.Angle(), 0.0)
	assert.Greater(t, w.Projectiles[2].Velocity.Angle(), 0.0)
	assert.Equal(t, w.Projectiles[1].Velocity.X*2, w.Projectiles[1].Position.X)
}

func TestCardDeckDrawsDisplayAndRing(t *testing.T) {
	lib := testLibrary(t)
	ws := NewWeaponSystem(lib, NewWeaponRegistry(), testRNG())
	def := lib.MustWeapon("baralho_do_malandro")
	w := newTestWorld(component.PlayerWeapon{ID: def.ID, Level: 1, CooldownMs: def.StartingCooldown()})

	ws.Update(w, nil, utils.Vector2D{}, true)

	// One display card plus the ring, duplicated once; the display card is never duplicated.
	ring := def.Level(1).Projectiles
	require.Len(t, w.Projectiles, 1+2*ring)
	display := w.Projectiles[0]
	assert.Equal(t, component.MotionAnchored, display.Motion)
	assert.Zero(t, display.Damage)
	assert.Zero(t, display.Size)
	assert.NotEmpty(t, display.DisplayText)
}

func TestGoldenSpiralArms(t *testing.T) {
	lib := testLibrary(t)
	ws := NewWeaponSystem(lib, NewWeaponRegistry(), testRNG())
	w := newTestWorld(component.PlayerWeapon{ID: "golden_spiral", Level: 3})

	ws.Update(w, nil, utils.Vector2D{}, false)

	require.Len(t, w.Projectiles, 3)
	for _, p := range w.Projectiles {
		assert.Equal(t, component.MotionSpiral, p.Motion)
		assert.Equal(t, w.Player.Position, p.SpawnPosition)
	}
}

func TestRegistryCoversLibrary(t *testing.T) {
	lib := testLibrary(t)
	r := NewWeaponRegistry()
	for _, id := range lib.WeaponOrder {
		assert.NoError(t, r.Check(lib.Weapons[id]), id)
	}
}

func TestRegistryRejectsUnknownTag(t *testing.T) {
	r := NewWeaponRegistry()
	err := r.Check(&defs.WeaponDefinition{ID: "x", Fire: "boomerang"})
	assert.ErrorIs(t, err, defs.ErrUnknownBehavior)
	assert.Panics(t, func() { r.Fire("boomerang") })
	assert.Panics(t, func() { r.Deploy("catapult") })
}
