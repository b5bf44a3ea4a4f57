package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
)

func TestGenerateOptions(t *testing.T) {
	lib := testLibrary(t)
	ls := NewLevelUpSystem(lib, testRNG())
	w := newTestWorld(
		component.PlayerWeapon{ID: "magic_missile", Level: 5},
		component.PlayerWeapon{ID: "fist_of_fury", Level: 2},
	)

	ls.GenerateOptions(w)

	assert.Len(t, w.Options.Attributes, 4)
	assert.Len(t, w.Options.Weapons, config.LevelUpWeaponChoices)
	assert.Equal(t, 1, w.Options.Generation)
	seen := map[string]bool{}
	for _, o := range w.Options.Weapons {
		assert.NotEqual(t, "magic_missile", o.ID, "maxed weapons are not offered")
		assert.False(t, seen[o.ID], "duplicate option %s", o.ID)
		seen[o.ID] = true
		def := lib.MustWeapon(o.ID)
		if _, owned := w.Player.Weapon(o.ID); !owned {
			assert.True(t, def.Offerable, o.ID)
		}
	}

	ls.GenerateOptions(w)
	assert.Equal(t, 2, w.Options.Generation)
}

func TestGenerateOptionsWithSmallPool(t *testing.T) {
	lib := testLibrary(t)
	ls := NewLevelUpSystem(lib, testRNG())
	var weapons []component.PlayerWeapon
	for _, id := range lib.WeaponOrder {
		weapons = append(weapons, component.PlayerWeapon{ID: id, Level: lib.Weapons[id].MaxLevel()})
	}
	weapons[0].Level = 1
	w := newTestWorld(weapons...)

	ls.GenerateOptions(w)

	require.Len(t, w.Options.Weapons, 1)
	assert.Equal(t, weapons[0].ID, w.Options.Weapons[0].ID)
}

func TestApplyAttribute(t *testing.T) {
	lib := testLibrary(t)
	ls := NewLevelUpSystem(lib, testRNG())
	w := newTestWorld()
	w.Player.Stats.CurrentHP = 10

	require.NoError(t, ls.ApplyAttribute(w, component.AttributeInsight))
	assert.InDelta(t, 120.0, w.Player.Stats.MaxHP, 1e-9)
	assert.Equal(t, w.Player.Stats.MaxHP, w.Player.Stats.CurrentHP)

	require.NoError(t, ls.ApplyAttribute(w, component.AttributeWillpower))
	assert.Equal(t, 5.0, w.Player.Stats.Defense)

	require.NoError(t, ls.ApplyAttribute(w, component.AttributeDexterity))
	assert.InDelta(t, 3.15, w.Player.Stats.MoveSpeed, 1e-9)
	assert.InDelta(t, 1.05, w.Player.Stats.ProjectileSpeedMultiplier, 1e-9)

	assert.ErrorIs(t, ls.ApplyAttribute(w, "Luck"), ErrUnknownAttribute)
}

func TestApplyWeapon(t *testing.T) {
	lib := testLibrary(t)
	ls := NewLevelUpSystem(lib, testRNG())
	w := newTestWorld(component.PlayerWeapon{ID: "fist_of_fury", Level: 1})
	w.Options.Weapons = []component.LevelUpOption{
		{Kind: component.OptionWeapon, ID: "fist_of_fury"},
		{Kind: component.OptionWeapon, ID: "baralho_do_malandro"},
		{Kind: component.OptionWeapon, ID: "vital_charm"},
	}

	require.NoError(t, ls.ApplyWeapon(w, "fist_of_fury"))
	pw, _ := w.Player.Weapon("fist_of_fury")
	assert.Equal(t, 2, pw.Level)

	require.NoError(t, ls.ApplyWeapon(w, "baralho_do_malandro"))
	deck, ok := w.Player.Weapon("baralho_do_malandro")
	require.True(t, ok)
	assert.Equal(t, 1, deck.Level)
	assert.Zero(t, deck.CooldownMs, "deck fires on the first tick")

	require.NoError(t, ls.ApplyWeapon(w, "vital_charm"))
	charm, _ := w.Player.Weapon("vital_charm")
	assert.Equal(t, 2000.0, charm.PassiveCooldownMs)

	assert.ErrorIs(t, ls.ApplyWeapon(w, "golden_spiral"), ErrOptionNotOffered)
}

func TestGrantWeaponClampsLevel(t *testing.T) {
	lib := testLibrary(t)
	def := lib.MustWeapon("magic_missile")
	p := newTestWorld(component.PlayerWeapon{ID: def.ID, Level: def.MaxLevel()}).Player

	GrantWeapon(p, def)

	assert.Equal(t, def.MaxLevel(), p.Weapons[0].Level)
}
