package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/entity"
	"go-survivor/pkg/utils"
)

func TestOrbOutsideMagnetRadiusStaysPut(t *testing.T) {
	orbs := NewOrbSystem()
	w := newTestWorld()
	w.AddXPOrb(&component.ExperienceOrb{Position: utils.Vector2D{X: 200}, Size: config.OrbSize, Value: 5})

	assert.Zero(t, orbs.Update(w))
	require.Len(t, w.XPOrbs, 1)
	assert.Equal(t, 200.0, w.XPOrbs[0].Position.X)
}

func TestOrbIsPulledThenCollected(t *testing.T) {
	orbs := NewOrbSystem()
	w := newTestWorld()
	w.Player.Stats.XPMultiplier = 1.5
	w.AddXPOrb(&component.ExperienceOrb{Position: utils.Vector2D{X: 40}, Size: config.OrbSize, Value: 10})

	assert.Zero(t, orbs.Update(w))
	assert.Equal(t, 30.0, w.XPOrbs[0].Position.X)

	assert.Zero(t, orbs.Update(w))
	assert.Equal(t, 15.0, orbs.Update(w))
	assert.Empty(t, w.XPOrbs)
}

func TestCurrencyOrbCreditsSession(t *testing.T) {
	orbs := NewOrbSystem()
	w := newTestWorld()
	w.AddCurrencyOrb(&component.CurrencyOrb{Position: utils.Vector2D{X: 5}, Size: config.OrbSize, Value: 12})
	w.AddXPOrb(&component.ExperienceOrb{Position: utils.Vector2D{X: 500}, Size: config.OrbSize, Value: 12})

	assert.Zero(t, orbs.Update(w))
	assert.Equal(t, 12, w.Player.SessionCurrency)
	assert.Empty(t, w.CurrencyOrbs)
	assert.Len(t, w.XPOrbs, 1)
}

func TestVisualEffectsDecay(t *testing.T) {
	vs := NewVisualEffectSystem()
	w := entity.NewECS()
	w.Explosions = append(w.Explosions, &component.ExplosionEffect{RemainingMs: 2 * config.TickMs})

	vs.Update(w)
	require.Len(t, w.Explosions, 1)
	vs.Update(w)
	assert.Empty(t, w.Explosions)
}
