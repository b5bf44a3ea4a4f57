package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/persistence"
)

func TestAutopilotResolvesChoices(t *testing.T) {
	g, _ := newTestGame(t, persistence.DefaultRecord())
	pilot := NewAutopilot(7)
	pilot.Attach(g)
	startRaime(t, g)

	g.world.AddXPOrb(&component.ExperienceOrb{Position: g.world.Player.Position, Size: config.OrbSize, Value: 230})
	for i := 0; i < 100; i++ {
		require.NoError(t, g.Tick())
		status := g.Status()
		require.NotEqual(t, component.StatusLevelUpAttributes, status)
		require.NotEqual(t, component.StatusLevelUpWeapons, status)
	}

	snap := g.Snapshot()
	assert.GreaterOrEqual(t, snap.Player.Level, 3)
	assert.Zero(t, snap.PendingLevelUps)
}

func TestAutopilotInputCircles(t *testing.T) {
	pilot := NewAutopilot(1)
	a := pilot.ReadInput()
	b := pilot.ReadInput()
	assert.InDelta(t, 1, a.Move.Len(), 1e-9)
	assert.NotEqual(t, a.Move, b.Move)
	assert.NotEqual(t, a.Aim, b.Aim)
}
