package entity

import (
	"testing"

	"go-survivor/internal/component"
	"go-survivor/internal/types"
	"go-survivor/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntityIsMonotonic(t *testing.T) {
	w := NewECS()
	a := w.NewEntity()
	b := w.NewEntity()
	assert.Less(t, a, b)
}

func TestCloneIsDeep(t *testing.T) {
	w := NewECS()
	w.Player = &component.Player{Weapons: []component.PlayerWeapon{{ID: "w", Level: 1}}}
	w.AddEnemy(&component.Enemy{CurrentHP: 10})
	w.AddProjectile(&component.Projectile{Damage: 5})
	w.PendingSpawns = append(w.PendingSpawns, component.PendingSpawn{DueMs: 100, EnemyTypeID: "bat"})

	c := w.Clone()
	c.Player.Weapons[0].Level = 3
	c.Player.Position = utils.Vector2D{X: 50}
	c.Enemies[0].CurrentHP = 0
	c.Projectiles[0].Damage = 99
	c.PendingSpawns[0].DueMs = 0
	c.AddEnemy(&component.Enemy{})

	assert.Equal(t, 1, w.Player.Weapons[0].Level)
	assert.Equal(t, 0.0, w.Player.Position.X)
	assert.Equal(t, 10.0, w.Enemies[0].CurrentHP)
	assert.Equal(t, 5.0, w.Projectiles[0].Damage)
	assert.Equal(t, 100.0, w.PendingSpawns[0].DueMs)
	assert.Len(t, w.Enemies, 1)
	assert.Len(t, c.Enemies, 2)
}

func TestRemoveProjectilesKeepsOrder(t *testing.T) {
	w := NewECS()
	for i := 0; i < 4; i++ {
		w.AddProjectile(&component.Projectile{Damage: float64(i)})
	}
	w.RemoveProjectiles(map[types.EntityID]struct{}{w.Projectiles[1].ID: {}})
	require.Len(t, w.Projectiles, 3)
	assert.Equal(t, []float64{0, 2, 3}, []float64{w.Projectiles[0].Damage, w.Projectiles[1].Damage, w.Projectiles[2].Damage})
}

func TestFilter(t *testing.T) {
	enemies := []*component.Enemy{{CurrentHP: 1}, {CurrentHP: 0}, {CurrentHP: 2}}
	alive := Filter(enemies, func(e *component.Enemy) bool { return e.CurrentHP > 0 })
	assert.Len(t, alive, 2)
}
