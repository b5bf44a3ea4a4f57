package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/event"
	"go-survivor/pkg/utils"
)

func testStage() *defs.StageDefinition {
	return &defs.StageDefinition{
		ID:          "test",
		DurationSec: 60,
		SpawnWaves: []defs.SpawnWave{
			{TimeSec: 0, EnemyTypeID: "bat", Count: 3, IntervalMs: 100},
			{TimeSec: 1, EnemyTypeID: "skeleton", Count: 1},
		},
	}
}

func TestSweepIsIdempotentWithinATick(t *testing.T) {
	lib := testLibrary(t)
	d := event.NewDispatcher()
	rec := listen(d, event.WaveStarted)
	ss := NewSpawnSystem(lib, d, testRNG())
	w := newTestWorld()
	stage := testStage()

	ss.Sweep(w, stage)
	ss.Sweep(w, stage)

	assert.Equal(t, 1, w.NextWaveIndex)
	require.Len(t, w.PendingSpawns, 3)
	assert.Equal(t, 200.0, w.PendingSpawns[2].DueMs)

	w.ElapsedMs = 1000
	ss.Sweep(w, stage)
	ss.Sweep(w, stage)
	assert.Equal(t, 2, w.NextWaveIndex)
	assert.Len(t, w.PendingSpawns, 4)

	d.Flush()
	assert.Equal(t, 2, rec.count(event.WaveStarted))
}

func TestDrainSpawnsDueEnemiesOnTheSpawnCircle(t *testing.T) {
	lib := testLibrary(t)
	ss := NewSpawnSystem(lib, event.NewDispatcher(), testRNG())
	w := newTestWorld()
	w.Player.Position = utils.Vector2D{X: 100, Y: -50}

	ss.Sweep(w, testStage())
	ss.Drain(w)

	require.Len(t, w.Enemies, 1)
	assert.Len(t, w.PendingSpawns, 2)
	e := w.Enemies[0]
	assert.Equal(t, "bat", e.TypeID)
	assert.Equal(t, lib.MustEnemy("bat").HP, e.CurrentHP)
	assert.InDelta(t, float64(config.SpawnRadius), utils.Distance(e.Position, w.Player.Position), 1e-6)

	w.ElapsedMs = 200
	ss.Drain(w)
	assert.Len(t, w.Enemies, 3)
	assert.Empty(t, w.PendingSpawns)
	assert.NotEqual(t, w.Enemies[1].ID, w.Enemies[2].ID)
}
