package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-survivor/internal/defs"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves", "survivor.save")
	store := NewFileStore(path)

	rec := DefaultRecord()
	rec.Currency = 1234
	rec.BestTimes["raime"] = 321.5
	rec.CompletedStages["forest"] = true
	rec.Upgrades[defs.UpgradeDuplicator] = UpgradeState{Level: 1, Active: true}
	rec.LastRunID = "run-1"
	require.NoError(t, store.Save(rec))

	got := store.Load()
	assert.Equal(t, rec, got)

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreMissingFileUsesDefaults(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "none.save"))

	got := store.Load()

	assert.Equal(t, DefaultRecord(), got)
	assert.NotNil(t, got.BestTimes)
}

func TestFileStoreCorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.save")
	require.NoError(t, os.WriteFile(path, []byte{0xc1, 0xff, 0x00}, 0o644))

	assert.Equal(t, DefaultRecord(), NewFileStore(path).Load())
}

func TestUpgradeRequiresLevelAndActive(t *testing.T) {
	rec := DefaultRecord()
	rec.Upgrades[defs.UpgradeRevive] = UpgradeState{Level: 1, Active: false}
	rec.Upgrades[defs.UpgradeSpeed] = UpgradeState{Level: 3, Active: true}

	_, on := rec.Upgrade(defs.UpgradeRevive)
	assert.False(t, on)
	u, on := rec.Upgrade(defs.UpgradeSpeed)
	assert.True(t, on)
	assert.Equal(t, 3, u.Level)
	_, on = rec.Upgrade(defs.UpgradeDamage)
	assert.False(t, on)
}

func TestMemoryStoreCopiesRecords(t *testing.T) {
	rec := DefaultRecord()
	store := NewMemoryStore(rec)

	loaded := store.Load()
	loaded.BestTimes["kazu"] = 10
	assert.Empty(t, store.Load().BestTimes)

	require.NoError(t, store.Save(loaded))
	assert.Equal(t, 10.0, store.Load().BestTimes["kazu"])
	assert.Equal(t, 1, store.Saves)
}

func TestOpenPicksStoreByPath(t *testing.T) {
	_, ok := Open("").(*MemoryStore)
	assert.True(t, ok)

	fs, ok := Open(filepath.Join(t.TempDir(), "s.save")).(*FileStore)
	require.True(t, ok)
	assert.Equal(t, DefaultRecord(), fs.Load())
}
