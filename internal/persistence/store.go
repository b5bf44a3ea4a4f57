package persistence

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"go-survivor/internal/defs"
)

// UpgradeState is the owned level and on/off switch of a meta-upgrade.
type UpgradeState struct {
	Level  int  `msgpack:"level"`
	Active bool `msgpack:"active"`
}

// SaveRecord is everything that survives between sessions.
type SaveRecord struct {
	BestTimes       map[string]float64              `msgpack:"best_times"` // character id -> seconds
	CompletedStages map[string]bool                 `msgpack:"completed_stages"`
	Currency        int                             `msgpack:"currency"`
	Upgrades        map[defs.UpgradeID]UpgradeState `msgpack:"upgrades"`
	LastRunID       string                          `msgpack:"last_run_id"`
}

// DefaultRecord returns the record of a fresh install.
func DefaultRecord() SaveRecord {
	return SaveRecord{
		BestTimes:       make(map[string]float64),
		CompletedStages: make(map[string]bool),
		Upgrades:        make(map[defs.UpgradeID]UpgradeState),
	}
}

// Clone returns a deep copy so callers never share maps with the store.
func (r SaveRecord) Clone() SaveRecord {
	c := DefaultRecord()
	for k, v := range r.BestTimes {
		c.BestTimes[k] = v
	}
	for k, v := range r.CompletedStages {
		c.CompletedStages[k] = v
	}
	for k, v := range r.Upgrades {
		c.Upgrades[k] = v
	}
	c.Currency = r.Currency
	c.LastRunID = r.LastRunID
	return c
}

// Upgrade returns the state of an upgrade and whether it is owned and switched on.
func (r SaveRecord) Upgrade(id defs.UpgradeID) (UpgradeState, bool) {
	u, ok := r.Upgrades[id]
	return u, ok && u.Level > 0 && u.Active
}

// Store loads and saves the record. Load never fails: a broken or missing
// save falls back to DefaultRecord.
type Store interface {
	Load() SaveRecord
	Save(SaveRecord) error
}

// Open returns a FileStore for path, or a MemoryStore when path is empty.
func Open(path string) Store {
	if path == "" {
		return NewMemoryStore(DefaultRecord())
	}
	return NewFileStore(path)
}

// FileStore keeps the record as a msgpack file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() SaveRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read save %s, using defaults: %v", s.path, err)
		}
		return DefaultRecord()
	}
	var rec SaveRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		log.Printf("Failed to decode save %s, using defaults: %v", s.path, err)
		return DefaultRecord()
	}
	// Clone fills in maps missing from older saves.
	return rec.Clone()
}

// Save writes to a temporary file and renames it over the old save.
func (s *FileStore) Save(rec SaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create save dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace save: %w", err)
	}
	return nil
}

// MemoryStore keeps the record in memory. Used by the headless server and tests.
type MemoryStore struct {
	mu    sync.Mutex
	rec   SaveRecord
	Saves int
}

func NewMemoryStore(rec SaveRecord) *MemoryStore {
	return &MemoryStore{rec: rec.Clone()}
}

func (s *MemoryStore) Load() SaveRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

func (s *MemoryStore) Save(rec SaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec.Clone()
	s.Saves++
	return nil
}
