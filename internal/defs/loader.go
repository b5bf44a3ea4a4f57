// internal/defs/loader.go
package defs

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"
)

//go:embed data/*.json
var embeddedData embed.FS

var (
	ErrUnknownWeapon      = errors.New("unknown weapon")
	ErrUnknownEnemy       = errors.New("unknown enemy")
	ErrUnknownCharacter   = errors.New("unknown character")
	ErrUnknownStage       = errors.New("unknown stage")
	ErrUnknownUpgrade     = errors.New("unknown upgrade")
	ErrUnknownHeroic      = errors.New("unknown heroic skill")
	ErrUnknownBehavior    = errors.New("unknown weapon behavior")
	ErrInvalidDefinition  = errors.New("invalid definition")
	ErrMissingStartWeapon = errors.New("missing starting weapon")
)

// Library is the read-only content table shared by every session.
type Library struct {
	Weapons    map[string]*WeaponDefinition
	Enemies    map[string]*EnemyDefinition
	Characters map[string]*CharacterDefinition
	Stages     map[string]*StageDefinition
	Upgrades   map[UpgradeID]*UpgradeDefinition

	// Declaration order, used wherever iteration order must be stable.
	WeaponOrder    []string
	CharacterOrder []string
	StageOrder     []string
	UpgradeOrder   []UpgradeID
}

// Default loads the definitions embedded in the binary.
func Default() (*Library, error) {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded definitions: %w", err)
	}
	return LoadLibrary(sub)
}

// LoadDir loads definitions from a directory on disk.
func LoadDir(path string) (*Library, error) {
	return LoadLibrary(os.DirFS(path))
}

// Open loads definitions from dir, or the embedded ones when dir is empty.
func Open(dir string) (*Library, error) {
	if dir == "" {
		return Default()
	}
	return LoadDir(dir)
}

// LoadLibrary reads weapons, enemies, characters, stages and upgrades from fsys
// and validates every cross reference between them.
func LoadLibrary(fsys fs.FS) (*Library, error) {
	var (
		weapons    []*WeaponDefinition
		enemies    []*EnemyDefinition
		characters []*CharacterDefinition
		stages     []*StageDefinition
		upgrades   []*UpgradeDefinition
	)
	files := []struct {
		name string
		dst  any
	}{
		{"weapons.json", &weapons},
		{"enemies.json", &enemies},
		{"characters.json", &characters},
		{"stages.json", &stages},
		{"upgrades.json", &upgrades},
	}
	for _, f := range files {
		if err := readJSON(fsys, f.name, f.dst); err != nil {
			return nil, err
		}
	}

	lib := &Library{
		Weapons:    make(map[string]*WeaponDefinition),
		Enemies:    make(map[string]*EnemyDefinition),
		Characters: make(map[string]*CharacterDefinition),
		Stages:     make(map[string]*StageDefinition),
		Upgrades:   make(map[UpgradeID]*UpgradeDefinition),
	}
	for _, def := range weapons {
		lib.Weapons[def.ID] = def
		lib.WeaponOrder = append(lib.WeaponOrder, def.ID)
	}
	for _, def := range enemies {
		lib.Enemies[def.ID] = def
	}
	for _, def := range characters {
		lib.Characters[def.ID] = def
		lib.CharacterOrder = append(lib.CharacterOrder, def.ID)
	}
	for _, def := range stages {
		sort.SliceStable(def.SpawnWaves, func(i, j int) bool {
			return def.SpawnWaves[i].TimeSec < def.SpawnWaves[j].TimeSec
		})
		lib.Stages[def.ID] = def
		lib.StageOrder = append(lib.StageOrder, def.ID)
	}
	for _, def := range upgrades {
		lib.Upgrades[def.ID] = def
		lib.UpgradeOrder = append(lib.UpgradeOrder, def.ID)
	}

	if err := lib.Validate(); err != nil {
		return nil, err
	}
	log.Printf("Loaded %d weapons, %d enemies, %d characters, %d stages, %d upgrades",
		len(lib.Weapons), len(lib.Enemies), len(lib.Characters), len(lib.Stages), len(lib.Upgrades))
	return lib, nil
}

func readJSON(fsys fs.FS, name string, dst any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}

// Validate checks that every id referenced by one table exists in another.
func (l *Library) Validate() error {
	for id, w := range l.Weapons {
		if len(w.Levels) == 0 {
			return fmt.Errorf("%w: weapon %s has no levels", ErrInvalidDefinition, id)
		}
		for i, lvl := range w.Levels {
			if lvl.Level != i+1 {
				return fmt.Errorf("%w: weapon %s level %d is out of order", ErrInvalidDefinition, id, lvl.Level)
			}
		}
		if !knownFire[w.Fire] {
			return fmt.Errorf("%w: weapon %s fire %q", ErrUnknownBehavior, id, w.Fire)
		}
		if !knownDeploy[w.Deploy] {
			return fmt.Errorf("%w: weapon %s deploy %q", ErrUnknownBehavior, id, w.Deploy)
		}
	}
	for id, c := range l.Characters {
		if c.InitialWeaponID != "" {
			if _, ok := l.Weapons[c.InitialWeaponID]; !ok {
				return fmt.Errorf("character %s: %w: %s", id, ErrUnknownWeapon, c.InitialWeaponID)
			}
		}
		if !c.Heroic.IsKnown() {
			return fmt.Errorf("character %s: %w: %q", id, ErrUnknownHeroic, c.Heroic)
		}
		if o := c.HeroicCooldownOverride; o != nil {
			if _, ok := l.Weapons[o.WeaponID]; !ok {
				return fmt.Errorf("character %s cooldown override: %w: %s", id, ErrUnknownWeapon, o.WeaponID)
			}
		}
		if c.HeroicGaugeMax <= 0 {
			return fmt.Errorf("%w: character %s heroic gauge max must be positive", ErrInvalidDefinition, id)
		}
	}
	for id, s := range l.Stages {
		for _, wave := range s.SpawnWaves {
			if _, ok := l.Enemies[wave.EnemyTypeID]; !ok {
				return fmt.Errorf("stage %s: %w: %s", id, ErrUnknownEnemy, wave.EnemyTypeID)
			}
		}
	}
	return nil
}

// Weapon looks up a weapon definition.
func (l *Library) Weapon(id string) (*WeaponDefinition, error) {
	w, ok := l.Weapons[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWeapon, id)
	}
	return w, nil
}

// MustWeapon looks up a weapon definition and panics when it is missing.
func (l *Library) MustWeapon(id string) *WeaponDefinition {
	w, err := l.Weapon(id)
	if err != nil {
		panic(err)
	}
	return w
}

// Enemy looks up an enemy definition.
func (l *Library) Enemy(id string) (*EnemyDefinition, error) {
	e, ok := l.Enemies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEnemy, id)
	}
	return e, nil
}

// MustEnemy looks up an enemy definition and panics when it is missing.
func (l *Library) MustEnemy(id string) *EnemyDefinition {
	e, err := l.Enemy(id)
	if err != nil {
		panic(err)
	}
	return e
}

// Character looks up a character definition.
func (l *Library) Character(id string) (*CharacterDefinition, error) {
	c, ok := l.Characters[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCharacter, id)
	}
	return c, nil
}

// Stage looks up a stage definition.
func (l *Library) Stage(id string) (*StageDefinition, error) {
	s, ok := l.Stages[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStage, id)
	}
	return s, nil
}

// Upgrade looks up a meta-upgrade definition.
func (l *Library) Upgrade(id UpgradeID) (*UpgradeDefinition, error) {
	u, ok := l.Upgrades[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUpgrade, id)
	}
	return u, nil
}
