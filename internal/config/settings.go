// internal/config/settings.go
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

// ErrInvalidSettings возвращается Validate для некорректных настроек.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings настройки запуска, заполняются из флагов командной строки.
type Settings struct {
	TickRate   time.Duration
	Seed       int64  // 0 означает сид от текущего времени
	SavePath   string // пусто: сохранение только в памяти
	ContentDir string // пусто: встроенные определения
	ListenAddr string // адрес для трансляции снапшотов
	Character  string
	Weapon     string // стартовое оружие для персонажа без своего
	Stage      string
}

// DefaultSettings возвращает настройки по умолчанию.
func DefaultSettings() Settings {
	return Settings{
		TickRate:   TickInterval,
		SavePath:   "survivor.save",
		ListenAddr: "localhost:8080",
		Character:  "raime",
		Stage:      "forest",
	}
}

// Validate проверяет настройки перед запуском.
func (s Settings) Validate() error {
	if s.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive, got %s", ErrInvalidSettings, s.TickRate)
	}
	if s.Character == "" {
		return fmt.Errorf("%w: character is required", ErrInvalidSettings)
	}
	if s.Stage == "" {
		return fmt.Errorf("%w: stage is required", ErrInvalidSettings)
	}
	return nil
}

// RegisterFlags привязывает поля настроек к флагам командной строки.
// Текущие значения становятся значениями по умолчанию.
func (s *Settings) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&s.TickRate, "tick", s.TickRate, "simulation tick period")
	fs.Int64Var(&s.Seed, "seed", s.Seed, "random seed, 0 uses the clock")
	fs.StringVar(&s.SavePath, "save", s.SavePath, "save file path, empty keeps progress in memory")
	fs.StringVar(&s.ContentDir, "content", s.ContentDir, "directory with definition JSON files, empty uses built-in content")
	fs.StringVar(&s.ListenAddr, "listen", s.ListenAddr, "address for the snapshot feed")
	fs.StringVar(&s.Character, "character", s.Character, "character id")
	fs.StringVar(&s.Weapon, "weapon", s.Weapon, "starting weapon for a character without one")
	fs.StringVar(&s.Stage, "stage", s.Stage, "stage id")
}

// ResolveSeed возвращает сид; 0 заменяется текущим временем.
func (s Settings) ResolveSeed() int64 {
	if s.Seed != 0 {
		return s.Seed
	}
	return time.Now().UnixNano()
}
