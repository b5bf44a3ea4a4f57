// internal/defs/enemies.go
package defs

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HP         float64 `json:"hp"`
	Speed      float64 `json:"speed"`
	Damage     float64 `json:"damage"`
	Size       float64 `json:"size"`
	XP         float64 `json:"xp"`
	Elite      bool    `json:"elite,omitempty"`
	Boss       bool    `json:"boss,omitempty"`
	DropChance float64 `json:"drop_chance,omitempty"` // 0 selects the default chance
	Color      string  `json:"color"`
}
