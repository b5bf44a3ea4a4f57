// internal/defs/stages.go
package defs

// SpawnWave is one entry of a stage's wave table.
type SpawnWave struct {
	TimeSec     float64 `json:"time_sec"`
	EnemyTypeID string  `json:"enemy_type_id"`
	Count       int     `json:"count"`
	IntervalMs  float64 `json:"interval_ms"`
}

// TimeMs returns the activation time in milliseconds of game time.
func (w SpawnWave) TimeMs() float64 {
	return w.TimeSec * 1000
}

// StageDefinition holds the wave table and length of a stage.
type StageDefinition struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	DurationSec float64     `json:"duration_sec"`
	SpawnWaves  []SpawnWave `json:"spawn_waves"`
}

// DurationMs returns the stage length in milliseconds of game time.
func (s *StageDefinition) DurationMs() float64 {
	return s.DurationSec * 1000
}
