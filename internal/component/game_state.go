// internal/component/game_state.go
package component

// GameStatus состояние игровой сессии.
type GameStatus int

const (
	StatusStartScreen GameStatus = iota
	StatusStageSelect
	StatusPlaying
	StatusPaused
	StatusLevelUpAttributes
	StatusLevelUpWeapons
	StatusGameOver
	StatusStageComplete
)

func (s GameStatus) String() string {
	switch s {
	case StatusStartScreen:
		return "StartScreen"
	case StatusStageSelect:
		return "StageSelect"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	case StatusLevelUpAttributes:
		return "LevelUpAttributes"
	case StatusLevelUpWeapons:
		return "LevelUpWeapons"
	case StatusGameOver:
		return "GameOver"
	case StatusStageComplete:
		return "StageComplete"
	}
	return "Unknown"
}
