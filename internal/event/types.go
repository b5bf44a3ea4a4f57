// internal/event/types.go
package event

const (
	EnemyKilled     EventType = "EnemyKilled"     // Враг уничтожен, Data: EnemyKilledData
	WaveStarted     EventType = "WaveStarted"     // Волна запланирована, Data: индекс волны
	LevelUp         EventType = "LevelUp"         // Data: новый уровень
	HeroicActivated EventType = "HeroicActivated" // Data: ID персонажа
	PlayerHit       EventType = "PlayerHit"       // Data: полученный урон
	GameOver        EventType = "GameOver"
	StageCleared    EventType = "StageCleared"
	Revived         EventType = "Revived"
	StatusChanged   EventType = "StatusChanged" // Data: component.GameStatus
)

// EnemyKilledData данные события EnemyKilled.
type EnemyKilledData struct {
	TypeID   string
	Exploded bool
}
