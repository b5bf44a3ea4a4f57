package interfaces

import (
	"go-survivor/internal/app"
	"go-survivor/internal/component"
	"go-survivor/internal/defs"
	"go-survivor/internal/persistence"
)

// Menu команды экранов вне забега.
type Menu interface {
	OpenStageSelect() error
	BackToStart() error
	StartSession(characterID, weaponID, stageID string) error
	PurchaseUpgrade(id defs.UpgradeID) error
	ToggleUpgrade(id defs.UpgradeID) error
	SaveData() persistence.SaveRecord
}

// Session команды и чтение состояния идущего забега.
type Session interface {
	Status() component.GameStatus
	Snapshot() *app.Snapshot
	Tick() error
	ActivateHeroic() error
	SelectAttribute(attr component.Attribute) error
	SelectWeapon(weaponID string) error
	Pause() error
	Resume() error
	Revive() error
	Restart() error
	BackToStart() error
}

// Game всё, что нужно клиенту от игры.
type Game interface {
	Menu
	Session
}

var _ Game = (*app.Game)(nil)
