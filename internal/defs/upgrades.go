// internal/defs/upgrades.go
package defs

// UpgradeID identifies a permanent meta-upgrade.
type UpgradeID string

const (
	UpgradeRevive     UpgradeID = "revive"
	UpgradeDuplicator UpgradeID = "duplicator"
	UpgradeSpeed      UpgradeID = "speed"
	UpgradeProjSpeed  UpgradeID = "projSpeed"
	UpgradeDamage     UpgradeID = "damage"
)

// UpgradeDefinition holds the shop data for a meta-upgrade.
type UpgradeDefinition struct {
	ID          UpgradeID `json:"id"`
	Name        string    `json:"name"`
	MaxLevel    int       `json:"max_level"`
	Cost        int       `json:"cost"`
	Description string    `json:"description"`
}
