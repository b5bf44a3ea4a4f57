// internal/component/levelup.go
package component

// Attribute характеристика, улучшаемая при повышении уровня.
type Attribute string

const (
	AttributeMight     Attribute = "Might"
	AttributeWillpower Attribute = "Willpower"
	AttributeInsight   Attribute = "Insight"
	AttributeDexterity Attribute = "Dexterity"
)

// OptionKind тип варианта повышения уровня.
type OptionKind string

const (
	OptionAttribute OptionKind = "attribute"
	OptionWeapon    OptionKind = "weapon"
)

// LevelUpOption один вариант выбора при повышении уровня.
type LevelUpOption struct {
	Kind        OptionKind
	ID          string
	Title       string
	Description string
}

// LevelUpOptions набор вариантов для текущего повышения уровня.
type LevelUpOptions struct {
	Attributes []LevelUpOption
	Weapons    []LevelUpOption
	Generation int // растёт при каждой новой генерации
}
