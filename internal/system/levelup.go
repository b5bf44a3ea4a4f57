// internal/system/levelup.go
package system

import (
	"errors"
	"fmt"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/entity"
)

var (
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrOptionNotOffered = errors.New("option not offered")
)

var attributeOptions = []component.LevelUpOption{
	{Kind: component.OptionAttribute, ID: string(component.AttributeMight), Title: "Might", Description: "+10% Damage"},
	{Kind: component.OptionAttribute, ID: string(component.AttributeWillpower), Title: "Willpower", Description: "+5 Defense"},
	{Kind: component.OptionAttribute, ID: string(component.AttributeInsight), Title: "Insight", Description: "+20% Max HP"},
	{Kind: component.OptionAttribute, ID: string(component.AttributeDexterity), Title: "Dexterity", Description: "+5% Move & Proj. Speed"},
}

// LevelUpSystem формирует варианты повышения уровня и применяет выбор игрока.
type LevelUpSystem struct {
	lib *defs.Library
	rng Random
}

func NewLevelUpSystem(lib *defs.Library, rng Random) *LevelUpSystem {
	return &LevelUpSystem{lib: lib, rng: rng}
}

// GenerateOptions создаёт новый набор: все атрибуты и до четырёх вариантов оружия
// из улучшений имеющегося и новых предлагаемых видов.
func (s *LevelUpSystem) GenerateOptions(w *entity.ECS) {
	p := w.Player
	var pool []component.LevelUpOption
	for _, pw := range p.Weapons {
		def := s.lib.MustWeapon(pw.ID)
		if pw.Level >= def.MaxLevel() {
			continue
		}
		pool = append(pool, component.LevelUpOption{
			Kind:        component.OptionWeapon,
			ID:          def.ID,
			Title:       "Upgrade " + def.Name,
			Description: def.Level(pw.Level + 1).Description,
		})
	}
	for _, id := range s.lib.WeaponOrder {
		def := s.lib.Weapons[id]
		if !def.Offerable {
			continue
		}
		if _, owned := p.Weapon(id); owned {
			continue
		}
		pool = append(pool, component.LevelUpOption{
			Kind:        component.OptionWeapon,
			ID:          def.ID,
			Title:       "New: " + def.Name,
			Description: def.Level(1).Description,
		})
	}
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > config.LevelUpWeaponChoices {
		pool = pool[:config.LevelUpWeaponChoices]
	}

	w.Options = component.LevelUpOptions{
		Attributes: append([]component.LevelUpOption(nil), attributeOptions...),
		Weapons:    pool,
		Generation: w.Options.Generation + 1,
	}
}

// ApplyAttribute повышает выбранную характеристику.
func (s *LevelUpSystem) ApplyAttribute(w *entity.ECS, attr component.Attribute) error {
	st := &w.Player.Stats
	switch attr {
	case component.AttributeMight:
		st.DamageMultiplier *= config.MightDamageFactor
	case component.AttributeWillpower:
		st.Defense += config.WillpowerDefense
	case component.AttributeInsight:
		st.MaxHP *= config.InsightMaxHPFactor
		st.CurrentHP = st.MaxHP
	case component.AttributeDexterity:
		st.MoveSpeed *= config.DexteritySpeedBonus
		st.ProjectileSpeedMultiplier *= config.DexteritySpeedBonus
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, attr)
	}
	return nil
}

// ApplyWeapon улучшает оружие из текущего набора вариантов или выдаёт новое.
func (s *LevelUpSystem) ApplyWeapon(w *entity.ECS, weaponID string) error {
	offered := false
	for _, o := range w.Options.Weapons {
		if o.ID == weaponID {
			offered = true
			break
		}
	}
	if !offered {
		return fmt.Errorf("%w: weapon %s", ErrOptionNotOffered, weaponID)
	}
	def, err := s.lib.Weapon(weaponID)
	if err != nil {
		return err
	}
	GrantWeapon(w.Player, def)
	return nil
}

// GrantWeapon добавляет оружие игроку или повышает его уровень, не выходя за таблицу.
func GrantWeapon(p *component.Player, def *defs.WeaponDefinition) {
	if pw, ok := p.Weapon(def.ID); ok {
		pw.Level = min(pw.Level+1, def.MaxLevel())
		return
	}
	p.Weapons = append(p.Weapons, component.PlayerWeapon{
		ID:                def.ID,
		Level:             1,
		CooldownMs:        def.StartingCooldown(),
		PassiveCooldownMs: def.Levels[0].RegenIntervalMs,
	})
}
