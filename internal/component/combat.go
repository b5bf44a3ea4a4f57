// internal/component/combat.go
package component

import "go-survivor/pkg/utils"

// DamageEntry суммарный урон по одному врагу за тик.
type DamageEntry struct {
	Damage    float64
	Sources   map[string]struct{} // ID оружия, нанёсшего урон
	Knockback utils.Vector2D
}

// NewDamageEntry создаёт пустую запись.
func NewDamageEntry() *DamageEntry {
	return &DamageEntry{Sources: make(map[string]struct{})}
}

// Add добавляет урон и отбрасывание от источника.
func (d *DamageEntry) Add(damage float64, source string, knockback utils.Vector2D) {
	d.Damage += damage
	if source != "" {
		d.Sources[source] = struct{}{}
	}
	d.Knockback = d.Knockback.Add(knockback)
}

// HasSource сообщает, участвовало ли оружие в уроне.
func (d *DamageEntry) HasSource(weaponID string) bool {
	_, ok := d.Sources[weaponID]
	return ok
}
