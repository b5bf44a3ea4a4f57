// internal/system/utils.go
package system

import (
	"sort"

	"go-survivor/internal/component"
	"go-survivor/internal/types"
	"go-survivor/pkg/utils"
)

// Random источник случайности симуляции. utils.PRNGService удовлетворяет ему.
type Random interface {
	Float64() float64
	Intn(n int) int
	Range(min, max float64) float64
	Chance(p float64) bool
	Shuffle(n int, swap func(i, j int))
}

// DamageLedger урон, накопленный врагами за один тик.
type DamageLedger map[types.EntityID]*component.DamageEntry

// Entry возвращает запись врага, создавая её при необходимости.
func (l DamageLedger) Entry(id types.EntityID) *component.DamageEntry {
	e, ok := l[id]
	if !ok {
		e = component.NewDamageEntry()
		l[id] = e
	}
	return e
}

// Damage суммарный урон по врагу, 0 если записи нет.
func (l DamageLedger) Damage(id types.EntityID) float64 {
	if e, ok := l[id]; ok {
		return e.Damage
	}
	return 0
}

// findNearestEnemy ищет ближайшего врага к точке. maxDist <= 0 снимает ограничение.
func findNearestEnemy(enemies []*component.Enemy, from utils.Vector2D, maxDist float64) *component.Enemy {
	var nearest *component.Enemy
	best := -1.0
	for _, e := range enemies {
		d := utils.Distance(from, e.Position)
		if maxDist > 0 && d >= maxDist {
			continue
		}
		if nearest == nil || d < best {
			nearest = e
			best = d
		}
	}
	return nearest
}

// findNearestEnemies возвращает до n разных врагов по возрастанию расстояния.
func findNearestEnemies(enemies []*component.Enemy, from utils.Vector2D, n int) []*component.Enemy {
	if n <= 0 || len(enemies) == 0 {
		return nil
	}
	sorted := append([]*component.Enemy(nil), enemies...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utils.Distance(from, sorted[i].Position) < utils.Distance(from, sorted[j].Position)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
