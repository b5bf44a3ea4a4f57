// internal/component/spawn.go
package component

// PendingSpawn отложенное появление врага.
type PendingSpawn struct {
	DueMs       float64
	EnemyTypeID string
}
