// internal/component/visual.go
package component

import "go-survivor/pkg/utils"

// ExplosionEffect визуальный след взрыва, на логику не влияет.
type ExplosionEffect struct {
	Position    utils.Vector2D
	Radius      float64
	RemainingMs float64
	DurationMs  float64
}
