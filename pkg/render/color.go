// pkg/render/color.go
package render

import (
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Palette holds all the colors the world renderer needs.
type Palette struct {
	Background color.RGBA
	Grid       color.RGBA
	Player     color.RGBA
	Flash      color.RGBA
	Turret     color.RGBA
	MegaTurret color.RGBA
	XPOrb      color.RGBA
	Currency   color.RGBA
	Explosion  color.RGBA
	Aura       color.RGBA
	Text       color.RGBA
	Fallback   color.RGBA // projectile colors that have no CSS name
}

// NamedColor resolves a CSS color name used by weapon definitions.
func NamedColor(name string, fallback color.RGBA) color.RGBA {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return fallback
}

// EnemyColor picks a stable color for an enemy type.
func EnemyColor(typeID string) color.RGBA {
	switch typeID {
	case "bat":
		return colornames.Mediumpurple
	case "skeleton":
		return colornames.Lightgray
	case "goblin":
		return colornames.Olivedrab
	case "skeletonKing":
		return colornames.Gold
	case "voidHerald":
		return colornames.Darkviolet
	}
	return colornames.Indianred
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// WithAlpha returns c with alpha replaced.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}
