// internal/ui/player_health_indicator.go
package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-survivor/internal/config"
	"go-survivor/pkg/render"
)

const healthBarHeight = 14

// PlayerHealthIndicator отображает здоровье игрока.
type PlayerHealthIndicator struct {
	X, Y     float32
	Width    float32
	fontFace font.Face
}

// NewPlayerHealthIndicator создает новый индикатор здоровья.
func NewPlayerHealthIndicator(x, y, width float32, fontFace font.Face) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{X: x, Y: y, Width: width, fontFace: fontFace}
}

// Draw рисует полосу здоровья и подпись "текущее/максимум".
func (i *PlayerHealthIndicator) Draw(screen *ebiten.Image, health, maxHealth float64) {
	vector.DrawFilledRect(screen, i.X, i.Y, i.Width, healthBarHeight, render.DarkenColor(config.HPBarColor), true)
	if fill := i.Width * float32(FillRatio(health, maxHealth)); fill > 0 {
		vector.DrawFilledRect(screen, i.X, i.Y, fill, healthBarHeight, config.HPBarColor, true)
	}
	vector.StrokeRect(screen, i.X, i.Y, i.Width, healthBarHeight, borderWidth, borderColor, true)

	label := fmt.Sprintf("%.0f/%.0f", health, maxHealth)
	text.Draw(screen, label, i.fontFace, int(i.X)+4, int(i.Y)+healthBarHeight-2, config.TextLightColor)
}

// GetHeight возвращает общую высоту индикатора.
func (i *PlayerHealthIndicator) GetHeight() float32 {
	return healthBarHeight
}
