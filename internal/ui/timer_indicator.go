// internal/ui/timer_indicator.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"go-survivor/internal/utils"
)

// finalMinuteMs последняя минута этапа подсвечивается.
const finalMinuteMs = 60000.0

// TimerIndicator показывает оставшееся время этапа.
type TimerIndicator struct {
	X, Y         float32
	Color        color.Color
	WarnColor    color.Color
	OutlineColor color.Color
	fontFace     font.Face
}

// NewTimerIndicator создает новый индикатор времени.
func NewTimerIndicator(x, y float32, fontFace font.Face, clr color.Color) *TimerIndicator {
	return &TimerIndicator{
		X:            x,
		Y:            y,
		Color:        clr,
		WarnColor:    color.RGBA{230, 60, 60, 255},
		OutlineColor: color.Black,
		fontFace:     fontFace,
	}
}

// Draw отрисовывает "мм:сс" по центру X с обводкой.
func (i *TimerIndicator) Draw(screen *ebiten.Image, remainingMs float64) {
	label := utils.FormatTime(remainingMs)
	textColor := i.Color
	if remainingMs < finalMinuteMs {
		textColor = i.WarnColor
	}

	bounds := text.BoundString(i.fontFace, label)
	x := int(i.X) - bounds.Dx()/2
	y := int(i.Y)

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			text.Draw(screen, label, i.fontFace, x+dx, y+dy, i.OutlineColor)
		}
	}
	text.Draw(screen, label, i.fontFace, x, y, textColor)
}
