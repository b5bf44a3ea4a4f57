// internal/ui/player_level_indicator.go
package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-survivor/internal/config"
)

// PlayerLevelIndicator отображает уровень и опыт игрока.
type PlayerLevelIndicator struct {
	X, Y     float32
	Width    float32
	fontFace font.Face
}

const (
	xpBarHeight = 12
	borderWidth = 1
)

var borderColor = color.White

// NewPlayerLevelIndicator создает новый индикатор уровня.
func NewPlayerLevelIndicator(x, y, width float32, fontFace font.Face) *PlayerLevelIndicator {
	return &PlayerLevelIndicator{X: x, Y: y, Width: width, fontFace: fontFace}
}

// Draw отрисовывает полосу опыта и уровень римскими цифрами.
func (i *PlayerLevelIndicator) Draw(screen *ebiten.Image, level int, currentXP, xpToNext float64) {
	vector.StrokeRect(screen, i.X, i.Y, i.Width, xpBarHeight, borderWidth, borderColor, true)

	fillWidth := (i.Width - borderWidth*2) * float32(FillRatio(currentXP, xpToNext))
	if fillWidth > 0 {
		vector.DrawFilledRect(screen, i.X+borderWidth, i.Y+borderWidth, fillWidth, xpBarHeight-borderWidth*2, config.XPBarColor, true)
	}

	text.Draw(screen, "LV "+toRoman(level), i.fontFace, int(i.X), int(i.Y)+xpBarHeight+16, config.TextLightColor)
}

// FillRatio доля заполнения полосы, ограниченная [0, 1].
func FillRatio(current, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return max(0, min(1, current/total))
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}
