// internal/ui/menu_button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-survivor/internal/config"
)

var (
	buttonColor         = color.RGBA{60, 60, 80, 230}
	buttonSelectedColor = color.RGBA{194, 178, 128, 255}
	buttonDisabledColor = color.RGBA{40, 40, 45, 200}
)

// MenuButton простая кнопка для меню и карточек выбора.
type MenuButton struct {
	Rect     image.Rectangle
	Text     string
	Subtext  string
	Selected bool
	Disabled bool
	fontFace font.Face
}

// NewMenuButton создает новую кнопку меню.
func NewMenuButton(rect image.Rectangle, label string, fontFace font.Face) *MenuButton {
	return &MenuButton{Rect: rect, Text: label, fontFace: fontFace}
}

// Draw отрисовывает кнопку.
func (b *MenuButton) Draw(screen *ebiten.Image) {
	bg := buttonColor
	fg := color.Color(color.White)
	switch {
	case b.Disabled:
		bg = buttonDisabledColor
		fg = color.Gray{Y: 120}
	case b.Selected:
		bg = buttonSelectedColor
		fg = config.TextDarkColor
	}

	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, true)
	vector.StrokeRect(screen, x, y, w, h, float32(config.StrokeWidth), color.White, true)

	bounds := text.BoundString(b.fontFace, b.Text)
	textX := b.Rect.Min.X + (b.Rect.Dx()-bounds.Dx())/2
	textY := b.Rect.Min.Y + b.Rect.Dy()/2
	if b.Subtext == "" {
		textY += bounds.Dy() / 2
	}
	text.Draw(screen, b.Text, b.fontFace, textX, textY, fg)

	if b.Subtext != "" {
		sub := text.BoundString(b.fontFace, b.Subtext)
		text.Draw(screen, b.Subtext, b.fontFace, b.Rect.Min.X+(b.Rect.Dx()-sub.Dx())/2, textY+sub.Dy()+6, fg)
	}
}

// IsClicked проверяет, был ли клик по кнопке.
func (b *MenuButton) IsClicked(x, y int) bool {
	return !b.Disabled && image.Pt(x, y).In(b.Rect)
}

// ButtonColumn раскладывает кнопки столбцом по центру экрана.
func ButtonColumn(labels []string, screenWidth, top, width, height, gap int, fontFace font.Face) []*MenuButton {
	buttons := make([]*MenuButton, len(labels))
	left := (screenWidth - width) / 2
	for i, label := range labels {
		y := top + i*(height+gap)
		buttons[i] = NewMenuButton(image.Rect(left, y, left+width, y+height), label, fontFace)
	}
	return buttons
}

// ButtonRow раскладывает кнопки в строку по центру экрана.
func ButtonRow(labels []string, screenWidth, top, width, height, gap int, fontFace font.Face) []*MenuButton {
	buttons := make([]*MenuButton, len(labels))
	total := len(labels)*width + max(0, len(labels)-1)*gap
	left := (screenWidth - total) / 2
	for i, label := range labels {
		x := left + i*(width+gap)
		buttons[i] = NewMenuButton(image.Rect(x, top, x+width, top+height), label, fontFace)
	}
	return buttons
}
