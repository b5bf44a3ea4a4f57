// internal/ui/indicator.go
package ui

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-survivor/internal/config"
)

// HeroicIndicator круговая шкала героического умения; пульсирует, когда готово.
type HeroicIndicator struct {
	X, Y       float32
	Radius     float32
	ReadySince time.Time
}

func NewHeroicIndicator(x, y, radius float32) *HeroicIndicator {
	return &HeroicIndicator{X: x, Y: y, Radius: radius}
}

// Draw отрисовывает индикатор: сектор по заполнению шкалы.
func (i *HeroicIndicator) Draw(screen *ebiten.Image, gauge, gaugeMax float64, ready, active bool) {
	if ready && i.ReadySince.IsZero() {
		i.ReadySince = time.Now()
	}
	if !ready {
		i.ReadySince = time.Time{}
	}

	radius := i.Radius
	if ready {
		elapsed := time.Since(i.ReadySince).Seconds()
		radius *= float32(1.0 + 0.1*math.Sin(elapsed*6))
	}

	vector.DrawFilledCircle(screen, i.X, i.Y, radius, config.OverlayColor, true)

	ratio := FillRatio(gauge, gaugeMax)
	if active {
		ratio = 1
	}
	if ratio > 0 {
		var path vector.Path
		start := float32(-math.Pi / 2)
		path.MoveTo(i.X, i.Y)
		path.Arc(i.X, i.Y, radius, start, start+float32(2*math.Pi*ratio), vector.Clockwise)
		path.Close()
		vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
		for j := range vs {
			vs[j].SrcX, vs[j].SrcY = 1, 1
			vs[j].ColorR = float32(config.HeroicBarColor.R) / 255
			vs[j].ColorG = float32(config.HeroicBarColor.G) / 255
			vs[j].ColorB = float32(config.HeroicBarColor.B) / 255
			vs[j].ColorA = 1
		}
		screen.DrawTriangles(vs, is, whiteImage(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
	vector.StrokeCircle(screen, i.X, i.Y, radius, 2, borderColor, true)
}

var whitePixel *ebiten.Image

func whiteImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(3, 3)
		whitePixel.Fill(borderColor)
	}
	return whitePixel
}
