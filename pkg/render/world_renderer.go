// pkg/render/world_renderer.go
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"go-survivor/internal/app"
	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/pkg/utils"
)

const gridStep = 64.0

// WorldRenderer draws a session snapshot centred on the camera.
type WorldRenderer struct {
	lib          *defs.Library
	screenWidth  int
	screenHeight int
	fontFace     font.Face
	colors       Palette
}

func NewWorldRenderer(lib *defs.Library, screenWidth, screenHeight int, colors Palette) *WorldRenderer {
	return &WorldRenderer{
		lib:          lib,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		fontFace:     basicfont.Face7x13,
		colors:       colors,
	}
}

// DefaultPalette builds the palette from the game config.
func DefaultPalette() Palette {
	return Palette{
		Background: config.BackgroundColor,
		Grid:       config.GridColor,
		Player:     config.PlayerColor,
		Flash:      config.FlashColor,
		Turret:     config.TurretColor,
		MegaTurret: config.MegaTurretColor,
		XPOrb:      config.XPOrbColor,
		Currency:   config.CurrencyColor,
		Explosion:  config.ExplosionColor,
		Aura:       config.AuraColor,
		Text:       config.TextLightColor,
		Fallback:   config.TextLightColor,
	}
}

// WorldToScreen maps a world position to screen pixels for the given camera.
func WorldToScreen(pos, camera utils.Vector2D, screenWidth, screenHeight int) (float32, float32) {
	return float32(pos.X - camera.X + float64(screenWidth)/2),
		float32(pos.Y - camera.Y + float64(screenHeight)/2)
}

// Flashing reports whether something hit at lastHitMs still shows the hit flash.
func Flashing(lastHitMs, nowMs float64) bool {
	return nowMs-lastHitMs < config.FlashDurationMs
}

func (r *WorldRenderer) toScreen(pos, camera utils.Vector2D) (float32, float32) {
	return WorldToScreen(pos, camera, r.screenWidth, r.screenHeight)
}

// Draw renders the whole world.
func (r *WorldRenderer) Draw(screen *ebiten.Image, s *app.Snapshot) {
	screen.Fill(r.colors.Background)
	r.drawGrid(screen, s.Camera)
	if s.Player == nil {
		return
	}

	r.drawAura(screen, s)
	for _, o := range s.XPOrbs {
		x, y := r.toScreen(o.Position, s.Camera)
		vector.DrawFilledCircle(screen, x, y, float32(o.Size/2), r.colors.XPOrb, true)
	}
	for _, o := range s.CurrencyOrbs {
		x, y := r.toScreen(o.Position, s.Camera)
		vector.DrawFilledCircle(screen, x, y, float32(o.Size/2), r.colors.Currency, true)
	}
	for i := range s.Turrets {
		r.drawTurret(screen, &s.Turrets[i], s.Camera)
	}
	for i := range s.Enemies {
		r.drawEnemy(screen, &s.Enemies[i], s)
	}
	r.drawPlayer(screen, s)
	for i := range s.Projectiles {
		r.drawProjectile(screen, &s.Projectiles[i], s.Camera)
	}
	for _, e := range s.Explosions {
		x, y := r.toScreen(e.Position, s.Camera)
		fade := uint8(float64(r.colors.Explosion.A) * e.RemainingMs / max(e.DurationMs, 1))
		vector.DrawFilledCircle(screen, x, y, float32(e.Radius), WithAlpha(r.colors.Explosion, fade), true)
	}
}

func (r *WorldRenderer) drawGrid(screen *ebiten.Image, camera utils.Vector2D) {
	w, h := float64(r.screenWidth), float64(r.screenHeight)
	offX := math.Mod(-camera.X+w/2, gridStep)
	offY := math.Mod(-camera.Y+h/2, gridStep)
	for x := offX; x < w; x += gridStep {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(h), 1, r.colors.Grid, false)
	}
	for y := offY; y < h; y += gridStep {
		vector.StrokeLine(screen, 0, float32(y), float32(w), float32(y), 1, r.colors.Grid, false)
	}
}

func (r *WorldRenderer) drawAura(screen *ebiten.Image, s *app.Snapshot) {
	for _, pw := range s.Player.Weapons {
		def, err := r.lib.Weapon(pw.ID)
		if err != nil {
			continue
		}
		if level, ok := def.AuraLevel(pw.Level); ok {
			x, y := r.toScreen(s.Player.Position, s.Camera)
			vector.DrawFilledCircle(screen, x, y, float32(level.AuraRadius), r.colors.Aura, true)
			return
		}
	}
}

func (r *WorldRenderer) drawPlayer(screen *ebiten.Image, s *app.Snapshot) {
	p := s.Player
	x, y := r.toScreen(p.Position, s.Camera)
	fill := r.colors.Player
	if Flashing(p.LastHitMs, s.ElapsedMs) {
		fill = r.colors.Flash
	}
	if p.IsInvulnerable(s.ElapsedMs) {
		fill = WithAlpha(fill, 140)
	}
	half := float32(p.Size / 2)
	vector.DrawFilledRect(screen, x-half, y-half, half*2, half*2, fill, true)
	vector.StrokeRect(screen, x-half, y-half, half*2, half*2, 2, color.White, true)
	if p.HeroicActive {
		vector.StrokeCircle(screen, x, y, half*1.6, 3, config.HeroicBarColor, true)
	}
}

func (r *WorldRenderer) drawEnemy(screen *ebiten.Image, e *component.Enemy, s *app.Snapshot) {
	x, y := r.toScreen(e.Position, s.Camera)
	fill := EnemyColor(e.TypeID)
	if Flashing(e.LastHitMs, s.ElapsedMs) {
		fill = r.colors.Flash
	}
	radius := float32(e.Size / 2)
	vector.DrawFilledCircle(screen, x, y, radius, fill, true)

	// Глаз показывает, куда смотрит враг.
	eye := radius / 2
	if e.Facing == component.FacingLeft {
		eye = -eye
	}
	vector.DrawFilledCircle(screen, x+eye, y-radius/3, max(radius/5, 2), DarkenColor(fill), true)

	if e.CurrentHP < e.MaxHP && e.MaxHP > 0 {
		ratio := float32(e.CurrentHP / e.MaxHP)
		vector.DrawFilledRect(screen, x-radius, y-radius-6, radius*2, 3, DarkenColor(config.HPBarColor), false)
		vector.DrawFilledRect(screen, x-radius, y-radius-6, radius*2*ratio, 3, config.HPBarColor, false)
	}
}

func (r *WorldRenderer) drawTurret(screen *ebiten.Image, t *component.Turret, camera utils.Vector2D) {
	x, y := r.toScreen(t.Position, camera)
	fill := r.colors.Turret
	if t.Mega {
		fill = r.colors.MegaTurret
	}
	half := float32(t.Size / 2)
	vector.DrawFilledRect(screen, x-half, y-half, half*2, half*2, fill, true)
	vector.StrokeRect(screen, x-half, y-half, half*2, half*2, 1, DarkenColor(fill), true)
}

func (r *WorldRenderer) drawProjectile(screen *ebiten.Image, p *component.Projectile, camera utils.Vector2D) {
	x, y := r.toScreen(p.Position, camera)
	fill := NamedColor(p.Color, r.colors.Fallback)

	switch {
	case p.DisplayText != "":
		text.Draw(screen, p.DisplayText, r.fontFace, int(x)-len(p.DisplayText)*3, int(y)-int(p.Size)-4, fill)
	case p.Width > 0 && p.Height > 0:
		w, h := float32(p.Width), float32(p.Height)
		vector.DrawFilledRect(screen, x-w/2, y-h/2, w, h, fill, true)
		vector.StrokeRect(screen, x-w/2, y-h/2, w, h, 1, color.White, true)
	case p.Size > 0:
		vector.DrawFilledCircle(screen, x, y, float32(p.Size/2), fill, true)
	}
}
