// internal/state/game_state.go
package state

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-survivor/internal/app"
	"go-survivor/internal/component"
	"go-survivor/internal/config"
	"go-survivor/internal/ui"
	"go-survivor/internal/utils"
	"go-survivor/pkg/render"
)

// GameState экран забега: мир, HUD и оверлеи выбора
type GameState struct {
	sm       *StateMachine
	ctx      *Context
	driver   *app.Driver
	renderer *render.WorldRenderer

	health      *ui.PlayerHealthIndicator
	level       *ui.PlayerLevelIndicator
	heroic      *ui.HeroicIndicator
	timer       *ui.TimerIndicator
	pauseButton *ui.PauseButton

	message string
}

func NewGameState(sm *StateMachine, ctx *Context) *GameState {
	face := ctx.FontFace
	return &GameState{
		sm:          sm,
		ctx:         ctx,
		driver:      app.NewDriver(ctx.Game, ctx.TickRate),
		renderer:    render.NewWorldRenderer(ctx.Lib, config.ScreenWidth, config.ScreenHeight, render.DefaultPalette()),
		health:      ui.NewPlayerHealthIndicator(20, 20, 240, face),
		level:       ui.NewPlayerLevelIndicator(20, 44, 240, face),
		heroic:      ui.NewHeroicIndicator(config.ScreenWidth-60, config.ScreenHeight-60, 32),
		timer:       ui.NewTimerIndicator(config.ScreenWidth/2, 30, face, config.TextLightColor),
		pauseButton: ui.NewPauseButton(config.ScreenWidth-30, 30, 10, config.HeroicBarColor, config.XPOrbColor),
	}
}

func (g *GameState) Enter() {}

func (g *GameState) Exit() {}

func (g *GameState) Update(now time.Time) error {
	game := g.ctx.Game

	switch game.Status() {
	case component.StatusStartScreen, component.StatusStageSelect:
		g.sm.SetState(NewMenuState(g.sm, g.ctx))
		return nil
	case component.StatusPaused:
		g.sm.SetState(NewPauseState(g.sm, g))
		return nil
	case component.StatusPlaying:
		if g.pausePressed() {
			g.report(game.Pause())
			return nil
		}
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			if err := game.ActivateHeroic(); err != nil && !errors.Is(err, app.ErrHeroicNotReady) {
				g.report(err)
			}
		}
		if err := g.driver.Poll(now); err != nil {
			log.Printf("Session aborted: %v", err)
			return err
		}
	case component.StatusLevelUpAttributes:
		if i, ok := g.choice(len(game.Snapshot().Options.Attributes)); ok {
			opt := game.Snapshot().Options.Attributes[i]
			g.report(game.SelectAttribute(component.Attribute(opt.ID)))
		}
	case component.StatusLevelUpWeapons:
		opts := game.Snapshot().Options.Weapons
		if len(opts) == 0 {
			if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
				g.report(game.SelectWeapon(""))
			}
			return nil
		}
		if i, ok := g.choice(len(opts)); ok {
			g.report(game.SelectWeapon(opts[i].ID))
		}
	case component.StatusGameOver:
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyR):
			g.report(game.Revive())
		case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
			g.report(game.Restart())
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			g.report(game.BackToStart())
		}
	case component.StatusStageComplete:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.report(game.BackToStart())
		}
	}
	return nil
}

func (g *GameState) report(err error) {
	if err != nil {
		g.message = err.Error()
	}
}

func (g *GameState) pausePressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if g.pauseButton.IsClicked(x, y) {
			g.pauseButton.HandleClick()
			return true
		}
	}
	return false
}

// choice возвращает выбранную карточку: клавиши 1..n или клик.
func (g *GameState) choice(n int) (int, bool) {
	for i := 0; i < n && i < len(digitKeys); i++ {
		if inpututil.IsKeyJustPressed(digitKeys[i]) {
			return i, true
		}
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return 0, false
	}
	x, y := ebiten.CursorPosition()
	for i, b := range g.cards(make([]component.LevelUpOption, n)) {
		if b.IsClicked(x, y) {
			return i, true
		}
	}
	return 0, false
}

func (g *GameState) cards(opts []component.LevelUpOption) []*ui.MenuButton {
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = fmt.Sprintf("[%d] %s", i+1, o.Title)
	}
	buttons := ui.ButtonRow(labels, config.ScreenWidth, config.ScreenHeight/2-60, 240, 120, 20, g.ctx.FontFace)
	for i, o := range opts {
		buttons[i].Subtext = o.Description
	}
	return buttons
}

func (g *GameState) Draw(screen *ebiten.Image) {
	s := g.ctx.Game.Snapshot()
	g.renderer.Draw(screen, s)
	if s.Player == nil {
		return
	}
	g.drawHUD(screen, s)

	switch s.Status {
	case component.StatusLevelUpAttributes:
		g.drawOverlay(screen, "LEVEL UP: choose an attribute")
		for _, b := range g.cards(s.Options.Attributes) {
			b.Draw(screen)
		}
	case component.StatusLevelUpWeapons:
		g.drawOverlay(screen, "LEVEL UP: choose a weapon")
		if len(s.Options.Weapons) == 0 {
			g.drawCentered(screen, "Nothing left to upgrade. [Enter] continue", config.ScreenHeight/2)
		}
		for _, b := range g.cards(s.Options.Weapons) {
			b.Draw(screen)
		}
	case component.StatusGameOver:
		g.drawOverlay(screen, "GAME OVER")
		hint := "[Enter] retry  [Esc] menu"
		if s.ReviveAvailable {
			hint = "[R] revive  " + hint
		}
		g.drawCentered(screen, fmt.Sprintf("Survived %s, %d kills", utils.FormatTime(s.ElapsedMs), s.Kills), config.ScreenHeight/2)
		g.drawCentered(screen, hint, config.ScreenHeight/2+24)
	case component.StatusStageComplete:
		g.drawOverlay(screen, "STAGE CLEARED")
		g.drawCentered(screen, fmt.Sprintf("%d kills, %d coins  [Enter] menu", s.Kills, s.Player.SessionCurrency), config.ScreenHeight/2)
	}

	if g.message != "" {
		text.Draw(screen, g.message, g.ctx.FontFace, 20, config.ScreenHeight-20, config.HPBarColor)
	}
}

func (g *GameState) drawHUD(screen *ebiten.Image, s *app.Snapshot) {
	p := s.Player
	g.health.Draw(screen, p.Stats.CurrentHP, p.Stats.MaxHP)
	g.level.Draw(screen, p.Level, p.XP, p.XPToNextLevel)
	g.heroic.Draw(screen, p.HeroicGauge, p.HeroicGaugeMax, s.HeroicReady, p.HeroicActive)
	g.timer.Draw(screen, s.RemainingMs())
	g.pauseButton.IsPaused = s.Status == component.StatusPaused
	g.pauseButton.Draw(screen)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Kills: %d  Coins: %d", s.Kills, p.SessionCurrency), 20, 80)
}

func (g *GameState) drawOverlay(screen *ebiten.Image, title string) {
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, config.OverlayColor, false)
	g.drawCentered(screen, title, config.ScreenHeight/2-100)
}

func (g *GameState) drawCentered(screen *ebiten.Image, label string, y int) {
	bounds := text.BoundString(g.ctx.FontFace, label)
	text.Draw(screen, label, g.ctx.FontFace, (config.ScreenWidth-bounds.Dx())/2, y, color.White)
}
