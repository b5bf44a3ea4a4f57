// internal/state/pause_state.go
package state

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-survivor/internal/component"
	"go-survivor/internal/config"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState рисует замороженный забег поверх затемнения.
// Драйвер тиков остаётся в GameState и при возврате отсчитывает период заново.
type PauseState struct {
	stateMachine  *StateMachine
	previousState *GameState
}

func NewPauseState(sm *StateMachine, prevState *GameState) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
	}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(now time.Time) error {
	game := s.previousState.ctx.Game
	if game.Status() != component.StatusPaused {
		s.stateMachine.SetState(s.previousState)
		return nil
	}

	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if s.previousState.pauseButton.IsClicked(x, y) {
			s.previousState.pauseButton.HandleClick()
			unpause = true
		}
	}
	if unpause {
		s.previousState.report(game.Resume())
		s.stateMachine.SetState(s.previousState)
	}
	return nil
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previousState.Draw(screen)
	s.previousState.drawOverlay(screen, "PAUSED")
	s.previousState.drawCentered(screen, "[P] or [Esc] resume", config.ScreenHeight/2)
}

func (s *PauseState) Exit() {}
