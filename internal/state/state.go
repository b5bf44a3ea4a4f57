// internal/state/state.go
package state

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"

	"go-survivor/internal/defs"
	"go-survivor/internal/interfaces"
)

// State — интерфейс для всех экранов клиента
type State interface {
	Enter()
	Update(now time.Time) error
	Draw(screen *ebiten.Image)
	Exit()
}

// Context общие зависимости экранов.
type Context struct {
	Game     interfaces.Game
	Lib      *defs.Library
	Input    *EbitenInput
	TickRate time.Duration
	FontFace font.Face
	Weapon   string // стартовое оружие для персонажа без своего
}

// StateMachine — структура для управления состояниями
type StateMachine struct {
	current State
}

// NewStateMachine создаёт новую машину состояний без начального состояния
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState устанавливает новое состояние
func (sm *StateMachine) SetState(newState State) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = newState
	if sm.current != nil {
		sm.current.Enter()
	}
}

// Current возвращает текущее состояние
func (sm *StateMachine) Current() State {
	return sm.current
}

// Update обновляет текущее состояние; ошибка останавливает клиент
func (sm *StateMachine) Update(now time.Time) error {
	if sm.current != nil {
		return sm.current.Update(now)
	}
	return nil
}

// Draw отрисовывает текущее состояние
func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
