// internal/system/state.go
package system

import (
	"errors"
	"fmt"
	"log"

	"go-survivor/internal/component"
	"go-survivor/internal/entity"
	"go-survivor/internal/event"
)

var ErrInvalidTransition = errors.New("invalid status transition")

var transitions = map[component.GameStatus][]component.GameStatus{
	component.StatusStartScreen: {component.StatusStageSelect},
	component.StatusStageSelect: {component.StatusPlaying, component.StatusStartScreen},
	component.StatusPlaying: {
		component.StatusPaused,
		component.StatusLevelUpAttributes,
		component.StatusGameOver,
		component.StatusStageComplete,
	},
	component.StatusPaused:            {component.StatusPlaying},
	component.StatusLevelUpAttributes: {component.StatusLevelUpWeapons},
	component.StatusLevelUpWeapons:    {component.StatusPlaying, component.StatusLevelUpAttributes},
	component.StatusGameOver:          {component.StatusPlaying, component.StatusStartScreen},
	component.StatusStageComplete:     {component.StatusStartScreen},
}

// CanTransition сообщает, разрешён ли переход между состояниями сессии.
func CanTransition(from, to component.GameStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StateSystem меняет состояние сессии по таблице переходов.
type StateSystem struct {
	eventDispatcher *event.Dispatcher
}

func NewStateSystem(eventDispatcher *event.Dispatcher) *StateSystem {
	return &StateSystem{eventDispatcher: eventDispatcher}
}

// Transition переводит мир в состояние to.
func (s *StateSystem) Transition(w *entity.ECS, to component.GameStatus) error {
	from := w.Status
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	w.Status = to
	log.Printf("Status: %s -> %s", from, to)
	s.eventDispatcher.Enqueue(event.Event{Type: event.StatusChanged, Data: to})
	return nil
}
