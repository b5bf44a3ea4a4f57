// internal/app/autopilot.go
package app

import (
	"errors"
	"log"
	"sync"

	"go-survivor/internal/component"
	"go-survivor/internal/utils"
	vec "go-survivor/pkg/utils"
)

const (
	autopilotTurnRate = 0.02 // рад за тик
	autopilotAimRate  = 0.07
)

// Autopilot ведёт забег без игрока: ходит по кругу, водит прицелом,
// выбирает улучшения и применяет героическое умение, как только оно готово.
type Autopilot struct {
	mu   sync.Mutex
	game *Game
	rng  *utils.PRNGService
	step int
}

func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{rng: utils.NewPRNGService(seed)}
}

// Attach делает автопилот источником ввода и получателем снапшотов игры.
func (a *Autopilot) Attach(g *Game) {
	a.mu.Lock()
	a.game = g
	a.mu.Unlock()
	g.SetInput(a)
	g.AddPresenter(a)
}

// ReadInput вызывается из тика под блокировкой Game, поэтому к Game не обращается.
func (a *Autopilot) ReadInput() component.InputState {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.step++
	return component.InputState{
		Move: vec.FromAngle(float64(a.step)*autopilotTurnRate, 1),
		Aim:  vec.FromAngle(float64(a.step)*autopilotAimRate, 1),
	}
}

// Present принимает решения по снапшоту; блокировка Game здесь уже снята.
func (a *Autopilot) Present(s *Snapshot) {
	a.mu.Lock()
	g := a.game
	a.mu.Unlock()
	if g == nil {
		return
	}

	var err error
	switch s.Status {
	case component.StatusPlaying:
		if s.HeroicReady {
			err = g.ActivateHeroic()
		}
	case component.StatusLevelUpAttributes:
		if n := len(s.Options.Attributes); n > 0 {
			err = g.SelectAttribute(component.Attribute(s.Options.Attributes[a.pick(n)].ID))
		}
	case component.StatusLevelUpWeapons:
		id := ""
		if n := len(s.Options.Weapons); n > 0 {
			id = s.Options.Weapons[a.pick(n)].ID
		}
		err = g.SelectWeapon(id)
	case component.StatusGameOver:
		if s.ReviveAvailable {
			err = g.Revive()
		} else {
			err = g.Restart()
		}
	case component.StatusStageComplete:
		err = g.Restart()
	}
	// Снапшот мог устареть, пока решение принималось.
	if err != nil && !errors.Is(err, ErrUnexpectedStatus) && !errors.Is(err, ErrHeroicNotReady) {
		log.Printf("Autopilot: %v", err)
	}
}

func (a *Autopilot) pick(n int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.Intn(n)
}
