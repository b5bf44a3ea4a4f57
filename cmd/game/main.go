// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/basicfont"

	"go-survivor/internal/app"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/persistence"
	"go-survivor/internal/state"
)

type AppGame struct {
	stateMachine *state.StateMachine
}

func (a *AppGame) Update() error {
	return a.stateMachine.Update(time.Now())
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	settings := config.DefaultSettings()
	settings.RegisterFlags(flag.CommandLine)
	quickStart := flag.Bool("quick", false, "skip the menu and start the configured stage")
	pprofAddr := flag.String("pprof", "", "address for the pprof endpoint, empty disables it")
	flag.Parse()

	if err := settings.Validate(); err != nil {
		log.Fatal(err)
	}
	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	lib, err := defs.Open(settings.ContentDir)
	if err != nil {
		log.Fatalf("Failed to load definitions: %v", err)
	}

	input := state.NewEbitenInput()
	game := app.NewGame(lib, persistence.Open(settings.SavePath), input, settings.ResolveSeed())

	ctx := &state.Context{
		Game:     game,
		Lib:      lib,
		Input:    input,
		TickRate: settings.TickRate,
		FontFace: basicfont.Face7x13,
		Weapon:   settings.Weapon,
	}

	sm := state.NewStateMachine() // Создаём машину состояний
	if *quickStart {
		if err := game.OpenStageSelect(); err != nil {
			log.Fatal(err)
		}
		if err := game.StartSession(settings.Character, settings.Weapon, settings.Stage); err != nil {
			log.Fatalf("Failed to start session: %v", err)
		}
		sm.SetState(state.NewGameState(sm, ctx))
	} else {
		sm.SetState(state.NewMenuState(sm, ctx))
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Survivor")
	if err := ebiten.RunGame(&AppGame{stateMachine: sm}); err != nil {
		log.Fatal(err)
	}
}
