// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-survivor/internal/app"
	"go-survivor/internal/broadcast"
	"go-survivor/internal/config"
	"go-survivor/internal/defs"
	"go-survivor/internal/persistence"
)

// Headless-сервер: автопилот играет забег, снапшоты уходят зрителям по websocket.
func main() {
	settings := config.DefaultSettings()
	settings.SavePath = ""
	settings.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := settings.Validate(); err != nil {
		log.Fatal(err)
	}
	lib, err := defs.Open(settings.ContentDir)
	if err != nil {
		log.Fatalf("Failed to load definitions: %v", err)
	}

	seed := settings.ResolveSeed()
	game := app.NewGame(lib, persistence.Open(settings.SavePath), nil, seed)

	// Хаб подключается раньше автопилота, чтобы последним кадром был
	// снапшот после его решений.
	hub := broadcast.NewHub()
	game.AddPresenter(hub)
	app.NewAutopilot(seed).Attach(game)

	if err := game.OpenStageSelect(); err != nil {
		log.Fatal(err)
	}
	if err := game.StartSession(settings.Character, settings.Weapon, settings.Stage); err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: settings.ListenAddr, Handler: mux}
	go func() {
		log.Printf("Snapshot feed on ws://%s/ws", settings.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Listener failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := app.NewDriver(game, settings.TickRate).Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Fatalf("Simulation stopped: %v", runErr)
	}
}
