//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"faultmap/internal/app"
	"faultmap/internal/config"
	"faultmap/pkg/heightmap/faultfractal"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	view := app.NewConfig()
	view.Bind(flag.CommandLine)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := config.Resolve(context.Background(), cfg, config.ExplicitFlags(flag.CommandLine)); err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}
	gen, err := faultfractal.NewWithLogger(cfg.Generation(), log)
	if err != nil {
		log.Error("generator", "error", err)
		os.Exit(1)
	}
	game, err := app.New(gen, view, cfg.Palette, log)
	if err != nil {
		log.Error("viewer", "error", err)
		os.Exit(1)
	}

	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle("faultmap - " + gen.Name())
	ebiten.SetTPS(view.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("run", "error", err)
		os.Exit(1)
	}
}
