package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"faultmap/internal/config"
	"faultmap/internal/server"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	verbose := flag.Bool("v", false, "log every generation")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := config.Resolve(ctx, cfg, config.ExplicitFlags(flag.CommandLine)); err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, log)
	if err := srv.Start(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
