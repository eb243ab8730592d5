package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"faultmap/internal/config"
	"faultmap/pkg/core"
	"faultmap/pkg/heightmap/export"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	out := flag.String("o", "heightmap.png", "output file; the extension picks png, raw or json")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(context.Background(), cfg, *out, log); err != nil {
		log.Error("generate", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, out string, log *slog.Logger) error {
	if err := config.Resolve(ctx, cfg, config.ExplicitFlags(flag.CommandLine)); err != nil {
		return err
	}
	format, err := export.ParseFormat(strings.TrimPrefix(filepath.Ext(out), "."))
	if err != nil {
		return err
	}

	params := cfg.Generation()
	hm, err := core.Build(cfg.Algorithm, params.Map(), log)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := export.Write(w, format, hm.Heights(), params.Seed, cfg.Palette); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}

	lo, hi := hm.Heights().MinMax()
	log.Info("wrote heightmap", "path", out, "seed", params.Seed, "min", lo, "max", hi)
	return nil
}
