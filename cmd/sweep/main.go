package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"faultmap/internal/config"
	"faultmap/internal/sweep"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	workers := flag.Int("workers", runtime.NumCPU(), "parallel generations")
	seeds := flag.Int("seeds", 16, "number of consecutive seeds to sweep, starting at -seed")
	filters := flag.String("filters", "0,0.1,0.2,0.3,0.4,0.5", "comma separated filter values")
	sortKey := flag.String("sort", "rough", "rank results by mean, std, rough or land")
	top := flag.Int("top", 10, "results to print")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := config.Resolve(ctx, cfg, config.ExplicitFlags(flag.CommandLine)); err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}

	filterValues, err := parseFloats(*filters)
	if err != nil {
		log.Error("parse filters", "error", err)
		os.Exit(1)
	}
	base := cfg.Generation()
	seedValues := make([]int64, *seeds)
	for i := range seedValues {
		seedValues[i] = base.Seed + int64(i)
	}

	cfgs := sweep.Grid(base, seedValues, filterValues)
	fmt.Printf("Sweeping %d configurations (%d workers, size %d, %d faults)\n", len(cfgs), *workers, base.Size, base.Iterations)

	start := time.Now()
	results, err := sweep.Run(ctx, cfgs, *workers)
	if err != nil {
		log.Error("sweep", "error", err)
		os.Exit(1)
	}
	if err := sweep.SortBy(results, *sortKey); err != nil {
		log.Error("sort", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nTop %d by %s (elapsed %s):\n", min(*top, len(results)), *sortKey, time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		fmt.Printf("%2d) %s\n", i+1, results[i])
	}
}

func parseFloats(list string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}
