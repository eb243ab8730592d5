package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"
)

// FetchPreset downloads a single preset file from src into a temporary
// directory and loads it on top of base. src accepts any go-getter address:
// local paths, http(s) URLs, git::, s3:: and so on.
func FetchPreset(ctx context.Context, base *Config, src string) (*Config, error) {
	dir, err := os.MkdirTemp("", "faultmap-preset-")
	if err != nil {
		return nil, fmt.Errorf("preset temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("preset working dir: %w", err)
	}

	dst := filepath.Join(dir, "preset.json")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("fetch preset %s: %w", src, err)
	}
	return LoadFileOnto(base, dst)
}

// Resolve applies the preset and file sources named by cfg, in that order,
// honoring flags that were set explicitly, and validates the result. Each
// source is read on top of the values resolved so far, so a file only
// overrides the keys it names.
func Resolve(ctx context.Context, cfg *Config, explicitFlags map[string]bool) error {
	if cfg.Preset != "" {
		preset, err := FetchPreset(ctx, cfg, cfg.Preset)
		if err != nil {
			return err
		}
		Merge(cfg, preset, explicitFlags)
	}
	if cfg.File != "" {
		fromFile, err := LoadFileOnto(cfg, cfg.File)
		if err != nil {
			return err
		}
		Merge(cfg, fromFile, explicitFlags)
	}
	return cfg.Validate()
}
