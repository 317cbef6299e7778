package pony

import (
	"fmt"

	"github.com/vovakirdan/clapjump/internal/config"
	"github.com/vovakirdan/clapjump/internal/registry"
)

func init() {
	registry.Register("pony", "Pixel Pony Clap Jump", func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadPony(config.PathIn(opts.ConfigDir, "pony"))
		if err != nil {
			return nil, fmt.Errorf("pony: %w", err)
		}
		config.ApplyPreset(&cfg.Difficulty, opts.Preset)
		return New(cfg), nil
	})
}
