package flappy

import (
	"fmt"

	"github.com/vovakirdan/clapjump/internal/config"
	"github.com/vovakirdan/clapjump/internal/registry"
)

func init() {
	registry.Register("flappy", "Flappy Clap", func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadFlappy(config.PathIn(opts.ConfigDir, "flappy"))
		if err != nil {
			return nil, fmt.Errorf("flappy: %w", err)
		}
		config.ApplyPreset(&cfg.Difficulty, opts.Preset)
		return New(cfg), nil
	})
}
