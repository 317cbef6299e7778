package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dir is the per-user configuration directory below the home directory.
const Dir = ".clapjump/configs"

// load resolves a config named name. Search order: customPath,
// ~/.clapjump/configs/<name>.yaml, ./configs/<name>.yaml, the embedded
// default, then the hard-coded default. Files are decoded over the
// defaults, so a file only needs the keys it changes. Only an explicit
// customPath turns a read or parse failure into an error.
func load[T any](name, customPath string, def func() T) (T, error) {
	if customPath != "" {
		cfg := def()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := name + ".yaml"
	candidates := []string{filepath.Join("configs", filename)}
	if p := userConfigPath(filename); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := def()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg := def()
	if err := yaml.Unmarshal(DefaultYAML(name), &cfg); err != nil {
		return def(), nil
	}
	return cfg, nil
}

// userConfigPath returns ~/.clapjump/configs/<filename>, or "" without a
// home directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, filename)
}

// LoadClap loads and validates the detector configuration.
func LoadClap(customPath string) (ClapConfig, error) {
	cfg, err := load("clap", customPath, DefaultClapConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultClapConfig(), fmt.Errorf("invalid clap config: %w", err)
	}
	return cfg, nil
}

// LoadPony loads the Pixel Pony configuration.
func LoadPony(customPath string) (PonyConfig, error) {
	return load("pony", customPath, DefaultPonyConfig)
}

// LoadFlappy loads the Flappy configuration.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	return load("flappy", customPath, DefaultFlappyConfig)
}

// PathIn returns dir/<name>.yaml when dir is set and the file exists,
// otherwise "" so the regular search order applies.
func PathIn(dir, name string) string {
	if dir == "" {
		return ""
	}
	path := filepath.Join(dir, name+".yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
