package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardCoded(t *testing.T) {
	var clapCfg ClapConfig
	if err := yaml.Unmarshal(DefaultYAML("clap"), &clapCfg); err != nil {
		t.Fatalf("clap.yaml: %v", err)
	}
	if clapCfg != DefaultClapConfig() {
		t.Errorf("clap.yaml = %+v, expected %+v", clapCfg, DefaultClapConfig())
	}

	var pony PonyConfig
	if err := yaml.Unmarshal(DefaultYAML("pony"), &pony); err != nil {
		t.Fatalf("pony.yaml: %v", err)
	}
	if pony != DefaultPonyConfig() {
		t.Errorf("pony.yaml differs from DefaultPonyConfig()")
	}

	var flappy FlappyConfig
	if err := yaml.Unmarshal(DefaultYAML("flappy"), &flappy); err != nil {
		t.Fatalf("flappy.yaml: %v", err)
	}
	if flappy != DefaultFlappyConfig() {
		t.Errorf("flappy.yaml differs from DefaultFlappyConfig()")
	}

	if DefaultYAML("nope") != nil {
		t.Error("unknown name should have no embedded file")
	}
}

func TestLoadClapCustomPathOverridesKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clap.yaml")
	data := "detector:\n  cooldown: 500ms\n  sensitivity: 2.0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadClap(path)
	if err != nil {
		t.Fatalf("LoadClap() error = %v", err)
	}
	if cfg.Detector.Cooldown != 500*time.Millisecond {
		t.Errorf("Cooldown = %v, expected 500ms", cfg.Detector.Cooldown)
	}
	if cfg.Detector.Sensitivity != 2.0 {
		t.Errorf("Sensitivity = %v, expected 2.0", cfg.Detector.Sensitivity)
	}
	// Keys absent from the file keep their defaults
	if cfg.Detector.BaseThreshold != 0.055 {
		t.Errorf("BaseThreshold = %v, expected 0.055", cfg.Detector.BaseThreshold)
	}
	if cfg.Capture.WindowSize != 2048 {
		t.Errorf("WindowSize = %d, expected 2048", cfg.Capture.WindowSize)
	}
}

func TestLoadClapErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadClap(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("detector: [not, a, map]\n"), 0o644)
	if _, err := LoadClap(bad); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("detector:\n  base_threshold: -1\n"), 0o644)
	_, err := LoadClap(invalid)
	if err == nil || !strings.Contains(err.Error(), "base_threshold") {
		t.Errorf("LoadClap() error = %v, expected base_threshold complaint", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadPony("")
	if err != nil {
		t.Fatalf("LoadPony() error = %v", err)
	}
	if cfg != DefaultPonyConfig() {
		t.Error("expected embedded pony defaults")
	}
}

func TestLoadPrefersUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(dir, "flappy.yaml"), []byte("player:\n  x: 20\n"), 0o644)
	os.MkdirAll("configs", 0o755)
	os.WriteFile(filepath.Join("configs", "flappy.yaml"), []byte("player:\n  x: 30\n"), 0o644)

	cfg, err := LoadFlappy("")
	if err != nil {
		t.Fatalf("LoadFlappy() error = %v", err)
	}
	if cfg.Player.X != 20 {
		t.Errorf("Player.X = %d, expected 20 from the user directory", cfg.Player.X)
	}
}

func TestPathIn(t *testing.T) {
	dir := t.TempDir()
	if PathIn("", "clap") != "" || PathIn(dir, "clap") != "" {
		t.Error("PathIn should be empty without a file")
	}

	path := filepath.Join(dir, "clap.yaml")
	os.WriteFile(path, []byte("{}\n"), 0o644)
	if got := PathIn(dir, "clap"); got != path {
		t.Errorf("PathIn() = %q, expected %q", got, path)
	}
}

func TestDetectorSettings(t *testing.T) {
	c := DefaultClapConfig().DetectorSettings()
	if c.Sensitivity != 1.15 || c.BaseThreshold != 0.055 || c.NoiseFloor != 0.012 {
		t.Errorf("DetectorSettings() = %+v", c)
	}
	if c.Cooldown != 320*time.Millisecond || c.MinPeakSeparation != 80*time.Millisecond {
		t.Errorf("gates = %v/%v", c.Cooldown, c.MinPeakSeparation)
	}
	if !c.Capture.EchoCancellation || !c.Capture.NoiseSuppression || !c.Capture.AutoGainControl {
		t.Error("voice processing should be requested by default")
	}
}

func TestApplyPreset(t *testing.T) {
	d := DefaultFlappyConfig().Difficulty
	ApplyPreset(&d, DifficultyHard)
	if !d.Enabled || d.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v", d)
	}

	ApplyPreset(&d, DifficultyFixed)
	if d.Enabled {
		t.Error("fixed preset should disable progression")
	}

	before := d
	ApplyPreset(&d, ParsePreset("bogus"))
	if d != before {
		t.Error("unknown preset should change nothing")
	}
}

func TestDefaultYAMLIsValid(t *testing.T) {
	var cfg ClapConfig
	dec := yaml.NewDecoder(bytes.NewReader(DefaultYAML("clap")))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		t.Fatalf("clap.yaml has unknown fields: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
