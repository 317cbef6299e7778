package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/clapjump/internal/clap"
	"github.com/vovakirdan/clapjump/internal/config"
	"github.com/vovakirdan/clapjump/internal/core"
	"github.com/vovakirdan/clapjump/internal/registry"
	"github.com/vovakirdan/clapjump/internal/storage"
)

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the command logger at --log-level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "clapjump",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// tuiLogger discards output; anything written would corrupt the alt screen.
func tuiLogger() *log.Logger {
	return newLogger(io.Discard)
}

// loadClap reads clap.yaml and applies the command-line overrides.
func loadClap() config.ClapConfig {
	cfg, err := config.LoadClap(config.PathIn(flagConfigDir, "clap"))
	if err != nil {
		fail("%v", err)
	}
	if flagSensitivity != 0 {
		cfg.Detector.Sensitivity = clap.ClampSensitivity(flagSensitivity)
	}
	if flagDevice != "" {
		cfg.Capture.Device = flagDevice
	}
	return cfg
}

// detectorConfig is cfg as a clap.Config logging to logger.
func detectorConfig(cfg config.ClapConfig, logger *log.Logger) clap.Config {
	dc := cfg.DetectorSettings()
	dc.Logger = logger
	return dc
}

// deviceName is the display name of the configured input.
func deviceName(cfg config.ClapConfig) string {
	if cfg.Capture.Device == "" {
		return "default"
	}
	return cfg.Capture.Device
}

// terminalRuntime sizes the game to the terminal.
func terminalRuntime() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// gameOptions is what every game factory gets.
func gameOptions() registry.Options {
	return registry.Options{
		ConfigDir: flagConfigDir,
		Preset:    config.ParsePreset(flagDifficulty),
	}
}

// openStore opens the database, or warns and returns nil.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// mustOpenStore opens the database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	return store
}

// saveSession records a detector run when a store is available.
func saveSession(store *storage.Store, logger *log.Logger, s storage.ClapSession) {
	if store == nil {
		return
	}
	id, err := store.SaveClapSession(s)
	if err != nil {
		logger.Warn("session not saved", "err", err)
		return
	}
	logger.Debug("session saved", "id", id)
}
