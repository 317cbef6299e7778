package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clapjump/internal/platform/tui"
	"github.com/vovakirdan/clapjump/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick games from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard and clap sessions
  Q            - Quit

Examples:
  clapjump menu
  clapjump menu --fps 30 --sensitivity 1.3`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagNoMic, "no-mic", false, "Keyboard only, do not open the microphone")
}

func runMenu(_ *cobra.Command, _ []string) {
	clapCfg := loadClap()
	logger := tuiLogger()
	store := openStore()
	cfg := terminalRuntime()

	micNote := fmt.Sprintf("Mic: %s  |  sensitivity %.2f", deviceName(clapCfg), clapCfg.Detector.Sensitivity)
	if flagNoMic {
		micNote = "Keyboard only"
	}

	for {
		menuResult, err := tui.RunMenu(store, cfg, micNote)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		game, err := registry.Create(menuResult.GameID, gameOptions())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		opts := gameSession(clapCfg, logger, cfg)
		opts.Store = store
		opts.AllowBack = true
		if err := tui.Run(game, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
