package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/clapjump/internal/audio"
	"github.com/vovakirdan/clapjump/internal/config"
	"github.com/vovakirdan/clapjump/internal/core"
	"github.com/vovakirdan/clapjump/internal/platform/tui"
	"github.com/vovakirdan/clapjump/internal/registry"
)

var flagNoMic bool

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game. The microphone is opened in the
background; until it is ready, or if it cannot be opened, play on with the
keyboard.

Controls:
  Clap       - Jump
  Space/Up   - Jump (keyboard fallback)
  +/-        - Raise/lower sensitivity
  M          - Microphone on/off
  P          - Pause
  R          - Restart (after the run ends)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression

Examples:
  clapjump play pony
  clapjump play flappy --difficulty hard
  clapjump play pony --sensitivity 0.8 --device "USB Audio"
  clapjump play pony --no-mic`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoMic, "no-mic", false, "Keyboard only, do not open the microphone")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'clapjump list' to see available games.")
		os.Exit(1)
	}

	clapCfg := loadClap()
	logger := tuiLogger()

	game, err := registry.Create(gameID, gameOptions())
	if err != nil {
		fail("creating game: %v", err)
	}

	store := openStore()
	opts := gameSession(clapCfg, logger, terminalRuntime())
	opts.Store = store

	runErr := tui.Run(game, opts)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

// gameSession wires a fresh detector and latch for one game.
func gameSession(clapCfg config.ClapConfig, logger *log.Logger, rt core.RuntimeConfig) tui.Options {
	claps := tui.NewClapInput()
	opts := tui.Options{
		Runtime:         rt,
		Claps:           claps,
		SensitivityStep: clapCfg.Detector.SensitivityStep,
		Logger:          logger,
	}
	if !flagNoMic {
		opener := audio.MicrophoneOpener{Logger: logger}
		opts.Detector = tui.NewDetector(opener, detectorConfig(clapCfg, logger), claps)
	}
	return opts
}
