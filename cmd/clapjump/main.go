// clapjump is a terminal arcade you play by clapping.
//
// Usage:
//
//	clapjump                   - Play Pixel Pony Clap Jump
//	clapjump list              - List available games
//	clapjump play <game>       - Play a game
//	clapjump menu              - Pick games interactively
//	clapjump listen            - Live clap meter for tuning sensitivity
//	clapjump analyze <wav>     - Run the detector over a recording
//	clapjump record <wav>      - Record the microphone to a WAV file
//	clapjump devices           - List audio input devices
//	clapjump scores <game>     - Show high scores for a game
//	clapjump history           - Show recent clap sessions
//	clapjump serve             - Start SSH server for remote (keyboard) play
//
// Global flags:
//
//	--fps <rate>           - Tick rate (default: 60)
//	--seed <value>         - Level seed (0 = the game's configured seeds)
//	--db <path>            - Database path (default: ~/.clapjump/scores.db)
//	--config <dir>         - Directory searched first for clap/pony/flappy.yaml
//	--sensitivity <value>  - Override the detector sensitivity
//	--device <name>        - Audio input device
//	--log-level <level>    - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/clapjump/internal/games/flappy"
	_ "github.com/vovakirdan/clapjump/internal/games/pony"
)

var (
	// Global flags
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagConfigDir   string
	flagSensitivity float64
	flagDevice      string
	flagLogLevel    string
	flagDifficulty  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clapjump",
	Short: "Clap Jump - a terminal arcade you play by clapping",
	Long: `Clap Jump listens to your microphone and turns every clap into a jump.
Space or Up always works as a fallback.

Run without a command to play Pixel Pony Clap Jump.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  listen   - Live clap meter for tuning sensitivity
  analyze  - Run the detector over a WAV recording
  record   - Record the microphone to a WAV file
  devices  - List audio input devices
  scores   - View high scores
  history  - View recent clap sessions
  serve    - Start SSH server for remote play

Examples:
  clapjump
  clapjump play flappy --sensitivity 0.9
  clapjump listen --plain
  clapjump record take.wav --duration 10s
  clapjump analyze take.wav`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runPlay(cmd, []string{"pony"})
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "Level seed (0 = the game's configured seeds)")
	pf.StringVar(&flagDBPath, "db", "~/.clapjump/scores.db", "Path to scores database")
	pf.StringVar(&flagConfigDir, "config", "", "Directory with clap.yaml, pony.yaml or flappy.yaml")
	pf.Float64Var(&flagSensitivity, "sensitivity", 0, "Detector sensitivity, 0.2 to 3.0 (0 = from config)")
	pf.StringVar(&flagDevice, "device", "", "Audio input device name (empty = system default)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
