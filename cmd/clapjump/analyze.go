package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clapjump/internal/audio"
	"github.com/vovakirdan/clapjump/internal/clap"
	"github.com/vovakirdan/clapjump/internal/storage"
)

var flagSave bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <wav>",
	Short: "Run the detector over a WAV recording",
	Long: `Replay a WAV file through the clap detector at --fps analysis steps per
second of audio and print every clap it finds. The detector settings come
from clap.yaml and the global flags, so this is a repeatable way to tune
sensitivity against a recording made with 'clapjump record'.

Examples:
  clapjump analyze take.wav
  clapjump analyze take.wav --sensitivity 1.5 --fps 30
  clapjump analyze take.wav --save=false`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&flagSave, "save", true, "Record the run in the clap history")
}

func runAnalyze(_ *cobra.Command, args []string) {
	path := args[0]
	clapCfg := loadClap()
	logger := newLogger(os.Stderr)

	src, err := audio.OpenFile(path)
	if err != nil {
		fail("%v", err)
	}

	cfg := detectorConfig(clapCfg, logger)
	started := time.Now()
	events, err := clap.Replay(src, cfg, flagFPS)
	if err != nil {
		fail("replaying %s: %v", path, err)
	}

	sensitivity := clap.ClampSensitivity(cfg.Sensitivity)
	threshold := cfg.BaseThreshold * sensitivity
	if cfg.BaseThreshold <= 0 {
		threshold = clap.DefaultBaseThreshold * sensitivity
	}

	fmt.Printf("Clap analysis - %s\n", path)
	fmt.Printf("Length %s at %d Hz, sensitivity %.2f, threshold %.4f\n",
		src.Duration().Round(time.Millisecond), src.SampleRate(), sensitivity, threshold)
	fmt.Println()

	if len(events) == 0 {
		fmt.Println("No claps detected.")
		fmt.Println()
		fmt.Println("Try a lower --sensitivity if the recording has claps in it.")
	} else {
		fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "#", "At", "Peak", "RMS")
		fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "-", "--", "----", "---")
		for i, ev := range events {
			fmt.Printf("  %-4d  %-10s  %-8.4f  %.4f\n", i+1, ev.At.Round(time.Millisecond), ev.Peak, ev.RMS)
		}
		fmt.Println()
	}

	var peakSum float64
	for _, ev := range events {
		peakSum += ev.Peak
	}
	session := storage.ClapSession{
		Source:      "file:" + path,
		StartedAt:   started,
		EndedAt:     started.Add(src.Duration()),
		Claps:       len(events),
		Sensitivity: sensitivity,
		Threshold:   threshold,
	}
	if len(events) > 0 {
		session.MeanPeak = peakSum / float64(len(events))
		fmt.Printf("Claps: %d  Mean peak: %.4f\n", len(events), session.MeanPeak)
	}

	if !flagSave {
		return
	}
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	saveSession(store, logger, session)
}
