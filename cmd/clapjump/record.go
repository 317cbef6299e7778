package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clapjump/internal/audio"
)

var flagRecordFor time.Duration

var recordCmd = &cobra.Command{
	Use:   "record <wav>",
	Short: "Record the microphone to a WAV file",
	Long: `Capture the configured input device to a mono 16-bit WAV file. Recording
stops after --duration or on Ctrl+C; whatever was captured is saved.

Replay the result with 'clapjump analyze' to tune the detector offline.

Examples:
  clapjump record take.wav
  clapjump record take.wav --duration 30s --device "USB Audio"`,
	Args: cobra.ExactArgs(1),
	Run:  runRecord,
}

func init() {
	recordCmd.Flags().DurationVar(&flagRecordFor, "duration", 10*time.Second, "Maximum recording length")
}

func runRecord(_ *cobra.Command, args []string) {
	path := args[0]
	if flagRecordFor <= 0 {
		fail("--duration must be positive")
	}

	clapCfg := loadClap()
	logger := newLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	capture := clapCfg.Capture
	if capture.SampleRate <= 0 {
		capture.SampleRate = audio.DefaultSampleRate
	}
	rec := audio.NewRecorder(flagRecordFor, capture.SampleRate)

	mic, err := audio.OpenMicrophone(ctx, capture, logger, rec.Tap)
	if err != nil {
		fail("%v", err)
	}

	logger.Info("recording", "device", mic.Device(), "max", flagRecordFor, "file", path)
	timer := time.NewTimer(flagRecordFor + time.Second)
	defer timer.Stop()

	select {
	case <-rec.Full():
	case <-ctx.Done():
		logger.Info("interrupted, saving what was captured")
	case <-timer.C:
		logger.Warn("capture stalled, saving what was captured")
	}

	if err := mic.Close(); err != nil {
		logger.Warn("closing microphone", "err", err)
	}

	if err := rec.Save(path); err != nil {
		fail("%v", err)
	}
	logger.Info("saved", "file", path, "length", (time.Duration(rec.Len())*time.Second/time.Duration(capture.SampleRate)).Round(time.Millisecond))
}
