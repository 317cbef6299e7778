package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clapjump/internal/audio"
	"github.com/vovakirdan/clapjump/internal/clap"
	"github.com/vovakirdan/clapjump/internal/platform/tui"
	"github.com/vovakirdan/clapjump/internal/storage"
)

var (
	flagPlain    bool
	flagDuration time.Duration
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Live clap meter for tuning sensitivity",
	Long: `Open the microphone and show the detector's view of it: peak and RMS
levels against the threshold, the re-arm level and every clap as it fires.
The session is saved to the clap history when you quit.

Controls:
  +/-     - Raise/lower sensitivity
  M       - Microphone on/off
  Q/Esc   - Quit

With --plain, no screen is drawn; claps are logged to stderr until Ctrl+C
or --duration elapses.

Examples:
  clapjump listen
  clapjump listen --sensitivity 1.4 --device "USB Audio"
  clapjump listen --plain --duration 30s --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runListen,
}

func init() {
	listenCmd.Flags().BoolVar(&flagPlain, "plain", false, "Log claps instead of drawing the meter")
	listenCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Stop after this long (plain mode, 0 = until Ctrl+C)")
}

func runListen(_ *cobra.Command, _ []string) {
	if flagPlain {
		runListenPlain()
		return
	}

	clapCfg := loadClap()
	logger := tuiLogger()
	claps := tui.NewClapInput()
	opener := audio.MicrophoneOpener{Logger: logger}
	det := tui.NewDetector(opener, detectorConfig(clapCfg, logger), claps)

	res, err := tui.RunMeter(det, claps, flagFPS, clapCfg.Detector.SensitivityStep, deviceName(clapCfg))
	if err != nil {
		fail("running meter: %v", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	saveSession(store, newLogger(os.Stderr), storage.ClapSession{
		Source:      "mic:" + deviceName(clapCfg),
		StartedAt:   res.StartedAt,
		EndedAt:     res.EndedAt,
		Claps:       res.Claps,
		Sensitivity: res.Sensitivity,
		Threshold:   res.Threshold,
		MeanPeak:    res.MeanPeak,
	})
}

func runListenPlain() {
	clapCfg := loadClap()
	logger := newLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if flagDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagDuration)
		defer cancel()
	}

	var peakSum float64
	cfg := detectorConfig(clapCfg, logger)
	cfg.OnClap = func(ev clap.Event) {
		peakSum += ev.Peak
		logger.Info("clap", "peak", ev.Peak, "rms", ev.RMS, "threshold", ev.Threshold)
	}
	cfg.OnStatus = func(s string) {
		logger.Info(s)
	}

	det := clap.New(audio.MicrophoneOpener{Logger: logger}, cfg)
	started := time.Now()
	if err := det.Start(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fail("%v", err)
	}

	interval := time.Second / time.Duration(max(flagFPS, 1))
	if err := det.Run(ctx, interval); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("detector stopped", "err", err)
	}
	claps := det.Claps()
	det.Stop()

	session := storage.ClapSession{
		Source:      "mic:" + deviceName(clapCfg),
		StartedAt:   started,
		EndedAt:     time.Now(),
		Claps:       claps,
		Sensitivity: det.Sensitivity(),
		Threshold:   det.Threshold(),
	}
	if claps > 0 {
		session.MeanPeak = peakSum / float64(claps)
	}
	logger.Info("listening finished", "claps", claps, "duration", session.Duration().Round(time.Millisecond))

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	saveSession(store, logger, session)
}
