package clap

import (
	"context"
	"time"

	"github.com/vovakirdan/clapjump/internal/audio"
)

// Replay runs a detector over a recording, ticking fps times per second of
// audio time, and returns every event. The recording's playhead drives a
// ManualClock that replaces cfg.Clock; cfg.OnClap is still called.
func Replay(src *audio.FileSource, cfg Config, fps int) ([]Event, error) {
	if fps <= 0 {
		fps = 60
	}
	clock := &ManualClock{}
	cfg.Clock = clock

	var events []Event
	onClap := cfg.OnClap
	cfg.OnClap = func(e Event) {
		events = append(events, e)
		if onClap != nil {
			onClap(e)
		}
	}

	det := New(src.Opener(), cfg)
	if err := det.Start(context.Background()); err != nil {
		return nil, err
	}
	defer det.Stop()

	frame := time.Second / time.Duration(fps)
	for {
		more := src.Advance(frame)
		clock.Set(src.Position())
		det.Tick()
		if !more {
			break
		}
	}
	return events, nil
}
