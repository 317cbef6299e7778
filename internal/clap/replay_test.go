package clap

import (
	"testing"
	"time"

	"github.com/vovakirdan/clapjump/internal/audio"
)

// burst writes an alternating-sign click of n samples at offset.
func burst(samples []float32, offset, n int, level float32) {
	for i := range n {
		if i%2 == 0 {
			samples[offset+i] = level
		} else {
			samples[offset+i] = -level
		}
	}
}

func TestReplayFindsClaps(t *testing.T) {
	const rate = 48000
	samples := make([]float32, 2*rate)
	burst(samples, rate/2, 240, 0.5)         // 0.5s
	burst(samples, rate/2+rate/10, 240, 0.5) // 0.6s, inside the cooldown
	burst(samples, rate*3/2, 240, 0.5)       // 1.5s

	cfg := DefaultConfig()
	var seen int
	cfg.OnClap = func(Event) { seen++ }

	events, err := Replay(audio.NewFileSource(samples, rate), cfg, 60)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 claps, got %d: %+v", len(events), events)
	}
	if seen != 2 {
		t.Errorf("OnClap called %d times, expected 2", seen)
	}

	if at := events[0].At; at < 500*time.Millisecond || at > 550*time.Millisecond {
		t.Errorf("first clap at %v, expected just after 500ms", at)
	}
	if at := events[1].At; at < 1500*time.Millisecond || at > 1550*time.Millisecond {
		t.Errorf("second clap at %v, expected just after 1.5s", at)
	}
}

func TestReplaySilence(t *testing.T) {
	events, err := Replay(audio.NewFileSource(make([]float32, 48000), 48000), DefaultConfig(), 60)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("silence produced %d claps", len(events))
	}
}

func TestReplayClosedSourceFails(t *testing.T) {
	src := audio.NewFileSource(make([]float32, 4800), 48000)
	if _, err := Replay(src, DefaultConfig(), 60); err != nil {
		t.Fatalf("first Replay() failed: %v", err)
	}
	if _, err := Replay(src, DefaultConfig(), 60); err == nil {
		t.Error("a source can only be replayed once")
	}
}
