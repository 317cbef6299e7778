package audio

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Recorder accumulates captured buffers up to a fixed length. Its Tap
// method is meant to be passed to MicrophoneOpener.Tap.
type Recorder struct {
	mu         sync.Mutex
	samples    []float32
	limit      int
	sampleRate int
	full       chan struct{}
	fullOnce   sync.Once
}

// NewRecorder creates a recorder that keeps at most d of audio.
func NewRecorder(d time.Duration, sampleRate int) *Recorder {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	limit := int(d.Seconds() * float64(sampleRate))
	return &Recorder{
		samples:    make([]float32, 0, limit),
		limit:      limit,
		sampleRate: sampleRate,
		full:       make(chan struct{}),
	}
}

// Tap appends a captured buffer.
func (r *Recorder) Tap(buf []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.limit - len(r.samples)
	if room > 0 {
		r.samples = append(r.samples, buf[:min(room, len(buf))]...)
	}
	if len(r.samples) >= r.limit {
		r.fullOnce.Do(func() { close(r.full) })
	}
}

// Full is closed once the recorder has reached its limit.
func (r *Recorder) Full() <-chan struct{} {
	return r.full
}

// Len returns the number of recorded samples.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.samples)
}

// Samples returns a copy of the recorded audio.
func (r *Recorder) Samples() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float32, len(r.samples))
	copy(out, r.samples)
	return out
}

// Save encodes the recording to a WAV file at path.
func (r *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: cannot create %s: %w", path, err)
	}

	if err := EncodeWAV(f, r.Samples(), r.sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
