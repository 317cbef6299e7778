// Package mock provides scripted audio sources for tests.
package mock

import (
	"context"
	"sync"

	"github.com/vovakirdan/clapjump/internal/audio"
)

// Source is an audio.Source whose window is set directly by the test.
type Source struct {
	mu         sync.Mutex
	window     []float32
	rate       int
	closeCalls int
	closeErr   error
}

// NewSource creates a silent source.
func NewSource() *Source {
	return &Source{rate: audio.DefaultSampleRate}
}

// Set replaces the current window contents.
func (s *Source) Set(window []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = append(s.window[:0], window...)
}

// SetLevel fills the window with n samples of a square wave at amplitude
// level, so peak and rms both equal level.
func (s *Source) SetLevel(n int, level float32) {
	w := make([]float32, n)
	for i := range w {
		if i%2 == 0 {
			w[i] = level
		} else {
			w[i] = -level
		}
	}
	s.Set(w)
}

// SetCloseError makes every Close return err.
func (s *Source) SetCloseError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeErr = err
}

// CloseCalls returns how many times Close has been called.
func (s *Source) CloseCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeCalls
}

// Window implements audio.Source.
func (s *Source) Window(dst []float32) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := min(len(dst), len(s.window))
	pad := len(dst) - n
	clear(dst[:pad])
	copy(dst[pad:], s.window[len(s.window)-n:])
	return n
}

// SampleRate implements audio.Source.
func (s *Source) SampleRate() int {
	return s.rate
}

// Close implements audio.Source.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeCalls++
	return s.closeErr
}

// Opener hands out a fixed Source, optionally failing or blocking first.
type Opener struct {
	mu     sync.Mutex
	source audio.Source
	err    error
	gate   chan struct{}
	opens  int
}

// NewOpener returns an opener that always yields src.
func NewOpener(src audio.Source) *Opener {
	return &Opener{source: src}
}

// FailWith makes Open return err.
func (o *Opener) FailWith(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = err
}

// Block makes Open wait until the returned release function is called.
func (o *Opener) Block() (release func()) {
	gate := make(chan struct{})
	o.mu.Lock()
	o.gate = gate
	o.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// Opens returns the number of Open calls.
func (o *Opener) Opens() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opens
}

// Open implements audio.Opener.
func (o *Opener) Open(ctx context.Context, _ audio.CaptureConfig) (audio.Source, error) {
	o.mu.Lock()
	o.opens++
	gate, err, src := o.gate, o.err, o.source
	o.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, err
	}
	return src, nil
}
