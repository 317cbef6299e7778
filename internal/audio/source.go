// Package audio provides the signal acquisition side of clap detection.
// Sources expose the most recent window of time-domain samples without
// blocking; opening a source is the only operation that may suspend.
package audio

import (
	"context"
	"errors"
)

// Default capture parameters.
const (
	DefaultSampleRate      = 48000
	DefaultFramesPerBuffer = 512
	DefaultWindowSize      = 2048
	DefaultChannels        = 1
)

// Acquisition errors. Callers match them with errors.Is.
var (
	ErrPermissionDenied  = errors.New("audio: microphone permission denied")
	ErrDeviceUnavailable = errors.New("audio: input device unavailable")
	ErrClosed            = errors.New("audio: source closed")
)

// CaptureConfig describes how a microphone stream should be opened.
type CaptureConfig struct {
	SampleRate      int    `yaml:"sample_rate"`
	FramesPerBuffer int    `yaml:"frames_per_buffer"`
	WindowSize      int    `yaml:"window_size"`
	Device          string `yaml:"device"` // empty or "default" = system default input

	// Voice-processing constraints requested from the host audio API.
	EchoCancellation bool `yaml:"echo_cancellation"`
	NoiseSuppression bool `yaml:"noise_suppression"`
	AutoGainControl  bool `yaml:"auto_gain_control"`
}

// DefaultCaptureConfig returns a mono capture config with voice processing on.
func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		SampleRate:       DefaultSampleRate,
		FramesPerBuffer:  DefaultFramesPerBuffer,
		WindowSize:       DefaultWindowSize,
		EchoCancellation: true,
		NoiseSuppression: true,
		AutoGainControl:  true,
	}
}

// withDefaults fills zero fields from DefaultCaptureConfig.
func (c CaptureConfig) withDefaults() CaptureConfig {
	def := DefaultCaptureConfig()
	if c.SampleRate <= 0 {
		c.SampleRate = def.SampleRate
	}
	if c.FramesPerBuffer <= 0 {
		c.FramesPerBuffer = def.FramesPerBuffer
	}
	if c.WindowSize <= 0 {
		c.WindowSize = def.WindowSize
	}
	return c
}

// Source is a live or replayed stream of mono samples.
type Source interface {
	// Window copies the most recent len(dst) samples into dst, oldest first,
	// and returns how many samples were written. It must not block waiting
	// for new audio; when fewer samples exist the remainder is zeroed.
	Window(dst []float32) int

	// SampleRate returns the stream's sample rate in Hz.
	SampleRate() int

	// Close releases every resource held by the source. It is safe to call
	// more than once; later calls return nil.
	Close() error
}

// Opener acquires a Source. Open may block on device initialization or a
// permission prompt and honours ctx cancellation.
type Opener interface {
	Open(ctx context.Context, cfg CaptureConfig) (Source, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, cfg CaptureConfig) (Source, error)

// Open calls f(ctx, cfg).
func (f OpenerFunc) Open(ctx context.Context, cfg CaptureConfig) (Source, error) {
	return f(ctx, cfg)
}

// Unavailable is an Opener for hosts with no microphone at all, such as
// remote terminal sessions. Open always fails with ErrDeviceUnavailable.
type Unavailable struct {
	Reason string
}

// Open implements Opener.
func (u Unavailable) Open(_ context.Context, _ CaptureConfig) (Source, error) {
	if u.Reason == "" {
		return nil, ErrDeviceUnavailable
	}
	return nil, &openError{reason: u.Reason, err: ErrDeviceUnavailable}
}

// openError carries a human-readable reason alongside a sentinel.
type openError struct {
	reason string
	err    error
}

func (e *openError) Error() string { return e.err.Error() + ": " + e.reason }
func (e *openError) Unwrap() error { return e.err }
