package audio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
)

// captureExitTimeout bounds how long Close waits for a blocked Read.
const captureExitTimeout = 500 * time.Millisecond

// Microphone captures from a PortAudio input device into a ring buffer.
// A background goroutine performs the blocking reads; Window only copies
// already-buffered samples.
type Microphone struct {
	mu         sync.Mutex
	stream     *portaudio.Stream
	ring       *Ring
	sampleRate int
	deviceName string
	logger     *log.Logger
	tap        func([]float32)

	running     bool
	initialized bool
	done        chan struct{}
}

// MicrophoneOpener opens Microphone sources.
type MicrophoneOpener struct {
	Logger *log.Logger

	// Tap, if set, receives a copy of every captured buffer on the capture
	// goroutine. It must return quickly.
	Tap func([]float32)
}

// Open implements Opener. It initializes PortAudio, opens the configured
// device and starts capturing.
func (o MicrophoneOpener) Open(ctx context.Context, cfg CaptureConfig) (Source, error) {
	return OpenMicrophone(ctx, cfg, o.Logger, o.Tap)
}

// OpenMicrophone starts capturing from the configured input device.
func OpenMicrophone(ctx context.Context, cfg CaptureConfig, logger *log.Logger, tap func([]float32)) (*Microphone, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = log.Default()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: failed to initialize PortAudio: %v", ErrDeviceUnavailable, err)
	}

	m := &Microphone{
		ring:        NewRing(max(cfg.WindowSize, cfg.FramesPerBuffer) * 2),
		sampleRate:  cfg.SampleRate,
		deviceName:  cfg.Device,
		logger:      logger,
		tap:         tap,
		initialized: true,
		done:        make(chan struct{}),
	}

	// PortAudio exposes no voice-processing switches; the host API applies
	// whatever its defaults are.
	if cfg.EchoCancellation || cfg.NoiseSuppression || cfg.AutoGainControl {
		logger.Debug("voice processing requested; left to host audio API",
			"echo_cancellation", cfg.EchoCancellation,
			"noise_suppression", cfg.NoiseSuppression,
			"auto_gain_control", cfg.AutoGainControl,
		)
	}

	buffer := make([]float32, cfg.FramesPerBuffer)
	stream, err := m.openStream(cfg, buffer)
	if err != nil {
		m.Close()
		return nil, classifyOpenError(err)
	}
	m.stream = stream

	if err := ctx.Err(); err != nil {
		m.Close()
		return nil, err
	}

	if err := stream.Start(); err != nil {
		m.Close()
		return nil, classifyOpenError(fmt.Errorf("failed to start audio stream: %w", err))
	}

	m.running = true
	go m.captureLoop(stream, buffer)

	logger.Info("microphone opened",
		"device", displayDevice(cfg.Device),
		"sample_rate", cfg.SampleRate,
		"frames_per_buffer", cfg.FramesPerBuffer,
	)
	return m, nil
}

// openStream opens the named device when present, otherwise the default.
func (m *Microphone) openStream(cfg CaptureConfig, buffer []float32) (*portaudio.Stream, error) {
	if cfg.Device != "" && cfg.Device != "default" {
		device, err := findInputDevice(cfg.Device)
		if err == nil {
			params := portaudio.StreamParameters{
				Input: portaudio.StreamDeviceParameters{
					Device:   device,
					Channels: DefaultChannels,
					Latency:  device.DefaultLowInputLatency,
				},
				SampleRate:      float64(cfg.SampleRate),
				FramesPerBuffer: cfg.FramesPerBuffer,
			}
			return portaudio.OpenStream(params, buffer)
		}
		m.logger.Warn("input device not found, using default", "device", cfg.Device)
	}

	if _, err := portaudio.DefaultInputDevice(); err != nil {
		return nil, fmt.Errorf("%w: no default input device: %v", ErrDeviceUnavailable, err)
	}

	return portaudio.OpenDefaultStream(
		DefaultChannels, // input channels
		0,               // output channels (none)
		float64(cfg.SampleRate),
		cfg.FramesPerBuffer,
		buffer,
	)
}

// captureLoop reads buffers until the stream is stopped.
func (m *Microphone) captureLoop(stream *portaudio.Stream, buffer []float32) {
	defer close(m.done)

	for {
		if err := stream.Read(); err != nil {
			m.mu.Lock()
			stillRunning := m.running
			m.mu.Unlock()
			if !stillRunning {
				return
			}
			// Input overflow is recoverable; keep reading
			continue
		}

		m.ring.Write(buffer)

		if m.tap != nil {
			samples := make([]float32, len(buffer))
			copy(samples, buffer)
			m.tap(samples)
		}

		m.mu.Lock()
		stillRunning := m.running
		m.mu.Unlock()
		if !stillRunning {
			return
		}
	}
}

// Window implements Source.
func (m *Microphone) Window(dst []float32) int {
	return m.ring.Latest(dst)
}

// SampleRate implements Source.
func (m *Microphone) SampleRate() int {
	return m.sampleRate
}

// Device returns the configured device name ("default" when unset).
func (m *Microphone) Device() string {
	return displayDevice(m.deviceName)
}

// Close stops capture and releases PortAudio. Every step is attempted even
// if an earlier one fails; the failures are joined.
func (m *Microphone) Close() error {
	m.mu.Lock()
	wasRunning := m.running
	m.running = false
	stream := m.stream
	m.stream = nil
	initialized := m.initialized
	m.initialized = false
	m.mu.Unlock()

	var errs []error

	if stream != nil {
		if wasRunning {
			if err := stream.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("stop stream: %w", err))
			}
			select {
			case <-m.done:
			case <-time.After(captureExitTimeout):
				errs = append(errs, errors.New("capture loop did not exit"))
			}
		}
		if err := stream.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close stream: %w", err))
		}
	}

	if initialized {
		if err := portaudio.Terminate(); err != nil {
			errs = append(errs, fmt.Errorf("terminate PortAudio: %w", err))
		}
	}

	m.ring.Reset()
	return errors.Join(errs...)
}

// findInputDevice finds a PortAudio input device by name.
func findInputDevice(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}

	for _, dev := range devices {
		if dev.Name == name && dev.MaxInputChannels > 0 {
			return dev, nil
		}
	}

	return nil, fmt.Errorf("device not found: %s", name)
}

// classifyOpenError maps host errors onto the acquisition sentinels.
func classifyOpenError(err error) error {
	if errors.Is(err, ErrDeviceUnavailable) || errors.Is(err, ErrPermissionDenied) {
		return err
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "permission") || strings.Contains(msg, "denied") || strings.Contains(msg, "not permitted") {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
}

func displayDevice(name string) string {
	if name == "" {
		return "default"
	}
	return name
}
