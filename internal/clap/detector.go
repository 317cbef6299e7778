// Package clap turns a stream of audio windows into debounced clap events.
//
// A Detector is a two-state machine. While Armed, the first loud window that
// also clears the cooldown and peak-separation gates fires one Event and
// moves the detector to Cooling. It re-arms only after a window that is
// quiet and whose peak has dropped well below the threshold, so the decaying
// tail of a clap cannot trigger a second event.
package clap

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clapjump/internal/audio"
)

// Sensitivity bounds.
const (
	MinSensitivity = 0.2
	MaxSensitivity = 3.0
)

// Library defaults.
const (
	DefaultSensitivity       = 1.0
	DefaultBaseThreshold     = 0.06
	DefaultNoiseFloor        = 0.012
	DefaultCooldown          = 320 * time.Millisecond
	DefaultMinPeakSeparation = 80 * time.Millisecond
)

// State is the detector's arming state.
type State int

const (
	Armed State = iota
	Cooling
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Cooling:
		return "cooling"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Event describes one fired clap.
type Event struct {
	RMS       float64
	Peak      float64
	Threshold float64
	At        time.Duration // detector clock time of the onset
}

// Reading is the outcome of a single Tick.
type Reading struct {
	Peak      float64
	RMS       float64
	Threshold float64
	Loud      bool
	State     State // state after the tick
	Fired     bool
	Event     Event // valid when Fired
}

// Config holds detector parameters. A zero Sensitivity or BaseThreshold
// takes the library default; a zero floor or gate is used as given.
type Config struct {
	// Sensitivity scales the base threshold and is clamped to
	// [MinSensitivity, MaxSensitivity].
	Sensitivity       float64
	BaseThreshold     float64
	NoiseFloor        float64
	Cooldown          time.Duration
	MinPeakSeparation time.Duration

	Capture audio.CaptureConfig

	OnClap   func(Event)
	OnStatus func(string)

	Clock  Clock
	Logger *log.Logger
}

// DefaultConfig returns the library defaults.
func DefaultConfig() Config {
	return Config{
		Sensitivity:       DefaultSensitivity,
		BaseThreshold:     DefaultBaseThreshold,
		NoiseFloor:        DefaultNoiseFloor,
		Cooldown:          DefaultCooldown,
		MinPeakSeparation: DefaultMinPeakSeparation,
		Capture:           audio.DefaultCaptureConfig(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Sensitivity == 0 || math.IsNaN(c.Sensitivity) {
		c.Sensitivity = def.Sensitivity
	}
	if c.BaseThreshold <= 0 {
		c.BaseThreshold = def.BaseThreshold
	}
	if c.NoiseFloor < 0 {
		c.NoiseFloor = def.NoiseFloor
	}
	if c.Cooldown < 0 {
		c.Cooldown = 0
	}
	if c.MinPeakSeparation < 0 {
		c.MinPeakSeparation = 0
	}
	if c.Capture.WindowSize <= 0 {
		c.Capture.WindowSize = audio.DefaultWindowSize
	}
	if c.Clock == nil {
		c.Clock = NewMonotonicClock()
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return c
}

// ClampSensitivity limits v to the supported range.
func ClampSensitivity(v float64) float64 {
	return math.Max(MinSensitivity, math.Min(MaxSensitivity, v))
}

// Detector is a clap-onset detector. Tick must be called from one goroutine
// at a time; every other method is safe for concurrent use.
type Detector struct {
	opener audio.Opener
	cfg    Config
	logger *log.Logger

	sensitivity atomic.Uint64 // math.Float64bits
	claps       atomic.Int64

	mu       sync.Mutex
	gen      uint64 // bumped by Start and Stop; a stale Start loses
	running  bool
	source   audio.Source
	window   []float32
	state    State
	lastClap time.Duration
	lastPeak time.Duration
	fired    bool // lastClap and lastPeak are meaningful
}

// New creates a detector that acquires audio through opener. The detector
// is idle until Start.
func New(opener audio.Opener, cfg Config) *Detector {
	cfg = cfg.withDefaults()
	d := &Detector{
		opener: opener,
		cfg:    cfg,
		logger: cfg.Logger,
	}
	d.sensitivity.Store(math.Float64bits(ClampSensitivity(cfg.Sensitivity)))
	return d
}

// Config returns the effective configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// Start opens the audio source and arms the detector. It blocks until the
// source is open or ctx is done. Opening failures are reported through
// OnStatus and returned; there is no retry. Calling Start on a running
// detector is a no-op.
func (d *Detector) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return nil
	}
	d.gen++
	gen := d.gen
	d.mu.Unlock()

	src, err := d.opener.Open(ctx, d.cfg.Capture)
	if err != nil {
		d.status(openFailureStatus(err))
		return fmt.Errorf("clap: cannot start: %w", err)
	}

	d.mu.Lock()
	if d.gen != gen {
		d.mu.Unlock()
		if cerr := src.Close(); cerr != nil {
			d.logger.Debug("closing late source failed", "err", cerr)
		}
		return ErrStopped
	}
	d.source = src
	d.window = make([]float32, d.cfg.Capture.WindowSize)
	d.state = Armed
	d.lastClap, d.lastPeak, d.fired = 0, 0, false
	d.running = true
	d.mu.Unlock()

	d.claps.Store(0)
	d.status(fmt.Sprintf("Mic enabled. Clap to jump. Sensitivity=%.2f", d.Sensitivity()))
	d.logger.Debug("clap detector started",
		"sensitivity", d.Sensitivity(),
		"threshold", d.Threshold(),
		"window", d.cfg.Capture.WindowSize,
	)
	return nil
}

// Stop halts detection and releases the source. It never fails and may be
// called at any time, including while Start is still opening the source.
func (d *Detector) Stop() {
	d.mu.Lock()
	d.gen++
	src := d.source
	d.source = nil
	d.window = nil
	d.running = false
	d.state = Armed
	d.lastClap, d.lastPeak, d.fired = 0, 0, false
	d.mu.Unlock()

	if src != nil {
		if err := src.Close(); err != nil {
			d.logger.Debug("audio teardown incomplete", "err", err)
		}
	}
	d.status("Mic disabled.")
}

// SetSensitivity clamps v and makes it effective from the next tick. NaN is
// ignored.
func (d *Detector) SetSensitivity(v float64) {
	if math.IsNaN(v) {
		return
	}
	d.sensitivity.Store(math.Float64bits(ClampSensitivity(v)))
}

// Sensitivity returns the current sensitivity.
func (d *Detector) Sensitivity() float64 {
	return math.Float64frombits(d.sensitivity.Load())
}

// Threshold returns the effective peak threshold.
func (d *Detector) Threshold() float64 {
	return d.cfg.BaseThreshold * d.Sensitivity()
}

// Running reports whether the detector has an open source.
func (d *Detector) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// State returns the current arming state.
func (d *Detector) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Claps returns the number of events fired since the last Start.
func (d *Detector) Claps() int {
	return int(d.claps.Load())
}

// Tick runs one analysis step over the source's latest window. It does
// nothing when the detector is not running and never blocks on audio.
func (d *Detector) Tick() Reading {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return Reading{State: Armed}
	}

	d.source.Window(d.window)
	peak, rms := Analyze(d.window)
	now := d.cfg.Clock.Now()
	thr := d.cfg.BaseThreshold * d.Sensitivity()
	loud := IsLoud(peak, rms, thr, d.cfg.NoiseFloor)

	r := Reading{Peak: peak, RMS: rms, Threshold: thr, Loud: loud}

	if loud && d.state == Armed && d.gatesOpen(now) {
		d.lastClap = now
		d.lastPeak = now
		d.fired = true
		d.state = Cooling
		r.Fired = true
		r.Event = Event{RMS: rms, Peak: peak, Threshold: thr, At: now}
	}

	if !loud && peak < RearmLevel(thr) {
		d.state = Armed
	}
	r.State = d.state
	d.mu.Unlock()

	if r.Fired {
		d.claps.Add(1)
		d.logger.Debug("clap", "peak", peak, "rms", rms, "threshold", thr, "at", now)
		if d.cfg.OnClap != nil {
			d.cfg.OnClap(r.Event)
		}
	}
	return r
}

// gatesOpen reports whether both debounce intervals have elapsed. Before
// the first event both gates are open.
func (d *Detector) gatesOpen(now time.Duration) bool {
	if !d.fired {
		return true
	}
	return now-d.lastClap >= d.cfg.Cooldown && now-d.lastPeak >= d.cfg.MinPeakSeparation
}

// Run ticks every interval until ctx is done. It is for hosts that have no
// frame loop of their own.
func (d *Detector) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Tick()
		}
	}
}

func (d *Detector) status(msg string) {
	if d.cfg.OnStatus != nil {
		d.cfg.OnStatus(msg)
	}
}

func openFailureStatus(err error) string {
	switch {
	case errors.Is(err, audio.ErrPermissionDenied):
		return "Mic permission denied."
	case errors.Is(err, audio.ErrDeviceUnavailable):
		return "Mic unavailable."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Mic start cancelled."
	default:
		return "Mic error: " + err.Error()
	}
}
