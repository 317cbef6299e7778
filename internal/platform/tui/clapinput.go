package tui

import (
	"context"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/clapjump/internal/audio"
	"github.com/vovakirdan/clapjump/internal/clap"
)

// ClapInput latches detector callbacks until the next frame drains them.
// OnClap runs inside Tick on the frame goroutine; OnStatus may also run on
// the goroutine that is starting the microphone.
type ClapInput struct {
	pending atomic.Int32

	mu        sync.Mutex
	status    string
	last      clap.Event
	peakSum   float64
	peakCount int
}

// NewClapInput returns a latch with the initial status.
func NewClapInput() *ClapInput {
	return &ClapInput{status: "Mic off. Press M to enable, Space to jump."}
}

// OnClap records one clap.
func (c *ClapInput) OnClap(ev clap.Event) {
	c.pending.Add(1)
	c.mu.Lock()
	c.last = ev
	c.peakSum += ev.Peak
	c.peakCount++
	c.mu.Unlock()
}

// OnStatus stores the latest status line.
func (c *ClapInput) OnStatus(s string) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// Take returns the claps since the previous call and clears them.
func (c *ClapInput) Take() int {
	return int(c.pending.Swap(0))
}

// Status returns the latest status line.
func (c *ClapInput) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Last returns the most recent event, if any.
func (c *ClapInput) Last() (clap.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.peakCount > 0
}

// MeanPeak is the mean peak of every clap seen.
func (c *ClapInput) MeanPeak() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.peakCount == 0 {
		return 0
	}
	return c.peakSum / float64(c.peakCount)
}

// NewDetector builds a detector whose callbacks feed in.
func NewDetector(opener audio.Opener, cfg clap.Config, in *ClapInput) *clap.Detector {
	cfg.OnClap = in.OnClap
	cfg.OnStatus = in.OnStatus
	return clap.New(opener, cfg)
}

// micStartedMsg reports the outcome of an asynchronous Start.
type micStartedMsg struct {
	err error
}

// startMicCmd opens the microphone off the UI goroutine.
func startMicCmd(ctx context.Context, det *clap.Detector) tea.Cmd {
	return func() tea.Msg {
		return micStartedMsg{err: det.Start(ctx)}
	}
}
