package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/clapjump/internal/clap"
)

const (
	meterBarWidth = 40
	meterHistory  = 6
)

var (
	meterTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	meterLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	meterLoudStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	meterQuietStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	meterBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	meterHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MeterResult summarises a listening session.
type MeterResult struct {
	StartedAt   time.Time
	EndedAt     time.Time
	Claps       int
	MeanPeak    float64
	Sensitivity float64
	Threshold   float64
}

// MeterModel shows live detector features so the threshold can be tuned.
type MeterModel struct {
	det       *clap.Detector
	claps     *ClapInput
	keyMapper *KeyMapper
	fps       int
	step      float64
	device    string

	ctx    context.Context
	cancel context.CancelFunc

	reading  clap.Reading
	history  []clap.Event
	started  time.Time
	micErr   error
	quitting bool
}

// NewMeterModel creates a meter over det. in must be the latch det reports into.
func NewMeterModel(det *clap.Detector, in *ClapInput, fps int, step float64, device string) MeterModel {
	if step <= 0 {
		step = 0.05
	}
	ctx, cancel := context.WithCancel(context.Background())
	return MeterModel{
		det:       det,
		claps:     in,
		keyMapper: NewKeyMapper(),
		fps:       fps,
		step:      step,
		device:    device,
		ctx:       ctx,
		cancel:    cancel,
		started:   time.Now(),
	}
}

// Init starts the frame loop and the microphone.
func (m MeterModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.fps), startMicCmd(m.ctx, m.det))
}

// Update handles messages.
func (m MeterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if d := m.keyMapper.SensitivityDelta(msg); d != 0 {
			m.det.SetSensitivity(m.det.Sensitivity() + float64(d)*m.step)
			return m, nil
		}
		if m.keyMapper.IsMicToggle(msg) {
			if m.det.Running() {
				m.det.Stop()
				return m, nil
			}
			return m, startMicCmd(m.ctx, m.det)
		}
		if _, quit := m.keyMapper.MapKey(msg); quit || msg.String() == "esc" {
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case micStartedMsg:
		if msg.err != nil && !errors.Is(msg.err, clap.ErrStopped) {
			m.micErr = msg.err
		} else {
			m.micErr = nil
		}

	case TickMsg:
		m.reading = m.det.Tick()
		m.claps.Take()
		if m.reading.Fired {
			m.history = append(m.history, m.reading.Event)
			if len(m.history) > meterHistory {
				m.history = m.history[len(m.history)-meterHistory:]
			}
		}
		return m, tickCmd(m.fps)
	}
	return m, nil
}

// View renders the meter.
func (m MeterModel) View() string {
	if m.quitting {
		return ""
	}

	r := m.reading
	thr := m.det.Threshold()
	floor := m.det.Config().NoiseFloor
	rmsGate := floor + 0.25*thr

	var b strings.Builder
	b.WriteString(meterTitleStyle.Render("CLAP METER"))
	b.WriteString(fmt.Sprintf("  device: %s  state: %s\n\n", m.device, r.State))

	b.WriteString(m.bar("peak", r.Peak, thr, r.Peak > thr))
	b.WriteString(m.bar("rms", r.RMS, rmsGate, r.RMS > rmsGate))
	b.WriteString(fmt.Sprintf("\n%s %.4f   re-arm below %.4f   floor %.4f\n",
		meterLabelStyle.Render("threshold"), thr, clap.RearmLevel(thr), floor))
	b.WriteString(fmt.Sprintf("%s %.2f   claps %d\n",
		meterLabelStyle.Render("sensitivity"), m.det.Sensitivity(), m.det.Claps()))
	b.WriteString(fmt.Sprintf("%s %s\n", meterLabelStyle.Render("status"), m.claps.Status()))
	if m.micErr != nil {
		b.WriteString(meterLoudStyle.Render(m.micErr.Error()) + "\n")
	}

	if len(m.history) > 0 {
		b.WriteString("\nrecent claps\n")
		for i := len(m.history) - 1; i >= 0; i-- {
			ev := m.history[i]
			b.WriteString(fmt.Sprintf("  %8s  peak %.3f  rms %.3f\n", ev.At.Truncate(time.Millisecond), ev.Peak, ev.RMS))
		}
	}

	out := meterBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
	return out + "\n" + meterHelpStyle.Render("+/- sensitivity  m mic on/off  q quit")
}

func (m MeterModel) bar(label string, v, gate float64, over bool) string {
	style := meterQuietStyle
	if over {
		style = meterLoudStyle
	}
	return fmt.Sprintf("%s %s %.4f\n", meterLabelStyle.Render(label), style.Render(levelBar(v, gate, meterBarWidth)), v)
}

// Result summarises the session so far.
func (m MeterModel) Result() MeterResult {
	return MeterResult{
		StartedAt:   m.started,
		EndedAt:     time.Now(),
		Claps:       m.det.Claps(),
		MeanPeak:    m.claps.MeanPeak(),
		Sensitivity: m.det.Sensitivity(),
		Threshold:   m.det.Threshold(),
	}
}

// RunMeter shows the meter until the user quits, then stops det.
func RunMeter(det *clap.Detector, in *ClapInput, fps int, step float64, device string) (MeterResult, error) {
	model := NewMeterModel(det, in, fps, step, device)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	res := model.Result()
	if mm, ok := final.(MeterModel); ok {
		res = mm.Result()
	}
	model.cancel()
	det.Stop()
	return res, err
}
