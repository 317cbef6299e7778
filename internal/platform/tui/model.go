package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clapjump/internal/clap"
	"github.com/vovakirdan/clapjump/internal/core"
	"github.com/vovakirdan/clapjump/internal/registry"
	"github.com/vovakirdan/clapjump/internal/storage"
)

// flashTicks is how long the status line highlights a clap.
const flashTicks = 12

// Options configures a game session.
type Options struct {
	Store           *storage.Store     // nil disables score saving
	Runtime         core.RuntimeConfig // ScreenH includes the status row
	Detector        *clap.Detector     // nil plays on the keyboard only
	Claps           *ClapInput         // the latch the detector reports into
	SensitivityStep float64
	Logger          *log.Logger

	// AllowBack lets B/Esc end a finished or paused run (BackToMenu).
	AllowBack bool

	// Embedded models run inside a parent program, so leaving does not
	// quit the program.
	Embedded bool
}

// Model is the Bubble Tea model for one game with clap input.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	reading    clap.Reading
	flash      int

	ctx    context.Context
	cancel context.CancelFunc

	runClaps   int // claps that reached the game this run
	scoreSaved bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a model for game. The status row is taken from the
// bottom of opts.Runtime.ScreenH.
func NewModel(game registry.Game, opts Options) Model {
	if opts.Claps == nil {
		opts.Claps = NewClapInput()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.SensitivityStep <= 0 {
		opts.SensitivityStep = 0.05
	}

	cfg := opts.Runtime
	cfg.ScreenH = max(cfg.ScreenH-1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:      opts,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init resets the game, starts the frame loop and asks for the microphone.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.opts.Detector != nil {
		cmds = append(cmds, startMicCmd(m.ctx, m.opts.Detector))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case micStartedMsg:
		if msg.err != nil && !errors.Is(msg.err, clap.ErrStopped) {
			m.opts.Logger.Info("microphone not started, keyboard only", "err", msg.err)
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if d := m.keyMapper.SensitivityDelta(msg); d != 0 {
		if det := m.opts.Detector; det != nil {
			det.SetSensitivity(det.Sensitivity() + float64(d)*m.opts.SensitivityStep)
			m.opts.Claps.OnStatus(fmt.Sprintf("Sensitivity=%.2f", det.Sensitivity()))
		}
		return m, nil
	}

	if m.keyMapper.IsMicToggle(msg) && m.opts.Detector != nil {
		if m.opts.Detector.Running() {
			m.opts.Detector.Stop()
			return m, nil
		}
		return m, startMicCmd(m.ctx, m.opts.Detector)
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.shutdown()
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionBack && m.opts.AllowBack && (m.gameState.Ended() || m.gameState.Paused) {
		m.shutdown()
		m.backToMenu = true
		if m.opts.Embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-1, 1)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)

	// A resize changes the playfield, so an active run restarts
	if !m.gameState.Ended() {
		m.game.Reset(m.config)
		m.runClaps = 0
	}
	return m, nil
}

// handleTick runs one detector step and one game step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.opts.Detector != nil {
		m.reading = m.opts.Detector.Tick()
	}
	if n := m.opts.Claps.Take(); n > 0 {
		m.flash = flashTicks
		m.inputFrame.Set(core.ActionJump)
		m.inputFrame.Source = core.SourceClap
	} else if m.flash > 0 {
		m.flash--
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.Ended() {
		if m.config.Seed != 0 {
			m.config.Seed++
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runClaps = 0
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	source := m.inputFrame.Source
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Jumped && source == core.SourceClap {
		m.runClaps++
	}

	if m.gameState.Ended() && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) saveScore() {
	if m.opts.Store == nil || (m.gameState.Score == 0 && !m.gameState.Won) {
		return
	}
	input := storage.InputKeyboard
	if m.runClaps > 0 {
		input = storage.InputClap
	}
	_, err := m.opts.Store.SaveScore(storage.ScoreEntry{
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
		Claps:  m.runClaps,
		Input:  input,
		Won:    m.gameState.Won,
	})
	if err != nil {
		m.opts.Logger.Warn("score not saved", "err", err)
	}
}

// shutdown releases the microphone and cancels a pending start.
func (m *Model) shutdown() {
	m.cancel()
	if m.opts.Detector != nil {
		m.opts.Detector.Stop()
	}
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".clapjump", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot directory", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot not saved", "err", err)
	}
}

// status builds the line shown under the game.
func (m Model) status() statusLine {
	l := statusLine{Text: m.opts.Claps.Status(), Reading: m.reading, Flash: m.flash > 0}
	if det := m.opts.Detector; det != nil && det.Running() {
		l.Listening = true
		l.Sensitivity = det.Sensitivity()
		l.Claps = det.Claps()
	}
	return l
}

// View renders the game and the status line.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.status().render(m.config.ScreenW)
}

// GameState returns the state after the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game until the user quits.
func Run(game registry.Game, opts Options) error {
	model := NewModel(game, opts)
	defer model.shutdown()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
