package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clapjump/internal/audio"
	"github.com/vovakirdan/clapjump/internal/audio/mock"
	"github.com/vovakirdan/clapjump/internal/clap"
	"github.com/vovakirdan/clapjump/internal/core"
	"github.com/vovakirdan/clapjump/internal/registry"
	"github.com/vovakirdan/clapjump/internal/storage"
)

// stubGame records inputs and ends the run after endAfter jumps.
type stubGame struct {
	inputs   []core.InputFrame
	jumps    int
	endAfter int
	state    core.GameState
	resets   int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.jumps = 0
	g.state = core.GameState{}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in)
	if g.state.Ended() || !in.Has(core.ActionJump) {
		return core.StepResult{State: g.state}
	}
	g.jumps++
	g.state.Score += 10
	if g.endAfter > 0 && g.jumps >= g.endAfter {
		g.state.GameOver = true
	}
	return core.StepResult{State: g.state, Jumped: true}
}

func (g *stubGame) Render(dst *core.Screen) { dst.Clear() }
func (g *stubGame) State() core.GameState   { return g.state }

func (g *stubGame) last() core.InputFrame {
	return g.inputs[len(g.inputs)-1]
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(&strings.Builder{}, log.Options{})
}

// startedDetector returns a running detector over a scripted source.
func startedDetector(t *testing.T, in *ClapInput) (*clap.Detector, *mock.Source) {
	t.Helper()
	src := mock.NewSource()
	cfg := clap.DefaultConfig()
	cfg.Capture.WindowSize = 256
	cfg.Clock = &clap.ManualClock{}
	cfg.Logger = quietLogger()

	det := NewDetector(mock.NewOpener(src), cfg, in)
	if err := det.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	t.Cleanup(det.Stop)
	return det, src
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestClapBecomesJump(t *testing.T) {
	in := NewClapInput()
	det, src := startedDetector(t, in)
	game := &stubGame{}

	m := NewModel(game, Options{Runtime: core.DefaultConfig(), Detector: det, Claps: in, Logger: quietLogger()})
	m.Init()

	src.SetLevel(256, 0.5)
	m = step(t, m, TickMsg{})

	got := game.last()
	if !got.Has(core.ActionJump) || got.Source != core.SourceClap {
		t.Fatalf("expected a clap jump, got %+v", got)
	}
	if m.runClaps != 1 {
		t.Errorf("runClaps = %d, expected 1", m.runClaps)
	}

	// Still loud: the detector is cooling, so no second jump
	m = step(t, m, TickMsg{})
	if game.last().Has(core.ActionJump) {
		t.Error("sustained sound should not jump again")
	}
}

func TestKeyboardFallback(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, Options{Runtime: core.DefaultConfig(), Logger: quietLogger()})
	m.Init()

	m = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = step(t, m, TickMsg{})

	got := game.last()
	if !got.Has(core.ActionJump) || got.Source != core.SourceKeyboard {
		t.Errorf("expected a keyboard jump, got %+v", got)
	}
	if m.runClaps != 0 {
		t.Errorf("keyboard jumps should not count as claps, got %d", m.runClaps)
	}

	m = step(t, m, TickMsg{})
	if game.last().Has(core.ActionJump) {
		t.Error("input should be cleared after a tick")
	}
}

func TestScoreSavedOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	in := NewClapInput()
	det, src := startedDetector(t, in)
	game := &stubGame{endAfter: 1}

	m := NewModel(game, Options{Store: store, Runtime: core.DefaultConfig(), Detector: det, Claps: in, Logger: quietLogger()})
	m.Init()

	src.SetLevel(256, 0.5)
	for range 5 {
		m = step(t, m, TickMsg{})
	}
	if !m.GameState().GameOver {
		t.Fatal("run should have ended")
	}

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected exactly one saved score, got %d", len(scores))
	}
	if scores[0].Score != 10 || scores[0].Claps != 1 || scores[0].Input != storage.InputClap {
		t.Errorf("unexpected score row: %+v", scores[0])
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	game := &stubGame{endAfter: 1}
	m := NewModel(game, Options{Runtime: core.DefaultConfig(), Logger: quietLogger()})
	m.Init()

	m = step(t, m, runes("w"))
	m = step(t, m, TickMsg{})
	if !m.GameState().GameOver {
		t.Fatal("run should have ended")
	}

	m = step(t, m, runes("r"))
	m = step(t, m, TickMsg{})
	if game.resets != 2 {
		t.Errorf("expected a reset on restart, resets=%d", game.resets)
	}
	if m.GameState().Ended() {
		t.Error("state should be fresh after restart")
	}
}

func TestSensitivityKeys(t *testing.T) {
	in := NewClapInput()
	det, _ := startedDetector(t, in)
	m := NewModel(&stubGame{}, Options{Runtime: core.DefaultConfig(), Detector: det, Claps: in, SensitivityStep: 0.1, Logger: quietLogger()})

	before := det.Sensitivity()
	m = step(t, m, runes("+"))
	if got := det.Sensitivity(); got < before+0.099 || got > before+0.101 {
		t.Errorf("Sensitivity() = %v, expected %v", got, before+0.1)
	}
	step(t, m, runes("-"))
	step(t, m, runes("-"))
	if got := det.Sensitivity(); got > before-0.099 {
		t.Errorf("Sensitivity() = %v, expected about %v", got, before-0.1)
	}
	if !strings.HasPrefix(in.Status(), "Sensitivity=") {
		t.Errorf("status = %q", in.Status())
	}
}

func TestMicToggle(t *testing.T) {
	in := NewClapInput()
	det, _ := startedDetector(t, in)
	m := NewModel(&stubGame{}, Options{Runtime: core.DefaultConfig(), Detector: det, Claps: in, Logger: quietLogger()})

	next, cmd := m.Update(runes("m"))
	if det.Running() {
		t.Error("m should stop a running microphone")
	}
	if cmd != nil {
		t.Error("stopping should not schedule a start")
	}
	if in.Status() != "Mic disabled." {
		t.Errorf("status = %q", in.Status())
	}

	_, cmd = next.Update(runes("m"))
	if cmd == nil {
		t.Fatal("m should schedule a start when stopped")
	}
	if msg, ok := cmd().(micStartedMsg); !ok || msg.err != nil {
		t.Errorf("unexpected start result %+v", msg)
	}
	if !det.Running() {
		t.Error("microphone should be running again")
	}
}

func TestUnavailableMicKeepsKeyboard(t *testing.T) {
	in := NewClapInput()
	det := NewDetector(audio.Unavailable{Reason: "test"}, clap.DefaultConfig(), in)
	game := &stubGame{}
	m := NewModel(game, Options{Runtime: core.DefaultConfig(), Detector: det, Claps: in, Logger: quietLogger()})

	msg := startMicCmd(context.Background(), det)().(micStartedMsg)
	if !errors.Is(msg.err, audio.ErrDeviceUnavailable) {
		t.Fatalf("expected ErrDeviceUnavailable, got %v", msg.err)
	}
	if in.Status() != "Mic unavailable." {
		t.Errorf("status = %q", in.Status())
	}

	m = step(t, m, msg)
	m = step(t, m, runes("w"))
	step(t, m, TickMsg{})
	if !game.last().Has(core.ActionJump) {
		t.Error("keyboard should still jump without a microphone")
	}
}

func TestBackOnlyAfterRun(t *testing.T) {
	game := &stubGame{endAfter: 1}
	m := NewModel(game, Options{Runtime: core.DefaultConfig(), Logger: quietLogger(), AllowBack: true, Embedded: true})
	m.Init()

	m = step(t, m, runes("b"))
	if m.BackToMenu() {
		t.Error("back should be ignored during an active run")
	}

	m = step(t, m, runes("w"))
	m = step(t, m, TickMsg{})
	m = step(t, m, runes("b"))
	if !m.BackToMenu() {
		t.Error("back after game over should return to the menu")
	}
}

func TestStatusRowReserved(t *testing.T) {
	m := NewModel(&stubGame{}, Options{Runtime: core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}, Logger: quietLogger()})
	if m.screen.Height() != 9 {
		t.Errorf("game screen height = %d, expected 9", m.screen.Height())
	}

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 10 {
		t.Errorf("view has %d lines, expected 10", len(lines))
	}
	if !strings.Contains(lines[9], "Mic off") {
		t.Errorf("status line = %q", lines[9])
	}
}

func TestClapInputLatch(t *testing.T) {
	in := NewClapInput()
	if in.Take() != 0 {
		t.Fatal("fresh latch should be empty")
	}

	in.OnClap(clap.Event{Peak: 0.2})
	in.OnClap(clap.Event{Peak: 0.4})
	if n := in.Take(); n != 2 {
		t.Errorf("Take() = %d, expected 2", n)
	}
	if n := in.Take(); n != 0 {
		t.Errorf("Take() after drain = %d, expected 0", n)
	}
	if mp := in.MeanPeak(); mp < 0.2999 || mp > 0.3001 {
		t.Errorf("MeanPeak() = %v, expected 0.3", mp)
	}
	if ev, ok := in.Last(); !ok || ev.Peak != 0.4 {
		t.Errorf("Last() = %+v, %v", ev, ok)
	}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runes("w"), core.ActionJump, false},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{runes("p"), core.ActionPause, false},
		{runes("r"), core.ActionRestart, false},
		{runes("b"), core.ActionBack, false},
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runes("x"), core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}

	if km.SensitivityDelta(runes("+")) != 1 || km.SensitivityDelta(runes("-")) != -1 || km.SensitivityDelta(runes("w")) != 0 {
		t.Error("SensitivityDelta mapping wrong")
	}
	if km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}) != MenuActionScoreboard {
		t.Error("tab should open the scoreboard")
	}
}

func TestLevelBar(t *testing.T) {
	bar := []rune(levelBar(0, 0.06, 10))
	if len(bar) != 10 || bar[6] != '|' || bar[0] != '·' {
		t.Errorf("empty bar = %q", string(bar))
	}

	full := []rune(levelBar(1, 0.06, 10))
	if full[0] != '█' || full[9] != '█' || full[6] != '|' {
		t.Errorf("full bar = %q", string(full))
	}
}

func TestMenuShowsRecords(t *testing.T) {
	if !registry.Exists("stub") {
		registry.Register("stub", "Stub", func(registry.Options) (registry.Game, error) {
			return &stubGame{}, nil
		})
	}

	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore(storage.ScoreEntry{GameID: "stub", Score: 40, Claps: 4, Input: storage.InputClap, Won: true}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveClapSession(storage.ClapSession{Source: "mic:default", Claps: 7, Sensitivity: 1.25}); err != nil {
		t.Fatalf("SaveClapSession() failed: %v", err)
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 120, ScreenH: 30}, "Keyboard only")

	var item *MenuItem
	for i := range m.items {
		if m.items[i].GameID == "stub" {
			item = &m.items[i]
		}
	}
	if item == nil {
		t.Fatal("stub game missing from menu")
	}
	if item.HighScore != 40 || item.Runs != 1 || item.Wins != 1 || item.Claps != 4 {
		t.Errorf("item = %+v, expected best 40, 1 run, 1 win, 4 claps", *item)
	}

	view := m.View()
	if !strings.Contains(view, "Keyboard only") {
		t.Error("menu should show the mic note")
	}
	if !strings.Contains(view, "7 claps at sensitivity 1.25") {
		t.Errorf("menu should show the last clap session, got:\n%s", view)
	}
}

func TestMenuWithoutStore(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "")
	for _, it := range m.items {
		if it.Runs != 0 {
			t.Errorf("%s: runs = %d without a store", it.GameID, it.Runs)
		}
	}
	if m.lastSession != "" {
		t.Errorf("lastSession = %q without a store", m.lastSession)
	}
}
