// Package registry lets games register themselves so the platform can list
// and create them by ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/clapjump/internal/config"
	"github.com/vovakirdan/clapjump/internal/core"
)

// Game is what every game implements. Games are pure logic; the platform
// owns input, timing and terminal output.
type Game interface {
	// ID is the stable identifier used on the command line and in scores.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new run.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick. ActionJump is the only gameplay input
	// and must be ignored once the run has ended.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state.
	Render(dst *core.Screen)

	// State returns the current state.
	State() core.GameState
}

// Options is passed to factories.
type Options struct {
	ConfigDir string                  // directory searched before the defaults
	Preset    config.DifficultyPreset // empty keeps the configured difficulty
}

// Factory builds a game. It returns an error only for an unusable config.
type Factory func(opts Options) (Game, error)

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

type entry struct {
	title   string
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game. It panics on a duplicate ID.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: title, factory: f}
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create builds the game registered under id.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(opts)
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
