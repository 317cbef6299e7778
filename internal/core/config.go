package core

// RuntimeConfig is what the platform tells a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in cells
	ScreenH  int   // Screen height in cells
	TickRate int   // Simulation ticks per second
	Seed     int64 // 0 lets the game use its configured seeds
}

// DefaultConfig returns an 80x24 screen at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Dt returns the duration of one tick in seconds.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is a game's externally visible status.
type GameState struct {
	Score    int
	GameOver bool
	Won      bool
	Paused   bool
	Message  string // why the run ended, if it did
}

// Ended reports whether the run is over, either way.
func (s GameState) Ended() bool {
	return s.GameOver || s.Won
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State  GameState
	Jumped bool // the jump input was accepted this tick
}
