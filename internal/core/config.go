package core

// RuntimeConfig is passed to games on every reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Update ticks per second
	Seed     int64 // RNG seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score    int  // Game-defined progress value
	GameOver bool // The game reached a terminal outcome
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	// Changed is true when the step altered the board. Turn-based games use
	// it to tell the platform a placement happened.
	Changed bool
}
