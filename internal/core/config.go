package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameDuration returns the length of one simulation tick.
func (c RuntimeConfig) FrameDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// Status is the state-machine position of a game instance.
type Status int

const (
	StatusReady Status = iota
	StatusPlaying
	StatusPaused
	StatusGameOver
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Toggle returns the status reached by the single start/pause action.
// GameOver toggles to Playing; the caller is responsible for resetting state first.
func (s Status) Toggle() Status {
	switch s {
	case StatusReady, StatusPaused, StatusGameOver:
		return StatusPlaying
	case StatusPlaying:
		return StatusPaused
	default:
		return s
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score  int
	Status Status
	Won    bool // Set with StatusGameOver when the game ended in victory
}

// GameOver reports whether the game has ended.
func (s GameState) GameOver() bool {
	return s.Status == StatusGameOver
}

// Paused reports whether the game is paused.
func (s GameState) Paused() bool {
	return s.Status == StatusPaused
}

// Playing reports whether the simulation is advancing.
func (s GameState) Playing() bool {
	return s.Status == StatusPlaying
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events Events
}
