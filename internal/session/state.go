// Package session runs one player's game: it owns the Menu/Playing/GameOver
// state machine, steps the physics body, the spawn scheduler and the
// collision detector once per host frame, and reports score changes to a
// presentation observer.
//
// A Session is single-threaded. The host calls Tick synchronously once per
// frame; nothing inside runs in the background and nothing needs a lock.
package session

import "fmt"

// State is the game state. StateMenu is initial.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats are the numbers a presenter shows.
type Stats struct {
	Score     float64 // Distance traveled this run
	Speed     float64 // Current forward speed
	HighScore float64 // Best score, never negative, never decreasing
}
