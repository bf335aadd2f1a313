package session

import (
	"github.com/vovakirdan/space-voyager/internal/core"
	"github.com/vovakirdan/space-voyager/internal/spawn"
)

// Snapshot is a read-only copy of everything a presenter draws.
type Snapshot struct {
	State       State
	Score       float64
	Speed       float64
	HighScore   float64
	Elapsed     float64
	HasPlayer   bool
	PlayerAlive bool
	Player      core.AABB
	Obstacles   []spawn.Obstacle
	Variants    []spawn.Variant
	Playfield   core.Playfield
}

// Snapshot copies the current state. Mutating the result does not affect
// the session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:     s.state,
		Score:     s.stats.Score,
		Speed:     s.stats.Speed,
		HighScore: s.stats.HighScore,
		Elapsed:   s.now,
		Playfield: s.playfield,
	}
	if s.body != nil {
		snap.HasPlayer = true
		snap.PlayerAlive = s.body.Alive()
		snap.Player = s.body.AABB()
	}

	live := s.scheduler.Obstacles()
	snap.Obstacles = make([]spawn.Obstacle, len(live))
	copy(snap.Obstacles, live)

	variants := s.scheduler.Variants()
	snap.Variants = make([]spawn.Variant, len(variants))
	copy(snap.Variants, variants)
	return snap
}
