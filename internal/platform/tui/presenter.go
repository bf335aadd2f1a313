package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-voyager/internal/session"
	"github.com/vovakirdan/space-voyager/internal/storage"
)

// GameID keys voyager rows in the shared scores database.
const GameID = "voyager"

// presenter receives session events and records finished runs.
// The screen itself is redrawn from snapshots.
type presenter struct {
	store   *storage.Store
	logger  *log.Logger
	player  string
	preset  string
	seed    int64          // Seed of the run in progress
	elapsed func() float64 // Simulated time of the run in progress

	runs int // Runs finished in this program
}

var _ session.Observer = (*presenter)(nil)

func (p *presenter) OnGameStarted() {
	p.logger.Debug("run started", "seed", p.seed)
}

func (p *presenter) OnScoreChanged(float64, float64) {}

// OnGameOver writes the run history row for runs that scored. A failed
// write is logged and the run is still counted.
func (p *presenter) OnGameOver(final, high float64) {
	p.runs++
	p.logger.Debug("run finished", "run", p.runs, "score", final, "best", high)

	if p.store == nil || final <= 0 {
		return
	}
	run := storage.Run{
		GameID: GameID,
		Score:  final,
		Seed:   p.seed,
		Preset: p.preset,
		Player: p.player,
	}
	if p.elapsed != nil {
		run.Elapsed = p.elapsed()
	}
	if _, err := p.store.SaveRun(run); err != nil {
		p.logger.Warn("could not record run", "error", err)
	}
}
