package session

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-voyager/internal/collision"
	"github.com/vovakirdan/space-voyager/internal/config"
	"github.com/vovakirdan/space-voyager/internal/core"
	"github.com/vovakirdan/space-voyager/internal/physics"
	"github.com/vovakirdan/space-voyager/internal/spawn"
)

// FromConfig validates cfg and wires a session with a registered player,
// a seeded scheduler and the default detector.
func FromConfig(cfg config.VoyagerConfig, pf core.Playfield, seed int64, obs Observer, store HighScoreStore, logger *log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	body := physics.NewBody(
		core.V(cfg.Player.SpawnX, cfg.Player.SpawnY),
		core.V(cfg.Player.HalfWidth, cfg.Player.HalfHeight),
		physics.NewParams(cfg.Physics),
	)
	sched := spawn.NewScheduler(
		spawn.NewParams(cfg.Spawner),
		spawn.VariantsFromConfig(cfg.Variants),
		seed,
		logger,
	)

	return New(NewParams(cfg), pf, Deps{
		Body:      body,
		Scheduler: sched,
		Detector:  collision.NewDetector(),
		Observer:  obs,
		Store:     store,
		Logger:    logger,
	})
}
