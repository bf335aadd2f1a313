package spawn

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-voyager/internal/config"
	"github.com/vovakirdan/space-voyager/internal/core"
)

// Params are the tunables of a Scheduler.
type Params struct {
	SpawnInterval float64
	VerticalGap   float64
	MoveSpeed     float64
	SpawnMargin   float64
	RetireMargin  float64
	MinFormation  int
	MaxFormation  int
	BandFraction  float64
}

// NewParams converts the spawner config section.
func NewParams(c config.SpawnerConfig) Params {
	return Params{
		SpawnInterval: c.SpawnInterval,
		VerticalGap:   c.VerticalGap,
		MoveSpeed:     c.MoveSpeed,
		SpawnMargin:   c.SpawnMargin,
		RetireMargin:  c.RetireMargin,
		MinFormation:  c.MinFormation,
		MaxFormation:  c.MaxFormation,
		BandFraction:  c.BandFraction,
	}
}

// Scheduler owns the live obstacles.
type Scheduler struct {
	params        Params
	variants      []Variant
	obstacles     []Obstacle
	rng           *rand.Rand
	nextSpawnTime float64
	nextID        uint64
	nextFormation uint64
	logger        *log.Logger
	warned        bool // Missing-catalog warning already reported
}

// NewScheduler creates a scheduler whose first formation is due one
// interval after time zero. A nil logger discards output.
func NewScheduler(p Params, variants []Variant, seed int64, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scheduler{
		params:        p,
		variants:      variants,
		obstacles:     make([]Obstacle, 0, 16),
		rng:           rand.New(rand.NewSource(seed)),
		nextSpawnTime: p.SpawnInterval,
		logger:        logger,
	}
}

// Reseed replaces the RNG, for reproducible runs.
func (s *Scheduler) Reseed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// SetVariants replaces the catalog and re-arms the missing-catalog warning.
func (s *Scheduler) SetVariants(variants []Variant) {
	s.variants = variants
	s.warned = false
}

// Variants returns the catalog.
func (s *Scheduler) Variants() []Variant {
	return s.variants
}

// Params returns the scheduler's tunables.
func (s *Scheduler) Params() Params {
	return s.params
}

// NextSpawnTime returns when the next formation is due.
func (s *Scheduler) NextSpawnTime() float64 {
	return s.nextSpawnTime
}

// Obstacles returns the live obstacles. The slice is owned by the
// scheduler and valid until the next Tick, Retire or ClearAll.
func (s *Scheduler) Obstacles() []Obstacle {
	return s.obstacles
}

// Len returns the number of live obstacles.
func (s *Scheduler) Len() int {
	return len(s.obstacles)
}

// Tick spawns a formation if one is due at now, then moves every obstacle
// left by MoveSpeed*dt. It returns copies of the obstacles spawned this
// tick, in their post-move positions.
func (s *Scheduler) Tick(dt, now float64, pf core.Playfield) []Obstacle {
	first := len(s.obstacles)
	if now >= s.nextSpawnTime {
		s.spawnFormation(now, pf)
		s.nextSpawnTime = now + s.params.SpawnInterval
	}

	dx := -s.params.MoveSpeed * dt
	for i := range s.obstacles {
		s.obstacles[i].Position.X += dx
	}

	if first == len(s.obstacles) {
		return nil
	}
	spawned := make([]Obstacle, len(s.obstacles)-first)
	copy(spawned, s.obstacles[first:])
	return spawned
}

// Retire removes every obstacle that has moved past the left edge of pf
// by more than RetireMargin, and returns their ids.
func (s *Scheduler) Retire(pf core.Playfield) []uint64 {
	limit := -pf.HalfWidth - s.params.RetireMargin

	var removed []uint64
	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o.Position.X < limit {
			removed = append(removed, o.ID)
			continue
		}
		kept = append(kept, o)
	}
	s.obstacles = kept
	return removed
}

// ClearAll removes every obstacle and schedules the next formation one
// interval after now.
func (s *Scheduler) ClearAll(now float64) {
	s.obstacles = s.obstacles[:0]
	s.nextSpawnTime = now + s.params.SpawnInterval
}

// spawnFormation lays out one formation just beyond the right edge.
func (s *Scheduler) spawnFormation(now float64, pf core.Playfield) {
	if len(s.variants) == 0 {
		if !s.warned {
			s.logger.Warn("no obstacle variants configured, spawning disabled")
			s.warned = true
		}
		return
	}

	s.nextFormation++
	f := Formation{
		ID:        s.nextFormation,
		CenterY:   s.randomCenterY(pf),
		Size:      s.randomSize(),
		SpawnTime: now,
	}

	x := pf.HalfWidth + s.params.SpawnMargin
	for i := 0; i < f.Size; i++ {
		vi := s.rng.Intn(len(s.variants))
		s.nextID++
		s.obstacles = append(s.obstacles, Obstacle{
			ID:          s.nextID,
			Position:    core.V(x, f.CenterY+f.MemberOffset(i, s.params.VerticalGap)),
			Half:        s.variants[vi].Half,
			FormationID: f.ID,
			Variant:     vi,
		})
	}

	s.logger.Debug("formation spawned", "formation", f.ID, "size", f.Size, "center_y", f.CenterY)
}

// randomSize picks a formation size uniformly from [MinFormation, MaxFormation].
func (s *Scheduler) randomSize() int {
	lo, hi := s.params.MinFormation, s.params.MaxFormation
	if lo < 1 {
		lo = 1
	}
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// randomCenterY picks a center uniformly from the band ±BandFraction*HalfHeight.
func (s *Scheduler) randomCenterY(pf core.Playfield) float64 {
	band := s.params.BandFraction * pf.HalfHeight
	if band <= 0 {
		return 0
	}
	return (s.rng.Float64()*2 - 1) * band
}
