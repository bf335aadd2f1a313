package session

import (
	"errors"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-voyager/internal/collision"
	"github.com/vovakirdan/space-voyager/internal/config"
	"github.com/vovakirdan/space-voyager/internal/core"
	"github.com/vovakirdan/space-voyager/internal/physics"
	"github.com/vovakirdan/space-voyager/internal/spawn"
)

var (
	// ErrNoPlayer is returned by StartGame when no player body is registered.
	ErrNoPlayer = errors.New("session: no player body registered")

	// ErrInvalidState is returned by StartGame while a run is in progress.
	ErrInvalidState = errors.New("session: invalid state transition")

	// ErrNoScheduler is returned by New without a spawn scheduler.
	ErrNoScheduler = errors.New("session: spawn scheduler is required")
)

// stepEpsilon absorbs float error when splitting time into fixed steps.
const stepEpsilon = 1e-9

// Params are the run tunables.
type Params struct {
	BaseSpeed     float64
	SpeedRampRate float64 // Speed gained per simulated second; the ramp is unbounded
	MaxStep       float64 // Largest dt accepted per Tick
	FixedStep     float64 // 0 = one variable step per Tick
	KeepInBounds  bool    // Clamp the player inside the playfield
}

// NewParams extracts the run tunables from cfg.
func NewParams(cfg config.VoyagerConfig) Params {
	return Params{
		BaseSpeed:     cfg.Run.BaseSpeed,
		SpeedRampRate: cfg.Run.SpeedRampRate,
		MaxStep:       cfg.Loop.MaxStep,
		FixedStep:     cfg.Loop.FixedStep,
		KeepInBounds:  cfg.Player.KeepInBounds,
	}
}

// Deps are the collaborators a Session drives. Only Scheduler is required:
// a missing Body makes StartGame fail, a nil Detector is replaced by the
// zero detector, a nil Observer by NopObserver, a nil Store means the high
// score lives in memory only, and a nil Logger discards output.
type Deps struct {
	Body      *physics.Body
	Scheduler *spawn.Scheduler
	Detector  *collision.Detector
	Observer  Observer
	Store     HighScoreStore
	Logger    *log.Logger
}

// Session is the run loop.
type Session struct {
	params    Params
	body      *physics.Body
	scheduler *spawn.Scheduler
	detector  *collision.Detector
	observer  Observer
	store     HighScoreStore
	logger    *log.Logger

	state       State
	stats       Stats
	playfield   core.Playfield
	now         float64 // Simulated seconds since StartGame
	accumulator float64 // Unsimulated time in fixed-step mode
	pendingJump bool    // Jump edge waiting for the next fixed step
	steps       int     // Simulation steps since StartGame
	boxes       []core.AABB
}

// New creates a session in the Menu state and loads the high score from
// deps.Store. A load failure is logged and the high score starts at 0.
func New(p Params, pf core.Playfield, deps Deps) (*Session, error) {
	if deps.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if deps.Detector == nil {
		deps.Detector = collision.NewDetector()
	}
	if deps.Observer == nil {
		deps.Observer = NopObserver{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	s := &Session{
		params:    p,
		body:      deps.Body,
		scheduler: deps.Scheduler,
		detector:  deps.Detector,
		observer:  deps.Observer,
		store:     deps.Store,
		logger:    deps.Logger,
		state:     StateMenu,
		playfield: pf,
	}
	s.stats.Speed = p.BaseSpeed
	s.stats.HighScore = s.loadHighScore()
	return s, nil
}

// loadHighScore reads the persisted value, coercing garbage to 0.
func (s *Session) loadHighScore() float64 {
	if s.store == nil {
		return 0
	}
	v, err := s.store.LoadHighScore()
	if err != nil {
		s.logger.Warn("could not load high score", "error", err)
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		s.logger.Warn("ignoring invalid stored high score", "value", v)
		return 0
	}
	return v
}

// RegisterPlayer sets the body StartGame resets and Tick integrates.
// The body cannot be nil or swapped while a run is in flight.
func (s *Session) RegisterPlayer(b *physics.Body) error {
	if b == nil {
		return ErrNoPlayer
	}
	if s.state == StatePlaying {
		return ErrInvalidState
	}
	s.body = b
	return nil
}

// Reseed replaces the obstacle RNG. Call it before StartGame to make the
// next run reproducible.
func (s *Session) Reseed(seed int64) {
	s.scheduler.Reseed(seed)
}

// SetPlayfield updates the bounds used for spawning, retiring and
// containment. Hosts call it when their viewport changes.
func (s *Session) SetPlayfield(pf core.Playfield) {
	s.playfield = pf
}

// Playfield returns the current bounds.
func (s *Session) Playfield() core.Playfield {
	return s.playfield
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Active reports whether a run is in progress.
func (s *Session) Active() bool {
	return s.state == StatePlaying
}

// Stats returns score, speed and high score.
func (s *Session) Stats() Stats {
	return s.stats
}

// Elapsed returns the simulated seconds since the last StartGame.
func (s *Session) Elapsed() float64 {
	return s.now
}

// Steps returns the number of simulation steps since the last StartGame.
func (s *Session) Steps() int {
	return s.steps
}

// StartGame begins a run from Menu or GameOver. It resets the player, the
// score and speed, and clears the obstacle field. Without a registered
// player the transition is refused, logged and ErrNoPlayer returned.
func (s *Session) StartGame() error {
	if s.state == StatePlaying {
		return ErrInvalidState
	}
	if s.body == nil {
		s.logger.Error("cannot start game", "error", ErrNoPlayer)
		return ErrNoPlayer
	}

	s.body.Reset()
	s.stats.Score = 0
	s.stats.Speed = s.params.BaseSpeed
	s.now = 0
	s.accumulator = 0
	s.pendingJump = false
	s.steps = 0
	s.scheduler.ClearAll(s.now)
	s.state = StatePlaying

	s.logger.Debug("game started", "high_score", s.stats.HighScore)
	s.observer.OnGameStarted()
	s.observer.OnScoreChanged(s.stats.Score, s.stats.HighScore)
	return nil
}

// Tick advances the simulation by dt seconds of host time. It does nothing
// outside the Playing state, so a jump delivered then is discarded.
// Negative and non-finite dt count as 0; dt above MaxStep is clamped so a
// long pause cannot tunnel the player through obstacles.
func (s *Session) Tick(dt float64, jumpRequested bool) {
	if s.state != StatePlaying {
		return
	}
	dt = s.clampStep(dt)

	if s.params.FixedStep <= 0 {
		s.step(dt, jumpRequested)
	} else {
		s.pendingJump = s.pendingJump || jumpRequested
		s.accumulator += dt
		for s.state == StatePlaying && s.accumulator+stepEpsilon >= s.params.FixedStep {
			s.accumulator -= s.params.FixedStep
			s.step(s.params.FixedStep, s.pendingJump)
			s.pendingJump = false
		}
	}

	s.observer.OnScoreChanged(s.stats.Score, s.stats.HighScore)
}

// clampStep sanitizes a host delta.
func (s *Session) clampStep(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0
	}
	if s.params.MaxStep > 0 && dt > s.params.MaxStep {
		return s.params.MaxStep
	}
	return dt
}

// step runs one simulation step.
func (s *Session) step(dt float64, jump bool) {
	s.steps++
	s.now += dt

	// Score is distance at the speed held during the step; the ramp
	// applies afterwards.
	s.stats.Score += s.stats.Speed * dt
	s.stats.Speed += s.params.SpeedRampRate * dt

	s.body.Integrate(dt, jump && s.body.Alive())
	if s.params.KeepInBounds {
		s.body.Confine(s.playfield)
	}

	s.scheduler.Tick(dt, s.now, s.playfield)
	s.scheduler.Retire(s.playfield)

	if s.collides() {
		s.GameOver()
	}
}

// collides checks the player against the whole obstacle field.
func (s *Session) collides() bool {
	obstacles := s.scheduler.Obstacles()
	s.boxes = s.boxes[:0]
	for _, o := range obstacles {
		s.boxes = append(s.boxes, o.AABB())
	}

	hit := s.detector.FirstHit(s.body.AABB(), s.boxes)
	if hit < 0 {
		return false
	}
	s.logger.Debug("collision", "obstacle", obstacles[hit].ID, "formation", obstacles[hit].FormationID)
	return true
}

// GameOver ends the run. It is a no-op unless Playing, so duplicate
// collision reports cannot record the run twice. The player is frozen and
// the high score updated (and persisted) if this run beat it. A failed
// save is logged; the in-memory value stays authoritative.
func (s *Session) GameOver() {
	if s.state != StatePlaying {
		return
	}

	s.body.Freeze()
	s.state = StateGameOver
	s.accumulator = 0
	s.pendingJump = false

	final := s.stats.Score
	if final > s.stats.HighScore {
		s.stats.HighScore = final
		s.logger.Info("new high score", "score", final)
		if s.store != nil {
			s.syncHighScore(final)
		}
	}

	s.logger.Info("game over", "score", final, "high_score", s.stats.HighScore, "elapsed", s.now)
	s.observer.OnGameOver(final, s.stats.HighScore)
}

// syncHighScore persists score and adopts a higher stored value written by
// another session sharing the store.
func (s *Session) syncHighScore(score float64) {
	stored, err := s.store.SaveHighScore(score)
	if err != nil {
		s.logger.Warn("could not save high score", "error", err)
		return
	}
	if math.IsNaN(stored) || math.IsInf(stored, 0) {
		return
	}
	if stored > s.stats.HighScore {
		s.logger.Debug("stored high score is higher", "stored", stored, "score", score)
		s.stats.HighScore = stored
	}
}
