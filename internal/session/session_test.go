package session

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/space-voyager/internal/config"
	"github.com/vovakirdan/space-voyager/internal/core"
	"github.com/vovakirdan/space-voyager/internal/physics"
	"github.com/vovakirdan/space-voyager/internal/spawn"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// counter records observer events.
type counter struct {
	started   int
	scores    int
	gameOvers int
	lastScore float64
	lastFinal float64
	lastHigh  float64
}

func (c *counter) OnScoreChanged(score, high float64) {
	c.scores++
	c.lastScore = score
	c.lastHigh = high
}

func (c *counter) OnGameOver(final, high float64) {
	c.gameOvers++
	c.lastFinal = final
	c.lastHigh = high
}

func (c *counter) OnGameStarted() {
	c.started++
}

// failingStore loads a fixed value and refuses every save.
type failingStore struct {
	load    float64
	loadErr error
	saves   int
}

func (f *failingStore) LoadHighScore() (float64, error) {
	return f.load, f.loadErr
}

func (f *failingStore) SaveHighScore(float64) (float64, error) {
	f.saves++
	return 0, errors.New("disk full")
}

var testField = core.Playfield{HalfWidth: 8, HalfHeight: 5}

func runParams() Params {
	return Params{BaseSpeed: 5, SpeedRampRate: 0.1, MaxStep: 0.1}
}

// quietBody has no gravity, so it stays where it spawns unless it jumps.
func quietBody() *physics.Body {
	return physics.NewBody(core.V(0, 0), core.V(0.5, 0.5), physics.Params{
		JumpImpulse:     2.5,
		MaxJumpVelocity: 5,
		MaxFallSpeed:    100,
	})
}

// emptyScheduler never spawns: it has no variants.
func emptyScheduler() *spawn.Scheduler {
	return spawn.NewScheduler(spawn.Params{SpawnInterval: 3, MinFormation: 1, MaxFormation: 1}, nil, 1, nil)
}

// rammingScheduler sends single obstacles straight at the origin.
func rammingScheduler() *spawn.Scheduler {
	return spawn.NewScheduler(spawn.Params{
		SpawnInterval: 0.1,
		MoveSpeed:     10,
		MinFormation:  1,
		MaxFormation:  1,
	}, []spawn.Variant{{Name: "block", Half: core.V(0.5, 0.5)}}, 1, nil)
}

func newSession(t *testing.T, p Params, body *physics.Body, sched *spawn.Scheduler, store HighScoreStore) (*Session, *counter) {
	t.Helper()
	obs := &counter{}
	s, err := New(p, testField, Deps{Body: body, Scheduler: sched, Observer: obs, Store: store})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s, obs
}

func mustStart(t *testing.T, s *Session) {
	t.Helper()
	if err := s.StartGame(); err != nil {
		t.Fatalf("StartGame() error: %v", err)
	}
}

// crash ticks until the player collides with an obstacle.
func crash(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 200 && s.State() == StatePlaying; i++ {
		s.Tick(0.05, false)
	}
	if s.State() != StateGameOver {
		t.Fatalf("State() = %v, expected GameOver", s.State())
	}
}

func TestNewRequiresScheduler(t *testing.T) {
	_, err := New(runParams(), testField, Deps{Body: quietBody()})
	if !errors.Is(err, ErrNoScheduler) {
		t.Errorf("New() error = %v, expected ErrNoScheduler", err)
	}
}

func TestInitialState(t *testing.T) {
	s, obs := newSession(t, runParams(), quietBody(), emptyScheduler(), nil)

	if s.State() != StateMenu {
		t.Errorf("State() = %v, expected Menu", s.State())
	}
	if s.Active() {
		t.Error("Active() = true before StartGame")
	}
	if obs.started != 0 || obs.scores != 0 {
		t.Errorf("observer called before StartGame: %+v", obs)
	}
}

func TestScoreAccumulatesSpeedTimesDelta(t *testing.T) {
	p := runParams()
	s, _ := newSession(t, p, quietBody(), emptyScheduler(), nil)
	mustStart(t, s)

	const dt = 0.016
	const n = 100

	expected := 0.0
	speed := p.BaseSpeed
	for i := 0; i < n; i++ {
		expected += speed * dt
		speed += p.SpeedRampRate * dt
		s.Tick(dt, false)
	}

	st := s.Stats()
	if !approx(st.Score, expected) {
		t.Errorf("Score = %f, expected %f", st.Score, expected)
	}
	if !approx(st.Speed, p.BaseSpeed+n*p.SpeedRampRate*dt) {
		t.Errorf("Speed = %f, expected %f", st.Speed, p.BaseSpeed+n*p.SpeedRampRate*dt)
	}
	if s.State() != StatePlaying {
		t.Errorf("State() = %v, expected Playing with no obstacles", s.State())
	}
	if !approx(s.Elapsed(), n*dt) {
		t.Errorf("Elapsed() = %f, expected %f", s.Elapsed(), n*dt)
	}
}

func TestScoreIsMonotonic(t *testing.T) {
	s, _ := newSession(t, runParams(), quietBody(), emptyScheduler(), nil)
	mustStart(t, s)

	prev := s.Stats().Score
	deltas := []float64{0.016, 0, 0.033, -1, math.NaN(), 0.5, 0.001}
	for _, dt := range deltas {
		s.Tick(dt, false)
		if got := s.Stats().Score; got < prev {
			t.Fatalf("Score decreased from %f to %f on dt=%v", prev, got, dt)
		}
		prev = s.Stats().Score
	}
}

func TestDeltaSanitizing(t *testing.T) {
	tests := []struct {
		name    string
		dt      float64
		elapsed float64
	}{
		{"negative", -0.5, 0},
		{"NaN", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 0},
		{"clamped to max step", 5, 0.1},
		{"within range", 0.05, 0.05},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newSession(t, runParams(), quietBody(), emptyScheduler(), nil)
			mustStart(t, s)

			s.Tick(tc.dt, false)

			if !approx(s.Elapsed(), tc.elapsed) {
				t.Errorf("Elapsed() = %f, expected %f", s.Elapsed(), tc.elapsed)
			}
			if !approx(s.Stats().Score, 5*tc.elapsed) {
				t.Errorf("Score = %f, expected %f", s.Stats().Score, 5*tc.elapsed)
			}
			if math.IsNaN(s.Stats().Score) {
				t.Error("Score became NaN")
			}
		})
	}
}

func TestTickIgnoredOutsidePlaying(t *testing.T) {
	body := quietBody()
	s, obs := newSession(t, runParams(), body, emptyScheduler(), nil)

	s.Tick(0.016, true)

	if s.Steps() != 0 {
		t.Errorf("Steps() = %d, expected 0 in Menu", s.Steps())
	}
	if body.Position != core.V(0, 0) {
		t.Errorf("body moved in Menu: %v", body.Position)
	}
	if obs.scores != 0 {
		t.Errorf("OnScoreChanged called %d times in Menu", obs.scores)
	}

	// A jump pressed in Menu must not leak into the first run step.
	mustStart(t, s)
	s.Tick(0.016, false)
	if body.Velocity.Y != 0 {
		t.Errorf("Velocity.Y = %f, expected 0 without a jump", body.Velocity.Y)
	}
}

func TestJumpReachesBody(t *testing.T) {
	body := quietBody()
	s, _ := newSession(t, runParams(), body, emptyScheduler(), nil)
	mustStart(t, s)

	s.Tick(0.016, true)

	if !approx(body.Velocity.Y, 2.5) {
		t.Errorf("Velocity.Y = %f, expected 2.5", body.Velocity.Y)
	}
}

func TestStartGameWithoutPlayer(t *testing.T) {
	s, obs := newSession(t, runParams(), nil, emptyScheduler(), nil)

	err := s.StartGame()
	if !errors.Is(err, ErrNoPlayer) {
		t.Fatalf("StartGame() error = %v, expected ErrNoPlayer", err)
	}
	if s.State() != StateMenu {
		t.Errorf("State() = %v, expected Menu", s.State())
	}
	if obs.started != 0 {
		t.Errorf("OnGameStarted called %d times", obs.started)
	}

	snap := s.Snapshot()
	if snap.HasPlayer {
		t.Error("Snapshot().HasPlayer = true without a body")
	}

	if err := s.RegisterPlayer(quietBody()); err != nil {
		t.Fatalf("RegisterPlayer() error: %v", err)
	}
	mustStart(t, s)
	if s.State() != StatePlaying {
		t.Errorf("State() = %v after registering a player", s.State())
	}
}

func TestRegisterPlayerGuards(t *testing.T) {
	s, _ := newSession(t, runParams(), quietBody(), emptyScheduler(), nil)

	if err := s.RegisterPlayer(nil); !errors.Is(err, ErrNoPlayer) {
		t.Errorf("RegisterPlayer(nil) error = %v, expected ErrNoPlayer", err)
	}

	mustStart(t, s)
	if err := s.RegisterPlayer(quietBody()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("RegisterPlayer() while playing error = %v, expected ErrInvalidState", err)
	}

	// The original body keeps flying
	s.Tick(0.05, false)
	if s.State() != StatePlaying {
		t.Errorf("State() = %v, expected Playing", s.State())
	}

	s.GameOver()
	if err := s.RegisterPlayer(quietBody()); err != nil {
		t.Errorf("RegisterPlayer() after the run error = %v", err)
	}
}

func TestStartGameWhilePlaying(t *testing.T) {
	s, obs := newSession(t, runParams(), quietBody(), emptyScheduler(), nil)
	mustStart(t, s)
	s.Tick(0.05, false)

	if err := s.StartGame(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("StartGame() error = %v, expected ErrInvalidState", err)
	}
	if obs.started != 1 {
		t.Errorf("OnGameStarted called %d times, expected 1", obs.started)
	}
	if s.Stats().Score == 0 {
		t.Error("refused StartGame reset the score")
	}
}

func TestCollisionEndsRun(t *testing.T) {
	store := NewMemoryStore(0)
	s, obs := newSession(t, runParams(), quietBody(), rammingScheduler(), store)
	mustStart(t, s)

	crash(t, s)

	final := s.Stats().Score
	if final <= 0 {
		t.Fatalf("final score = %f, expected > 0", final)
	}
	if obs.gameOvers != 1 {
		t.Errorf("OnGameOver called %d times, expected 1", obs.gameOvers)
	}
	if obs.lastFinal != final || obs.lastHigh != final {
		t.Errorf("OnGameOver(%f, %f), expected (%f, %f)", obs.lastFinal, obs.lastHigh, final, final)
	}
	if s.Stats().HighScore != final {
		t.Errorf("HighScore = %f, expected %f", s.Stats().HighScore, final)
	}
	if store.Saves() != 1 {
		t.Errorf("Saves() = %d, expected 1", store.Saves())
	}

	snap := s.Snapshot()
	if snap.PlayerAlive {
		t.Error("player still alive after game over")
	}

	// The world stops: further ticks change nothing.
	elapsed := s.Elapsed()
	s.Tick(0.05, true)
	if s.Elapsed() != elapsed || s.Stats().Score != final {
		t.Error("Tick advanced the simulation after game over")
	}
}

func TestGameOverIsIdempotent(t *testing.T) {
	store := NewMemoryStore(0)
	s, obs := newSession(t, runParams(), quietBody(), emptyScheduler(), store)

	s.GameOver()
	if s.State() != StateMenu || obs.gameOvers != 0 {
		t.Fatal("GameOver from Menu changed state")
	}

	mustStart(t, s)
	s.Tick(0.1, false)
	s.GameOver()
	s.GameOver()

	if obs.gameOvers != 1 {
		t.Errorf("OnGameOver called %d times, expected 1", obs.gameOvers)
	}
	if store.Saves() != 1 {
		t.Errorf("Saves() = %d, expected 1", store.Saves())
	}
}

func TestHighScoreOnlyImproves(t *testing.T) {
	store := NewMemoryStore(100)
	s, _ := newSession(t, runParams(), quietBody(), emptyScheduler(), store)

	if s.Stats().HighScore != 100 {
		t.Fatalf("HighScore = %f, expected 100 from store", s.Stats().HighScore)
	}

	mustStart(t, s)
	s.Tick(0.1, false)
	s.GameOver()

	if s.Stats().HighScore != 100 {
		t.Errorf("HighScore = %f, expected 100", s.Stats().HighScore)
	}
	if store.Saves() != 0 {
		t.Errorf("Saves() = %d, expected 0 for a lower score", store.Saves())
	}
}

func TestHighScoreSaveFailureIsTolerated(t *testing.T) {
	store := &failingStore{}
	s, obs := newSession(t, runParams(), quietBody(), rammingScheduler(), store)
	mustStart(t, s)

	crash(t, s)

	if store.saves != 1 {
		t.Errorf("SaveHighScore called %d times, expected 1", store.saves)
	}
	if s.Stats().HighScore != s.Stats().Score {
		t.Errorf("HighScore = %f, expected in-memory %f", s.Stats().HighScore, s.Stats().Score)
	}
	if obs.gameOvers != 1 {
		t.Errorf("OnGameOver called %d times, expected 1", obs.gameOvers)
	}
}

func TestHighScoreAdoptsSharedStore(t *testing.T) {
	store := NewMemoryStore(0)
	first, _ := newSession(t, runParams(), quietBody(), emptyScheduler(), store)
	second, obs := newSession(t, runParams(), quietBody(), emptyScheduler(), store)

	mustStart(t, first)
	for range 40 {
		first.Tick(0.1, false)
	}
	first.GameOver()

	mustStart(t, second)
	for range 10 {
		second.Tick(0.1, false)
	}
	second.GameOver()

	best := first.Stats().Score
	if high, _ := store.LoadHighScore(); !approx(high, best) {
		t.Errorf("stored high score = %f, expected %f", high, best)
	}
	if !approx(second.Stats().HighScore, best) {
		t.Errorf("HighScore = %f, expected stored %f", second.Stats().HighScore, best)
	}
	if !approx(obs.lastHigh, best) {
		t.Errorf("OnGameOver high = %f, expected %f", obs.lastHigh, best)
	}
}

func TestLoadedHighScoreSanitized(t *testing.T) {
	tests := []struct {
		name     string
		store    *failingStore
		expected float64
	}{
		{"valid", &failingStore{load: 42}, 42},
		{"negative", &failingStore{load: -5}, 0},
		{"NaN", &failingStore{load: math.NaN()}, 0},
		{"infinite", &failingStore{load: math.Inf(1)}, 0},
		{"load error", &failingStore{load: 99, loadErr: errors.New("corrupt")}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newSession(t, runParams(), quietBody(), emptyScheduler(), tc.store)
			if got := s.Stats().HighScore; got != tc.expected {
				t.Errorf("HighScore = %f, expected %f", got, tc.expected)
			}
		})
	}
}

func TestRestartResetsRun(t *testing.T) {
	body := quietBody()
	s, obs := newSession(t, runParams(), body, rammingScheduler(), nil)
	mustStart(t, s)
	crash(t, s)

	high := s.Stats().HighScore
	mustStart(t, s)

	st := s.Stats()
	if st.Score != 0 {
		t.Errorf("Score = %f, expected 0", st.Score)
	}
	if st.Speed != 5 {
		t.Errorf("Speed = %f, expected base speed 5", st.Speed)
	}
	if st.HighScore != high {
		t.Errorf("HighScore = %f, expected %f carried over", st.HighScore, high)
	}
	if s.Elapsed() != 0 {
		t.Errorf("Elapsed() = %f, expected 0", s.Elapsed())
	}
	if n := len(s.Snapshot().Obstacles); n != 0 {
		t.Errorf("%d obstacles survived the restart", n)
	}
	if !body.Alive() || !body.Simulated() {
		t.Error("body not revived by StartGame")
	}
	if body.Position != core.V(0, 0) {
		t.Errorf("Position = %v, expected spawn", body.Position)
	}
	if obs.started != 2 {
		t.Errorf("OnGameStarted called %d times, expected 2", obs.started)
	}
}

func TestObserverEvents(t *testing.T) {
	s, obs := newSession(t, runParams(), quietBody(), emptyScheduler(), nil)
	mustStart(t, s)

	if obs.started != 1 || obs.scores != 1 || obs.lastScore != 0 {
		t.Fatalf("after StartGame: %+v", obs)
	}

	for i := 0; i < 3; i++ {
		s.Tick(0.016, false)
	}
	if obs.scores != 4 {
		t.Errorf("OnScoreChanged called %d times, expected 4", obs.scores)
	}
	if obs.lastScore != s.Stats().Score {
		t.Errorf("last reported score %f, expected %f", obs.lastScore, s.Stats().Score)
	}
}

func TestObserverFuncs(t *testing.T) {
	var started, overs int
	obs := ObserverFuncs{
		GameStarted: func() { started++ },
		GameOver:    func(float64, float64) { overs++ },
	}
	s, err := New(runParams(), testField, Deps{Body: quietBody(), Scheduler: emptyScheduler(), Observer: obs})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	mustStart(t, s)
	s.Tick(0.016, false)
	s.GameOver()

	if started != 1 || overs != 1 {
		t.Errorf("started=%d overs=%d, expected 1 and 1", started, overs)
	}
}

func TestFixedStepAccumulates(t *testing.T) {
	p := runParams()
	p.FixedStep = 0.01
	s, _ := newSession(t, p, quietBody(), emptyScheduler(), nil)
	mustStart(t, s)

	s.Tick(0.025, false)
	if s.Steps() != 2 {
		t.Errorf("Steps() = %d, expected 2", s.Steps())
	}
	if !approx(s.Elapsed(), 0.02) {
		t.Errorf("Elapsed() = %f, expected 0.02", s.Elapsed())
	}

	s.Tick(0.005, false)
	if s.Steps() != 3 {
		t.Errorf("Steps() = %d, expected 3 once the remainder fills a step", s.Steps())
	}
}

func TestFixedStepCarriesJump(t *testing.T) {
	p := runParams()
	p.FixedStep = 0.01
	body := quietBody()
	s, _ := newSession(t, p, body, emptyScheduler(), nil)
	mustStart(t, s)

	s.Tick(0.004, true)
	if s.Steps() != 0 || body.Velocity.Y != 0 {
		t.Fatalf("short tick simulated: steps=%d vy=%f", s.Steps(), body.Velocity.Y)
	}

	s.Tick(0.006, false)
	if s.Steps() != 1 {
		t.Fatalf("Steps() = %d, expected 1", s.Steps())
	}
	if !approx(body.Velocity.Y, 2.5) {
		t.Errorf("Velocity.Y = %f, expected carried jump 2.5", body.Velocity.Y)
	}
}

func TestFixedStepJumpsOnce(t *testing.T) {
	p := runParams()
	p.FixedStep = 0.01
	body := physics.NewBody(core.V(0, 0), core.V(0.5, 0.5), physics.Params{
		BaseGravity:     10,
		FallMultiplier:  1,
		JumpImpulse:     2.5,
		MaxJumpVelocity: 5,
		MaxFallSpeed:    100,
	})
	s, _ := newSession(t, p, body, emptyScheduler(), nil)
	mustStart(t, s)

	s.Tick(0.03, true)

	if s.Steps() != 3 {
		t.Fatalf("Steps() = %d, expected 3", s.Steps())
	}
	// Jump on the first step, gravity alone afterwards.
	if !approx(body.Velocity.Y, 2.5-2*10*0.01) {
		t.Errorf("Velocity.Y = %f, expected %f", body.Velocity.Y, 2.5-2*10*0.01)
	}
}

func TestKeepInBounds(t *testing.T) {
	p := runParams()
	p.KeepInBounds = true
	body := physics.NewBody(core.V(0, 0), core.V(0.5, 0.5), physics.Params{
		BaseGravity:     50,
		FallMultiplier:  1,
		MaxJumpVelocity: 5,
		MaxFallSpeed:    100,
	})
	s, _ := newSession(t, p, body, emptyScheduler(), nil)
	mustStart(t, s)

	for i := 0; i < 100; i++ {
		s.Tick(0.05, false)
	}

	if s.State() != StatePlaying {
		t.Errorf("State() = %v, leaving the field must not end the run", s.State())
	}
	floor := -testField.HalfHeight + body.Half.Y
	if body.Position.Y < floor-eps {
		t.Errorf("Position.Y = %f, expected >= %f", body.Position.Y, floor)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newSession(t, runParams(), quietBody(), rammingScheduler(), nil)
	mustStart(t, s)
	for i := 0; i < 3; i++ {
		s.Tick(0.05, false)
	}

	snap := s.Snapshot()
	if len(snap.Obstacles) == 0 {
		t.Fatal("expected a live obstacle")
	}
	if snap.State != StatePlaying || !snap.HasPlayer || !snap.PlayerAlive {
		t.Errorf("unexpected snapshot header: %+v", snap)
	}
	if snap.Playfield != testField {
		t.Errorf("Playfield = %+v, expected %+v", snap.Playfield, testField)
	}

	x := snap.Obstacles[0].Position.X
	snap.Obstacles[0].Position.X = 1000
	if s.Snapshot().Obstacles[0].Position.X != x {
		t.Error("mutating a snapshot changed the session")
	}

	if len(snap.Variants) == 0 {
		t.Fatal("expected the variant catalog")
	}
	snap.Variants[0].Name = "changed"
	if got := s.Snapshot().Variants[0].Name; got != "block" {
		t.Errorf("mutating snapshot variants changed the catalog: %q", got)
	}
}

func TestSetPlayfield(t *testing.T) {
	s, _ := newSession(t, runParams(), quietBody(), emptyScheduler(), nil)
	pf := core.Playfield{HalfWidth: 12, HalfHeight: 5}
	s.SetPlayfield(pf)

	if s.Playfield() != pf {
		t.Errorf("Playfield() = %+v, expected %+v", s.Playfield(), pf)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	s, err := FromConfig(cfg, testField, 7, nil, nil, nil)
	if err != nil {
		t.Fatalf("FromConfig() error: %v", err)
	}
	mustStart(t, s)

	for i := 0; i < 10; i++ {
		s.Tick(0.016, false)
	}
	if s.State() != StatePlaying {
		t.Errorf("State() = %v, expected Playing", s.State())
	}

	cfg.Spawner.SpawnInterval = 0
	if _, err := FromConfig(cfg, testField, 7, nil, nil, nil); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("FromConfig() error = %v, expected ErrInvalidConfig", err)
	}
}
