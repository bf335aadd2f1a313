package session

// Observer receives the session's presentation events. Calls are made
// synchronously from StartGame, Tick and GameOver.
type Observer interface {
	OnScoreChanged(score, highScore float64)
	OnGameOver(finalScore, highScore float64)
	OnGameStarted()
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnScoreChanged(float64, float64) {}
func (NopObserver) OnGameOver(float64, float64)     {}
func (NopObserver) OnGameStarted()                  {}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	ScoreChanged func(score, highScore float64)
	GameOver     func(finalScore, highScore float64)
	GameStarted  func()
}

func (o ObserverFuncs) OnScoreChanged(score, highScore float64) {
	if o.ScoreChanged != nil {
		o.ScoreChanged(score, highScore)
	}
}

func (o ObserverFuncs) OnGameOver(finalScore, highScore float64) {
	if o.GameOver != nil {
		o.GameOver(finalScore, highScore)
	}
}

func (o ObserverFuncs) OnGameStarted() {
	if o.GameStarted != nil {
		o.GameStarted()
	}
}
