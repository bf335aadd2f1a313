package storage

import "github.com/vovakirdan/space-voyager/internal/session"

// HighScoreTable is the high-score row of one game, usable as a
// session.HighScoreStore.
type HighScoreTable struct {
	store  *Store
	gameID string
}

// HighScores returns the high-score accessor for gameID.
func (s *Store) HighScores(gameID string) *HighScoreTable {
	return &HighScoreTable{store: s, gameID: gameID}
}

// LoadHighScore implements session.HighScoreStore.
func (t *HighScoreTable) LoadHighScore() (float64, error) {
	return t.store.HighScore(t.gameID)
}

// SaveHighScore implements session.HighScoreStore. The returned value is
// the stored best after the write, which another session may have raised.
func (t *HighScoreTable) SaveHighScore(score float64) (float64, error) {
	if err := t.store.SetHighScore(t.gameID, score); err != nil {
		return 0, err
	}
	return t.store.HighScore(t.gameID)
}

var _ session.HighScoreStore = (*HighScoreTable)(nil)
