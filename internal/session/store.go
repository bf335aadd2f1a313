package session

// HighScoreStore persists the single high-score value.
// LoadHighScore returns 0 and a nil error when nothing is stored yet.
// SaveHighScore never lowers the stored value and returns it after the
// write; stores shared by several sessions may return more than score.
type HighScoreStore interface {
	LoadHighScore() (float64, error)
	SaveHighScore(score float64) (float64, error)
}

// MemoryStore keeps the high score in process memory. It is the fallback
// when no database is available.
type MemoryStore struct {
	value float64
	saves int
}

// NewMemoryStore creates a store holding initial.
func NewMemoryStore(initial float64) *MemoryStore {
	return &MemoryStore{value: initial}
}

// LoadHighScore returns the stored value.
func (m *MemoryStore) LoadHighScore() (float64, error) {
	return m.value, nil
}

// SaveHighScore raises the stored value to score.
func (m *MemoryStore) SaveHighScore(score float64) (float64, error) {
	m.value = max(m.value, score)
	m.saves++
	return m.value, nil
}

// Saves returns how many times SaveHighScore was called.
func (m *MemoryStore) Saves() int {
	return m.saves
}
