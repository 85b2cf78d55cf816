package game

import (
	"sync"

	"euchre-game/internal/database"
)

// MemoryRecorder keeps scored hands in memory.
type MemoryRecorder struct {
	mu      sync.Mutex
	results []database.HandResult
}

func (m *MemoryRecorder) Insert(result database.HandResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
	return nil
}

// Results returns the recorded hands in the order they were scored.
func (m *MemoryRecorder) Results() []database.HandResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]database.HandResult(nil), m.results...)
}
