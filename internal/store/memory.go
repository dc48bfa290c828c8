package store

import (
	"errors"
	"sync"
	"time"

	"github.com/meteosandra/market-weather/internal/meteo"
)

var (
	// ErrNotFound is returned when no fresh analysis is available for a key.
	ErrNotFound = errors.New("no analysis for key")
)

type entry struct {
	analysis meteo.Analysis
	storedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory cache of analyses keyed by city and date.
type MemoryStore struct {
	mu sync.RWMutex

	// key: city|date, value: oldest first
	data map[string][]entry

	// retention configuration
	maxHistory int           // max number of analyses per key
	maxAge     time.Duration // analyses older than this are stale

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited; maxAge <= 0 never expires.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string][]entry),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveAnalysis appends an analysis for key and enforces retention.
func (s *MemoryStore) SaveAnalysis(key string, a meteo.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	history := append(s.data[key], entry{analysis: a, storedAt: now})

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}

	// Enforce retention by age; the newest entry is always kept.
	if s.maxAge > 0 {
		cutoff := now.Add(-s.maxAge)
		i := 0
		for ; i < len(history)-1; i++ {
			if !history[i].storedAt.Before(cutoff) {
				break
			}
		}
		history = history[i:]
	}

	s.data[key] = history
}

// Latest returns the newest analysis for key if it is still fresh.
func (s *MemoryStore) Latest(key string) (meteo.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[key]
	if len(history) == 0 {
		return meteo.Analysis{}, ErrNotFound
	}
	last := history[len(history)-1]
	if s.maxAge > 0 && s.now().Sub(last.storedAt) > s.maxAge {
		return meteo.Analysis{}, ErrNotFound
	}
	return last.analysis, nil
}

// Len returns the number of retained analyses for key.
func (s *MemoryStore) Len(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[key])
}

var _ meteo.Cache = (*MemoryStore)(nil)
