package state

import (
	"sort"
	"sync"
	"time"

	"github.com/rbas/fluxa/internal/domain"
)

// ServiceStats is the last observed snapshot of one monitored service,
// published by its monitor after every probe and read by the HTTP API.
type ServiceStats struct {
	URL                 string              `json:"url"`
	Status              domain.HealthStatus `json:"status"`
	LatencyMS           *float64            `json:"latency_ms"`
	LastError           string              `json:"last_error,omitempty"`
	ConsecutiveFailures int                 `json:"consecutive_failures"`
	CheckedAt           time.Time           `json:"checked_at"`
	NextCheckAt         time.Time           `json:"next_check_at"`
}

// Store holds the latest snapshot per service. Each monitor writes only
// its own key; the API reads any of them.
type Store struct {
	mu       sync.RWMutex
	services map[string]ServiceStats
}

func New() *Store {
	return &Store{services: make(map[string]ServiceStats)}
}

func (s *Store) Update(stats ServiceStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[stats.URL] = stats
}

func (s *Store) Get(url string) (ServiceStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.services[url]
	return st, ok
}

// All returns the snapshots ordered by URL for stable API output.
func (s *Store) All() []ServiceStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ServiceStats, 0, len(s.services))
	for _, st := range s.services {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out
}
