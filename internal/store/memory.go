package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/sunset-scout/internal/scout"
)

var (
	// ErrNotFound is returned when no report has been produced yet.
	ErrNotFound = errors.New("no sunset report available")
)

// MemoryStore is a concurrency-safe, bounded in-memory window of recent reports.
// Nothing is written to disk.
type MemoryStore struct {
	mu      sync.RWMutex
	reports []scout.Report // ordered by GeneratedAt ascending

	// retention configuration
	maxHistory int           // max number of reports kept
	maxAge     time.Duration // optional max age for reports
	now        func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save appends a report and enforces retention.
func (s *MemoryStore) Save(r scout.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = append(s.reports, r)

	if s.maxHistory > 0 && len(s.reports) > s.maxHistory {
		over := len(s.reports) - s.maxHistory
		s.reports = append([]scout.Report(nil), s.reports[over:]...)
	}

	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.reports); i++ {
			if !s.reports[i].GeneratedAt.Before(cutoff) {
				break
			}
		}
		// The newest report is always kept.
		if i >= len(s.reports) {
			i = len(s.reports) - 1
		}
		if i > 0 {
			s.reports = append([]scout.Report(nil), s.reports[i:]...)
		}
	}
}

// Latest returns the most recent report.
func (s *MemoryStore) Latest() (scout.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.reports) == 0 {
		return scout.Report{}, ErrNotFound
	}
	return s.reports[len(s.reports)-1], nil
}

// List returns every retained report, newest first.
func (s *MemoryStore) List() []scout.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]scout.Report, 0, len(s.reports))
	for i := len(s.reports) - 1; i >= 0; i-- {
		out = append(out, s.reports[i])
	}
	return out
}
