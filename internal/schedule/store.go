// Package schedule manages recurring URL checks: an injected store of
// scheduled checks plus a cron-backed runner.
package schedule

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrCheckNotFound is returned when a check id does not exist for the
// given owner.
var ErrCheckNotFound = errors.New("scheduled check not found")

// Check is one recurring URL check owned by a chat.
type Check struct {
	// ID uniquely identifies the check.
	ID string
	// Owner is the chat that created the check.
	Owner int64
	// URL is the page to re-analyze.
	URL string
	// Spec is the cron recurrence rule.
	Spec string
	// CreatedAt records when the check was registered.
	CreatedAt time.Time
}

// Store tracks scheduled checks by owner.
type Store interface {
	Add(check Check) error
	Remove(owner int64, id string) error
	ListByOwner(owner int64) []Check
}

// MemoryStore is an in-memory Store. Checks are lost on process
// restart; there is no persistence layer behind it.
type MemoryStore struct {
	mu     sync.RWMutex
	checks map[string]Check
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		checks: make(map[string]Check),
	}
}

// Add registers a check.
func (s *MemoryStore) Add(check Check) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checks[check.ID] = check
	return nil
}

// Remove deletes a check by id, scoped to its owner.
func (s *MemoryStore) Remove(owner int64, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	check, ok := s.checks[id]
	if !ok || check.Owner != owner {
		return ErrCheckNotFound
	}

	delete(s.checks, id)
	return nil
}

// ListByOwner returns the owner's checks ordered by creation time.
func (s *MemoryStore) ListByOwner(owner int64) []Check {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var checks []Check
	for _, check := range s.checks {
		if check.Owner == owner {
			checks = append(checks, check)
		}
	}

	sort.Slice(checks, func(i, j int) bool {
		return checks[i].CreatedAt.Before(checks[j].CreatedAt)
	})

	return checks
}
