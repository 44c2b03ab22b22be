package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// RunFunc executes one scheduled check when its cron entry fires.
type RunFunc func(ctx context.Context, check Check)

// Logger provides structured logging for the manager.
type Logger interface {
	Info(msg string, fields ...any)
	Error(msg string, fields ...any)
}

// Manager wires scheduled checks into a cron runner. The store is
// injected so callers control its lifetime and tests can substitute it.
type Manager struct {
	cron    *cron.Cron
	store   Store
	run     RunFunc
	log     Logger
	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// NewManager creates a Manager over the given store and run callback.
func NewManager(store Store, run RunFunc, log Logger) *Manager {
	return &Manager{
		cron:    cron.New(),
		store:   store,
		run:     run,
		log:     log,
		entries: make(map[string]cron.EntryID),
	}
}

// Start begins firing cron entries.
func (m *Manager) Start() {
	m.cron.Start()
	m.log.Info("Schedule manager started")
}

// Stop stops the cron runner and waits for in-flight runs to finish or
// the context to expire.
func (m *Manager) Stop(ctx context.Context) {
	done := m.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	m.log.Info("Schedule manager stopped")
}

// Schedule validates the cron spec, registers a new check, and adds it
// to the runner.
func (m *Manager) Schedule(owner int64, url, spec string) (Check, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return Check{}, fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	check := Check{
		ID:        uuid.NewString(),
		Owner:     owner,
		URL:       url,
		Spec:      spec,
		CreatedAt: time.Now(),
	}

	if err := m.store.Add(check); err != nil {
		return Check{}, fmt.Errorf("store scheduled check: %w", err)
	}

	entryID, err := m.cron.AddFunc(spec, func() {
		m.log.Info("Running scheduled check", "check_id", check.ID, "url", check.URL)
		m.run(context.Background(), check)
	})
	if err != nil {
		// Roll the store back so a check never exists without a cron entry.
		_ = m.store.Remove(owner, check.ID)
		return Check{}, fmt.Errorf("add cron entry: %w", err)
	}

	m.mu.Lock()
	m.entries[check.ID] = entryID
	m.mu.Unlock()

	m.log.Info("Scheduled check added",
		"check_id", check.ID,
		"owner", owner,
		"url", url,
		"spec", spec)

	return check, nil
}

// Cancel removes a check from the store and the runner.
func (m *Manager) Cancel(owner int64, id string) error {
	if err := m.store.Remove(owner, id); err != nil {
		return err
	}

	m.mu.Lock()
	if entryID, ok := m.entries[id]; ok {
		m.cron.Remove(entryID)
		delete(m.entries, id)
	}
	m.mu.Unlock()

	m.log.Info("Scheduled check canceled", "check_id", id, "owner", owner)
	return nil
}

// List returns the owner's checks.
func (m *Manager) List(owner int64) []Check {
	return m.store.ListByOwner(owner)
}
