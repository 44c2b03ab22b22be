package schedule_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagepulse/internal/logger"
	"github.com/jonesrussell/pagepulse/internal/schedule"
)

var errStoreFull = errors.New("store full")

// failingStore rejects every Add.
type failingStore struct {
	schedule.Store
}

func (f *failingStore) Add(schedule.Check) error {
	return errStoreFull
}

func noopRun(context.Context, schedule.Check) {}

func newManager(t *testing.T) *schedule.Manager {
	t.Helper()

	m := schedule.NewManager(schedule.NewMemoryStore(), noopRun, logger.NewNoOp())
	t.Cleanup(func() {
		m.Stop(context.Background())
	})
	return m
}

func TestManager_Schedule(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	check, err := m.Schedule(1, "https://example.com", "@daily")
	require.NoError(t, err)
	require.NotEmpty(t, check.ID)
	require.Equal(t, int64(1), check.Owner)
	require.Equal(t, "https://example.com", check.URL)
	require.Equal(t, "@daily", check.Spec)
	require.False(t, check.CreatedAt.IsZero())

	checks := m.List(1)
	require.Len(t, checks, 1)
	require.Equal(t, check.ID, checks[0].ID)
}

func TestManager_ScheduleInvalidSpec(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	_, err := m.Schedule(1, "https://example.com", "not a cron spec")
	require.Error(t, err)
	require.Empty(t, m.List(1))
}

func TestManager_ScheduleStandardSpecs(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	specs := []string{"0 9 * * *", "*/30 * * * *", "@hourly", "@weekly"}
	for _, spec := range specs {
		_, err := m.Schedule(1, "https://example.com", spec)
		require.NoError(t, err, "spec %q", spec)
	}

	require.Len(t, m.List(1), len(specs))
}

func TestManager_ScheduleStoreFailure(t *testing.T) {
	t.Parallel()

	m := schedule.NewManager(&failingStore{}, noopRun, logger.NewNoOp())
	t.Cleanup(func() {
		m.Stop(context.Background())
	})

	_, err := m.Schedule(1, "https://example.com", "@daily")
	require.ErrorIs(t, err, errStoreFull)
}

func TestManager_Cancel(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	check, err := m.Schedule(1, "https://example.com", "@daily")
	require.NoError(t, err)

	require.NoError(t, m.Cancel(1, check.ID))
	require.Empty(t, m.List(1))

	require.ErrorIs(t, m.Cancel(1, check.ID), schedule.ErrCheckNotFound)
}

func TestManager_CancelWrongOwner(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	check, err := m.Schedule(1, "https://example.com", "@daily")
	require.NoError(t, err)

	require.ErrorIs(t, m.Cancel(2, check.ID), schedule.ErrCheckNotFound)
	require.Len(t, m.List(1), 1)
}
