package completion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	completed int64
	err       error

	calls   int
	lastNow time.Time
}

func (r *stubRepo) CompletePast(_ context.Context, now time.Time) (int64, error) {
	r.calls++
	r.lastNow = now
	return r.completed, r.err
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestRun_PassesCurrentTimeToRepository(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	repo := &stubRepo{completed: 3}

	w := New(repo, nopLogger{}, "")
	w.timeProvider = fixedTime{now: now}

	w.Run(context.Background())

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, now, repo.lastNow)
}

func TestRun_RepositoryErrorDoesNotPanic(t *testing.T) {
	repo := &stubRepo{err: errors.New("db down")}

	w := New(repo, nopLogger{}, "")
	w.timeProvider = fixedTime{now: time.Now()}

	assert.NotPanics(t, func() {
		w.Run(context.Background())
	})
	assert.Equal(t, 1, repo.calls)
}

func TestNew_EmptyScheduleUsesDefault(t *testing.T) {
	w := New(&stubRepo{}, nopLogger{}, "")
	assert.Equal(t, DefaultSchedule, w.schedule)
}

func TestStart_InvalidScheduleFails(t *testing.T) {
	w := New(&stubRepo{}, nopLogger{}, "not a schedule")

	err := w.Start(context.Background())
	require.Error(t, err)
}
