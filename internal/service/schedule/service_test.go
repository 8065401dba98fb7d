package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MST-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/MST-BookingService/internal/service/schedule/models"
)

const masterID = int64(7)

type stubRepo struct {
	schedule  *domain.DaySchedule
	schedules []*domain.DaySchedule
	upserted  *domain.DaySchedule
	deleted   bool

	rangeFrom time.Time
	rangeTo   time.Time
}

func (s *stubRepo) GetByMasterAndDate(_ context.Context, _ int64, _ time.Time) (*domain.DaySchedule, error) {
	if s.schedule == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return s.schedule, nil
}

func (s *stubRepo) GetByMasterAndRange(_ context.Context, _ int64, from, to time.Time) ([]*domain.DaySchedule, error) {
	s.rangeFrom, s.rangeTo = from, to
	return s.schedules, nil
}

func (s *stubRepo) Upsert(_ context.Context, schedule *domain.DaySchedule) (*domain.DaySchedule, error) {
	s.upserted = schedule
	schedule.ID = 1
	return schedule, nil
}

func (s *stubRepo) Delete(_ context.Context, _ int64, _ time.Time) error {
	if s.schedule == nil {
		return scheduleRepo.ErrScheduleNotFound
	}
	s.deleted = true
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func upsertRequest(start, end string, breaks ...models.TimeWindow) *models.UpsertDayScheduleRequest {
	return &models.UpsertDayScheduleRequest{
		RequesterID: masterID,
		MasterID:    masterID,
		Date:        testDate,
		WorkHours:   models.TimeWindow{Start: start, End: end},
		Breaks:      breaks,
	}
}

func TestUpsertDay_Success(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.UpsertDay(context.Background(),
		upsertRequest("09:00", "18:00", models.TimeWindow{Start: "13:00", End: "14:00"}))

	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", resp.Date)
	assert.Equal(t, "09:00", resp.WorkHours.Start)
	require.Len(t, resp.Breaks, 1)
	assert.Equal(t, "13:00", resp.Breaks[0].Start)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, masterID, repo.upserted.MasterID)
}

func TestUpsertDay_InvalidWindows(t *testing.T) {
	svc := NewService(&stubRepo{}, nopLogger{})

	_, err := svc.UpsertDay(context.Background(), upsertRequest("18:00", "09:00"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpsertDay(context.Background(), upsertRequest("9am", "18:00"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpsertDay(context.Background(),
		upsertRequest("09:00", "18:00", models.TimeWindow{Start: "14:00", End: "13:00"}))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertDay_AccessDenied(t *testing.T) {
	svc := NewService(&stubRepo{}, nopLogger{})

	req := upsertRequest("09:00", "18:00")
	req.RequesterID = 99

	_, err := svc.UpsertDay(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetMonth_RangeCoversWholeMonth(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nopLogger{})

	month := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	resp, err := svc.GetMonth(context.Background(), masterID, masterID, month)

	require.NoError(t, err)
	assert.Equal(t, "2026-02", resp.Month)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), repo.rangeFrom)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), repo.rangeTo)
	assert.Empty(t, resp.Days)
}

func TestGetDay_NotFound(t *testing.T) {
	svc := NewService(&stubRepo{}, nopLogger{})

	_, err := svc.GetDay(context.Background(), masterID, masterID, testDate)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestDeleteDay(t *testing.T) {
	workHours, err := domain.NewWorkHours("09:00", "18:00")
	require.NoError(t, err)
	repo := &stubRepo{schedule: &domain.DaySchedule{MasterID: masterID, Date: testDate, WorkHours: workHours}}
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.DeleteDay(context.Background(), masterID, masterID, testDate))
	assert.True(t, repo.deleted)

	svc = NewService(&stubRepo{}, nopLogger{})
	err = svc.DeleteDay(context.Background(), masterID, masterID, testDate)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
