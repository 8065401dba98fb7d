package get_time_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MST-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/settings"
)

type stubBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (s *stubBookingRepo) GetByMasterWithFilter(_ context.Context, _ domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	return s.bookings, s.err
}

type stubScheduleRepo struct {
	schedule *domain.DaySchedule
	err      error
}

func (s *stubScheduleRepo) GetByMasterAndDate(_ context.Context, _ int64, _ time.Time) (*domain.DaySchedule, error) {
	return s.schedule, s.err
}

type stubSettingsRepo struct {
	settings *domain.MasterSettings
	err      error
}

func (s *stubSettingsRepo) GetByMasterID(_ context.Context, masterID int64) (*domain.MasterSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return s.settings, nil
}

type stubServiceRepo struct {
	service *domain.Service
	err     error
}

func (s *stubServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return s.service, s.err
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newSlotsUseCase(
	bookings *stubBookingRepo,
	schedules *stubScheduleRepo,
	settings *stubSettingsRepo,
	services *stubServiceRepo,
	now time.Time,
) *UseCase {
	uc := NewUseCase(bookings, schedules, settings, services, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestUseCase_Execute_ServiceNotFound(t *testing.T) {
	uc := newSlotsUseCase(
		&stubBookingRepo{},
		&stubScheduleRepo{},
		&stubSettingsRepo{},
		&stubServiceRepo{err: serviceRepo.ErrServiceNotFound},
		time.Now(),
	)

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: 99,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUseCase_Execute_InvalidRequest(t *testing.T) {
	uc := newSlotsUseCase(
		&stubBookingRepo{},
		&stubScheduleRepo{},
		&stubSettingsRepo{},
		&stubServiceRepo{},
		time.Now(),
	)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_NonWorkingDay(t *testing.T) {
	service := &domain.Service{ID: 1, MasterID: 7, Name: "Haircut", DurationMinutes: 60}

	uc := newSlotsUseCase(
		&stubBookingRepo{},
		&stubScheduleRepo{err: scheduleRepo.ErrScheduleNotFound},
		&stubSettingsRepo{},
		&stubServiceRepo{service: service},
		time.Now(),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.False(t, resp.IsWorkingDay)
	assert.Empty(t, resp.Slots)
	assert.True(t, resp.IsFullyBooked)
	assert.Equal(t, int64(7), resp.MasterID)
}

func TestUseCase_Execute_UsesDefaultSettingsWhenAbsent(t *testing.T) {
	service := &domain.Service{ID: 1, MasterID: 7, Name: "Haircut", DurationMinutes: 60}
	workHours, err := domain.NewWorkHours("09:00", "12:00")
	require.NoError(t, err)
	schedule := &domain.DaySchedule{MasterID: 7, WorkHours: workHours}

	uc := newSlotsUseCase(
		&stubBookingRepo{},
		&stubScheduleRepo{schedule: schedule},
		&stubSettingsRepo{}, // настроек нет, репозиторий вернет not found
		&stubServiceRepo{service: service},
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, resp.IsWorkingDay)
	// Дефолтный буфер 15 минут дает шаг 75: 09:00, 10:15
	assert.Equal(t, []string{"09:00", "10:15"}, slotTimes(resp.Slots))
	assert.Equal(t, 2, resp.TotalSlots)
	assert.Equal(t, 2, resp.AvailableSlots)
	require.NotNil(t, resp.NextAvailableSlot)
	assert.Equal(t, "09:00", resp.NextAvailableSlot.String())
}

func TestUseCase_Execute_BookingsReduceAvailability(t *testing.T) {
	service := &domain.Service{ID: 1, MasterID: 7, Name: "Haircut", DurationMinutes: 60}
	workHours, err := domain.NewWorkHours("09:00", "11:00")
	require.NoError(t, err)
	schedule := &domain.DaySchedule{MasterID: 7, WorkHours: workHours}
	settings := &domain.MasterSettings{MasterID: 7, BufferMinutes: 0, CancelDeadlineHours: 24}

	uc := newSlotsUseCase(
		&stubBookingRepo{bookings: []*domain.Booking{activeBooking("09:00", 60)}},
		&stubScheduleRepo{schedule: schedule},
		&stubSettingsRepo{settings: settings},
		&stubServiceRepo{service: service},
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalSlots)
	assert.Equal(t, 1, resp.AvailableSlots)
	assert.False(t, findSlot(t, resp.Slots, "09:00").IsAvailable)
	assert.True(t, findSlot(t, resp.Slots, "10:00").IsAvailable)
}
