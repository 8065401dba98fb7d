package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MST-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/MST-BookingService/internal/service/bookings/models"
	"github.com/m04kA/MST-BookingService/pkg/ptr"
)

const (
	clientID = int64(42)
	masterID = int64(7)
	otherID  = int64(99)
)

type stubRepo struct {
	booking *domain.Booking

	cancelled   bool
	cancelledBy domain.CancelledBy
	updated     *domain.BookingStatus
}

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if s.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return s.booking, nil
}

func (s *stubRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	if s.booking == nil {
		return []*domain.Booking{}, nil
	}
	return []*domain.Booking{s.booking}, nil
}

func (s *stubRepo) GetByMasterWithFilter(_ context.Context, _ domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	if s.booking == nil {
		return []*domain.Booking{}, nil
	}
	return []*domain.Booking{s.booking}, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	s.updated = &status
	return nil
}

func (s *stubRepo) Cancel(_ context.Context, _ int64, cancelledBy domain.CancelledBy) error {
	s.cancelled = true
	s.cancelledBy = cancelledBy
	return nil
}

type stubNotifier struct {
	statusChanged int
	cancelled     int
}

func (n *stubNotifier) BookingStatusChanged(*domain.Booking, domain.BookingStatus) { n.statusChanged++ }
func (n *stubNotifier) BookingCancelled(*domain.Booking, domain.CancelledBy)       { n.cancelled++ }

type stubMetrics struct {
	cancelledBy []string
}

func (m *stubMetrics) IncBookingCancelled(by string) {
	m.cancelledBy = append(m.cancelledBy, by)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

var baseNow = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

// bookingWithStart создает запись, начинающуюся через startIn от baseNow,
// с дедлайном отмены за 24 часа до начала
func bookingWithStart(status domain.BookingStatus, startIn time.Duration) *domain.Booking {
	start := baseNow.Add(startIn)
	return &domain.Booking{
		ID:              1,
		UserID:          clientID,
		MasterID:        masterID,
		ServiceID:       3,
		BookingDate:     time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:       "12:00",
		DurationMinutes: 60,
		Status:          status,
		CancelDeadline:  start.Add(-24 * time.Hour),
	}
}

type fixture struct {
	svc      *Service
	repo     *stubRepo
	notifier *stubNotifier
	metrics  *stubMetrics
}

func newFixture(booking *domain.Booking) *fixture {
	repo := &stubRepo{booking: booking}
	notifier := &stubNotifier{}
	metrics := &stubMetrics{}

	svc := NewService(repo, notifier, metrics, nopLogger{})
	svc.timeProvider = &fixedTime{now: baseNow}

	return &fixture{svc: svc, repo: repo, notifier: notifier, metrics: metrics}
}

func TestGetByID_AccessControl(t *testing.T) {
	f := newFixture(bookingWithStart(domain.StatusPending, 48*time.Hour))

	_, err := f.svc.GetByID(context.Background(), 1, clientID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), 1, masterID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), 1, otherID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(nil)

	_, err := f.svc.GetByID(context.Background(), 1, clientID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ClientBeforeDeadline(t *testing.T) {
	// Начало через 25 часов: до дедлайна еще час
	f := newFixture(bookingWithStart(domain.StatusConfirmed, 25*time.Hour))

	err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: clientID})

	require.NoError(t, err)
	assert.True(t, f.repo.cancelled)
	assert.Equal(t, domain.CancelledByClient, f.repo.cancelledBy)
	assert.Equal(t, []string{"client"}, f.metrics.cancelledBy)
	assert.Equal(t, 1, f.notifier.cancelled)
}

func TestCancel_ClientAfterDeadline(t *testing.T) {
	// Начало через 23 часа: дедлайн прошел час назад
	f := newFixture(bookingWithStart(domain.StatusConfirmed, 23*time.Hour))

	err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: clientID})

	assert.ErrorIs(t, err, ErrDeadlinePassed)
	assert.False(t, f.repo.cancelled)
}

func TestCancel_MasterIgnoresDeadline(t *testing.T) {
	// Дедлайн для клиента прошел, но мастер отменяет без ограничений
	f := newFixture(bookingWithStart(domain.StatusConfirmed, 23*time.Hour))

	err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: masterID})

	require.NoError(t, err)
	assert.Equal(t, domain.CancelledByMaster, f.repo.cancelledBy)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	f := newFixture(bookingWithStart(domain.StatusCanceled, 48*time.Hour))

	err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: clientID})

	assert.ErrorIs(t, err, ErrInvalidState)
	assert.False(t, f.repo.cancelled)
}

func TestCancel_Completed(t *testing.T) {
	f := newFixture(bookingWithStart(domain.StatusCompleted, -48*time.Hour))

	err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: masterID})

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCancel_Forbidden(t *testing.T) {
	f := newFixture(bookingWithStart(domain.StatusPending, 48*time.Hour))

	err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: otherID})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_Confirm(t *testing.T) {
	f := newFixture(bookingWithStart(domain.StatusPending, 48*time.Hour))

	err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		RequesterID: masterID,
		Status:      "confirmed",
	})

	require.NoError(t, err)
	require.NotNil(t, f.repo.updated)
	assert.Equal(t, domain.StatusConfirmed, *f.repo.updated)
	assert.Equal(t, 1, f.notifier.statusChanged)
}

func TestUpdateStatus_CancelRecordsMaster(t *testing.T) {
	f := newFixture(bookingWithStart(domain.StatusPending, 48*time.Hour))

	err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		RequesterID: masterID,
		Status:      "canceled",
	})

	require.NoError(t, err)
	assert.True(t, f.repo.cancelled)
	assert.Equal(t, domain.CancelledByMaster, f.repo.cancelledBy)
}

func TestUpdateStatus_IllegalTransitions(t *testing.T) {
	tests := []struct {
		from domain.BookingStatus
		to   string
	}{
		{domain.StatusPending, "completed"},
		{domain.StatusCanceled, "confirmed"},
		{domain.StatusCompleted, "canceled"},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+tt.to, func(t *testing.T) {
			f := newFixture(bookingWithStart(tt.from, 48*time.Hour))

			err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
				RequesterID: masterID,
				Status:      tt.to,
			})

			assert.ErrorIs(t, err, ErrInvalidState)
		})
	}
}

func TestUpdateStatus_OnlyMaster(t *testing.T) {
	f := newFixture(bookingWithStart(domain.StatusPending, 48*time.Hour))

	err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		RequesterID: clientID,
		Status:      "confirmed",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings_OwnHistoryOnly(t *testing.T) {
	f := newFixture(bookingWithStart(domain.StatusPending, 48*time.Hour))

	resp, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		RequesterID: clientID,
		UserID:      clientID,
		Status:      ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		RequesterID: otherID,
		UserID:      clientID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetMasterBookings_InvalidStatus(t *testing.T) {
	f := newFixture(nil)

	_, err := f.svc.GetMasterBookings(context.Background(), &models.GetMasterBookingsRequest{
		RequesterID: masterID,
		MasterID:    masterID,
		Status:      ptr.Ptr("cancelled"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
