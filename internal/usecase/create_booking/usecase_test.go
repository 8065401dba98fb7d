package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MST-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/MST-BookingService/pkg/types"
)

type stubBookingRepo struct {
	bookings []*domain.Booking
	created  []*domain.Booking
}

func (s *stubBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = int64(len(s.created) + 1)
	s.created = append(s.created, booking)
	return booking, nil
}

func (s *stubBookingRepo) GetByMasterWithFilter(_ context.Context, _ domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	return s.bookings, nil
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
}

func (s *stubSettingsRepo) GetByMasterID(_ context.Context, _ int64) (*domain.MasterSettings, error) {
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

// inlineTxManager выполняет функцию без настоящей транзакции
type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// retryingTxManager повторяет функцию при ошибке сериализации,
// как настоящий менеджер транзакций
type retryingTxManager struct {
	attempts int
}

func (m *retryingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	for {
		m.attempts++
		err := fn(ctx)
		var pqErr *pq.Error
		if err != nil && errors.As(err, &pqErr) && pqErr.Code == "40001" && m.attempts < 3 {
			continue
		}
		return err
	}
}

// racingBookingRepo имитирует проигравшего в гонке за слот: первая вставка
// падает с ошибкой сериализации, а при повторе выборка уже видит запись победителя
type racingBookingRepo struct {
	winner  *domain.Booking
	reads   int
	creates int
}

func (s *racingBookingRepo) Create(_ context.Context, _ *domain.Booking) (*domain.Booking, error) {
	s.creates++
	return nil, fmt.Errorf("booking.repository: failed to execute query: %w", &pq.Error{Code: "40001"})
}

func (s *racingBookingRepo) GetByMasterWithFilter(_ context.Context, _ domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	s.reads++
	if s.reads == 1 {
		return nil, nil
	}
	return []*domain.Booking{s.winner}, nil
}

type recordingNotifier struct {
	created []*domain.Booking
}

func (n *recordingNotifier) BookingCreated(booking *domain.Booking) {
	n.created = append(n.created, booking)
}

type nopMetrics struct{}

func (nopMetrics) IncBookingCreated(string) {}

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

type fixture struct {
	uc       *UseCase
	bookings *stubBookingRepo
	notifier *recordingNotifier
}

func newFixture(t *testing.T, existing []*domain.Booking, settings *domain.MasterSettings, now time.Time) *fixture {
	t.Helper()

	workHours, err := domain.NewWorkHours("09:00", "18:00")
	require.NoError(t, err)
	br, err := domain.NewBreak("13:00", "14:00")
	require.NoError(t, err)

	bookings := &stubBookingRepo{bookings: existing}
	notifier := &recordingNotifier{}

	uc := NewUseCase(
		bookings,
		&stubScheduleRepo{schedule: &domain.DaySchedule{
			MasterID:  7,
			WorkHours: workHours,
			Breaks:    []domain.Break{br},
		}},
		&stubSettingsRepo{settings: settings},
		&stubServiceRepo{service: &domain.Service{
			ID:              1,
			MasterID:        7,
			Name:            "Haircut",
			DurationMinutes: 60,
			Price:           1500,
		}},
		inlineTxManager{},
		notifier,
		nopMetrics{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}

	return &fixture{uc: uc, bookings: bookings, notifier: notifier}
}

var (
	bookingDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	earlyNow    = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
)

func request(at string) *Request {
	return &Request{
		UserID:    42,
		ServiceID: 1,
		Date:      bookingDate,
		StartTime: types.TimeString(at),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t, nil, nil, earlyNow)

	resp, err := f.uc.Execute(context.Background(), request("10:00"))

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.MasterID)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 60, resp.DurationMinutes)
	// Дефолтные настройки: autoConfirm выключен
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	// Дедлайн отмены: за 24 часа до начала
	assert.Equal(t, time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC), resp.CancelDeadline)
	assert.Len(t, f.notifier.created, 1)
}

func TestExecute_AutoConfirm(t *testing.T) {
	settings := &domain.MasterSettings{
		MasterID:            7,
		BufferMinutes:       15,
		CancelDeadlineHours: 24,
		AutoConfirm:         true,
	}
	f := newFixture(t, nil, settings, earlyNow)

	resp, err := f.uc.Execute(context.Background(), request("10:00"))

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_BufferRespected(t *testing.T) {
	// Существующая запись 10:00 на 60 минут с буфером 15 занимает [10:00, 11:15)
	existing := []*domain.Booking{{
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}

	// Попытка записи на 11:00 нарушает буфер
	f := newFixture(t, existing, nil, earlyNow)
	_, err := f.uc.Execute(context.Background(), request("11:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, f.bookings.created)
	assert.Empty(t, f.notifier.created)

	// Запись на 11:15 начинается ровно после буфера
	f = newFixture(t, existing, nil, earlyNow)
	_, err = f.uc.Execute(context.Background(), request("11:15"))
	assert.NoError(t, err)
}

func TestExecute_CanceledBookingDoesNotBlock(t *testing.T) {
	existing := []*domain.Booking{{
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusCanceled,
	}}
	f := newFixture(t, existing, nil, earlyNow)

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	assert.NoError(t, err)
}

func TestExecute_LosingConcurrentBookingGetsSlotTaken(t *testing.T) {
	// Два клиента одновременно бронируют 10:00. Вставка проигравшего падает
	// с ошибкой сериализации, транзакция повторяется, и повторная проверка
	// конфликтов уже видит запись победителя.
	repo := &racingBookingRepo{winner: &domain.Booking{
		ID:              99,
		MasterID:        7,
		ServiceID:       1,
		UserID:          77,
		BookingDate:     bookingDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusPending,
	}}
	txManager := &retryingTxManager{}

	f := newFixture(t, nil, nil, earlyNow)
	f.uc.bookingRepo = repo
	f.uc.txManager = txManager

	_, err := f.uc.Execute(context.Background(), request("10:00"))

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 2, txManager.attempts)
	assert.Equal(t, 1, repo.creates, "повторная попытка не должна доходить до вставки")
	assert.Empty(t, f.notifier.created)
}

func TestExecute_DuringBreak(t *testing.T) {
	f := newFixture(t, nil, nil, earlyNow)

	// Сервисное окно 12:30-13:30 пересекает перерыв 13:00-14:00
	_, err := f.uc.Execute(context.Background(), request("12:30"))
	assert.ErrorIs(t, err, ErrDuringBreak)
}

func TestExecute_OutsideWorkHours(t *testing.T) {
	f := newFixture(t, nil, nil, earlyNow)

	_, err := f.uc.Execute(context.Background(), request("08:00"))
	assert.ErrorIs(t, err, ErrOutsideWorkHours)

	_, err = f.uc.Execute(context.Background(), request("18:00"))
	assert.ErrorIs(t, err, ErrOutsideWorkHours)
}

func TestExecute_PastTime(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)
	f := newFixture(t, nil, nil, now)

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	assert.ErrorIs(t, err, ErrPastTime)
}

func TestExecute_NoScheduleForDate(t *testing.T) {
	f := newFixture(t, nil, nil, earlyNow)
	f.uc.scheduleRepo = &stubScheduleRepo{err: scheduleRepo.ErrScheduleNotFound}

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	assert.ErrorIs(t, err, ErrNoScheduleForDate)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(t, nil, nil, earlyNow)
	f.uc.serviceRepo = &stubServiceRepo{err: serviceRepo.ErrServiceNotFound}

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t, nil, nil, earlyNow)

	_, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: bookingDate, StartTime: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{UserID: 42, ServiceID: 1, Date: bookingDate, StartTime: "25:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
