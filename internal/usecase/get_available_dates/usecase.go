package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
	serviceRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/settings"
)

// UseCase use case для получения доступных дат в календарном окне
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	serviceRepo  ServiceRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		serviceRepo:  serviceRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: user=%d, service=%d", req.UserID, req.ServiceID)

	if req.ServiceID <= 0 {
		uc.logger.Warn("GetAvailableDates: validation failed: serviceID must be positive")
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	from, to := resolveWindow(req, now)
	if to.Before(from) {
		uc.logger.Warn("GetAvailableDates: validation failed: window end before start")
		return nil, fmt.Errorf("%w: window end before start", ErrInvalidInput)
	}

	// 1. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableDates: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 2. Настройки мастера, дефолты при отсутствии
	settings, err := uc.settingsRepo.GetByMasterID(ctx, service.MasterID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetAvailableDates: failed to get settings for master=%d: %v", service.MasterID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultMasterSettings(service.MasterID)
	}

	// 3. Расписания и записи за все окно одним запросом каждое
	schedules, err := uc.scheduleRepo.GetByMasterAndRange(ctx, service.MasterID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedules: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByMasterWithFilter(ctx, domain.MasterBookingsFilter{
		MasterID:  service.MasterID,
		StartDate: &from,
		EndDate:   &to,
		Statuses:  domain.ActiveStatuses,
	})
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Оценка емкости по каждой дате
	dates := availableDates(schedules, bookings, service.DurationMinutes, settings.BufferMinutes, now)

	uc.logger.Info("GetAvailableDates: %d of %d scheduled dates available for master=%d, service=%d",
		len(dates), len(schedules), service.MasterID, req.ServiceID)

	return &Response{
		ServiceID: req.ServiceID,
		MasterID:  service.MasterID,
		From:      from,
		To:        to,
		Dates:     dates,
	}, nil
}

// resolveWindow возвращает границы календарного окна.
// По умолчанию окно тянется с начала текущего месяца
// до конца месяца +AvailableDatesWindowMonths
func resolveWindow(req *Request, now time.Time) (from, to time.Time) {
	from = req.From
	to = req.To

	if from.IsZero() {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if to.IsZero() {
		firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
			AddDate(0, domain.AvailableDatesWindowMonths+1, 0)
		to = firstOfNext.AddDate(0, 0, -1)
	}

	return from, to
}
