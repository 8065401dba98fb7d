package get_time_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MST-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/settings"
)

// UseCase use case для получения слотов на день
//
// Генерация чистая и без разделяемого состояния: результаты можно кешировать
// на клиенте, но они консультативные. Авторитетная проверка доступности
// выполняется заново при создании записи
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

// Execute выполняет use case получения слотов на день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetTimeSlots: user=%d, service=%d, date=%s",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetTimeSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу (она определяет мастера и длительность)
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetTimeSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetTimeSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.HasValidDuration() {
		uc.logger.Warn("GetTimeSlots: service id=%d has invalid duration %d",
			service.ID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration out of range", ErrInvalidInput)
	}

	// 3. Получаем настройки мастера, при отсутствии используем дефолтные
	settings, err := uc.settingsRepo.GetByMasterID(ctx, service.MasterID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetTimeSlots: failed to get settings for master=%d: %v", service.MasterID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultMasterSettings(service.MasterID)
	}

	// 4. Получаем расписание на дату
	// Отсутствие расписания - это нерабочий день, а не ошибка
	schedule, err := uc.scheduleRepo.GetByMasterAndDate(ctx, service.MasterID, req.Date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetTimeSlots: master=%d has no schedule on %s",
				service.MasterID, req.Date.Format(domain.DateFormat))
			return &Response{
				Date:          req.Date,
				MasterID:      service.MasterID,
				ServiceID:     req.ServiceID,
				IsWorkingDay:  false,
				Slots:         []domain.TimeSlot{},
				IsFullyBooked: true,
			}, nil
		}
		uc.logger.Error("GetTimeSlots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 5. Получаем активные записи мастера на эту дату
	filter := domain.MasterBookingsFilter{
		MasterID:  service.MasterID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
		Statuses:  domain.ActiveStatuses,
	}

	bookings, err := uc.bookingRepo.GetByMasterWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetTimeSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты
	now := uc.timeProvider.Now()
	slots := generateSlots(schedule, service.DurationMinutes, settings.BufferMinutes, bookings, req.Date, now)
	summary := domain.SummarizeSlots(slots)

	uc.logger.Info("GetTimeSlots: generated %d slots (%d available) for master=%d, service=%d, date=%s",
		summary.TotalSlots, summary.AvailableSlots, service.MasterID, req.ServiceID,
		req.Date.Format(domain.DateFormat))

	return &Response{
		Date:              req.Date,
		MasterID:          service.MasterID,
		ServiceID:         req.ServiceID,
		IsWorkingDay:      true,
		Slots:             slots,
		TotalSlots:        summary.TotalSlots,
		AvailableSlots:    summary.AvailableSlots,
		IsFullyBooked:     summary.IsFullyBooked,
		NextAvailableSlot: summary.NextAvailableSlot,
	}, nil
}
