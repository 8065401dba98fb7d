package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MST-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/settings"
)

// UseCase use case для создания бронирования
//
// Единственная операция движка с настоящей гонкой: два запроса на пересекающиеся
// интервалы одного мастера могут пройти проверку одновременно. Гарантия - не более
// одной зафиксированной записи на пересекающийся интервал: чтение занятости и
// вставка выполняются одной сериализуемой транзакцией с блокировкой строк дня,
// проигравший конкурент получает ErrSlotTaken
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, service=%d, date=%s, time=%s",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем услугу (она определяет мастера, длительность и цену)
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.HasValidDuration() {
		uc.logger.Warn("CreateBooking: service id=%d has invalid duration %d",
			service.ID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration out of range", ErrInvalidInput)
	}

	// 3. Настройки мастера, дефолты при отсутствии
	settings, err := uc.settingsRepo.GetByMasterID(ctx, service.MasterID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("CreateBooking: failed to get settings for master=%d: %v", service.MasterID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultMasterSettings(service.MasterID)
	}

	// 4. Проверяем, что слот еще не прошел
	startMin, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	startDateTime, err := req.StartTime.OnDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if now.After(startDateTime) {
		uc.logger.Warn("CreateBooking: slot %s %s is in the past",
			req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrPastTime
	}

	var result *domain.Booking

	// 5. Авторитетная проверка и вставка одной сериализуемой транзакцией.
	// Список слотов, который клиент видел ранее, консультативный и мог устареть
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Расписание на дату: отсутствие означает нерабочий день
		schedule, err := uc.scheduleRepo.GetByMasterAndDate(txCtx, service.MasterID, req.Date)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("CreateBooking: master=%d has no schedule on %s",
					service.MasterID, req.Date.Format(domain.DateFormat))
				return ErrNoScheduleForDate
			}
			uc.logger.Error("CreateBooking: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
		}

		// 5.2. Слот внутри рабочего дня и мимо перерывов
		if err := validateSlotFitsSchedule(schedule, startMin, service.DurationMinutes); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
			return err
		}

		// 5.3. Активные записи даты с блокировкой строк (FOR UPDATE)
		filter := domain.MasterBookingsFilter{
			MasterID:  service.MasterID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
			Statuses:  domain.ActiveStatuses,
		}

		bookings, err := uc.bookingRepo.GetByMasterWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 5.4. Проверка пересечений по буферизованным окнам
		if hasBookingConflict(startMin, service.DurationMinutes, settings.BufferMinutes, bookings) {
			uc.logger.Warn("CreateBooking: slot %s %s already taken for master=%d",
				req.Date.Format(domain.DateFormat), req.StartTime, service.MasterID)
			return ErrSlotTaken
		}

		// 5.5. Вставка записи
		status := domain.StatusPending
		if settings.AutoConfirm {
			status = domain.StatusConfirmed
		}

		booking := &domain.Booking{
			UserID:          req.UserID,
			MasterID:        service.MasterID,
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          status,
			CancelDeadline:  settings.CancelDeadlineFor(startDateTime),
			// Денормализация данных услуги для истории
			ServiceName:  service.Name,
			ServicePrice: service.Price,
			Notes:        req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", result.ID, result.Status)
	uc.metrics.IncBookingCreated(string(result.Status))

	// 6. Уведомление мастера: негарантированная доставка, ошибки не всплывают
	uc.notifier.BookingCreated(result)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		MasterID:        result.MasterID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		CancelDeadline:  result.CancelDeadline,
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
