package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MST-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/MST-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Запись видят только её клиент и её мастер
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for requester=%d", id, requesterID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if booking.UserID != requesterID && booking.MasterID != requesterID {
		s.logger.Warn("GetByID: access denied for requester=%d to booking id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу. Пользователь видит только свою историю
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserBookings: access denied for requester=%d to user=%d history",
			req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetMasterBookings получает бронирования мастера с гибкой фильтрацией
// Доступно только самому мастеру
func (s *Service) GetMasterBookings(ctx context.Context, req *models.GetMasterBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetMasterBookings: fetching bookings for master=%d, requester=%d",
		req.MasterID, req.RequesterID)

	if req.RequesterID != req.MasterID {
		s.logger.Warn("GetMasterBookings: access denied for requester=%d to master=%d calendar",
			req.RequesterID, req.MasterID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetMasterBookings: invalid filter for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByMasterWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetMasterBookings: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: GetMasterBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMasterBookings: successfully fetched %d bookings for master=%d", len(bookings), req.MasterID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент может отменить свою запись до дедлайна отмены, мастер свою запись
// в любой момент. Отмена немедленно освобождает интервал для новых записей
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by requester=%d", bookingID, req.RequesterID)

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return err
	}

	// Определяем инициатора отмены
	var cancelledBy domain.CancelledBy
	switch req.RequesterID {
	case booking.UserID:
		cancelledBy = domain.CancelledByClient
	case booking.MasterID:
		cancelledBy = domain.CancelledByMaster
	default:
		s.logger.Warn("Cancel: access denied for requester=%d to booking id=%d", req.RequesterID, bookingID)
		return ErrAccessDenied
	}

	// Терминальные записи не отменяются, повторная отмена всегда ошибка
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrInvalidState
	}

	// Дедлайн действует только на клиентскую отмену
	if cancelledBy == domain.CancelledByClient {
		now := s.timeProvider.Now()
		if !now.Before(booking.CancelDeadline) {
			s.logger.Warn("Cancel: deadline passed for booking id=%d (deadline=%s)",
				bookingID, booking.CancelDeadline.Format("2006-01-02 15:04"))
			return ErrDeadlinePassed
		}
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelledBy); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d by %s", bookingID, cancelledBy)
	s.metrics.IncBookingCancelled(string(cancelledBy))

	booking.Status = domain.StatusCanceled
	s.notifier.BookingCancelled(booking, cancelledBy)

	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только мастеру записи. Допустимые переходы:
// pending -> confirmed | canceled, confirmed -> canceled | completed
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by requester=%d",
		bookingID, req.Status, req.RequesterID)

	booking, err := s.getBooking(ctx, bookingID, "UpdateStatus")
	if err != nil {
		return err
	}

	if booking.MasterID != req.RequesterID {
		s.logger.Warn("UpdateStatus: access denied for requester=%d to booking id=%d",
			req.RequesterID, bookingID)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: illegal transition %s -> %s for booking id=%d",
			booking.Status, newStatus, bookingID)
		return ErrInvalidState
	}

	previous := booking.Status

	// Переход в canceled фиксирует инициатора отмены
	if newStatus == domain.StatusCanceled {
		err = s.bookingRepo.Cancel(ctx, bookingID, domain.CancelledByMaster)
	} else {
		err = s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus)
	}
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)

	booking.Status = newStatus
	s.notifier.BookingStatusChanged(booking, previous)

	return nil
}

// getBooking получает запись по ID с маппингом ошибки репозитория
func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
