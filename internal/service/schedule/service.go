package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/MST-BookingService/internal/service/schedule/models"
	"github.com/m04kA/MST-BookingService/pkg/types"
)

// Service сервис редактирования расписаний мастера
// Клиентская доступность строится не здесь: она считается движком слотов
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GetDay получает расписание мастера на дату
func (s *Service) GetDay(ctx context.Context, masterID, requesterID int64, date time.Time) (*models.DayScheduleResponse, error) {
	s.logger.Info("GetDay: fetching schedule for master=%d, date=%s",
		masterID, date.Format(domain.DateFormat))

	if requesterID != masterID {
		s.logger.Warn("GetDay: access denied for requester=%d to master=%d schedule", requesterID, masterID)
		return nil, ErrAccessDenied
	}

	schedule, err := s.scheduleRepo.GetByMasterAndDate(ctx, masterID, date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Info("GetDay: master=%d has no schedule on %s", masterID, date.Format(domain.DateFormat))
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetDay: repository error for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: GetDay - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// GetMonth получает все расписания мастера за календарный месяц
func (s *Service) GetMonth(ctx context.Context, masterID, requesterID int64, month time.Time) (*models.MonthScheduleResponse, error) {
	s.logger.Info("GetMonth: fetching schedules for master=%d, month=%s",
		masterID, month.Format(domain.MonthFormat))

	if requesterID != masterID {
		s.logger.Warn("GetMonth: access denied for requester=%d to master=%d schedule", requesterID, masterID)
		return nil, ErrAccessDenied
	}

	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	to := from.AddDate(0, 1, -1)

	schedules, err := s.scheduleRepo.GetByMasterAndRange(ctx, masterID, from, to)
	if err != nil {
		s.logger.Error("GetMonth: repository error for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: GetMonth - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMonth: fetched %d working days for master=%d, month=%s",
		len(schedules), masterID, month.Format(domain.MonthFormat))
	return models.FromDomainScheduleList(masterID, month, schedules), nil
}

// UpsertDay создает или заменяет расписание мастера на дату
func (s *Service) UpsertDay(ctx context.Context, req *models.UpsertDayScheduleRequest) (*models.DayScheduleResponse, error) {
	s.logger.Info("UpsertDay: upserting schedule for master=%d, date=%s",
		req.MasterID, req.Date.Format(domain.DateFormat))

	if req.RequesterID != req.MasterID {
		s.logger.Warn("UpsertDay: access denied for requester=%d to master=%d schedule",
			req.RequesterID, req.MasterID)
		return nil, ErrAccessDenied
	}

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	schedule, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("UpsertDay: validation failed for master=%d: %v", req.MasterID, err)
		if errors.Is(err, types.ErrInvalidTimeString) ||
			errors.Is(err, domain.ErrInvalidTimeWindow) ||
			errors.Is(err, domain.ErrTooManyBreaks) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: UpsertDay - validation: %v", ErrInternal, err)
	}

	saved, err := s.scheduleRepo.Upsert(ctx, schedule)
	if err != nil {
		s.logger.Error("UpsertDay: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: UpsertDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertDay: successfully saved schedule id=%d for master=%d", saved.ID, req.MasterID)
	return models.FromDomainSchedule(saved), nil
}

// DeleteDay удаляет расписание мастера на дату, делая день нерабочим
func (s *Service) DeleteDay(ctx context.Context, masterID, requesterID int64, date time.Time) error {
	s.logger.Info("DeleteDay: deleting schedule for master=%d, date=%s",
		masterID, date.Format(domain.DateFormat))

	if requesterID != masterID {
		s.logger.Warn("DeleteDay: access denied for requester=%d to master=%d schedule", requesterID, masterID)
		return ErrAccessDenied
	}

	if err := s.scheduleRepo.Delete(ctx, masterID, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("DeleteDay: master=%d has no schedule on %s", masterID, date.Format(domain.DateFormat))
			return ErrScheduleNotFound
		}
		s.logger.Error("DeleteDay: repository error for master=%d: %v", masterID, err)
		return fmt.Errorf("%w: DeleteDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteDay: successfully deleted schedule for master=%d, date=%s",
		masterID, date.Format(domain.DateFormat))
	return nil
}
