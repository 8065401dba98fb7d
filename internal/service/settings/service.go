package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MST-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/MST-BookingService/internal/service/settings/models"
)

// Service сервис настроек бронирования мастера
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get получает настройки мастера
// Если мастер еще не сохранял настройки, возвращает дефолтные:
// отсутствие настроек никогда не является ошибкой
func (s *Service) Get(ctx context.Context, masterID, requesterID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for master=%d", masterID)

	if requesterID != masterID {
		s.logger.Warn("Get: access denied for requester=%d to master=%d settings", requesterID, masterID)
		return nil, ErrAccessDenied
	}

	settings, err := s.settingsRepo.GetByMasterID(ctx, masterID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("Get: master=%d has no saved settings, using defaults", masterID)
			return models.FromDomainSettings(domain.DefaultMasterSettings(masterID)), nil
		}
		s.logger.Error("Get: repository error for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update создает или обновляет настройки мастера
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for master=%d (buffer=%d, deadline=%dh, autoConfirm=%t)",
		req.MasterID, req.BufferMinutes, req.CancelDeadlineHours, req.AutoConfirm)

	if req.RequesterID != req.MasterID {
		s.logger.Warn("Update: access denied for requester=%d to master=%d settings",
			req.RequesterID, req.MasterID)
		return nil, ErrAccessDenied
	}

	settings := req.ToDomain()
	if !settings.IsValid() {
		s.logger.Warn("Update: invalid settings for master=%d: buffer=%d, deadline=%d",
			req.MasterID, req.BufferMinutes, req.CancelDeadlineHours)
		return nil, fmt.Errorf("%w: buffer must be %d-%d minutes, deadline %d-%d hours",
			ErrInvalidInput,
			domain.MinBufferMinutes, domain.MaxBufferMinutes,
			domain.MinCancelDeadlineHours, domain.MaxCancelDeadlineHours)
	}

	saved, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully saved settings id=%d for master=%d", saved.ID, req.MasterID)
	return models.FromDomainSettings(saved), nil
}
