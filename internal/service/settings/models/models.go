package models

import (
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек мастера
type UpdateSettingsRequest struct {
	RequesterID         int64 `json:"requesterId"`
	MasterID            int64 `json:"masterId"`
	BufferMinutes       int   `json:"bufferMinutes"`
	CancelDeadlineHours int   `json:"cancelDeadlineHours"`
	AutoConfirm         bool  `json:"autoConfirm"`
}

// ToDomain конвертирует request в domain модель
func (r *UpdateSettingsRequest) ToDomain() *domain.MasterSettings {
	return &domain.MasterSettings{
		MasterID:            r.MasterID,
		BufferMinutes:       r.BufferMinutes,
		CancelDeadlineHours: r.CancelDeadlineHours,
		AutoConfirm:         r.AutoConfirm,
	}
}

// SettingsResponse настройки бронирования мастера
type SettingsResponse struct {
	MasterID            int64     `json:"masterId"`
	BufferMinutes       int       `json:"bufferMinutes"`
	CancelDeadlineHours int       `json:"cancelDeadlineHours"`
	AutoConfirm         bool      `json:"autoConfirm"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.MasterSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	return &SettingsResponse{
		MasterID:            s.MasterID,
		BufferMinutes:       s.BufferMinutes,
		CancelDeadlineHours: s.CancelDeadlineHours,
		AutoConfirm:         s.AutoConfirm,
		UpdatedAt:           s.UpdatedAt,
	}
}
