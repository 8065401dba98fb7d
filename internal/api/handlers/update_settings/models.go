package update_settings

import (
	"github.com/m04kA/MST-BookingService/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	BufferMinutes       int  `json:"bufferMinutes"`
	CancelDeadlineHours int  `json:"cancelDeadlineHours"`
	AutoConfirm         bool `json:"autoConfirm"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(masterID, requesterID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		RequesterID:         requesterID,
		MasterID:            masterID,
		BufferMinutes:       r.BufferMinutes,
		CancelDeadlineHours: r.CancelDeadlineHours,
		AutoConfirm:         r.AutoConfirm,
	}
}
