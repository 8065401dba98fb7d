package upsert_day_schedule

import (
	"time"

	"github.com/m04kA/MST-BookingService/internal/service/schedule/models"
)

// TimeWindow пара время начала и конца в формате HH:MM
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UpsertDayScheduleRequest HTTP request model
// Запись перезаписывает день целиком
type UpsertDayScheduleRequest struct {
	WorkHours TimeWindow   `json:"workHours"`
	Breaks    []TimeWindow `json:"breaks,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpsertDayScheduleRequest) ToServiceRequest(masterID, requesterID int64, date time.Time) *models.UpsertDayScheduleRequest {
	breaks := make([]models.TimeWindow, len(r.Breaks))
	for i, br := range r.Breaks {
		breaks[i] = models.TimeWindow{Start: br.Start, End: br.End}
	}

	return &models.UpsertDayScheduleRequest{
		RequesterID: requesterID,
		MasterID:    masterID,
		Date:        date,
		WorkHours:   models.TimeWindow{Start: r.WorkHours.Start, End: r.WorkHours.End},
		Breaks:      breaks,
	}
}
