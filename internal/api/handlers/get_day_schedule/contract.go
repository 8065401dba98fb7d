package get_day_schedule

import (
	"context"
	"time"

	"github.com/m04kA/MST-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetDay(ctx context.Context, masterID, requesterID int64, date time.Time) (*models.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
