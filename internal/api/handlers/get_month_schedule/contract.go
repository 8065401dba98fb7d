package get_month_schedule

import (
	"context"
	"time"

	"github.com/m04kA/MST-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetMonth(ctx context.Context, masterID, requesterID int64, month time.Time) (*models.MonthScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
