package upsert_day_schedule

import (
	"context"

	"github.com/m04kA/MST-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertDay(ctx context.Context, req *models.UpsertDayScheduleRequest) (*models.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
