package delete_day_schedule

import (
	"context"
	"time"
)

type ScheduleService interface {
	DeleteDay(ctx context.Context, masterID, requesterID int64, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
