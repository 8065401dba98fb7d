package schedule

import (
	"context"
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория дневных расписаний
type ScheduleRepository interface {
	GetByMasterAndDate(ctx context.Context, masterID int64, date time.Time) (*domain.DaySchedule, error)
	GetByMasterAndRange(ctx context.Context, masterID int64, from, to time.Time) ([]*domain.DaySchedule, error)
	Upsert(ctx context.Context, schedule *domain.DaySchedule) (*domain.DaySchedule, error)
	Delete(ctx context.Context, masterID int64, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
