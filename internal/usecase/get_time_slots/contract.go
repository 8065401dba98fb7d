package get_time_slots

import (
	"context"
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByMasterWithFilter получает бронирования мастера на конкретную дату
	GetByMasterWithFilter(ctx context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория дневных расписаний
type ScheduleRepository interface {
	GetByMasterAndDate(ctx context.Context, masterID int64, date time.Time) (*domain.DaySchedule, error)
}

// SettingsRepository интерфейс репозитория настроек мастера
type SettingsRepository interface {
	GetByMasterID(ctx context.Context, masterID int64) (*domain.MasterSettings, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
