package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetByMasterWithFilter внутри транзакции с фильтром на одну дату
	// блокирует строки дня (FOR UPDATE)
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

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс для отправки уведомлений о созданных записях
// Доставка негарантированная, ошибки не влияют на результат операции
type Notifier interface {
	BookingCreated(booking *domain.Booking)
}

// Metrics интерфейс для учета созданных записей
type Metrics interface {
	IncBookingCreated(status string)
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
