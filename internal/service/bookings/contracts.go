package bookings

import (
	"context"
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByMasterWithFilter(ctx context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, cancelledBy domain.CancelledBy) error
}

// Notifier интерфейс для уведомлений об изменениях записей
// Доставка негарантированная, ошибки не влияют на результат операции
type Notifier interface {
	BookingStatusChanged(booking *domain.Booking, previous domain.BookingStatus)
	BookingCancelled(booking *domain.Booking, by domain.CancelledBy)
}

// Metrics интерфейс для учета отмен
type Metrics interface {
	IncBookingCancelled(by string)
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
