package completion

import (
	"context"
	"time"
)

// BookingRepository интерфейс репозитория записей для воркера завершения
type BookingRepository interface {
	CompletePast(ctx context.Context, now time.Time) (int64, error)
}

// TimeProvider абстракция времени для тестирования
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальное время
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
