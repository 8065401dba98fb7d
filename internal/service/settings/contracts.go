package settings

import (
	"context"

	"github.com/m04kA/MST-BookingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек мастера
type SettingsRepository interface {
	GetByMasterID(ctx context.Context, masterID int64) (*domain.MasterSettings, error)
	Upsert(ctx context.Context, settings *domain.MasterSettings) (*domain.MasterSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
