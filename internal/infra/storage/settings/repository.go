package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MST-BookingService/internal/domain"
	"github.com/m04kA/MST-BookingService/pkg/dbmetrics"
	"github.com/m04kA/MST-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с настройками бронирования мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByMasterID получает настройки мастера
// Отсутствие записи возвращает ErrSettingsNotFound: вызывающий слой подставляет дефолты
func (r *Repository) GetByMasterID(ctx context.Context, masterID int64) (*domain.MasterSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"master_id",
		"buffer_minutes",
		"cancel_deadline_hours",
		"auto_confirm",
		"created_at",
		"updated_at",
	).
		From("master_settings").
		Where(squirrel.Eq{"master_id": masterID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterID - build select query: %w", ErrBuildQuery, err)
	}

	var settings domain.MasterSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.MasterID,
		&settings.BufferMinutes,
		&settings.CancelDeadlineHours,
		&settings.AutoConfirm,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterID - scan settings: %w", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert создает или обновляет настройки мастера
func (r *Repository) Upsert(ctx context.Context, settings *domain.MasterSettings) (*domain.MasterSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("master_settings").
		Columns(
			"master_id",
			"buffer_minutes",
			"cancel_deadline_hours",
			"auto_confirm",
		).
		Values(
			settings.MasterID,
			settings.BufferMinutes,
			settings.CancelDeadlineHours,
			settings.AutoConfirm,
		).
		Suffix(`ON CONFLICT (master_id) DO UPDATE SET
			buffer_minutes = EXCLUDED.buffer_minutes,
			cancel_deadline_hours = EXCLUDED.cancel_deadline_hours,
			auto_confirm = EXCLUDED.auto_confirm,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}
