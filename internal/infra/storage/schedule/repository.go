package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MST-BookingService/internal/domain"
	"github.com/m04kA/MST-BookingService/pkg/dbmetrics"
	"github.com/m04kA/MST-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/MST-BookingService/pkg/types"
)

// breakRecord формат хранения перерыва в JSONB-колонке breaks
type breakRecord struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Repository репозиторий для работы с дневными расписаниями мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByMasterAndDate получает расписание мастера на конкретную дату
// Отсутствие записи означает нерабочий день и возвращает ErrScheduleNotFound
func (r *Repository) GetByMasterAndDate(ctx context.Context, masterID int64, date time.Time) (*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"master_id",
		"date",
		"work_start",
		"work_end",
		"breaks",
		"created_at",
		"updated_at",
	).
		From("master_schedules").
		Where(squirrel.Eq{"master_id": masterID, "date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterAndDate - build select query: %w", ErrBuildQuery, err)
	}

	schedule, err := r.scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterAndDate - scan schedule: %w", ErrScanRow, err)
	}

	return schedule, nil
}

// GetByMasterAndRange получает расписания мастера за период [from, to]
// Дни без записей в результат не попадают
func (r *Repository) GetByMasterAndRange(ctx context.Context, masterID int64, from, to time.Time) ([]*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"master_id",
		"date",
		"work_start",
		"work_end",
		"breaks",
		"created_at",
		"updated_at",
	).
		From("master_schedules").
		Where(squirrel.Eq{"master_id": masterID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterAndRange - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterAndRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.DaySchedule, 0)

	for rows.Next() {
		var schedule domain.DaySchedule
		var breaksRaw []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&schedule.ID,
			&schedule.MasterID,
			&schedule.Date,
			&schedule.WorkHours.Start,
			&schedule.WorkHours.End,
			&breaksRaw,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetByMasterAndRange - scan row: %w", ErrScanRow, err)
		}

		schedule.Breaks, err = decodeBreaks(breaksRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByMasterAndRange - decode breaks: %w", ErrScanRow, err)
		}

		schedule.CreatedAt = createdAt.Time
		schedule.UpdatedAt = updatedAt.Time

		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByMasterAndRange - rows error: %w", ErrScanRow, err)
	}

	return schedules, nil
}

// Upsert создает или заменяет расписание мастера на дату
// Пара (master_id, date) уникальна, повторная запись перезаписывает день целиком
func (r *Repository) Upsert(ctx context.Context, schedule *domain.DaySchedule) (*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	breaksRaw, err := encodeBreaks(schedule.Breaks)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert: %w", ErrEncodeBreaks, err)
	}

	query, args, err := psqlbuilder.Insert("master_schedules").
		Columns(
			"master_id",
			"date",
			"work_start",
			"work_end",
			"breaks",
		).
		Values(
			schedule.MasterID,
			schedule.Date,
			schedule.WorkHours.Start,
			schedule.WorkHours.End,
			breaksRaw,
		).
		Suffix(`ON CONFLICT (master_id, date) DO UPDATE SET
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			breaks = EXCLUDED.breaks,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// Delete удаляет расписание мастера на дату, делая день нерабочим
func (r *Repository) Delete(ctx context.Context, masterID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("master_schedules").
		Where(squirrel.Eq{"master_id": masterID, "date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// scanSchedule сканирует одну строку результата в расписание
func (r *Repository) scanSchedule(row *sql.Row) (*domain.DaySchedule, error) {
	var schedule domain.DaySchedule
	var breaksRaw []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.MasterID,
		&schedule.Date,
		&schedule.WorkHours.Start,
		&schedule.WorkHours.End,
		&breaksRaw,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	schedule.Breaks, err = decodeBreaks(breaksRaw)
	if err != nil {
		return nil, err
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

// encodeBreaks сериализует перерывы в JSON для хранения в JSONB-колонке
func encodeBreaks(breaks []domain.Break) ([]byte, error) {
	records := make([]breakRecord, len(breaks))
	for i, br := range breaks {
		records[i] = breakRecord{
			Start: br.Start.String(),
			End:   br.End.String(),
		}
	}
	return json.Marshal(records)
}

// decodeBreaks восстанавливает перерывы из JSONB-колонки
func decodeBreaks(raw []byte) ([]domain.Break, error) {
	if len(raw) == 0 {
		return []domain.Break{}, nil
	}

	var records []breakRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	breaks := make([]domain.Break, len(records))
	for i, rec := range records {
		breaks[i] = domain.Break{
			Start: types.TimeString(rec.Start),
			End:   types.TimeString(rec.End),
		}
	}
	return breaks, nil
}
