package domain

import "time"

// MasterSettings параметры бронирования мастера
type MasterSettings struct {
	ID       int64
	MasterID int64

	// BufferMinutes пауза после каждой записи, прежде чем может начаться следующая
	BufferMinutes int

	// CancelDeadlineHours за сколько часов до записи клиент еще может её отменить
	CancelDeadlineHours int

	// AutoConfirm создавать ли новые записи сразу подтвержденными
	AutoConfirm bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultMasterSettings возвращает настройки по умолчанию для мастера
// Используется, когда мастер еще не сохранял собственные настройки:
// хранилище настроек никогда не возвращает "ничего"
func DefaultMasterSettings(masterID int64) *MasterSettings {
	return &MasterSettings{
		MasterID:            masterID,
		BufferMinutes:       DefaultBufferMinutes,
		CancelDeadlineHours: DefaultCancelDeadlineHours,
		AutoConfirm:         DefaultAutoConfirm,
	}
}

// IsValid проверяет бизнес-ограничения настроек
func (s *MasterSettings) IsValid() bool {
	return s.BufferMinutes >= MinBufferMinutes &&
		s.BufferMinutes <= MaxBufferMinutes &&
		s.CancelDeadlineHours >= MinCancelDeadlineHours &&
		s.CancelDeadlineHours <= MaxCancelDeadlineHours
}

// CancelDeadlineFor вычисляет крайний срок отмены для записи с указанным началом
func (s *MasterSettings) CancelDeadlineFor(startDateTime time.Time) time.Time {
	return startDateTime.Add(-time.Duration(s.CancelDeadlineHours) * time.Hour)
}
