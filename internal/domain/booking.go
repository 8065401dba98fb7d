package domain

import (
	"time"

	"github.com/m04kA/MST-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCanceled  BookingStatus = "canceled"
	StatusCompleted BookingStatus = "completed"
)

// CancelledBy инициатор отмены бронирования
type CancelledBy string

const (
	CancelledByClient CancelledBy = "client"
	CancelledByMaster CancelledBy = "master"
)

// Booking represents a client appointment with a master
type Booking struct {
	ID        int64
	UserID    int64
	MasterID  int64
	ServiceID int64

	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int

	Status BookingStatus

	// CancelDeadline абсолютный момент, до которого клиент может отменить запись
	// Вычисляется при создании: startDateTime - cancelDeadlineHours
	CancelDeadline time.Time

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancelledBy *CancelledBy
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its interval in the calendar
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking reached a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCanceled || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo проверяет допустимость перехода статуса:
// pending → confirmed | canceled, confirmed → canceled | completed,
// терминальные статусы неизменяемы
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCanceled
	case StatusConfirmed:
		return next == StatusCanceled || next == StatusCompleted
	default:
		return false
	}
}

// StartDateTime совмещает дату и время начала бронирования
func (b *Booking) StartDateTime() (time.Time, error) {
	return b.StartTime.OnDate(b.BookingDate)
}

// MasterBookingsFilter фильтр для выборки бронирований мастера
type MasterBookingsFilter struct {
	MasterID        int64           // Обязательный параметр
	StartDate       *time.Time      // Начало периода (опционально)
	EndDate         *time.Time      // Конец периода (опционально)
	Statuses        []BookingStatus // Фильтр по статусам (опционально)
	IncludeInactive bool            // Включать ли отмененные и завершенные
}

// ParseBookingStatus валидирует и конвертирует строку в BookingStatus
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted:
		return status, true
	default:
		return "", false
	}
}
