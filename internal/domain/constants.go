package domain

// Default master settings values
const (
	DefaultBufferMinutes       = 15
	DefaultCancelDeadlineHours = 24
	DefaultAutoConfirm         = false
)

// Business validation constants
const (
	MinBufferMinutes       = 0
	MaxBufferMinutes       = 60
	MinCancelDeadlineHours = 1
	MaxCancelDeadlineHours = 72
	MinServiceDuration     = 5
	MaxServiceDuration     = 480 // 8 hours
	MaxNotesLength         = 500
	MaxBreaksPerDay        = 10
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// AvailableDatesWindowMonths окно по умолчанию для календаря доступных дат:
// с начала текущего месяца до конца месяца +2
const AvailableDatesWindowMonths = 2

// ActiveStatuses статусы, занимающие интервал в календаре мастера
// Используются во всех проверках пересечений и подсчете занятости
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses терминальные статусы, не занимающие интервал
var InactiveStatuses = []BookingStatus{
	StatusCanceled,
	StatusCompleted,
}
