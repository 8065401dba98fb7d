package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание на дату не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrAccessDenied возвращается, когда расписание редактирует не его владелец
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
