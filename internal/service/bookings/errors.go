package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на запись
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidState возвращается при недопустимом переходе статуса
	// или попытке изменить запись в терминальном статусе
	ErrInvalidState = errors.New("invalid booking state transition")

	// ErrDeadlinePassed возвращается, когда клиент отменяет запись после дедлайна
	ErrDeadlinePassed = errors.New("cancellation deadline has passed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
