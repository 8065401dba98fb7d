package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrNoScheduleForDate возвращается, когда мастер не работает в указанную дату
	ErrNoScheduleForDate = errors.New("create_booking: master has no schedule on this date")

	// ErrPastTime возвращается, когда начало слота уже прошло
	ErrPastTime = errors.New("create_booking: slot start time is in the past")

	// ErrOutsideWorkHours возвращается, когда начало слота вне рабочего дня
	ErrOutsideWorkHours = errors.New("create_booking: slot is outside work hours")

	// ErrDuringBreak возвращается, когда сервисное окно попадает на перерыв
	ErrDuringBreak = errors.New("create_booking: slot overlaps a break")

	// ErrSlotTaken возвращается, когда слот пересекается с существующей записью.
	// Автоматических повторов нет: клиент должен перезапросить слоты и выбрать заново
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
