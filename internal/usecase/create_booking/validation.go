package create_booking

import (
	"fmt"

	"github.com/m04kA/MST-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано и корректно
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSlotFitsSchedule проверяет начало слота против рабочего дня и перерывов.
// Проверяется только начало слота: сервисное окно последнего слота дня может
// выходить за закрытие, ровно как у генератора слотов. Проверка перерывов
// идет по небуферизованному сервисному окну
func validateSlotFitsSchedule(schedule *domain.DaySchedule, startMin, serviceDuration int) error {
	workStart, workEnd := schedule.WorkHours.Minutes()

	if startMin < workStart || startMin >= workEnd {
		return fmt.Errorf("%w: %s is outside %s-%s",
			ErrOutsideWorkHours, minutesLabel(startMin), schedule.WorkHours.Start, schedule.WorkHours.End)
	}

	if schedule.WindowInBreak(startMin, startMin+serviceDuration) {
		return ErrDuringBreak
	}

	return nil
}

// hasBookingConflict проверяет пересечение буферизованного окна запрошенного
// слота с буферизованными окнами активных записей
func hasBookingConflict(startMin, serviceDuration, bufferTime int, bookings []*domain.Booking) bool {
	requestedEnd := startMin + serviceDuration + bufferTime

	for _, booking := range bookings {
		// Отмененные и завершенные записи интервал не занимают
		if !booking.IsActive() {
			continue
		}

		bookingStart, err := booking.StartTime.Minutes()
		if err != nil {
			continue
		}
		bookingEnd := bookingStart + booking.DurationMinutes + bufferTime

		if domain.IntervalsOverlap(startMin, requestedEnd, bookingStart, bookingEnd) {
			return true
		}
	}

	return false
}

// minutesLabel форматирует минуты с начала суток как HH:MM для сообщений об ошибках
func minutesLabel(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
