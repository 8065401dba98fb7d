package get_time_slots

import (
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
	"github.com/m04kA/MST-BookingService/pkg/types"
)

// generateSlots генерирует все кандидаты на время начала записи для одного дня.
// Слоты идут от начала рабочего дня с фиксированным шагом serviceDuration + bufferTime,
// пока начало кандидата строго раньше конца рабочего дня.
//
// Для каждого кандидата t:
// - Слот занят перерывом, если сервисное окно [t, t+serviceDuration) пересекается
//   с окном любого перерыва.
// - Слот занят записью, если буферизованное окно [t, t+serviceDuration+bufferTime)
//   пересекается с буферизованным окном любой активной записи.
// - Слот прошел, если now позже момента начала слота в запрошенную дату.
//
// Границы окон полуоткрытые: запись, заканчивающаяся ровно в начале слота,
// пересечением не считается.
//
// Хвост буфера последнего слота может выходить за конец рабочего дня.
// Буфер - это время на уборку, а не бронируемое время, поэтому такие слоты
// генерируются и это поведение сохраняется сознательно
func generateSlots(
	schedule *domain.DaySchedule,
	serviceDuration int,
	bufferTime int,
	bookings []*domain.Booking,
	date time.Time,
	now time.Time,
) []domain.TimeSlot {
	workStart, workEnd := schedule.WorkHours.Minutes()
	step := serviceDuration + bufferTime

	occupied := bufferedBookingWindows(bookings, bufferTime)

	slots := make([]domain.TimeSlot, 0)

	for t := workStart; t < workEnd; t += step {
		serviceEnd := t + serviceDuration
		bufferedEnd := serviceEnd + bufferTime

		slotTime, err := types.NewTimeStringFromMinutes(t)
		if err != nil {
			break
		}

		inBreak := schedule.WindowInBreak(t, serviceEnd)
		booked := overlapsAny(t, bufferedEnd, occupied)
		isPast := isSlotPast(slotTime, date, now)

		slots = append(slots, domain.TimeSlot{
			Time:        slotTime,
			IsAvailable: !inBreak && !booked && !isPast,
			IsPast:      isPast,
		})
	}

	return slots
}

// window занятый интервал в минутах с начала суток, полуоткрытый [Start, End)
type window struct {
	Start int
	End   int
}

// bufferedBookingWindows строит буферизованные окна активных записей.
// Каждая запись занимает [start, start+duration+bufferTime)
func bufferedBookingWindows(bookings []*domain.Booking, bufferTime int) []window {
	windows := make([]window, 0, len(bookings))

	for _, booking := range bookings {
		// Отмененные и завершенные записи интервал не занимают
		if !booking.IsActive() {
			continue
		}

		start, err := booking.StartTime.Minutes()
		if err != nil {
			continue
		}

		windows = append(windows, window{
			Start: start,
			End:   start + booking.DurationMinutes + bufferTime,
		})
	}

	return windows
}

// overlapsAny проверяет пересечение окна [start, end) с любым из занятых окон
func overlapsAny(start, end int, windows []window) bool {
	for _, w := range windows {
		if domain.IntervalsOverlap(start, end, w.Start, w.End) {
			return true
		}
	}
	return false
}

// isSlotPast проверяет, что начало слота в указанную дату уже прошло
func isSlotPast(slotTime types.TimeString, date time.Time, now time.Time) bool {
	slotStart, err := slotTime.OnDate(date)
	if err != nil {
		return true
	}
	return now.After(slotStart)
}
