package get_available_dates

import (
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
)

// availableDates отбирает даты, на которые по оценке емкости еще есть место.
//
// Для каждой даты с расписанием:
// 1. Даты строго раньше сегодняшней пропускаются (сравнение только дат, без времени).
// 2. possibleSlots = (рабочие минуты - минуты перерывов) / (длительность + буфер),
//    целочисленно. Пересекающиеся перерывы не дедуплицируются, поведение
//    совпадает с легаси-оценкой и может занижать емкость.
// 3. Считаются записи даты в активных статусах.
// 4. Дата доступна, если записей меньше possibleSlots.
//
// Это дешевая оценка емкости для календарного UI, а не точный перерасчет
// свободных слотов. Авторитетный список слотов дает генератор слотов
func availableDates(
	schedules []*domain.DaySchedule,
	bookings []*domain.Booking,
	serviceDuration int,
	bufferTime int,
	now time.Time,
) []time.Time {
	bookedPerDate := countActiveBookingsPerDate(bookings)
	today := dateOnly(now)
	step := serviceDuration + bufferTime

	dates := make([]time.Time, 0)

	for _, schedule := range schedules {
		date := dateOnly(schedule.Date)
		if date.Before(today) {
			continue
		}

		possibleSlots := (schedule.WorkHours.WorkMinutes() - schedule.TotalBreakMinutes()) / step
		if bookedPerDate[date.Format(domain.DateFormat)] < possibleSlots {
			dates = append(dates, date)
		}
	}

	return dates
}

// countActiveBookingsPerDate группирует активные записи по дате
func countActiveBookingsPerDate(bookings []*domain.Booking) map[string]int {
	counts := make(map[string]int)
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		counts[booking.BookingDate.Format(domain.DateFormat)]++
	}
	return counts
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
