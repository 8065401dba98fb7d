package get_available_dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MST-BookingService/internal/domain"
	"github.com/m04kA/MST-BookingService/pkg/types"
)

func daySchedule(t *testing.T, date time.Time, start, end string, breaks ...domain.Break) *domain.DaySchedule {
	t.Helper()

	workHours, err := domain.NewWorkHours(start, end)
	require.NoError(t, err)

	return &domain.DaySchedule{
		MasterID:  1,
		Date:      date,
		WorkHours: workHours,
		Breaks:    breaks,
	}
}

func bookingOn(date time.Time, start string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		BookingDate:     date,
		StartTime:       types.TimeString(start),
		DurationMinutes: 60,
		Status:          status,
	}
}

var (
	now   = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	day15 = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	day16 = time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
)

func TestAvailableDates_SkipsPastDates(t *testing.T) {
	past := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	schedules := []*domain.DaySchedule{
		daySchedule(t, past, "09:00", "18:00"),
		daySchedule(t, day15, "09:00", "18:00"),
	}

	dates := availableDates(schedules, nil, 60, 0, now)

	assert.Equal(t, []time.Time{day15}, dates)
}

func TestAvailableDates_TodayIsNotPast(t *testing.T) {
	today := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	schedules := []*domain.DaySchedule{daySchedule(t, today, "09:00", "18:00")}

	// Сравнение только по датам: сегодняшний день остается в выдаче,
	// даже если рабочий день уже частично прошел
	dates := availableDates(schedules, nil, 60, 0, now)

	assert.Equal(t, []time.Time{today}, dates)
}

func TestAvailableDates_CapacityFormula(t *testing.T) {
	// 9 рабочих часов, перерыв 60 минут: (540-60)/75 = 6 слотов
	br, err := domain.NewBreak("13:00", "14:00")
	require.NoError(t, err)
	schedules := []*domain.DaySchedule{daySchedule(t, day15, "09:00", "18:00", br)}

	var bookings []*domain.Booking
	for _, start := range []string{"09:00", "10:15", "11:30", "14:00", "15:15"} {
		bookings = append(bookings, bookingOn(day15, start, domain.StatusConfirmed))
	}

	// 5 записей < 6 слотов: дата еще доступна
	dates := availableDates(schedules, bookings, 60, 15, now)
	assert.Equal(t, []time.Time{day15}, dates)

	// Шестая запись исчерпывает емкость
	bookings = append(bookings, bookingOn(day15, "16:30", domain.StatusPending))
	dates = availableDates(schedules, bookings, 60, 15, now)
	assert.Empty(t, dates)
}

func TestAvailableDates_InactiveBookingsDoNotCount(t *testing.T) {
	schedules := []*domain.DaySchedule{daySchedule(t, day15, "09:00", "10:00")}

	// Емкость (60-0)/60 = 1, но обе записи неактивны
	bookings := []*domain.Booking{
		bookingOn(day15, "09:00", domain.StatusCanceled),
		bookingOn(day15, "09:00", domain.StatusCompleted),
	}

	dates := availableDates(schedules, bookings, 60, 0, now)
	assert.Equal(t, []time.Time{day15}, dates)
}

func TestAvailableDates_BookingsGroupedByDate(t *testing.T) {
	schedules := []*domain.DaySchedule{
		daySchedule(t, day15, "09:00", "10:00"),
		daySchedule(t, day16, "09:00", "10:00"),
	}

	// Запись на 15-е не влияет на 16-е
	bookings := []*domain.Booking{bookingOn(day15, "09:00", domain.StatusConfirmed)}

	dates := availableDates(schedules, bookings, 60, 0, now)
	assert.Equal(t, []time.Time{day16}, dates)
}

func TestAvailableDates_OverlappingBreaksUnderCountCapacity(t *testing.T) {
	// Два пересекающихся перерыва 12:00-14:00 и 13:00-15:00 дают 240 минут
	// вместо реальных 180: легаси-формула не дедуплицирует перерывы
	br1, err := domain.NewBreak("12:00", "14:00")
	require.NoError(t, err)
	br2, err := domain.NewBreak("13:00", "15:00")
	require.NoError(t, err)
	schedules := []*domain.DaySchedule{daySchedule(t, day15, "09:00", "15:00", br1, br2)}

	// (360-240)/60 = 2 слота по оценке, хотя фактически свободно три часа
	bookings := []*domain.Booking{
		bookingOn(day15, "09:00", domain.StatusConfirmed),
		bookingOn(day15, "10:00", domain.StatusConfirmed),
	}

	dates := availableDates(schedules, bookings, 60, 0, now)
	assert.Empty(t, dates)
}
