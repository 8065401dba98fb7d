package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MST-BookingService/pkg/types"
)

var (
	// ErrInvalidTimeWindow возвращается, когда начало окна не раньше его конца
	ErrInvalidTimeWindow = errors.New("domain: window start must be before end")

	// ErrTooManyBreaks возвращается при превышении лимита перерывов в дне
	ErrTooManyBreaks = errors.New("domain: too many breaks per day")
)

// WorkHours рабочее окно мастера в пределах одного дня
type WorkHours struct {
	Start types.TimeString
	End   types.TimeString
}

// NewWorkHours создает рабочее окно с валидацией формата и порядка границ
func NewWorkHours(start, end string) (WorkHours, error) {
	s, err := types.NewTimeStringFromString(start)
	if err != nil {
		return WorkHours{}, fmt.Errorf("work hours start: %w", err)
	}
	e, err := types.NewTimeStringFromString(end)
	if err != nil {
		return WorkHours{}, fmt.Errorf("work hours end: %w", err)
	}
	w := WorkHours{Start: s, End: e}
	if err := w.Validate(); err != nil {
		return WorkHours{}, err
	}
	return w, nil
}

// Validate проверяет формат границ и инвариант start < end
func (w WorkHours) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("work hours start: %w", err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("work hours end: %w", err)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidTimeWindow, w.Start, w.End)
	}
	return nil
}

// Minutes возвращает границы окна в минутах с начала суток
// Окно обязано быть провалидировано при создании
func (w WorkHours) Minutes() (start, end int) {
	start, _ = w.Start.Minutes()
	end, _ = w.End.Minutes()
	return start, end
}

// WorkMinutes возвращает длительность рабочего окна в минутах
func (w WorkHours) WorkMinutes() int {
	start, end := w.Minutes()
	return end - start
}

// Break перерыв в пределах рабочего дня
// Перерывы могут пересекаться между собой: исключенное время считается их объединением
type Break struct {
	Start types.TimeString
	End   types.TimeString
}

// NewBreak создает перерыв с валидацией формата и порядка границ
func NewBreak(start, end string) (Break, error) {
	s, err := types.NewTimeStringFromString(start)
	if err != nil {
		return Break{}, fmt.Errorf("break start: %w", err)
	}
	e, err := types.NewTimeStringFromString(end)
	if err != nil {
		return Break{}, fmt.Errorf("break end: %w", err)
	}
	b := Break{Start: s, End: e}
	if err := b.Validate(); err != nil {
		return Break{}, err
	}
	return b, nil
}

// Validate проверяет формат границ и инвариант start < end
func (b Break) Validate() error {
	if err := b.Start.Validate(); err != nil {
		return fmt.Errorf("break start: %w", err)
	}
	if err := b.End.Validate(); err != nil {
		return fmt.Errorf("break end: %w", err)
	}
	if !b.Start.IsBefore(b.End) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidTimeWindow, b.Start, b.End)
	}
	return nil
}

// Minutes возвращает границы перерыва в минутах с начала суток
func (b Break) Minutes() (start, end int) {
	start, _ = b.Start.Minutes()
	end, _ = b.End.Minutes()
	return start, end
}

// DurationMinutes возвращает длительность перерыва в минутах
func (b Break) DurationMinutes() int {
	start, end := b.Minutes()
	return end - start
}

// DaySchedule расписание мастера на конкретную календарную дату
// Отсутствие записи на дату означает, что мастер в этот день не работает
type DaySchedule struct {
	ID        int64
	MasterID  int64
	Date      time.Time
	WorkHours WorkHours
	Breaks    []Break
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет рабочее окно и все перерывы
func (s *DaySchedule) Validate() error {
	if err := s.WorkHours.Validate(); err != nil {
		return err
	}
	if len(s.Breaks) > MaxBreaksPerDay {
		return fmt.Errorf("%w: %d > %d", ErrTooManyBreaks, len(s.Breaks), MaxBreaksPerDay)
	}
	for i, br := range s.Breaks {
		if err := br.Validate(); err != nil {
			return fmt.Errorf("break #%d: %w", i+1, err)
		}
	}
	return nil
}

// TotalBreakMinutes возвращает суммарную длительность перерывов
// Пересекающиеся перерывы не дедуплицируются: это поведение легаси-оценки
// занятости дня и сохраняется намеренно (см. generateSlots vs availableDates)
func (s *DaySchedule) TotalBreakMinutes() int {
	total := 0
	for _, br := range s.Breaks {
		total += br.DurationMinutes()
	}
	return total
}

// WindowInBreak проверяет, пересекается ли окно [startMin, endMin) с каким-либо перерывом
func (s *DaySchedule) WindowInBreak(startMin, endMin int) bool {
	for _, br := range s.Breaks {
		bs, be := br.Minutes()
		if IntervalsOverlap(startMin, endMin, bs, be) {
			return true
		}
	}
	return false
}
