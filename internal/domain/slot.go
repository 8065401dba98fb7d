package domain

import "github.com/m04kA/MST-BookingService/pkg/types"

// TimeSlot кандидат на время начала записи в конкретный день
type TimeSlot struct {
	Time types.TimeString

	// IsAvailable слот свободен: не прошел, не попадает на перерыв
	// и не пересекается с активными записями
	IsAvailable bool

	// IsPast начало слота уже прошло на момент генерации
	// Списки слотов нужно перегенерировать для актуальности
	IsPast bool
}

// SlotAvailability сводка доступности по сгенерированному списку слотов
type SlotAvailability struct {
	TotalSlots        int
	AvailableSlots    int
	IsFullyBooked     bool
	NextAvailableSlot *types.TimeString
}

// SummarizeSlots строит сводку доступности по списку слотов
func SummarizeSlots(slots []TimeSlot) SlotAvailability {
	summary := SlotAvailability{TotalSlots: len(slots)}

	for _, slot := range slots {
		if slot.IsAvailable {
			summary.AvailableSlots++
			if summary.NextAvailableSlot == nil {
				t := slot.Time
				summary.NextAvailableSlot = &t
			}
		}
	}

	summary.IsFullyBooked = summary.AvailableSlots == 0
	return summary
}
