package get_time_slots

import (
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
	"github.com/m04kA/MST-BookingService/pkg/types"
)

// Request модель запроса на получение слотов на день
type Request struct {
	UserID    int64     // ID пользователя (для логирования, не влияет на результат)
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов на день
type Response struct {
	Date         time.Time         // Дата, на которую запрашивались слоты
	MasterID     int64             // ID мастера
	ServiceID    int64             // ID услуги
	IsWorkingDay bool              // Работает ли мастер в этот день
	Slots        []domain.TimeSlot // Все слоты дня с флагами доступности

	// Сводка по дню для календарного UI
	TotalSlots        int
	AvailableSlots    int
	IsFullyBooked     bool
	NextAvailableSlot *types.TimeString
}
