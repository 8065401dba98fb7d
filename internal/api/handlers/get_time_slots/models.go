package get_time_slots

import (
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
	getTimeSlots "github.com/m04kA/MST-BookingService/internal/usecase/get_time_slots"
)

// TimeSlotsResponse HTTP response model
type TimeSlotsResponse struct {
	Date         string     `json:"date"`
	MasterID     int64      `json:"masterId"`
	ServiceID    int64      `json:"serviceId"`
	IsWorkingDay bool       `json:"isWorkingDay"`
	Slots        []TimeSlot `json:"slots"`

	TotalSlots        int     `json:"totalSlots"`
	AvailableSlots    int     `json:"availableSlots"`
	IsFullyBooked     bool    `json:"isFullyBooked"`
	NextAvailableSlot *string `json:"nextAvailableSlot,omitempty"`
}

// TimeSlot модель временного слота
type TimeSlot struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"isAvailable"`
	IsPast      bool   `json:"isPast"`
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(serviceID, userID int64, dateStr string) (*getTimeSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getTimeSlots.Request{
		UserID:    userID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTimeSlots.Response) *TimeSlotsResponse {
	slots := make([]TimeSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = TimeSlot{
			Time:        slot.Time.String(),
			IsAvailable: slot.IsAvailable,
			IsPast:      slot.IsPast,
		}
	}

	var nextSlot *string
	if resp.NextAvailableSlot != nil {
		s := resp.NextAvailableSlot.String()
		nextSlot = &s
	}

	return &TimeSlotsResponse{
		Date:              resp.Date.Format(domain.DateFormat),
		MasterID:          resp.MasterID,
		ServiceID:         resp.ServiceID,
		IsWorkingDay:      resp.IsWorkingDay,
		Slots:             slots,
		TotalSlots:        resp.TotalSlots,
		AvailableSlots:    resp.AvailableSlots,
		IsFullyBooked:     resp.IsFullyBooked,
		NextAvailableSlot: nextSlot,
	}
}
