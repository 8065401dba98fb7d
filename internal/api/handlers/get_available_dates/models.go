package get_available_dates

import (
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
	getAvailableDates "github.com/m04kA/MST-BookingService/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	ServiceID int64    `json:"serviceId"`
	MasterID  int64    `json:"masterId"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	Dates     []string `json:"dates"`
}

// ToUseCaseRequest создает запрос use case из path и query параметров
// Пустые from/to означают окно по умолчанию
func ToUseCaseRequest(serviceID, userID int64, fromStr, toStr string) (*getAvailableDates.Request, error) {
	req := &getAvailableDates.Request{
		UserID:    userID,
		ServiceID: serviceID,
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.To = to
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]string, len(resp.Dates))
	for i, date := range resp.Dates {
		dates[i] = date.Format(domain.DateFormat)
	}

	return &AvailableDatesResponse{
		ServiceID: resp.ServiceID,
		MasterID:  resp.MasterID,
		From:      resp.From.Format(domain.DateFormat),
		To:        resp.To.Format(domain.DateFormat),
		Dates:     dates,
	}
}
