package get_master_bookings

import (
	"strconv"
	"time"

	"github.com/m04kA/MST-BookingService/internal/domain"
	"github.com/m04kA/MST-BookingService/internal/service/bookings/models"
)

// ToServiceRequest создает запрос сервиса из path и query параметров
func ToServiceRequest(masterID, requesterID int64, fromStr, toStr, statusStr, includeInactiveStr string) (*models.GetMasterBookingsRequest, error) {
	req := &models.GetMasterBookingsRequest{
		RequesterID: requesterID,
		MasterID:    masterID,
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
