package get_master_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MST-BookingService/internal/api/handlers"
	"github.com/m04kA/MST-BookingService/internal/api/middleware"
	"github.com/m04kA/MST-BookingService/internal/service/bookings"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidParams   = "некорректные параметры запроса"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/bookings
// Query params: from, to, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем masterId из URL
	vars := mux.Vars(r)
	masterIDStr := vars["masterId"]

	masterID, err := strconv.ParseInt(masterIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/bookings - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	// Получаем requesterID из контекста (через middleware Auth)
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /masters/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	statusStr := r.URL.Query().Get("status")
	includeInactiveStr := r.URL.Query().Get("includeInactive")

	serviceReq, err := ToServiceRequest(masterID, requesterID, fromStr, toStr, statusStr, includeInactiveStr)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем журнал мастера (сервис сам проверит права владельца)
	result, err := h.service.GetMasterBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /masters/{id}/bookings - Access denied: master_id=%d, requester_id=%d",
				masterID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /masters/{id}/bookings - Invalid parameters: master_id=%d, error=%v",
				masterID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /masters/{id}/bookings - Failed to get bookings: master_id=%d, error=%v",
				masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/bookings - Bookings retrieved successfully: master_id=%d, count=%d",
		masterID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
