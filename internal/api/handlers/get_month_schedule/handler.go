package get_month_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/MST-BookingService/internal/api/handlers"
	"github.com/m04kA/MST-BookingService/internal/api/middleware"
	"github.com/m04kA/MST-BookingService/internal/domain"
	"github.com/m04kA/MST-BookingService/internal/service/schedule"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgMissingMonth    = "месяц обязателен"
	msgInvalidMonth    = "некорректный формат месяца, ожидается YYYY-MM"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/schedule
// Query params: month (required, YYYY-MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/schedule - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		h.logger.Warn("GET /masters/{id}/schedule - Missing month: master_id=%d", masterID)
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	month, err := time.Parse(domain.MonthFormat, monthStr)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/schedule - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /masters/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetMonth(r.Context(), masterID, requesterID, month)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /masters/{id}/schedule - Access denied: master_id=%d, requester_id=%d",
				masterID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /masters/{id}/schedule - Failed to get schedule: master_id=%d, month=%s, error=%v",
				masterID, monthStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/schedule - Schedule retrieved successfully: master_id=%d, month=%s, days=%d",
		masterID, monthStr, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
