package delete_day_schedule

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
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgNotFound        = "расписание на эту дату не найдено"
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

// Handle DELETE /api/v1/masters/{masterId}/schedule/{date}
// Делает дату нерабочей, существующие записи остаются на совести мастера
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /masters/{id}/schedule/{date} - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("DELETE /masters/{id}/schedule/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /masters/{id}/schedule/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.DeleteDay(r.Context(), masterID, requesterID, date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrScheduleNotFound):
			h.logger.Warn("DELETE /masters/{id}/schedule/{date} - Not found: master_id=%d, date=%s",
				masterID, vars["date"])
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /masters/{id}/schedule/{date} - Access denied: master_id=%d, requester_id=%d",
				masterID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /masters/{id}/schedule/{date} - Failed to delete schedule: master_id=%d, error=%v",
				masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /masters/{id}/schedule/{date} - Schedule deleted successfully: master_id=%d, date=%s",
		masterID, vars["date"])
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
