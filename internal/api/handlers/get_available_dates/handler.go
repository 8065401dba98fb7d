package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MST-BookingService/internal/api/handlers"
	"github.com/m04kA/MST-BookingService/internal/api/middleware"
	getAvailableDates "github.com/m04kA/MST-BookingService/internal/usecase/get_available_dates"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDates     = "некорректный формат дат, ожидается YYYY-MM-DD"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-dates
// Query params: from, to (опционально, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем serviceId из URL
	serviceIDStr := vars["serviceId"]
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-dates - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	useCaseReq, err := ToUseCaseRequest(serviceID, userID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-dates - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/available-dates - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/available-dates - Invalid input: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /services/{id}/available-dates - Failed to get dates: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /services/{id}/available-dates - Dates retrieved successfully: service_id=%d, count=%d",
		serviceID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, response)
}
