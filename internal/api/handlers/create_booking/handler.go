package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/MST-BookingService/internal/api/handlers"
	"github.com/m04kA/MST-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/MST-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgNoSchedule         = "мастер не работает в выбранную дату"
	msgPastTime           = "выбранное время уже прошло"
	msgOutsideWorkHours   = "выбранное время вне рабочих часов мастера"
	msgDuringBreak        = "выбранное время попадает на перерыв"
	msgSlotTaken          = "выбранный временной слот уже занят"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrNoScheduleForDate):
			h.logger.Warn("POST /bookings - No schedule for date: user_id=%d, service_id=%d, date=%s",
				userID, req.ServiceID, req.BookingDate)
			handlers.RespondBadRequest(w, msgNoSchedule)

		case errors.Is(err, createBooking.ErrPastTime):
			h.logger.Warn("POST /bookings - Past time: user_id=%d, date=%s, time=%s",
				userID, req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgPastTime)

		case errors.Is(err, createBooking.ErrOutsideWorkHours):
			h.logger.Warn("POST /bookings - Outside work hours: user_id=%d, date=%s, time=%s",
				userID, req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkHours)

		case errors.Is(err, createBooking.ErrDuringBreak):
			h.logger.Warn("POST /bookings - Slot during break: user_id=%d, date=%s, time=%s",
				userID, req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgDuringBreak)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, service_id=%d, error=%v",
				userID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, status=%s",
		result.ID, userID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
