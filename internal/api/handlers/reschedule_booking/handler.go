package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/api/middleware"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	rescheduleBooking "github.com/dlazarev-dev/TPS-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается hh:mm AM/PM"
	msgInvalidChange      = "некорректные данные переноса"
	msgBookingNotFound    = "бронирование не найдено"
	msgForeignBooking     = "бронирование принадлежит другому админу"
	msgNoSchedule         = "на выбранную дату нет расписания"
	msgSlotNotOffered     = "выбранное время не предлагается на эту дату"
	msgSlotTaken          = "выбранное время уже занято, выберите другое"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	adminID, _ := middleware.AdminIDFromContext(r.Context())

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, adminID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidTimeLabel) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid change: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidChange)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrForbidden):
			h.logger.Warn("PATCH /bookings/{id} - Foreign booking: booking_id=%d, admin_id=%d", bookingID, adminID)
			handlers.RespondError(w, http.StatusForbidden, msgForeignBooking)

		case errors.Is(err, rescheduleBooking.ErrNoScheduleForDate):
			h.logger.Warn("PATCH /bookings/{id} - No schedule for date: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNoSchedule)

		case errors.Is(err, rescheduleBooking.ErrSlotNotOffered):
			h.logger.Warn("PATCH /bookings/{id} - Slot not offered: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgSlotNotOffered)

		case errors.Is(err, rescheduleBooking.ErrSlotAlreadyTaken):
			h.logger.Warn("PATCH /bookings/{id} - Slot already taken: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to reschedule: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking rescheduled: booking_id=%d, date=%s, time=%s",
		result.ID, result.Date.Format(domain.DateFormat), result.TimeSlot)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
