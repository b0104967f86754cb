package create_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/api/middleware"
	createBooking "github.com/dlazarev-dev/TPS-SchedulingService/internal/usecase/create_booking"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAdminID     = "некорректный ID админа"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается hh:mm AM/PM"
	msgInvalidBooking     = "некорректные данные бронирования"
	msgNoSchedule         = "на выбранную дату нет расписания"
	msgSlotNotOffered     = "выбранное время не предлагается на эту дату"
	msgSlotTaken          = "выбранное время уже занято, выберите другое"
	msgForeignSchedule    = "доступ к чужому расписанию запрещен"
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
// Клиентская запись: бронирование создается со статусом "pending payment"
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.AdminID <= 0 {
		h.logger.Warn("POST /bookings - Invalid admin ID: %d", req.AdminID)
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	h.execute(w, r, &req, req.AdminID, false, "POST /bookings")
}

// HandleAdminDirect POST /api/v1/admins/{adminId}/bookings
// Прямая запись админом: бронирование создается сразу со статусом "confirmed"
func (h *Handler) HandleAdminDirect(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	adminID, err := strconv.ParseInt(vars["adminId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admins/{id}/bookings - Invalid admin ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	authID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok || authID != adminID {
		h.logger.Warn("POST /admins/{id}/bookings - Foreign schedule: admin_id=%d, auth_id=%d", adminID, authID)
		handlers.RespondError(w, http.StatusForbidden, msgForeignSchedule)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admins/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.execute(w, r, &req, adminID, true, "POST /admins/{id}/bookings")
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, req *CreateBookingRequest,
	adminID int64, confirmed bool, route string) {

	useCaseReq, err := req.ToUseCaseRequest(adminID, confirmed)
	if err != nil {
		h.logger.Warn("%s - Failed to parse request: %v", route, err)
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
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("%s - Invalid booking data: admin_id=%d, error=%v", route, adminID, err)
			handlers.RespondBadRequest(w, msgInvalidBooking)

		case errors.Is(err, createBooking.ErrNoScheduleForDate):
			h.logger.Warn("%s - No schedule for date: admin_id=%d, date=%s", route, adminID, req.Date)
			handlers.RespondNotFound(w, msgNoSchedule)

		case errors.Is(err, createBooking.ErrSlotNotOffered):
			h.logger.Warn("%s - Slot not offered: admin_id=%d, date=%s, time=%s", route, adminID, req.Date, req.Time)
			handlers.RespondNotFound(w, msgSlotNotOffered)

		case errors.Is(err, createBooking.ErrSlotAlreadyTaken):
			h.logger.Warn("%s - Slot already taken: admin_id=%d, date=%s, time=%s", route, adminID, req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		default:
			h.logger.Error("%s - Failed to create booking: admin_id=%d, error=%v", route, adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking created successfully: booking_id=%d, admin_id=%d, status=%s",
		route, result.ID, adminID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
