package set_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/api/middleware"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/availability"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

const (
	msgInvalidAdminID     = "некорректный ID админа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается hh:mm AM/PM"
	msgInvalidSlot        = "некорректные параметры слота"
	msgForeignSchedule    = "доступ к чужому расписанию запрещен"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admins/{adminId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	adminID, err := strconv.ParseInt(vars["adminId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admins/{id}/availability - Invalid admin ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	authID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok || authID != adminID {
		h.logger.Warn("PUT /admins/{id}/availability - Foreign schedule: admin_id=%d, auth_id=%d", adminID, authID)
		handlers.RespondError(w, http.StatusForbidden, msgForeignSchedule)
		return
	}

	var req SetSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admins/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(adminID)
	if err != nil {
		h.logger.Warn("PUT /admins/{id}/availability - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidTimeLabel) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	if err := h.service.SetSlot(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /admins/{id}/availability - Invalid slot: admin_id=%d, error=%v", adminID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("PUT /admins/{id}/availability - Failed to set slot: admin_id=%d, error=%v",
				adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admins/{id}/availability - Slot updated: admin_id=%d, date=%s, time=%s, available=%t",
		adminID, req.Date, req.Time, req.Available)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
