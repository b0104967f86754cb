package set_availability_bulk

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
	msgInvalidSlots       = "некорректные параметры слотов"
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

// Handle PUT /api/v1/admins/{adminId}/availability/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	adminID, err := strconv.ParseInt(vars["adminId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admins/{id}/availability/bulk - Invalid admin ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	authID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok || authID != adminID {
		h.logger.Warn("PUT /admins/{id}/availability/bulk - Foreign schedule: admin_id=%d, auth_id=%d", adminID, authID)
		handlers.RespondError(w, http.StatusForbidden, msgForeignSchedule)
		return
	}

	var req SetSlotsBulkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admins/{id}/availability/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(adminID)
	if err != nil {
		h.logger.Warn("PUT /admins/{id}/availability/bulk - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidTimeLabel) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	if err := h.service.SetSlotsBulk(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /admins/{id}/availability/bulk - Invalid slots: admin_id=%d, error=%v", adminID, err)
			handlers.RespondBadRequest(w, msgInvalidSlots)

		default:
			h.logger.Error("PUT /admins/{id}/availability/bulk - Failed to set slots: admin_id=%d, error=%v",
				adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admins/{id}/availability/bulk - Slots updated: admin_id=%d, date=%s, count=%d, available=%t",
		adminID, req.Date, len(req.Times), req.Available)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
