package copy_week

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/api/middleware"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/availability"
)

const (
	msgInvalidAdminID     = "некорректный ID админа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSource      = "некорректный исходный день"
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

// Handle POST /api/v1/admins/{adminId}/availability/copy-week
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	adminID, err := strconv.ParseInt(vars["adminId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admins/{id}/availability/copy-week - Invalid admin ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	authID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok || authID != adminID {
		h.logger.Warn("POST /admins/{id}/availability/copy-week - Foreign schedule: admin_id=%d, auth_id=%d",
			adminID, authID)
		handlers.RespondError(w, http.StatusForbidden, msgForeignSchedule)
		return
	}

	var req CopyDayToWeekRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admins/{id}/availability/copy-week - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(adminID)
	if err != nil {
		h.logger.Warn("POST /admins/{id}/availability/copy-week - Invalid source date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.CopyDayToWeek(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /admins/{id}/availability/copy-week - Invalid source day: admin_id=%d, error=%v",
				adminID, err)
			handlers.RespondBadRequest(w, msgInvalidSource)

		default:
			h.logger.Error("POST /admins/{id}/availability/copy-week - Failed to copy day: admin_id=%d, error=%v",
				adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admins/{id}/availability/copy-week - Day copied: admin_id=%d, source=%s",
		adminID, req.SourceDate)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
