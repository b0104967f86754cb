package get_admin_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/api/middleware"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidAdminID  = "некорректный ID админа"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForeignSchedule = "доступ к чужому расписанию запрещен"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admins/{adminId}/bookings
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	adminID, err := strconv.ParseInt(vars["adminId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /admins/{id}/bookings - Invalid admin ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	authID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok || authID != adminID {
		h.logger.Warn("GET /admins/{id}/bookings - Foreign schedule: admin_id=%d, auth_id=%d", adminID, authID)
		handlers.RespondError(w, http.StatusForbidden, msgForeignSchedule)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /admins/{id}/bookings - Missing date: admin_id=%d", adminID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /admins/{id}/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetAdminDay(r.Context(), adminID, date)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admins/{id}/bookings - Invalid input: admin_id=%d, error=%v", adminID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /admins/{id}/bookings - Failed to get bookings: admin_id=%d, error=%v",
				adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admins/{id}/bookings - Bookings retrieved: admin_id=%d, date=%s, count=%d",
		adminID, dateStr, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
