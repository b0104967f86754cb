package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/availability"
)

const (
	msgInvalidAdminID = "некорректный ID админа"
	msgInvalidStart   = "некорректный формат параметра start, ожидается YYYY-MM-DD"
	msgInvalidEnd     = "некорректный формат параметра end, ожидается YYYY-MM-DD"
	msgInvalidRange   = "некорректный диапазон дат"

	// Окно по умолчанию, когда клиент не указал границы
	defaultRangeDays = 28
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

// Handle GET /api/v1/admins/{adminId}/availability
// Query params: start (optional, YYYY-MM-DD, default сегодня),
// end (optional, YYYY-MM-DD, default start+28 дней)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	adminID, err := strconv.ParseInt(vars["adminId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /admins/{id}/availability - Invalid admin ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	start := time.Now()
	if startStr := r.URL.Query().Get("start"); startStr != "" {
		start, err = time.Parse(domain.DateFormat, startStr)
		if err != nil {
			h.logger.Warn("GET /admins/{id}/availability - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStart)
			return
		}
	}

	end := start.AddDate(0, 0, defaultRangeDays)
	if endStr := r.URL.Query().Get("end"); endStr != "" {
		end, err = time.Parse(domain.DateFormat, endStr)
		if err != nil {
			h.logger.Warn("GET /admins/{id}/availability - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEnd)
			return
		}
	}

	days, err := h.service.GetRange(r.Context(), adminID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput), errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("GET /admins/{id}/availability - Invalid range: admin_id=%d, error=%v", adminID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /admins/{id}/availability - Failed to get availability: admin_id=%d, error=%v",
				adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admins/{id}/availability - Availability retrieved: admin_id=%d, days=%d",
		adminID, len(days))
	handlers.RespondJSON(w, http.StatusOK, &AvailabilityResponse{
		AdminID: adminID,
		Days:    days,
	})
}
