package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AdminID <= 0 {
		return fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.TimeSlot.IsZero() {
		return fmt.Errorf("%w: timeSlot is required", ErrInvalidInput)
	}
	if err := req.TimeSlot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeSlot: %v", ErrInvalidInput, err)
	}

	if !req.Mode.IsValid() {
		return fmt.Errorf("%w: invalid session mode %q", ErrInvalidInput, req.Mode)
	}

	if req.Duration != 0 &&
		(req.Duration < domain.MinSessionDurationMinutes || req.Duration > domain.MaxSessionDurationMinutes) {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}

	if strings.TrimSpace(req.Client.FirstName) == "" {
		return fmt.Errorf("%w: client firstName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Client.LastName) == "" {
		return fmt.Errorf("%w: client lastName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Client.Email) == "" {
		return fmt.Errorf("%w: client email is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	return nil
}

// startOfDay обнуляет время, оставляя календарную дату
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
