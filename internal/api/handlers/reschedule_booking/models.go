package reschedule_booking

import (
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	rescheduleBooking "github.com/dlazarev-dev/TPS-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model.
// Все поля опциональны: отсутствующее поле не меняется
type RescheduleBookingRequest struct {
	Date            *string `json:"date,omitempty"` // "2025-06-10"
	Time            *string `json:"time,omitempty"` // "10:00 AM"
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	AdminID         int64   `json:"adminId"`
	Date            string  `json:"date"`
	TimeSlot        string  `json:"timeSlot"`
	Mode            string  `json:"mode"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, adminID int64) (*rescheduleBooking.Request, error) {
	req := &rescheduleBooking.Request{
		BookingID:   bookingID,
		AdminID:     adminID,
		NewDuration: r.DurationMinutes,
		NewNotes:    r.Notes,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.NewDate = &date
	}

	if r.Time != nil {
		label, err := types.ParseTimeLabel(*r.Time)
		if err != nil {
			return nil, err
		}
		req.NewTime = &label
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		AdminID:         resp.AdminID,
		Date:            resp.Date.Format(domain.DateFormat),
		TimeSlot:        resp.TimeSlot.String(),
		Mode:            string(resp.Mode),
		DurationMinutes: resp.DurationMinutes,
		Status:          string(resp.Status),
		Notes:           resp.Notes,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
