package create_booking

import (
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	createBooking "github.com/dlazarev-dev/TPS-SchedulingService/internal/usecase/create_booking"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

// ClientPayload данные клиента в HTTP запросе
type ClientPayload struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	DOB       *string `json:"dob,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	AdminID         int64         `json:"adminId"`
	Date            string        `json:"date"` // "2025-06-10"
	Time            string        `json:"time"` // "10:00 AM"
	Mode            string        `json:"mode"` // in-person | online
	DurationMinutes int           `json:"durationMinutes,omitempty"`
	Client          ClientPayload `json:"client"`
	Notes           *string       `json:"notes,omitempty"`
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
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени).
// confirmed=true используется прямой записью от имени админа
func (r *CreateBookingRequest) ToUseCaseRequest(adminID int64, confirmed bool) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	label, err := types.ParseTimeLabel(r.Time)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		AdminID:  adminID,
		Date:     date,
		TimeSlot: label,
		Mode:     domain.SessionMode(r.Mode),
		Duration: r.DurationMinutes,
		Client: domain.ClientInfo{
			FirstName: r.Client.FirstName,
			LastName:  r.Client.LastName,
			Email:     r.Client.Email,
			DOB:       r.Client.DOB,
			Phone:     r.Client.Phone,
		},
		Notes:     r.Notes,
		Confirmed: confirmed,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		AdminID:         resp.AdminID,
		Date:            resp.Date.Format(domain.DateFormat),
		TimeSlot:        resp.TimeSlot.String(),
		Mode:            string(resp.Mode),
		DurationMinutes: resp.DurationMinutes,
		Status:          string(resp.Status),
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
