package models

import (
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
)

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	AdminID         int64   `json:"adminId"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	DOB             *string `json:"dob,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Mode            string  `json:"mode"`
	Date            string  `json:"date"`     // "2025-06-10"
	TimeSlot        string  `json:"timeSlot"` // "10:00 AM"
	DurationMinutes int     `json:"durationMinutes"`
	Notes           *string `json:"notes,omitempty"`
	Status          string  `json:"status"`
	PaymentID       *string `json:"paymentId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует доменное бронирование в ответ
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		AdminID:         b.AdminID,
		FirstName:       b.Client.FirstName,
		LastName:        b.Client.LastName,
		Email:           b.Client.Email,
		DOB:             b.Client.DOB,
		Phone:           b.Client.Phone,
		Mode:            string(b.Mode),
		Date:            b.SessionDate.Format(domain.DateFormat),
		TimeSlot:        b.TimeSlot.String(),
		DurationMinutes: b.DurationMinutes,
		Notes:           b.Notes,
		Status:          string(b.Status),
		PaymentID:       b.PaymentID,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список доменных бронирований в ответ
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
