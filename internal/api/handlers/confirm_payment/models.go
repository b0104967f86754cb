package confirm_payment

import (
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	confirmPayment "github.com/dlazarev-dev/TPS-SchedulingService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	PaymentID string `json:"paymentId"`
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	ID        int64   `json:"id"`
	AdminID   int64   `json:"adminId"`
	Date      string  `json:"date"`
	TimeSlot  string  `json:"timeSlot"`
	Status    string  `json:"status"`
	PaymentID *string `json:"paymentId,omitempty"`
	UpdatedAt string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		ID:        resp.ID,
		AdminID:   resp.AdminID,
		Date:      resp.Date.Format(domain.DateFormat),
		TimeSlot:  resp.TimeSlot.String(),
		Status:    string(resp.Status),
		PaymentID: resp.PaymentID,
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
