package confirm_payment

import (
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

// Request модель запроса на подтверждение оплаты
type Request struct {
	BookingID int64
	PaymentID string // Идентификатор платежа во внешней платежной системе
}

// Response модель ответа с оплаченным бронированием
type Response struct {
	ID        int64
	AdminID   int64
	Date      time.Time
	TimeSlot  types.TimeLabel
	Status    domain.BookingStatus
	PaymentID *string
	UpdatedAt time.Time
}
