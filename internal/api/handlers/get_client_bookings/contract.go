package get_client_bookings

import (
	"context"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetClientHistory(ctx context.Context, email string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
