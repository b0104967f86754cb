package get_admin_bookings

import (
	"context"
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetAdminDay(ctx context.Context, adminID int64, date time.Time) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
