package bookings

import (
	"context"
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByAdminAndDate(ctx context.Context, adminID int64, date time.Time) ([]*domain.Booking, error)
	GetByClientEmail(ctx context.Context, email string) ([]*domain.Booking, error)
	UpdateNotes(ctx context.Context, id int64, notes string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
