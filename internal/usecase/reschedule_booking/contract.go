package reschedule_booking

import (
	"context"
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	bookingRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/booking"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateSession(ctx context.Context, id int64, upd bookingRepo.SessionUpdate) error
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	OccupySlot(ctx context.Context, adminID int64, date time.Time, label types.TimeLabel) error
	FreeSlot(ctx context.Context, adminID int64, date time.Time, label types.TimeLabel) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
