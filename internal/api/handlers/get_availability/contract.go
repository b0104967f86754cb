package get_availability

import (
	"context"
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetRange(ctx context.Context, adminID int64, start, end time.Time) ([]models.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
