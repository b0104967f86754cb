package copy_week

import (
	"context"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	CopyDayToWeek(ctx context.Context, req *models.CopyDayToWeekRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
