package set_availability_bulk

import (
	"context"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	SetSlotsBulk(ctx context.Context, req *models.SetSlotsBulkRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
