package set_availability

import (
	"context"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	SetSlot(ctx context.Context, req *models.SetSlotRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
