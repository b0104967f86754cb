package availability

import (
	"context"
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	FindDay(ctx context.Context, adminID int64, date time.Time) (*domain.DaySchedule, error)
	FindRange(ctx context.Context, adminID int64, start, end time.Time) ([]*domain.DaySchedule, error)
	UpsertSlot(ctx context.Context, adminID int64, date time.Time, dayOfWeek string, label types.TimeLabel, slotType domain.SlotType, available bool) error
	EnsureSlot(ctx context.Context, adminID int64, date time.Time, dayOfWeek string, label types.TimeLabel, slotType domain.SlotType) error
	RemoveSlots(ctx context.Context, adminID int64, date time.Time, labels []types.TimeLabel) error
	PruneBefore(ctx context.Context, adminID int64, cutoff time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
