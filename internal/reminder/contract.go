package reminder

import (
	"context"
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	DueForReminder(ctx context.Context, kind domain.ReminderKind, startDate, endDate time.Time) ([]*domain.Booking, error)
	MarkReminderSent(ctx context.Context, id int64, kind domain.ReminderKind) error
}

// NotifyClient интерфейс клиента сервиса уведомлений
type NotifyClient interface {
	PublishReminder(ctx context.Context, event notifyservice.ReminderEvent) error
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
