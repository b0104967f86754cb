package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	bookingRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/booking"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/integrations/notifyservice"
)

// Scheduler периодически обходит оплаченные бронирования и публикует
// напоминания за 24 часа и за 10 минут до начала сессии.
// Каждое напоминание уходит не более одного раза: флаг в БД выставляется
// условно до публикации, повторный проход видит уже взведенный флаг.
type Scheduler struct {
	bookings     BookingRepository
	notify       NotifyClient
	timeProvider TimeProvider
	logger       Logger

	cron       *cron.Cron
	windowHalf time.Duration
}

// NewScheduler создает новый планировщик напоминаний.
// windowHalf задает полуширину окна совпадения вокруг целевого момента;
// она должна покрывать период запуска, иначе сессии между проходами
// останутся без напоминания.
func NewScheduler(
	bookings BookingRepository,
	notify NotifyClient,
	windowHalf time.Duration,
	logger Logger,
) *Scheduler {
	return &Scheduler{
		bookings:     bookings,
		notify:       notify,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		windowHalf:   windowHalf,
	}
}

// Start запускает планировщик по cron-выражению (например, "0,30 * * * *")
func (s *Scheduler) Start(cronSpec string) error {
	c := cron.New()
	_, err := c.AddFunc(cronSpec, func() {
		s.Sweep(context.Background())
	})
	if err != nil {
		return fmt.Errorf("reminder: invalid cron spec %q: %w", cronSpec, err)
	}
	c.Start()
	s.cron = c
	s.logger.Info("ReminderScheduler: started with spec %q, window ±%s", cronSpec, s.windowHalf)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего прохода
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("ReminderScheduler: stopped")
}

// Sweep выполняет один проход обоих видов напоминаний
func (s *Scheduler) Sweep(ctx context.Context) {
	s.runPass(ctx, domain.ReminderKind24h, time.Duration(domain.Reminder24LeadMinutes)*time.Minute)
	s.runPass(ctx, domain.ReminderKind10m, time.Duration(domain.Reminder10LeadMinutes)*time.Minute)
}

// runPass обрабатывает один вид напоминаний: выбирает кандидатов по дате,
// отфильтровывает по точному моменту начала и публикует по одному.
// Ошибка одного бронирования логируется и не прерывает остальные.
func (s *Scheduler) runPass(ctx context.Context, kind domain.ReminderKind, lead time.Duration) {
	now := s.timeProvider.Now()
	target := now.Add(lead)
	windowStart := target.Add(-s.windowHalf)
	windowEnd := target.Add(s.windowHalf)

	candidates, err := s.bookings.DueForReminder(ctx, kind,
		startOfDay(windowStart), startOfDay(windowEnd))
	if err != nil {
		s.logger.Error("ReminderScheduler: failed to load %s candidates: %v", kind, err)
		return
	}

	sent := 0
	for _, b := range candidates {
		startsAt, err := b.StartsAt()
		if err != nil {
			s.logger.Error("ReminderScheduler: booking %d has invalid time slot %q: %v",
				b.ID, b.TimeSlot, err)
			continue
		}
		if startsAt.Before(windowStart) || startsAt.After(windowEnd) {
			continue
		}

		// Флаг взводится до публикации: при конкурирующих инстансах
		// проигравший получает ErrAlreadySent и пропускает бронирование
		if err := s.bookings.MarkReminderSent(ctx, b.ID, kind); err != nil {
			if errors.Is(err, bookingRepo.ErrAlreadySent) {
				continue
			}
			s.logger.Error("ReminderScheduler: failed to mark %s reminder for booking %d: %v",
				kind, b.ID, err)
			continue
		}

		event := notifyservice.ReminderEvent{
			AdminID:       b.AdminID,
			BookingID:     b.ID,
			Kind:          string(kind),
			RecipientName: b.Client.FullName(),
			WhenLocal:     startsAt.Format("2006-01-02 03:04 PM"),
		}
		if err := s.notify.PublishReminder(ctx, event); err != nil {
			s.logger.Error("ReminderScheduler: failed to publish %s reminder for booking %d: %v",
				kind, b.ID, err)
			continue
		}
		sent++
	}

	if len(candidates) > 0 || sent > 0 {
		s.logger.Info("ReminderScheduler: %s pass done, candidates=%d, sent=%d",
			kind, len(candidates), sent)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
