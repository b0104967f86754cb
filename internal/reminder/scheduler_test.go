package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	bookingRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/booking"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/integrations/notifyservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type markCall struct {
	id   int64
	kind domain.ReminderKind
}

type fakeBookingRepo struct {
	byKind   map[domain.ReminderKind][]*domain.Booking
	dueErr   error
	markErrs map[int64]error
	marks    []markCall
}

func (f *fakeBookingRepo) DueForReminder(_ context.Context, kind domain.ReminderKind, _, _ time.Time) ([]*domain.Booking, error) {
	if f.dueErr != nil {
		return nil, f.dueErr
	}
	return f.byKind[kind], nil
}

func (f *fakeBookingRepo) MarkReminderSent(_ context.Context, id int64, kind domain.ReminderKind) error {
	if err, ok := f.markErrs[id]; ok {
		return err
	}
	f.marks = append(f.marks, markCall{id: id, kind: kind})
	return nil
}

type fakeNotifyClient struct {
	events     []notifyservice.ReminderEvent
	publishErr error
}

func (f *fakeNotifyClient) PublishReminder(_ context.Context, event notifyservice.ReminderEvent) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.events = append(f.events, event)
	return nil
}

func newTestScheduler(repo *fakeBookingRepo, notify *fakeNotifyClient, now time.Time) *Scheduler {
	s := NewScheduler(repo, notify, 30*time.Minute, nopLogger{})
	s.timeProvider = &fixedClock{now: now}
	return s
}

func TestScheduler_Sweep_24hPass(t *testing.T) {
	// Проход в 10:00; сессия завтра в 10:00 попадает ровно в целевой момент
	now := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	inWindow := &domain.Booking{
		ID:          1,
		AdminID:     1,
		Client:      domain.ClientInfo{FirstName: "Anna", LastName: "Ivanova"},
		SessionDate: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "10:00 AM",
		Status:      domain.StatusPaid,
	}
	outOfWindow := &domain.Booking{
		ID:          2,
		AdminID:     1,
		Client:      domain.ClientInfo{FirstName: "Boris", LastName: "Petrov"},
		SessionDate: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "03:00 PM",
		Status:      domain.StatusPaid,
	}

	repo := &fakeBookingRepo{
		byKind: map[domain.ReminderKind][]*domain.Booking{
			domain.ReminderKind24h: {inWindow, outOfWindow},
		},
	}
	notify := &fakeNotifyClient{}

	newTestScheduler(repo, notify, now).Sweep(context.Background())

	require.Len(t, notify.events, 1)
	assert.Equal(t, int64(1), notify.events[0].BookingID)
	assert.Equal(t, "24h", notify.events[0].Kind)
	assert.Equal(t, "Anna Ivanova", notify.events[0].RecipientName)

	require.Len(t, repo.marks, 1)
	assert.Equal(t, markCall{id: 1, kind: domain.ReminderKind24h}, repo.marks[0])
}

func TestScheduler_Sweep_10mPass(t *testing.T) {
	// Проход в 09:55; сессия в 10:00 в пределах окна ±30 мин от 10:05
	now := time.Date(2025, 6, 10, 9, 55, 0, 0, time.UTC)
	booking := &domain.Booking{
		ID:          3,
		AdminID:     1,
		Client:      domain.ClientInfo{FirstName: "Anna", LastName: "Ivanova"},
		SessionDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "10:00 AM",
		Status:      domain.StatusPaid,
	}

	repo := &fakeBookingRepo{
		byKind: map[domain.ReminderKind][]*domain.Booking{
			domain.ReminderKind10m: {booking},
		},
	}
	notify := &fakeNotifyClient{}

	newTestScheduler(repo, notify, now).Sweep(context.Background())

	require.Len(t, notify.events, 1)
	assert.Equal(t, "10m", notify.events[0].Kind)
}

func TestScheduler_Sweep_AlreadySentSkipsPublish(t *testing.T) {
	now := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	booking := &domain.Booking{
		ID:          1,
		AdminID:     1,
		Client:      domain.ClientInfo{FirstName: "Anna", LastName: "Ivanova"},
		SessionDate: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "10:00 AM",
		Status:      domain.StatusPaid,
	}

	repo := &fakeBookingRepo{
		byKind: map[domain.ReminderKind][]*domain.Booking{
			domain.ReminderKind24h: {booking},
		},
		markErrs: map[int64]error{1: bookingRepo.ErrAlreadySent},
	}
	notify := &fakeNotifyClient{}

	newTestScheduler(repo, notify, now).Sweep(context.Background())

	assert.Empty(t, notify.events, "a flag flipped by a concurrent instance must suppress the publish")
}

func TestScheduler_Sweep_PerBookingErrorDoesNotStopBatch(t *testing.T) {
	now := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	failing := &domain.Booking{
		ID:          1,
		AdminID:     1,
		Client:      domain.ClientInfo{FirstName: "Anna", LastName: "Ivanova"},
		SessionDate: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "10:00 AM",
		Status:      domain.StatusPaid,
	}
	healthy := &domain.Booking{
		ID:          2,
		AdminID:     1,
		Client:      domain.ClientInfo{FirstName: "Boris", LastName: "Petrov"},
		SessionDate: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "10:15 AM",
		Status:      domain.StatusPaid,
	}

	repo := &fakeBookingRepo{
		byKind: map[domain.ReminderKind][]*domain.Booking{
			domain.ReminderKind24h: {failing, healthy},
		},
		markErrs: map[int64]error{1: errors.New("db down")},
	}
	notify := &fakeNotifyClient{}

	newTestScheduler(repo, notify, now).Sweep(context.Background())

	require.Len(t, notify.events, 1, "the failing booking must not abort the rest of the batch")
	assert.Equal(t, int64(2), notify.events[0].BookingID)
}
