package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	scheduleRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/schedule"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/integrations/notifyservice"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	created   *domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *booking
	created.ID = 42
	created.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

type fakeScheduleRepo struct {
	occupyErr   error
	occupyCalls int
}

func (f *fakeScheduleRepo) OccupySlot(_ context.Context, _ int64, _ time.Time, _ types.TimeLabel) error {
	f.occupyCalls++
	return f.occupyErr
}

type fakeNotifyClient struct {
	events     []notifyservice.BookingCreatedEvent
	publishErr error
}

func (f *fakeNotifyClient) PublishBookingCreated(_ context.Context, event notifyservice.BookingCreatedEvent) error {
	f.events = append(f.events, event)
	return f.publishErr
}

// inlineTxManager выполняет fn сразу, без настоящей транзакции
type inlineTxManager struct {
	calls int
}

func (m *inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func validRequest() *Request {
	return &Request{
		AdminID:  1,
		Date:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot: "10:00 AM",
		Mode:     domain.ModeOnline,
		Client: domain.ClientInfo{
			FirstName: "Anna",
			LastName:  "Ivanova",
			Email:     "anna@example.com",
		},
	}
}

func TestUseCase_Execute_ClientPathPendingPayment(t *testing.T) {
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{}
	notify := &fakeNotifyClient{}
	tx := &inlineTxManager{}

	uc := NewUseCase(bookings, schedule, notify, tx, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, domain.StatusPendingPayment, resp.Status)
	assert.Equal(t, domain.DefaultSessionDurationMinutes, resp.DurationMinutes,
		"omitted duration falls back to the default session length")

	assert.Equal(t, 1, tx.calls, "occupation and insert must run inside one transaction")
	assert.Equal(t, 1, schedule.occupyCalls)

	require.Len(t, notify.events, 1)
	assert.Equal(t, int64(42), notify.events[0].BookingID)
	assert.Equal(t, "Anna Ivanova", notify.events[0].ClientName)
	assert.Equal(t, "10:00 AM", notify.events[0].TimeSlot)
}

func TestUseCase_Execute_AdminDirectConfirmed(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := NewUseCase(bookings, &fakeScheduleRepo{}, &fakeNotifyClient{}, &inlineTxManager{}, nopLogger{})

	req := validRequest()
	req.Confirmed = true
	req.Duration = 80

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, 80, resp.DurationMinutes)
}

func TestUseCase_Execute_SlotFailures(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "no schedule for date", repoErr: scheduleRepo.ErrDayNotFound, wantErr: ErrNoScheduleForDate},
		{name: "slot not offered", repoErr: scheduleRepo.ErrSlotNotFound, wantErr: ErrSlotNotOffered},
		{name: "slot already taken", repoErr: scheduleRepo.ErrSlotTaken, wantErr: ErrSlotAlreadyTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &fakeBookingRepo{}
			notify := &fakeNotifyClient{}
			uc := NewUseCase(bookings, &fakeScheduleRepo{occupyErr: tt.repoErr}, notify, &inlineTxManager{}, nopLogger{})

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, bookings.created, "booking must not be created when the slot is not occupied")
			assert.Empty(t, notify.events)
		})
	}
}

func TestUseCase_Execute_NotifyFailureDoesNotFailBooking(t *testing.T) {
	notify := &fakeNotifyClient{publishErr: errors.New("notify service down")}
	uc := NewUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, notify, &inlineTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err, "a committed booking survives a failed notification")
	assert.Equal(t, int64(42), resp.ID)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, &fakeNotifyClient{}, &inlineTxManager{}, nopLogger{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing admin", mutate: func(r *Request) { r.AdminID = 0 }},
		{name: "missing time slot", mutate: func(r *Request) { r.TimeSlot = "" }},
		{name: "non-canonical time slot", mutate: func(r *Request) { r.TimeSlot = "10:00 am" }},
		{name: "invalid mode", mutate: func(r *Request) { r.Mode = "by-phone" }},
		{name: "duration too short", mutate: func(r *Request) { r.Duration = 5 }},
		{name: "missing first name", mutate: func(r *Request) { r.Client.FirstName = "  " }},
		{name: "missing email", mutate: func(r *Request) { r.Client.Email = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
