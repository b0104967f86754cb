package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	bookingRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/booking"
	scheduleRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/schedule"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/ptr"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	booking   *domain.Booking
	getErr    error
	updateErr error
	updates   []bookingRepo.SessionUpdate
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b := *f.booking
	// Повторное чтение после обновления отдает примененные изменения
	for _, upd := range f.updates {
		if upd.Date != nil {
			b.SessionDate = *upd.Date
		}
		if upd.TimeSlot != nil {
			b.TimeSlot = *upd.TimeSlot
		}
		if upd.Duration != nil {
			b.DurationMinutes = *upd.Duration
		}
		if upd.Notes != nil {
			b.Notes = upd.Notes
		}
	}
	return &b, nil
}

func (f *fakeBookingRepo) UpdateSession(_ context.Context, _ int64, upd bookingRepo.SessionUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, upd)
	return nil
}

type slotCall struct {
	date  time.Time
	label types.TimeLabel
}

type fakeScheduleRepo struct {
	occupyErr error
	freed     []slotCall
	occupied  []slotCall
}

func (f *fakeScheduleRepo) OccupySlot(_ context.Context, _ int64, date time.Time, label types.TimeLabel) error {
	if f.occupyErr != nil {
		return f.occupyErr
	}
	f.occupied = append(f.occupied, slotCall{date: date, label: label})
	return nil
}

func (f *fakeScheduleRepo) FreeSlot(_ context.Context, _ int64, date time.Time, label types.TimeLabel) error {
	f.freed = append(f.freed, slotCall{date: date, label: label})
	return nil
}

type inlineTxManager struct {
	calls int
}

func (m *inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func existingBooking() *domain.Booking {
	return &domain.Booking{
		ID:              7,
		AdminID:         1,
		Client:          domain.ClientInfo{FirstName: "Anna", LastName: "Ivanova", Email: "anna@example.com"},
		Mode:            domain.ModeOnline,
		SessionDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:        "10:00 AM",
		DurationMinutes: 50,
		Status:          domain.StatusConfirmed,
	}
}

func TestUseCase_Execute_MoveToNewDateKeepsOldTime(t *testing.T) {
	bookings := &fakeBookingRepo{booking: existingBooking()}
	schedule := &fakeScheduleRepo{}
	tx := &inlineTxManager{}
	uc := NewUseCase(bookings, schedule, tx, nopLogger{})

	newDate := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		AdminID:   1,
		NewDate:   &newDate,
	})
	require.NoError(t, err)

	require.Len(t, schedule.freed, 1)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), schedule.freed[0].date)
	assert.Equal(t, types.TimeLabel("10:00 AM"), schedule.freed[0].label)

	require.Len(t, schedule.occupied, 1)
	assert.Equal(t, newDate, schedule.occupied[0].date)
	assert.Equal(t, types.TimeLabel("10:00 AM"), schedule.occupied[0].label,
		"omitted new time defaults to the booking's current slot")

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, newDate, resp.Date)
	assert.Equal(t, types.TimeLabel("10:00 AM"), resp.TimeSlot)
}

func TestUseCase_Execute_ChangeTimeSameDay(t *testing.T) {
	bookings := &fakeBookingRepo{booking: existingBooking()}
	schedule := &fakeScheduleRepo{}
	uc := NewUseCase(bookings, schedule, &inlineTxManager{}, nopLogger{})

	newTime := types.TimeLabel("02:00 PM")
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		AdminID:   1,
		NewTime:   &newTime,
	})
	require.NoError(t, err)

	require.Len(t, schedule.freed, 1)
	require.Len(t, schedule.occupied, 1)
	assert.Equal(t, types.TimeLabel("02:00 PM"), schedule.occupied[0].label)
	assert.Equal(t, types.TimeLabel("02:00 PM"), resp.TimeSlot)
}

func TestUseCase_Execute_DurationOnlySkipsSlotOperations(t *testing.T) {
	bookings := &fakeBookingRepo{booking: existingBooking()}
	schedule := &fakeScheduleRepo{}
	tx := &inlineTxManager{}
	uc := NewUseCase(bookings, schedule, tx, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:   7,
		AdminID:     1,
		NewDuration: ptr.Ptr(80),
	})
	require.NoError(t, err)

	assert.Empty(t, schedule.freed)
	assert.Empty(t, schedule.occupied)
	assert.Equal(t, 0, tx.calls, "no transaction needed when the slot does not move")
	assert.Equal(t, 80, resp.DurationMinutes)
}

func TestUseCase_Execute_SameSlotIsNoop(t *testing.T) {
	bookings := &fakeBookingRepo{booking: existingBooking()}
	schedule := &fakeScheduleRepo{}
	uc := NewUseCase(bookings, schedule, &inlineTxManager{}, nopLogger{})

	sameDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	sameTime := types.TimeLabel("10:00 AM")
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		AdminID:   1,
		NewDate:   &sameDate,
		NewTime:   &sameTime,
	})
	require.NoError(t, err)

	assert.Empty(t, schedule.freed)
	assert.Empty(t, schedule.occupied)
	assert.Empty(t, bookings.updates)
	assert.Equal(t, types.TimeLabel("10:00 AM"), resp.TimeSlot)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	bookings := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := NewUseCase(bookings, &fakeScheduleRepo{}, &inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 99, AdminID: 1})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUseCase_Execute_ForeignBooking(t *testing.T) {
	bookings := &fakeBookingRepo{booking: existingBooking()}
	uc := NewUseCase(bookings, &fakeScheduleRepo{}, &inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 7, AdminID: 2})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, bookings.updates)
}

func TestUseCase_Execute_TargetSlotTaken(t *testing.T) {
	bookings := &fakeBookingRepo{booking: existingBooking()}
	schedule := &fakeScheduleRepo{occupyErr: scheduleRepo.ErrSlotTaken}
	uc := NewUseCase(bookings, schedule, &inlineTxManager{}, nopLogger{})

	newTime := types.TimeLabel("02:00 PM")
	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		AdminID:   1,
		NewTime:   &newTime,
	})
	assert.ErrorIs(t, err, ErrSlotAlreadyTaken)
	assert.Empty(t, bookings.updates, "booking must not change when the target slot is taken")
}
