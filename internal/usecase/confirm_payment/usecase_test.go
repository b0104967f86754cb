package confirm_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	bookingRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/booking"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	booking    *domain.Booking
	getErr     error
	markPaidID string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b := *f.booking
	if f.markPaidID != "" {
		b.Status = domain.StatusPaid
		b.PaymentID = &f.markPaidID
	}
	return &b, nil
}

func (f *fakeBookingRepo) MarkPaid(_ context.Context, _ int64, paymentID string) error {
	f.markPaidID = paymentID
	return nil
}

type fakeScheduleRepo struct {
	closed []types.TimeLabel
}

func (f *fakeScheduleRepo) MarkUnavailable(_ context.Context, _ int64, _ time.Time, label types.TimeLabel) error {
	f.closed = append(f.closed, label)
	return nil
}

type inlineTxManager struct {
	calls int
}

func (m *inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:          7,
		AdminID:     1,
		Client:      domain.ClientInfo{FirstName: "Anna", LastName: "Ivanova", Email: "anna@example.com"},
		Mode:        domain.ModeInPerson,
		SessionDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "10:00 AM",
		Status:      domain.StatusPendingPayment,
	}
}

func TestUseCase_Execute_ClosesBookedAndNeighborSlot(t *testing.T) {
	bookings := &fakeBookingRepo{booking: pendingBooking()}
	schedule := &fakeScheduleRepo{}
	tx := &inlineTxManager{}
	uc := NewUseCase(bookings, schedule, tx, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 7, PaymentID: "pay_123"})
	require.NoError(t, err)

	assert.Equal(t, "pay_123", bookings.markPaidID)
	assert.Equal(t, domain.StatusPaid, resp.Status)
	require.NotNil(t, resp.PaymentID)
	assert.Equal(t, "pay_123", *resp.PaymentID)

	// Сессия перекрывает свой слот и сосед через 30 минут
	assert.Equal(t, []types.TimeLabel{"10:00 AM", "10:30 AM"}, schedule.closed)
	assert.Equal(t, 1, tx.calls)
}

func TestUseCase_Execute_NeighborCrossesNoon(t *testing.T) {
	booking := pendingBooking()
	booking.TimeSlot = "11:30 AM"
	schedule := &fakeScheduleRepo{}
	uc := NewUseCase(&fakeBookingRepo{booking: booking}, schedule, &inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 7, PaymentID: "pay_123"})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeLabel{"11:30 AM", "12:00 PM"}, schedule.closed)
}

func TestUseCase_Execute_AlreadyPaid(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusPaid
	bookings := &fakeBookingRepo{booking: booking}
	schedule := &fakeScheduleRepo{}
	uc := NewUseCase(bookings, schedule, &inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 7, PaymentID: "pay_456"})
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.Empty(t, schedule.closed)
	assert.Empty(t, bookings.markPaidID)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	bookings := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := NewUseCase(bookings, &fakeScheduleRepo{}, &inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 99, PaymentID: "pay_123"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{booking: pendingBooking()}, &fakeScheduleRepo{}, &inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0, PaymentID: "pay_123"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 7, PaymentID: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
