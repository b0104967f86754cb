package bookings

import (
	"context"
	"errors"
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

type notesUpdate struct {
	id    int64
	notes string
}

type fakeBookingRepo struct {
	booking     *domain.Booking
	byIDErr     error
	adminDay    []*domain.Booking
	adminDayErr error
	history     []*domain.Booking
	historyErr  error
	notesErr    error
	notesCalls  []notesUpdate
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByAdminAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	if f.adminDayErr != nil {
		return nil, f.adminDayErr
	}
	return f.adminDay, nil
}

func (f *fakeBookingRepo) GetByClientEmail(_ context.Context, _ string) ([]*domain.Booking, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeBookingRepo) UpdateNotes(_ context.Context, id int64, notes string) error {
	if f.notesErr != nil {
		return f.notesErr
	}
	f.notesCalls = append(f.notesCalls, notesUpdate{id: id, notes: notes})
	return nil
}

func sampleBooking(t *testing.T, id, adminID int64) *domain.Booking {
	t.Helper()

	label, err := types.ParseTimeLabel("10:00 AM")
	require.NoError(t, err)

	return &domain.Booking{
		ID:      id,
		AdminID: adminID,
		Client: domain.ClientInfo{
			FirstName: "Anna",
			LastName:  "Petrova",
			Email:     "anna@example.com",
		},
		Mode:            domain.ModeOnline,
		SessionDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:        label,
		DurationMinutes: domain.DefaultSessionDurationMinutes,
		Status:          domain.StatusConfirmed,
		CreatedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestService_GetByID_Success(t *testing.T) {
	repo := &fakeBookingRepo{booking: sampleBooking(t, 7, 1)}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 7, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Anna", resp.FirstName)
	assert.Equal(t, "2025-06-10", resp.Date)
	assert.Equal(t, "10:00 AM", resp.TimeSlot)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{byIDErr: bookingRepo.ErrBookingNotFound}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 99, 1)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetByID_ForeignBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: sampleBooking(t, 7, 2)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 7, 1)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetAdminDay_Success(t *testing.T) {
	repo := &fakeBookingRepo{adminDay: []*domain.Booking{
		sampleBooking(t, 7, 1),
		sampleBooking(t, 8, 1),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetAdminDay(context.Background(), 1, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Bookings, 2)
}

func TestService_GetAdminDay_Validation(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, nopLogger{})

	_, err := svc.GetAdminDay(context.Background(), 0, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetAdminDay(context.Background(), 1, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetAdminDay_RepoError(t *testing.T) {
	repo := &fakeBookingRepo{adminDayErr: errors.New("connection reset")}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetAdminDay(context.Background(), 1, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetClientHistory_Success(t *testing.T) {
	repo := &fakeBookingRepo{history: []*domain.Booking{sampleBooking(t, 7, 1)}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetClientHistory(context.Background(), "  anna@example.com  ")

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "anna@example.com", resp.Bookings[0].Email)
}

func TestService_GetClientHistory_EmptyEmail(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, nopLogger{})

	_, err := svc.GetClientHistory(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetClientHistory_NoBookings(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, nopLogger{})

	resp, err := svc.GetClientHistory(context.Background(), "nobody@example.com")

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.Bookings)
}

func TestService_UpdateNote_Success(t *testing.T) {
	repo := &fakeBookingRepo{booking: sampleBooking(t, 7, 1)}
	svc := NewService(repo, nopLogger{})

	err := svc.UpdateNote(context.Background(), 7, 1, "prefers morning sessions")

	require.NoError(t, err)
	require.Len(t, repo.notesCalls, 1)
	assert.Equal(t, notesUpdate{id: 7, notes: "prefers morning sessions"}, repo.notesCalls[0])
}

func TestService_UpdateNote_ForeignBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: sampleBooking(t, 7, 2)}
	svc := NewService(repo, nopLogger{})

	err := svc.UpdateNote(context.Background(), 7, 1, "note")

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.notesCalls)
}

func TestService_UpdateNote_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{byIDErr: bookingRepo.ErrBookingNotFound}
	svc := NewService(repo, nopLogger{})

	err := svc.UpdateNote(context.Background(), 99, 1, "note")

	assert.ErrorIs(t, err, ErrBookingNotFound)
}
