package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func fullBookingRows(id int64, status domain.BookingStatus, reminder24, reminder10 bool) *sqlmock.Rows {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	return sqlmock.NewRows(bookingColumns).
		AddRow(id, int64(1), "Anna", "Ivanova", "anna@example.com", nil, nil,
			"online", date, "10:00 AM", 50, nil, string(status), nil,
			reminder24, reminder10, now, now)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(42), created, created))

	booking := &domain.Booking{
		AdminID:         1,
		Client:          domain.ClientInfo{FirstName: "Anna", LastName: "Ivanova", Email: "anna@example.com"},
		Mode:            domain.ModeOnline,
		SessionDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:        "10:00 AM",
		DurationMinutes: 50,
		Status:          domain.StatusPendingPayment,
	}

	result, err := repo.Create(context.Background(), booking)
	require.NoError(t, err)

	assert.Equal(t, int64(42), result.ID)
	assert.Equal(t, created, result.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(fullBookingRows(7, domain.StatusPaid, false, false))

	booking, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), booking.ID)
	assert.Equal(t, "Anna", booking.Client.FirstName)
	assert.Equal(t, types.TimeLabel("10:00 AM"), booking.TimeSlot)
	assert.Equal(t, domain.StatusPaid, booking.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateSession_NoRows(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	newDate := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	err := repo.UpdateSession(context.Background(), 99, SessionUpdate{Date: &newDate})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkPaid(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkPaid(context.Background(), 7, "pay_123")
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkReminderSent(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkReminderSent(context.Background(), 7, domain.ReminderKind24h)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkReminderSent_AlreadySent(t *testing.T) {
	repo, mock := newMock(t)

	// Условный UPDATE не взял строку: флаг уже стоит
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(fullBookingRows(7, domain.StatusPaid, true, false))

	err := repo.MarkReminderSent(context.Background(), 7, domain.ReminderKind24h)
	assert.ErrorIs(t, err, ErrAlreadySent)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkReminderSent_MissingBooking(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	err := repo.MarkReminderSent(context.Background(), 99, domain.ReminderKind24h)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkReminderSent_UnknownKind(t *testing.T) {
	repo, mock := newMock(t)

	err := repo.MarkReminderSent(context.Background(), 7, domain.ReminderKind("weekly"))
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DueForReminder(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(fullBookingRows(7, domain.StatusPaid, false, false))

	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	bookings, err := repo.DueForReminder(context.Background(), domain.ReminderKind10m, start, end)
	require.NoError(t, err)

	require.Len(t, bookings, 1)
	assert.Equal(t, int64(7), bookings[0].ID)
	assert.False(t, bookings[0].Reminder10Sent)

	assert.NoError(t, mock.ExpectationsWereMet())
}
