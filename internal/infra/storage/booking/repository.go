package booking

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/dbmetrics"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/psqlbuilder"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"admin_id",
	"first_name",
	"last_name",
	"email",
	"dob",
	"phone",
	"mode",
	"session_date",
	"time_slot",
	"duration_minutes",
	"notes",
	"status",
	"payment_id",
	"reminder24_sent",
	"reminder10_sent",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её: запись бронирования
// и занятие слота должны фиксироваться вместе.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"admin_id",
			"first_name",
			"last_name",
			"email",
			"dob",
			"phone",
			"mode",
			"session_date",
			"time_slot",
			"duration_minutes",
			"notes",
			"status",
			"payment_id",
		).
		Values(
			booking.AdminID,
			booking.Client.FirstName,
			booking.Client.LastName,
			booking.Client.Email,
			booking.Client.DOB,
			booking.Client.Phone,
			booking.Mode,
			booking.SessionDate,
			booking.TimeSlot,
			booking.DurationMinutes,
			booking.Notes,
			booking.Status,
			booking.PaymentID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := r.scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByAdminAndDate получает бронирования админа на указанную дату,
// отсортированные по времени слота
func (r *Repository) GetByAdminAndDate(ctx context.Context, adminID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"admin_id": adminID, "session_date": date}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdminAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdminAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	// "10:00 AM" метки сортируются лексикографически неверно, поэтому
	// хронологический порядок восстанавливается здесь
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].TimeSlot.IsBefore(bookings[j].TimeSlot)
	})
	return bookings, nil
}

// GetByClientEmail получает историю бронирований клиента, сначала новые
func (r *Repository) GetByClientEmail(ctx context.Context, email string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"email": email}).
		OrderBy("session_date DESC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientEmail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// SessionUpdate изменяемые при переносе поля сессии.
// nil-поле означает "оставить как есть".
type SessionUpdate struct {
	Date     *time.Time
	TimeSlot *types.TimeLabel
	Duration *int
	Notes    *string
}

// UpdateSession применяет изменения переноса к бронированию
func (r *Repository) UpdateSession(ctx context.Context, id int64, upd SessionUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.Date != nil {
		updateBuilder = updateBuilder.Set("session_date", *upd.Date)
	}
	if upd.TimeSlot != nil {
		updateBuilder = updateBuilder.Set("time_slot", *upd.TimeSlot)
	}
	if upd.Duration != nil {
		updateBuilder = updateBuilder.Set("duration_minutes", *upd.Duration)
	}
	if upd.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *upd.Notes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSession - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSession - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSession - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateNotes обновляет заметки сессии
func (r *Repository) UpdateNotes(ctx context.Context, id int64, notes string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// MarkPaid переводит бронирование в статус paid и сохраняет идентификатор платежа
func (r *Repository) MarkPaid(ctx context.Context, id int64, paymentID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusPaid).
		Set("payment_id", paymentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// MarkReminderSent выставляет флаг напоминания условно: только из FALSE в TRUE.
// Возвращает ErrAlreadySent, если флаг уже стоял - так параллельные обходы
// не отправят одно напоминание дважды.
func (r *Repository) MarkReminderSent(ctx context.Context, id int64, kind domain.ReminderKind) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, err := reminderColumn(kind)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set(column, true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, column: false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrAlreadySent
	}

	return nil
}

// DueForReminder возвращает оплаченные бронирования с несброшенным флагом kind,
// дата сессии которых попадает в [startDate, endDate] (календарные дни).
// Точная фильтрация по моменту начала выполняется вызывающей стороной:
// метка времени слота хранится отдельно от даты.
func (r *Repository) DueForReminder(ctx context.Context, kind domain.ReminderKind, startDate, endDate time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, err := reminderColumn(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusPaid, column: false}).
		Where(squirrel.GtOrEq{"session_date": startDate}).
		Where(squirrel.LtOrEq{"session_date": endDate}).
		OrderBy("session_date ASC, time_slot ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DueForReminder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: DueForReminder - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func reminderColumn(kind domain.ReminderKind) (string, error) {
	switch kind {
	case domain.ReminderKind24h:
		return "reminder24_sent", nil
	case domain.ReminderKind10m:
		return "reminder10_sent", nil
	default:
		return "", fmt.Errorf("%w: unknown reminder kind %q", ErrBuildQuery, kind)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.AdminID,
		&booking.Client.FirstName,
		&booking.Client.LastName,
		&booking.Client.Email,
		&booking.Client.DOB,
		&booking.Client.Phone,
		&booking.Mode,
		&booking.SessionDate,
		&booking.TimeSlot,
		&booking.DurationMinutes,
		&booking.Notes,
		&booking.Status,
		&booking.PaymentID,
		&booking.Reminder24Sent,
		&booking.Reminder10Sent,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
