package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/dbmetrics"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/psqlbuilder"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

var slotColumns = []string{
	"id",
	"admin_id",
	"date",
	"day_of_week",
	"time_label",
	"is_available",
	"slot_type",
	"created_at",
	"updated_at",
}

// Repository репозиторий расписания: по одной строке schedule_slots на слот.
// "Расписание на день существует" означает "есть хотя бы одна строка на (admin_id, date)",
// поэтому день с пустым списком слотов исчезает сам собой.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindDay возвращает расписание на день в порядке добавления слотов.
// Возвращает ErrDayNotFound, если на дату не настроено ни одного слота.
func (r *Repository) FindDay(ctx context.Context, adminID int64, date time.Time) (*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("schedule_slots").
		Where(squirrel.Eq{"admin_id": adminID, "date": date}).
		OrderBy("id ASC")

	// Внутри транзакции блокируем строки дня: создание и перенос бронирования
	// не должны гоняться за одним слотом
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots, err := r.scanSlots(rows)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrDayNotFound
	}

	return &domain.DaySchedule{
		AdminID:   adminID,
		Date:      slots[0].Date,
		DayOfWeek: slots[0].DayOfWeek,
		Slots:     slots,
	}, nil
}

// FindRange возвращает расписания на период [start, end] включительно,
// сгруппированные по дням, дни по возрастанию даты
func (r *Repository) FindRange(ctx context.Context, adminID int64, start, end time.Time) ([]*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("schedule_slots").
		Where(squirrel.Eq{"admin_id": adminID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		OrderBy("date ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots, err := r.scanSlots(rows)
	if err != nil {
		return nil, err
	}

	days := make([]*domain.DaySchedule, 0)
	var current *domain.DaySchedule
	for _, slot := range slots {
		if current == nil || !current.Date.Equal(slot.Date) {
			current = &domain.DaySchedule{
				AdminID:   adminID,
				Date:      slot.Date,
				DayOfWeek: slot.DayOfWeek,
			}
			days = append(days, current)
		}
		current.Slots = append(current.Slots, slot)
	}

	return days, nil
}

// UpsertSlot обновляет доступность и тип существующего слота или добавляет новый.
// Если слота нет и available=false, ничего не делает (нечего скрывать).
func (r *Repository) UpsertSlot(
	ctx context.Context,
	adminID int64,
	date time.Time,
	dayOfWeek string,
	label types.TimeLabel,
	slotType domain.SlotType,
	available bool,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_slots").
		Set("is_available", available).
		Set("slot_type", slotType).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"admin_id": adminID, "date": date, "time_label": label}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpsertSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpsertSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected > 0 || !available {
		return nil
	}

	return r.insertSlot(ctx, adminID, date, dayOfWeek, label, slotType)
}

// insertSlot добавляет новый слот в конец дня
func (r *Repository) insertSlot(
	ctx context.Context,
	adminID int64,
	date time.Time,
	dayOfWeek string,
	label types.TimeLabel,
	slotType domain.SlotType,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_slots").
		Columns("admin_id", "date", "day_of_week", "time_label", "is_available", "slot_type").
		Values(adminID, date, dayOfWeek, label, true, slotType).
		Suffix("ON CONFLICT (admin_id, date, time_label) DO UPDATE SET is_available = TRUE, slot_type = EXCLUDED.slot_type, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertSlot - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertSlot - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// EnsureSlot гарантирует наличие слота с указанной меткой: отсутствующий
// добавляется доступным, у существующего обновляется только тип -
// его текущая доступность не трогается (используется при копировании дня на неделю)
func (r *Repository) EnsureSlot(
	ctx context.Context,
	adminID int64,
	date time.Time,
	dayOfWeek string,
	label types.TimeLabel,
	slotType domain.SlotType,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_slots").
		Columns("admin_id", "date", "day_of_week", "time_label", "is_available", "slot_type").
		Values(adminID, date, dayOfWeek, label, true, slotType).
		Suffix("ON CONFLICT (admin_id, date, time_label) DO UPDATE SET slot_type = EXCLUDED.slot_type, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: EnsureSlot - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: EnsureSlot - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveSlots удаляет слоты с указанными метками времени.
// Отсутствующие метки молча пропускаются.
func (r *Repository) RemoveSlots(ctx context.Context, adminID int64, date time.Time, labels []types.TimeLabel) error {
	if len(labels) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_slots").
		Where(squirrel.Eq{"admin_id": adminID, "date": date, "time_label": labels}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveSlots - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RemoveSlots - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// PruneBefore удаляет все слоты админа с датой строго раньше cutoff.
// Вызывается перед каждым чтением доступности: прошедшие дни невидимы
// для читателей и физически удаляются при ближайшем чтении.
func (r *Repository) PruneBefore(ctx context.Context, adminID int64, cutoff time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_slots").
		Where(squirrel.Eq{"admin_id": adminID}).
		Where(squirrel.Lt{"date": cutoff}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: PruneBefore - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: PruneBefore - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// OccupySlot атомарно занимает свободный слот: условный UPDATE переводит
// is_available из TRUE в FALSE. Ноль затронутых строк разбирается на типизированные
// ошибки: слот занят, слот не настроен, день не настроен.
func (r *Repository) OccupySlot(ctx context.Context, adminID int64, date time.Time, label types.TimeLabel) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_slots").
		Set("is_available", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"admin_id": adminID, "date": date, "time_label": label}).
		Where(squirrel.Eq{"is_available": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: OccupySlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: OccupySlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: OccupySlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	return r.classifyOccupyFailure(ctx, adminID, date, label)
}

// classifyOccupyFailure выясняет, почему условный UPDATE не затронул ни одной строки
func (r *Repository) classifyOccupyFailure(ctx context.Context, adminID int64, date time.Time, label types.TimeLabel) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("is_available").
		From("schedule_slots").
		Where(squirrel.Eq{"admin_id": adminID, "date": date, "time_label": label}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: classifyOccupyFailure - build select query: %v", ErrBuildQuery, err)
	}

	var available bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&available)
	if err == nil {
		// Слот существует, но UPDATE его не взял - значит, он уже занят
		return ErrSlotTaken
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("%w: classifyOccupyFailure - scan slot: %v", ErrScanRow, err)
	}

	// Слота с такой меткой нет; отличаем "день не настроен" от "слот не предложен"
	query, args, err = psqlbuilder.Select("1").
		From("schedule_slots").
		Where(squirrel.Eq{"admin_id": adminID, "date": date}).
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: classifyOccupyFailure - build day query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrDayNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: classifyOccupyFailure - scan day: %v", ErrScanRow, err)
	}

	return ErrSlotNotFound
}

// MarkUnavailable помечает слот занятым независимо от текущего состояния.
// Отсутствующий слот молча пропускается (используется для соседнего слота после оплаты).
func (r *Repository) MarkUnavailable(ctx context.Context, adminID int64, date time.Time, label types.TimeLabel) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_slots").
		Set("is_available", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"admin_id": adminID, "date": date, "time_label": label}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkUnavailable - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkUnavailable - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// FreeSlot освобождает слот. Отсутствующий слот молча пропускается:
// он мог быть удалён правками расписания после бронирования.
func (r *Repository) FreeSlot(ctx context.Context, adminID int64, date time.Time, label types.TimeLabel) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_slots").
		Set("is_available", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"admin_id": adminID, "date": date, "time_label": label}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: FreeSlot - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: FreeSlot - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var slot domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.AdminID,
			&slot.Date,
			&slot.DayOfWeek,
			&slot.Time,
			&slot.IsAvailable,
			&slot.SlotType,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
