package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	scheduleRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/schedule"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/availability/models"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

// Service сервис управления расписанием доступности админа
type Service struct {
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetRange возвращает расписание админа на период [start, end].
// Перед чтением удаляет прошедшие дни: просроченная доступность
// не видна читателям и физически исчезает при первом же чтении.
func (s *Service) GetRange(ctx context.Context, adminID int64, start, end time.Time) ([]models.DayResponse, error) {
	s.logger.Info("GetRange: admin=%d, period=%s to %s",
		adminID, start.Format(domain.DateFormat), end.Format(domain.DateFormat))

	if adminID <= 0 {
		return nil, fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, ErrInvalidRange
	}

	if err := s.scheduleRepo.PruneBefore(ctx, adminID, startOfDay(s.timeProvider.Now())); err != nil {
		s.logger.Error("GetRange: prune failed for admin=%d: %v", adminID, err)
		return nil, fmt.Errorf("%w: GetRange - prune: %v", ErrInternal, err)
	}

	days, err := s.scheduleRepo.FindRange(ctx, adminID, start, end)
	if err != nil {
		s.logger.Error("GetRange: repository error for admin=%d: %v", adminID, err)
		return nil, fmt.Errorf("%w: GetRange - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRange: fetched %d days for admin=%d", len(days), adminID)
	return models.FromDomainDays(days), nil
}

// SetSlot устанавливает или убирает один слот дня.
// available=true добавляет слот или делает существующий доступным;
// available=false удаляет слот целиком. День без слотов исчезает из расписания.
func (s *Service) SetSlot(ctx context.Context, req *models.SetSlotRequest) error {
	s.logger.Info("SetSlot: admin=%d, date=%s, time=%s, type=%s, available=%t",
		req.AdminID, req.Date.Format(domain.DateFormat), req.Time, req.SlotType, req.Available)

	if err := validateSetSlot(req); err != nil {
		s.logger.Warn("SetSlot: validation failed: %v", err)
		return err
	}

	date := startOfDay(req.Date)
	dayOfWeek := dayOfWeekOrDefault(req.DayOfWeek, date)

	var err error
	if req.Available {
		err = s.scheduleRepo.UpsertSlot(ctx, req.AdminID, date, dayOfWeek, req.Time, req.SlotType, true)
	} else {
		err = s.scheduleRepo.RemoveSlots(ctx, req.AdminID, date, []types.TimeLabel{req.Time})
	}
	if err != nil {
		s.logger.Error("SetSlot: repository error for admin=%d: %v", req.AdminID, err)
		return fmt.Errorf("%w: SetSlot - repository error: %v", ErrInternal, err)
	}

	return nil
}

// SetSlotsBulk массово устанавливает или убирает слоты дня.
// Обновления выполняются по одному слоту без отката: сбой посередине
// оставляет уже обработанные слоты изменёнными.
func (s *Service) SetSlotsBulk(ctx context.Context, req *models.SetSlotsBulkRequest) error {
	s.logger.Info("SetSlotsBulk: admin=%d, date=%s, slots=%d, type=%s, available=%t",
		req.AdminID, req.Date.Format(domain.DateFormat), len(req.Times), req.SlotType, req.Available)

	if err := validateSetSlotsBulk(req); err != nil {
		s.logger.Warn("SetSlotsBulk: validation failed: %v", err)
		return err
	}

	date := startOfDay(req.Date)
	dayOfWeek := dayOfWeekOrDefault(req.DayOfWeek, date)

	if !req.Available {
		// Удаление идёт по тем же нормализованным меткам, что и остальные операции
		if err := s.scheduleRepo.RemoveSlots(ctx, req.AdminID, date, req.Times); err != nil {
			s.logger.Error("SetSlotsBulk: remove failed for admin=%d: %v", req.AdminID, err)
			return fmt.Errorf("%w: SetSlotsBulk - repository error: %v", ErrInternal, err)
		}
		return nil
	}

	for _, label := range req.Times {
		if err := s.scheduleRepo.UpsertSlot(ctx, req.AdminID, date, dayOfWeek, label, req.SlotType, true); err != nil {
			s.logger.Error("SetSlotsBulk: upsert %s failed for admin=%d: %v", label, req.AdminID, err)
			return fmt.Errorf("%w: SetSlotsBulk - repository error: %v", ErrInternal, err)
		}
	}

	return nil
}

// CopyDayToWeek копирует пары (время, тип) исходного дня на остальные шесть дней
// его недели. Доступность уже существующих слотов целевых дней не меняется;
// отсутствующие слоты добавляются доступными.
func (s *Service) CopyDayToWeek(ctx context.Context, req *models.CopyDayToWeekRequest) error {
	s.logger.Info("CopyDayToWeek: admin=%d, source=%s",
		req.AdminID, req.SourceDate.Format(domain.DateFormat))

	if req.AdminID <= 0 {
		return fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}
	if req.SourceDate.IsZero() {
		return fmt.Errorf("%w: sourceDate is required", ErrInvalidInput)
	}

	sourceDate := startOfDay(req.SourceDate)

	day, err := s.scheduleRepo.FindDay(ctx, req.AdminID, sourceDate)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDayNotFound) {
			return fmt.Errorf("%w: source day has no slots", ErrInvalidInput)
		}
		s.logger.Error("CopyDayToWeek: repository error for admin=%d: %v", req.AdminID, err)
		return fmt.Errorf("%w: CopyDayToWeek - repository error: %v", ErrInternal, err)
	}

	for offset := -6; offset <= 6; offset++ {
		target := sourceDate.AddDate(0, 0, offset)
		if offset == 0 || !sameWeek(sourceDate, target) {
			continue
		}
		targetDOW := target.Weekday().String()
		for _, slot := range day.Slots {
			if err := s.scheduleRepo.EnsureSlot(ctx, req.AdminID, target, targetDOW, slot.Time, slot.SlotType); err != nil {
				s.logger.Error("CopyDayToWeek: copy %s to %s failed for admin=%d: %v",
					slot.Time, target.Format(domain.DateFormat), req.AdminID, err)
				return fmt.Errorf("%w: CopyDayToWeek - repository error: %v", ErrInternal, err)
			}
		}
	}

	s.logger.Info("CopyDayToWeek: copied %d slots for admin=%d", len(day.Slots), req.AdminID)
	return nil
}

func validateSetSlot(req *models.SetSlotRequest) error {
	if req.AdminID <= 0 {
		return fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if req.Available && !req.SlotType.IsValid() {
		return fmt.Errorf("%w: invalid slot type %q", ErrInvalidInput, req.SlotType)
	}
	return nil
}

func validateSetSlotsBulk(req *models.SetSlotsBulkRequest) error {
	if req.AdminID <= 0 {
		return fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if len(req.Times) == 0 {
		return fmt.Errorf("%w: times must not be empty", ErrInvalidInput)
	}
	if req.Available && !req.SlotType.IsValid() {
		return fmt.Errorf("%w: invalid slot type %q", ErrInvalidInput, req.SlotType)
	}
	return nil
}

// dayOfWeekOrDefault возвращает переданный день недели либо выводит его из даты
func dayOfWeekOrDefault(provided string, date time.Time) string {
	if provided != "" {
		return provided
	}
	return date.Weekday().String()
}

// startOfDay обнуляет время, оставляя календарную дату
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameWeek проверяет, что обе даты лежат в одной ISO-неделе
func sameWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}
