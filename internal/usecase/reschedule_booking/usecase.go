package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	bookingRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/booking"
	scheduleRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/schedule"
)

// UseCase use case переноса сессии.
// Освобождение старого слота, занятие нового и обновление бронирования
// выполняются одной сериализуемой транзакцией: бронирование никогда не
// остается без слота и не указывает на слот, занятый кем-то другим.
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookings BookingRepository,
	schedule ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookings,
		scheduleRepo: schedule,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет перенос сессии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, admin=%d", req.BookingID, req.AdminID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking %d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to load booking %d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
	}

	if booking.AdminID != req.AdminID {
		uc.logger.Warn("RescheduleBooking: booking %d belongs to admin %d, not %d",
			booking.ID, booking.AdminID, req.AdminID)
		return nil, ErrForbidden
	}

	// Пропущенное новое время при смене даты означает прежнюю метку:
	// сессия переезжает на другой день в тот же слот
	targetDate := booking.SessionDate
	if req.NewDate != nil {
		targetDate = startOfDay(*req.NewDate)
	}
	targetTime := booking.TimeSlot
	if req.NewTime != nil {
		targetTime = *req.NewTime
	}

	slotChanged := !targetDate.Equal(booking.SessionDate) || targetTime != booking.TimeSlot

	upd := bookingRepo.SessionUpdate{
		Duration: req.NewDuration,
		Notes:    req.NewNotes,
	}
	if slotChanged {
		upd.Date = &targetDate
		upd.TimeSlot = &targetTime
	}

	if !slotChanged && req.NewDuration == nil && req.NewNotes == nil {
		uc.logger.Info("RescheduleBooking: booking %d unchanged, nothing to do", booking.ID)
		return toResponse(booking), nil
	}

	if slotChanged {
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// Старый слот освобождается первым: перенос на соседний слот
			// того же дня не должен конфликтовать сам с собой
			if err := uc.scheduleRepo.FreeSlot(txCtx, booking.AdminID, booking.SessionDate, booking.TimeSlot); err != nil {
				uc.logger.Error("RescheduleBooking: failed to free slot %s on %s: %v",
					booking.TimeSlot, booking.SessionDate.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: failed to free old slot: %v", ErrInternal, err)
			}

			if err := uc.scheduleRepo.OccupySlot(txCtx, booking.AdminID, targetDate, targetTime); err != nil {
				switch {
				case errors.Is(err, scheduleRepo.ErrDayNotFound):
					uc.logger.Warn("RescheduleBooking: no schedule for admin=%d on %s",
						booking.AdminID, targetDate.Format(domain.DateFormat))
					return ErrNoScheduleForDate
				case errors.Is(err, scheduleRepo.ErrSlotNotFound):
					uc.logger.Warn("RescheduleBooking: slot %s not offered for admin=%d on %s",
						targetTime, booking.AdminID, targetDate.Format(domain.DateFormat))
					return ErrSlotNotOffered
				case errors.Is(err, scheduleRepo.ErrSlotTaken):
					uc.logger.Info("RescheduleBooking: slot %s already taken for admin=%d on %s",
						targetTime, booking.AdminID, targetDate.Format(domain.DateFormat))
					return ErrSlotAlreadyTaken
				default:
					uc.logger.Error("RescheduleBooking: failed to occupy slot: %v", err)
					return fmt.Errorf("%w: failed to occupy slot: %v", ErrInternal, err)
				}
			}

			if err := uc.bookingRepo.UpdateSession(txCtx, booking.ID, upd); err != nil {
				uc.logger.Error("RescheduleBooking: failed to update booking %d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		if err := uc.bookingRepo.UpdateSession(ctx, booking.ID, upd); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update booking %d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}
	}

	updated, err := uc.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to reload booking %d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	uc.logger.Info("RescheduleBooking: successfully rescheduled booking id=%d to %s %s",
		updated.ID, updated.SessionDate.Format(domain.DateFormat), updated.TimeSlot)

	return toResponse(updated), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.AdminID <= 0 {
		return fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}
	if req.NewTime != nil {
		if err := req.NewTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid newTime: %v", ErrInvalidInput, err)
		}
	}
	if req.NewDuration != nil &&
		(*req.NewDuration < domain.MinSessionDurationMinutes || *req.NewDuration > domain.MaxSessionDurationMinutes) {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}
	if req.NewNotes != nil && len(*req.NewNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}
	return nil
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		AdminID:         b.AdminID,
		Date:            b.SessionDate,
		TimeSlot:        b.TimeSlot,
		Mode:            b.Mode,
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
		Notes:           b.Notes,
		UpdatedAt:       b.UpdatedAt,
	}
}

// startOfDay обнуляет время, оставляя календарную дату
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
