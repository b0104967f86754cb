package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	scheduleRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/schedule"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/integrations/notifyservice"
)

// UseCase use case создания бронирования.
// Занятие слота и запись бронирования фиксируются одной сериализуемой
// транзакцией: слот не может достаться двум клиентам, и не бывает
// занятого слота без бронирования.
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	notifyClient NotifyClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет создание бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: admin=%d, date=%s, time=%s, mode=%s, confirmed=%t",
		req.AdminID, req.Date.Format(domain.DateFormat), req.TimeSlot, req.Mode, req.Confirmed)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	status := domain.StatusPendingPayment
	if req.Confirmed {
		status = domain.StatusConfirmed
	}

	duration := req.Duration
	if duration == 0 {
		duration = domain.DefaultSessionDurationMinutes
	}

	date := startOfDay(req.Date)

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Условное занятие слота: UPDATE затрагивает строку, только пока она свободна.
		// Проигравший гонку получает типизированный отказ, не generic-ошибку.
		if err := uc.scheduleRepo.OccupySlot(txCtx, req.AdminID, date, req.TimeSlot); err != nil {
			switch {
			case errors.Is(err, scheduleRepo.ErrDayNotFound):
				uc.logger.Warn("CreateBooking: no schedule for admin=%d on %s",
					req.AdminID, date.Format(domain.DateFormat))
				return ErrNoScheduleForDate
			case errors.Is(err, scheduleRepo.ErrSlotNotFound):
				uc.logger.Warn("CreateBooking: slot %s not offered for admin=%d on %s",
					req.TimeSlot, req.AdminID, date.Format(domain.DateFormat))
				return ErrSlotNotOffered
			case errors.Is(err, scheduleRepo.ErrSlotTaken):
				uc.logger.Info("CreateBooking: slot %s already taken for admin=%d on %s",
					req.TimeSlot, req.AdminID, date.Format(domain.DateFormat))
				return ErrSlotAlreadyTaken
			default:
				uc.logger.Error("CreateBooking: failed to occupy slot: %v", err)
				return fmt.Errorf("%w: failed to occupy slot: %v", ErrInternal, err)
			}
		}

		booking := &domain.Booking{
			AdminID:         req.AdminID,
			Client:          req.Client,
			Mode:            req.Mode,
			SessionDate:     date,
			TimeSlot:        req.TimeSlot,
			DurationMinutes: duration,
			Notes:           req.Notes,
			Status:          status,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// Факт создания публикуется best-effort: недоступность сервиса
	// уведомлений не отменяет уже зафиксированное бронирование
	event := notifyservice.BookingCreatedEvent{
		AdminID:    result.AdminID,
		BookingID:  result.ID,
		ClientName: result.Client.FullName(),
		Date:       result.SessionDate.Format(domain.DateFormat),
		TimeSlot:   result.TimeSlot.String(),
	}
	if err := uc.notifyClient.PublishBookingCreated(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish booking-created event for id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:              result.ID,
		AdminID:         result.AdminID,
		Date:            result.SessionDate,
		TimeSlot:        result.TimeSlot,
		Mode:            result.Mode,
		DurationMinutes: result.DurationMinutes,
		Status:          result.Status,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
