package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/domain"
	bookingRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/booking"
)

// UseCase use case подтверждения оплаты.
// После оплаты сессия занимает не только свой слот, но и соседний слот
// через 30 минут: оплаченная 50-минутная сессия перекрывает оба.
// Отсутствующий соседний слот молча пропускается.
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

// Execute выполняет подтверждение оплаты бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: booking=%d, payment=%s", req.BookingID, req.PaymentID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmPayment: booking %d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to load booking %d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
	}

	if booking.IsPaid() {
		uc.logger.Info("ConfirmPayment: booking %d is already paid", booking.ID)
		return nil, ErrAlreadyPaid
	}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.MarkPaid(txCtx, booking.ID, req.PaymentID); err != nil {
			uc.logger.Error("ConfirmPayment: failed to mark booking %d paid: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to mark booking paid: %v", ErrInternal, err)
		}

		if err := uc.scheduleRepo.MarkUnavailable(txCtx, booking.AdminID, booking.SessionDate, booking.TimeSlot); err != nil {
			uc.logger.Error("ConfirmPayment: failed to close slot %s: %v", booking.TimeSlot, err)
			return fmt.Errorf("%w: failed to close booked slot: %v", ErrInternal, err)
		}

		neighbor, err := booking.TimeSlot.AddMinutes(domain.NeighborSlotStepMinutes)
		if err != nil {
			uc.logger.Error("ConfirmPayment: invalid time slot %q on booking %d: %v", booking.TimeSlot, booking.ID, err)
			return fmt.Errorf("%w: invalid booked time slot: %v", ErrInternal, err)
		}
		if err := uc.scheduleRepo.MarkUnavailable(txCtx, booking.AdminID, booking.SessionDate, neighbor); err != nil {
			uc.logger.Error("ConfirmPayment: failed to close neighbor slot %s: %v", neighbor, err)
			return fmt.Errorf("%w: failed to close neighbor slot: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := uc.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to reload booking %d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmPayment: booking id=%d marked paid", updated.ID)

	return &Response{
		ID:        updated.ID,
		AdminID:   updated.AdminID,
		Date:      updated.SessionDate,
		TimeSlot:  updated.TimeSlot,
		Status:    updated.Status,
		PaymentID: updated.PaymentID,
		UpdatedAt: updated.UpdatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.PaymentID) == "" {
		return fmt.Errorf("%w: paymentID is required", ErrInvalidInput)
	}
	return nil
}
