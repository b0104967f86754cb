package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/booking"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/service/bookings/models"
)

// Service сервис чтения и сопровождения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Админ видит только свои бронирования.
func (s *Service) GetByID(ctx context.Context, id int64, adminID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for admin=%d", id, adminID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.AdminID != adminID {
		s.logger.Warn("GetByID: access denied for admin=%d to booking id=%d", adminID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetAdminDay получает бронирования админа на дату, отсортированные по времени слота
func (s *Service) GetAdminDay(ctx context.Context, adminID int64, date time.Time) (*models.BookingListResponse, error) {
	s.logger.Info("GetAdminDay: admin=%d, date=%s", adminID, date.Format("2006-01-02"))

	if adminID <= 0 {
		return nil, fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByAdminAndDate(ctx, adminID, date)
	if err != nil {
		s.logger.Error("GetAdminDay: repository error for admin=%d: %v", adminID, err)
		return nil, fmt.Errorf("%w: GetAdminDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAdminDay: fetched %d bookings for admin=%d", len(bookings), adminID)
	return models.FromDomainBookingList(bookings), nil
}

// GetClientHistory получает историю бронирований клиента по email
func (s *Service) GetClientHistory(ctx context.Context, email string) (*models.BookingListResponse, error) {
	email = strings.TrimSpace(email)
	s.logger.Info("GetClientHistory: email=%s", email)

	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByClientEmail(ctx, email)
	if err != nil {
		s.logger.Error("GetClientHistory: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: GetClientHistory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientHistory: fetched %d bookings for email=%s", len(bookings), email)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateNote обновляет заметку сессии.
// Админ может править заметки только своих бронирований.
func (s *Service) UpdateNote(ctx context.Context, id int64, adminID int64, notes string) error {
	s.logger.Info("UpdateNote: booking id=%d, admin=%d", id, adminID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateNote: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateNote: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateNote - repository error: %v", ErrInternal, err)
	}

	if booking.AdminID != adminID {
		s.logger.Warn("UpdateNote: access denied for admin=%d to booking id=%d", adminID, id)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.UpdateNotes(ctx, id, notes); err != nil {
		s.logger.Error("UpdateNote: update failed for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateNote - repository error: %v", ErrInternal, err)
	}

	return nil
}
