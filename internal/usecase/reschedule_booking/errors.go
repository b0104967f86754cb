package reschedule_booking

import "errors"

var (
	ErrBookingNotFound   = errors.New("reschedule_booking: booking not found")
	ErrForbidden         = errors.New("reschedule_booking: booking belongs to another admin")
	ErrNoScheduleForDate = errors.New("reschedule_booking: no schedule for requested date")
	ErrSlotNotOffered    = errors.New("reschedule_booking: slot is not offered on requested date")
	ErrSlotAlreadyTaken  = errors.New("reschedule_booking: slot is already taken")
	ErrInvalidInput      = errors.New("reschedule_booking: invalid input")
	ErrInternal          = errors.New("reschedule_booking: internal error")
)
