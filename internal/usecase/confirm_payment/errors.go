package confirm_payment

import "errors"

var (
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")
	ErrAlreadyPaid     = errors.New("confirm_payment: booking is already paid")
	ErrInvalidInput    = errors.New("confirm_payment: invalid input")
	ErrInternal        = errors.New("confirm_payment: internal error")
)
