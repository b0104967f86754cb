package domain

import (
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

// BookingStatus represents the payment/confirmation status of a booking
type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "pending payment"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusPaid           BookingStatus = "paid"
)

// SessionMode represents how a session is held
type SessionMode string

const (
	ModeInPerson SessionMode = "in-person"
	ModeOnline   SessionMode = "online"
)

// IsValid returns true if the mode is one of the known values
func (m SessionMode) IsValid() bool {
	return m == ModeInPerson || m == ModeOnline
}

// ClientInfo is the embedded client part of a booking
type ClientInfo struct {
	FirstName string
	LastName  string
	Email     string
	DOB       *string
	Phone     *string
}

// FullName returns the client's display name
func (c *ClientInfo) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Booking represents a client's reservation of one specific slot
type Booking struct {
	ID      int64
	AdminID int64
	Client  ClientInfo

	Mode            SessionMode
	SessionDate     time.Time // calendar day of the session
	TimeSlot        types.TimeLabel
	DurationMinutes int
	Notes           *string

	Status    BookingStatus
	PaymentID *string

	// Flags guaranteeing each reminder fires at most once, forward-only
	Reminder24Sent bool
	Reminder10Sent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartsAt returns the session start instant (date combined with the time slot)
func (b *Booking) StartsAt() (time.Time, error) {
	return b.TimeSlot.At(b.SessionDate)
}

// IsPaid returns true if the booking has been paid
func (b *Booking) IsPaid() bool {
	return b.Status == StatusPaid
}

// CanTransitionTo reports whether the status machine allows the transition.
// pending payment -> confirmed | paid; confirmed -> paid; no exit from paid.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPendingPayment:
		return next == StatusConfirmed || next == StatusPaid
	case StatusConfirmed:
		return next == StatusPaid
	default:
		return false
	}
}
