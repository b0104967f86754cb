package domain

// Default values
const (
	// DefaultSessionDurationMinutes is the standard therapy session length
	DefaultSessionDurationMinutes = 50

	// NeighborSlotStepMinutes is the step to the neighboring slot closed after
	// payment (buffer between sessions)
	NeighborSlotStepMinutes = 30
)

// Reminder lookahead targets
const (
	Reminder24LeadMinutes = 24 * 60
	Reminder10LeadMinutes = 10
)

// Business validation constants
const (
	MinSessionDurationMinutes = 15
	MaxSessionDurationMinutes = 240
	MaxNotesLength            = 1000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ReminderKind identifies which reminder pass produced a reminder fact
type ReminderKind string

const (
	ReminderKind24h ReminderKind = "24h"
	ReminderKind10m ReminderKind = "10m"
)
