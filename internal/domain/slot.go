package domain

import (
	"time"

	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

// SlotType represents the session mode a slot can be booked for
type SlotType string

const (
	SlotTypeOnline   SlotType = "online"
	SlotTypeInPerson SlotType = "in_person"
	SlotTypeBoth     SlotType = "both"
)

// IsValid returns true if the slot type is one of the known values
func (t SlotType) IsValid() bool {
	return t == SlotTypeOnline || t == SlotTypeInPerson || t == SlotTypeBoth
}

// Slot represents one bookable time position within an admin's day
type Slot struct {
	ID          int64
	AdminID     int64
	Date        time.Time // calendar day, midnight of the practice timezone
	DayOfWeek   string
	Time        types.TimeLabel
	IsAvailable bool
	SlotType    SlotType

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DaySchedule is the full set of slots an admin has configured for one date.
// A day with no slots has no DaySchedule at all: "nothing configured" is
// distinct from "configured but fully booked".
type DaySchedule struct {
	AdminID   int64
	Date      time.Time
	DayOfWeek string
	Slots     []*Slot // insertion order, callers must not assume time order
}

// HasAvailable returns true if at least one slot of the day can still be booked
func (d *DaySchedule) HasAvailable() bool {
	for _, s := range d.Slots {
		if s.IsAvailable {
			return true
		}
	}
	return false
}

// FindSlot returns the slot with the given normalized time label, or nil
func (d *DaySchedule) FindSlot(label types.TimeLabel) *Slot {
	for _, s := range d.Slots {
		if s.Time == label {
			return s
		}
	}
	return nil
}
