package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/types"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPendingPayment, StatusConfirmed, true},
		{"pending to paid", StatusPendingPayment, StatusPaid, true},
		{"confirmed to paid", StatusConfirmed, StatusPaid, true},
		{"confirmed back to pending", StatusConfirmed, StatusPendingPayment, false},
		{"paid to confirmed", StatusPaid, StatusConfirmed, false},
		{"paid to pending", StatusPaid, StatusPendingPayment, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.allowed, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_StartsAt(t *testing.T) {
	label, err := types.ParseTimeLabel("02:30 PM")
	require.NoError(t, err)

	b := &Booking{
		SessionDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:    label,
	}

	startsAt, err := b.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC), startsAt)
}

func TestClientInfo_FullName(t *testing.T) {
	c := &ClientInfo{FirstName: "Anna", LastName: "Petrova"}
	assert.Equal(t, "Anna Petrova", c.FullName())
}

func TestDaySchedule_FindSlot(t *testing.T) {
	morning, err := types.ParseTimeLabel("09:00 AM")
	require.NoError(t, err)
	noon, err := types.ParseTimeLabel("12:00 PM")
	require.NoError(t, err)

	day := &DaySchedule{
		Slots: []*Slot{
			{Time: morning, IsAvailable: false},
			{Time: noon, IsAvailable: true},
		},
	}

	found := day.FindSlot(noon)
	require.NotNil(t, found)
	assert.True(t, found.IsAvailable)

	missing, err := types.ParseTimeLabel("05:00 PM")
	require.NoError(t, err)
	assert.Nil(t, day.FindSlot(missing))
}

func TestDaySchedule_HasAvailable(t *testing.T) {
	label, err := types.ParseTimeLabel("09:00 AM")
	require.NoError(t, err)

	booked := &DaySchedule{Slots: []*Slot{{Time: label, IsAvailable: false}}}
	assert.False(t, booked.HasAvailable())

	open := &DaySchedule{Slots: []*Slot{{Time: label, IsAvailable: true}}}
	assert.True(t, open.HasAvailable())

	empty := &DaySchedule{}
	assert.False(t, empty.HasAvailable())
}
