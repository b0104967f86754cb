package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeLabel
		wantErr bool
	}{
		{name: "canonical", input: "10:00 AM", want: "10:00 AM"},
		{name: "leading and trailing spaces", input: "  10:00 AM ", want: "10:00 AM"},
		{name: "lowercase meridiem", input: "10:00 am", want: "10:00 AM"},
		{name: "mixed case", input: "02:30 pM", want: "02:30 PM"},
		{name: "noon", input: "12:00 PM", want: "12:00 PM"},
		{name: "midnight", input: "12:00 AM", want: "12:00 AM"},
		{name: "24h format rejected", input: "14:00", wantErr: true},
		{name: "missing meridiem", input: "10:00", wantErr: true},
		{name: "garbage", input: "not a time", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeLabel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeLabel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeLabel_Validate(t *testing.T) {
	assert.NoError(t, TimeLabel("10:00 AM").Validate())
	assert.Error(t, TimeLabel("10:00 am").Validate(), "non-canonical case must fail")
	assert.Error(t, TimeLabel(" 10:00 AM").Validate(), "non-canonical spacing must fail")
	assert.Error(t, TimeLabel("").Validate())
}

func TestTimeLabel_Minutes(t *testing.T) {
	tests := []struct {
		label TimeLabel
		want  int
	}{
		{label: "12:00 AM", want: 0},
		{label: "01:00 AM", want: 60},
		{label: "10:30 AM", want: 630},
		{label: "12:00 PM", want: 720},
		{label: "11:30 PM", want: 1410},
	}

	for _, tt := range tests {
		got, err := tt.label.Minutes()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "label %s", tt.label)
	}
}

func TestTimeLabel_AddMinutes(t *testing.T) {
	tests := []struct {
		label   TimeLabel
		minutes int
		want    TimeLabel
	}{
		{label: "10:00 AM", minutes: 30, want: "10:30 AM"},
		{label: "11:30 AM", minutes: 30, want: "12:00 PM"},
		{label: "11:30 PM", minutes: 30, want: "12:00 AM"},
		{label: "10:00 AM", minutes: -30, want: "09:30 AM"},
	}

	for _, tt := range tests {
		got, err := tt.label.AddMinutes(tt.minutes)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "label %s + %d min", tt.label, tt.minutes)
	}
}

func TestTimeLabel_IsBefore(t *testing.T) {
	assert.True(t, TimeLabel("09:00 AM").IsBefore("10:00 AM"))
	assert.True(t, TimeLabel("11:00 AM").IsBefore("01:00 PM"))
	assert.False(t, TimeLabel("02:00 PM").IsBefore("10:00 AM"))
	assert.False(t, TimeLabel("10:00 AM").IsBefore("10:00 AM"))
}

func TestTimeLabel_At(t *testing.T) {
	date := time.Date(2025, 6, 10, 15, 42, 7, 0, time.UTC)

	got, err := TimeLabel("10:30 AM").At(date)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 10, 10, 30, 0, 0, time.UTC), got)
}

func TestTimeLabel_UnmarshalJSON(t *testing.T) {
	var l TimeLabel
	require.NoError(t, json.Unmarshal([]byte(`" 10:00 am "`), &l))
	assert.Equal(t, TimeLabel("10:00 AM"), l)

	require.Error(t, json.Unmarshal([]byte(`"25:00"`), &l))
}
