package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "plus hour", start: "09:00", minutes: 60, want: "10:00"},
		{name: "plus half hour", start: "09:30", minutes: 30, want: "10:00"},
		{name: "across midnight", start: "23:30", minutes: 60, wantErr: true},
		{name: "negative below zero", start: "00:10", minutes: -20, wantErr: true},
		{name: "invalid format", start: "9am", minutes: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:00").IsAfter("09:00"))
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 3, 14, 9, 5, 59, 0, time.UTC)
	assert.Equal(t, TimeString("09:05"), NewTimeString(moment))
}

func TestNewTimeSlot(t *testing.T) {
	slot, err := NewTimeSlot("09:00", 60)
	require.NoError(t, err)
	assert.Equal(t, TimeSlot("09:00-10:00"), slot)

	start, err := slot.Start()
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:00"), start)

	end, err := slot.End()
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), end)
}

func TestTimeSlot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		slot    string
		wantErr bool
	}{
		{name: "valid", slot: "09:00-10:00"},
		{name: "reversed", slot: "10:00-09:00", wantErr: true},
		{name: "zero length", slot: "10:00-10:00", wantErr: true},
		{name: "missing end", slot: "10:00", wantErr: true},
		{name: "garbage", slot: "morning", wantErr: true},
		{name: "empty", slot: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeSlotFromString(tt.slot)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
