package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MST-BookingService/pkg/types"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusCanceled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCanceled, StatusPending, false},
		{StatusCanceled, StatusConfirmed, false},
		{StatusCanceled, StatusCompleted, false},
		{StatusCompleted, StatusCanceled, false},
		{StatusCompleted, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCanceled}).IsActive())
	assert.False(t, (&Booking{Status: StatusCompleted}).IsActive())
}

func TestBooking_IsTerminal(t *testing.T) {
	assert.False(t, (&Booking{Status: StatusPending}).IsTerminal())
	assert.False(t, (&Booking{Status: StatusConfirmed}).IsTerminal())
	assert.True(t, (&Booking{Status: StatusCanceled}).IsTerminal())
	assert.True(t, (&Booking{Status: StatusCompleted}).IsTerminal())
}

func TestBooking_StartDateTime(t *testing.T) {
	b := &Booking{
		BookingDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("10:30"),
	}

	dt, err := b.StartDateTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC), dt)
}

func TestParseBookingStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "canceled", "completed"} {
		status, ok := ParseBookingStatus(s)
		assert.True(t, ok)
		assert.Equal(t, BookingStatus(s), status)
	}

	_, ok := ParseBookingStatus("cancelled")
	assert.False(t, ok)
	_, ok = ParseBookingStatus("")
	assert.False(t, ok)
}

func TestMasterSettings_CancelDeadlineFor(t *testing.T) {
	settings := DefaultMasterSettings(42)
	start := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	deadline := settings.CancelDeadlineFor(start)
	assert.Equal(t, start.Add(-24*time.Hour), deadline)
}
