package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MST-BookingService/pkg/types"
)

func TestNewWorkHours(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{name: "valid", start: "09:00", end: "18:00"},
		{name: "start equals end", start: "09:00", end: "09:00", wantErr: ErrInvalidTimeWindow},
		{name: "start after end", start: "18:00", end: "09:00", wantErr: ErrInvalidTimeWindow},
		{name: "malformed start", start: "9am", end: "18:00", wantErr: types.ErrInvalidTimeString},
		{name: "malformed end", start: "09:00", end: "25:00", wantErr: types.ErrInvalidTimeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWorkHours(tt.start, tt.end)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, w.Start.String())
			assert.Equal(t, tt.end, w.End.String())
		})
	}
}

func TestWorkHours_WorkMinutes(t *testing.T) {
	w, err := NewWorkHours("09:00", "18:00")
	require.NoError(t, err)
	assert.Equal(t, 540, w.WorkMinutes())
}

func TestNewBreak(t *testing.T) {
	_, err := NewBreak("14:00", "13:00")
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)

	br, err := NewBreak("13:00", "14:00")
	require.NoError(t, err)
	assert.Equal(t, 60, br.DurationMinutes())
}

func TestDaySchedule_TotalBreakMinutes(t *testing.T) {
	schedule := &DaySchedule{
		WorkHours: WorkHours{Start: "09:00", End: "18:00"},
		Breaks: []Break{
			{Start: "12:00", End: "13:00"},
			{Start: "16:00", End: "16:30"},
		},
	}

	assert.Equal(t, 90, schedule.TotalBreakMinutes())
}

func TestDaySchedule_TotalBreakMinutes_OverlappingBreaksNotDeduplicated(t *testing.T) {
	// Легаси-поведение оценки занятости: пересекающиеся перерывы суммируются как есть
	schedule := &DaySchedule{
		WorkHours: WorkHours{Start: "09:00", End: "18:00"},
		Breaks: []Break{
			{Start: "12:00", End: "14:00"},
			{Start: "13:00", End: "15:00"},
		},
	}

	assert.Equal(t, 240, schedule.TotalBreakMinutes())
}

func TestDaySchedule_WindowInBreak(t *testing.T) {
	schedule := &DaySchedule{
		WorkHours: WorkHours{Start: "09:00", End: "18:00"},
		Breaks:    []Break{{Start: "13:00", End: "14:00"}},
	}

	// 12:00-13:00 граничит с перерывом - не пересечение
	assert.False(t, schedule.WindowInBreak(12*60, 13*60))
	// 12:30-13:30 пересекается
	assert.True(t, schedule.WindowInBreak(12*60+30, 13*60+30))
	// 14:00-15:00 граничит с концом перерыва - не пересечение
	assert.False(t, schedule.WindowInBreak(14*60, 15*60))
	// Внутри перерыва
	assert.True(t, schedule.WindowInBreak(13*60+15, 13*60+45))
}

func TestDaySchedule_Validate(t *testing.T) {
	schedule := &DaySchedule{
		WorkHours: WorkHours{Start: "09:00", End: "18:00"},
		Breaks:    []Break{{Start: "13:00", End: "12:00"}},
	}
	assert.ErrorIs(t, schedule.Validate(), ErrInvalidTimeWindow)

	schedule.Breaks = nil
	assert.NoError(t, schedule.Validate())
}
