package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain text", input: "buy groceries", want: "buy groceries"},
		{name: "surrounding whitespace trimmed", input: "  call dentist  ", want: "call dentist"},
		{name: "empty", input: "", wantErr: ErrTextRequired},
		{name: "whitespace only", input: "   \t ", wantErr: ErrTextRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := NewTaskText(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, text.String())
		})
	}
}

func TestNewStatusFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    StatusFilter
		wantErr bool
	}{
		{input: "all", want: StatusAll},
		{input: "", want: StatusAll},
		{input: "active", want: StatusActive},
		{input: "completed", want: StatusCompleted},
		{input: "Completed", want: StatusCompleted},
		{input: "done", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			status, err := NewStatusFilter(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidStatusFilter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestEffectiveEnd(t *testing.T) {
	start := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 12, 17, 0, 0, 0, time.UTC)

	withEnd := Task{StartTime: start, EndTime: &end}
	assert.Equal(t, end, withEnd.EffectiveEnd())

	withoutEnd := Task{StartTime: start}
	assert.Equal(t, start, withoutEnd.EffectiveEnd())
}

func TestDefaultFilterStateIsPermissive(t *testing.T) {
	f := DefaultFilterState()

	assert.Empty(t, f.Search)
	assert.Nil(t, f.Category)
	assert.Equal(t, StatusAll, f.Status)
	assert.False(t, f.DateRange.Bounded())
	assert.Nil(t, f.SelectedDate)
}
