package handler

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/taskmaster/internal/domain"
)

func TestParseFilterQuery_EmptyIsDefault(t *testing.T) {
	state, err := parseFilterQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFilterState(), state)
}

func TestParseFilterQuery_AllKeys(t *testing.T) {
	values := url.Values{}
	values.Set("search", "groceries")
	values.Set("category", "personal")
	values.Set("status", "active")
	values.Set("selectedDate", "2024-04-10")
	values.Set("start", "2024-04-01T00:00:00Z")
	values.Set("end", "2024-04-30T23:59:59Z")

	state, err := parseFilterQuery(values)
	require.NoError(t, err)

	assert.Equal(t, "groceries", state.Search)
	require.NotNil(t, state.Category)
	assert.Equal(t, "personal", *state.Category)
	assert.Equal(t, domain.StatusActive, state.Status)
	require.NotNil(t, state.SelectedDate)
	assert.Equal(t, 10, state.SelectedDate.Day())
	require.True(t, state.DateRange.Bounded())
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), state.DateRange.Start.UTC())
}

func TestParseFilterQuery_EmptyCategoryIsStillAFilter(t *testing.T) {
	values := url.Values{}
	values.Set("category", "")

	state, err := parseFilterQuery(values)
	require.NoError(t, err)
	require.NotNil(t, state.Category)
	assert.Empty(t, *state.Category)
}

func TestParseFilterQuery_BadStatus(t *testing.T) {
	values := url.Values{}
	values.Set("status", "done")

	_, err := parseFilterQuery(values)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusFilter)
}

func TestParseFilterQuery_BadTime(t *testing.T) {
	values := url.Values{}
	values.Set("selectedDate", "April 10th")

	_, err := parseFilterQuery(values)
	assert.ErrorContains(t, err, "selectedDate")
}

func TestFilterStateRequest_ToDomain(t *testing.T) {
	category := "work"
	start := "2024-04-01T09:00:00Z"
	selected := "2024-04-10"

	req := filterStateRequest{
		Search:       "report",
		Category:     &category,
		Status:       "completed",
		SelectedDate: &selected,
	}
	req.DateRange = &struct {
		Start *string `json:"start"`
		End   *string `json:"end"`
	}{Start: &start}

	state, err := req.toDomain()
	require.NoError(t, err)

	assert.Equal(t, "report", state.Search)
	assert.Equal(t, domain.StatusCompleted, state.Status)
	require.NotNil(t, state.DateRange.Start)
	assert.Nil(t, state.DateRange.End)
	assert.False(t, state.DateRange.Bounded())
	require.NotNil(t, state.SelectedDate)
}

func TestFilterStateRequest_EmptyStatusDefaultsToAll(t *testing.T) {
	state, err := filterStateRequest{}.toDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAll, state.Status)
}

func TestParseFlexibleTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "rfc3339", input: "2024-04-10T15:04:05Z"},
		{name: "rfc3339 with offset", input: "2024-04-10T15:04:05+02:00"},
		{name: "bare date", input: "2024-04-10"},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseFlexibleTime(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseFlexibleTime_BareDateIsLocalMidnight(t *testing.T) {
	parsed, err := parseFlexibleTime("2024-04-10")
	require.NoError(t, err)

	assert.Equal(t, time.Local, parsed.Location())
	assert.Equal(t, 0, parsed.Hour())
	assert.Equal(t, 10, parsed.Day())
}
