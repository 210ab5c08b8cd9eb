package handler

import (
	"fmt"
	"net/url"
	"time"

	"github.com/rezkam/taskmaster/internal/domain"
)

// filterStateRequest is the JSON shape accepted when replacing the stored
// filter state. Absent fields take their permissive defaults, matching the
// wholesale-replace semantics of the coordinator.
type filterStateRequest struct {
	Search       string  `json:"search"`
	Category     *string `json:"category"`
	Status       string  `json:"status"`
	DateRange    *struct {
		Start *string `json:"start"`
		End   *string `json:"end"`
	} `json:"dateRange"`
	SelectedDate *string `json:"selectedDate"`
}

func (req filterStateRequest) toDomain() (domain.FilterState, error) {
	status, err := domain.NewStatusFilter(req.Status)
	if err != nil {
		return domain.FilterState{}, err
	}

	state := domain.DefaultFilterState()
	state.Search = req.Search
	state.Category = req.Category
	state.Status = status

	if req.DateRange != nil {
		if state.DateRange.Start, err = parseTimePtr(req.DateRange.Start); err != nil {
			return domain.FilterState{}, fmt.Errorf("dateRange.start: %w", err)
		}
		if state.DateRange.End, err = parseTimePtr(req.DateRange.End); err != nil {
			return domain.FilterState{}, fmt.Errorf("dateRange.end: %w", err)
		}
	}
	if state.SelectedDate, err = parseTimePtr(req.SelectedDate); err != nil {
		return domain.FilterState{}, fmt.Errorf("selectedDate: %w", err)
	}
	return state, nil
}

// parseFilterQuery builds an ad-hoc filter state from list query parameters.
// Recognized keys: search, category, status, selectedDate, start, end.
func parseFilterQuery(values url.Values) (domain.FilterState, error) {
	status, err := domain.NewStatusFilter(values.Get("status"))
	if err != nil {
		return domain.FilterState{}, err
	}

	state := domain.DefaultFilterState()
	state.Search = values.Get("search")
	state.Status = status

	if values.Has("category") {
		category := values.Get("category")
		state.Category = &category
	}

	if state.SelectedDate, err = parseQueryTime(values, "selectedDate"); err != nil {
		return domain.FilterState{}, err
	}
	if state.DateRange.Start, err = parseQueryTime(values, "start"); err != nil {
		return domain.FilterState{}, err
	}
	if state.DateRange.End, err = parseQueryTime(values, "end"); err != nil {
		return domain.FilterState{}, err
	}
	return state, nil
}

func parseQueryTime(values url.Values, key string) (*time.Time, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &t, nil
}

func parseTimePtr(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseFlexibleTime accepts full RFC 3339 timestamps and bare dates. A bare
// date resolves to local midnight so it aligns with calendar-day matching.
func parseFlexibleTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, want RFC 3339 or YYYY-MM-DD", raw)
}
