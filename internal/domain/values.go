package domain

import (
	"fmt"
	"strings"
	"time"
)

// TaskText is a validated task text value object (non-empty after trimming).
type TaskText struct {
	value string
}

// NewTaskText creates a TaskText, validating the input.
func NewTaskText(s string) (TaskText, error) {
	s = strings.TrimSpace(s)

	if s == "" {
		return TaskText{}, ErrTextRequired
	}

	return TaskText{value: s}, nil
}

// String returns the text value.
func (t TaskText) String() string {
	return t.value
}

// NewStatusFilter validates and creates a StatusFilter.
// The empty string maps to StatusAll.
func NewStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(strings.ToLower(s)) {
	case StatusAll, "":
		return StatusAll, nil
	case StatusActive:
		return StatusActive, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidStatusFilter, s)
	}
}

// DefaultCategories is the suggested category vocabulary presented to users.
// It is advisory only: Task.Category accepts any string.
var DefaultCategories = []string{
	"Personal",
	"Work",
	"Shopping",
	"Health",
	"Finance",
	"Education",
}

// ValidateStartTime checks the required start time is present.
func ValidateStartTime(t time.Time) error {
	if t.IsZero() {
		return ErrStartTimeRequired
	}
	return nil
}
