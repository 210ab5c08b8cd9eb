package domain

import "time"

// StatusFilter selects tasks by completion state.
// Value object - immutable string enum.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// DateRange is an inclusive timestamp interval. It constrains filtering only
// when both bounds are set; a single bound applies no constraint.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Bounded reports whether both ends of the range are present.
func (r DateRange) Bounded() bool {
	return r.Start != nil && r.End != nil
}

// FilterState is the composite predicate configuration applied to the task
// collection. It is owned exclusively by the coordinator and replaced
// wholesale on every update.
type FilterState struct {
	// Search is matched case-insensitively as a substring of Task.Text.
	// Empty means no constraint.
	Search string

	// Category, when non-nil, must equal Task.Category exactly
	// (case-sensitive).
	Category *string

	Status StatusFilter

	DateRange DateRange

	// SelectedDate constrains to tasks touching that calendar day.
	// Time-of-day is ignored.
	SelectedDate *time.Time
}

// DefaultFilterState returns the all-permissive filter: every well-formed
// task matches it.
func DefaultFilterState() FilterState {
	return FilterState{Status: StatusAll}
}
