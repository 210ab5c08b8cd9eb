// Package filter evaluates tasks against a composite filter state.
//
// Matching is a pure function: every active constraint must pass (logical
// AND), inactive constraints pass everything, and no task is ever reordered
// here. Day-level and timestamp-level comparisons are deliberately kept as
// two distinct helpers: SameCalendarDay ignores time-of-day while
// withinInterval compares full timestamps.
package filter

import (
	"strings"
	"time"

	"github.com/rezkam/taskmaster/internal/domain"
)

// Matches reports whether the task satisfies every active constraint in the
// filter state. It is total over any well-formed task/filter pair and has no
// side effects.
func Matches(task domain.Task, f domain.FilterState) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(task.Text), strings.ToLower(f.Search)) {
		return false
	}

	if f.Category != nil && task.Category != *f.Category {
		return false
	}

	if f.Status == domain.StatusActive && task.Completed {
		return false
	}
	if f.Status == domain.StatusCompleted && !task.Completed {
		return false
	}

	if f.SelectedDate != nil {
		startsOnDay := SameCalendarDay(task.StartTime, *f.SelectedDate)
		endsOnDay := task.EndTime != nil && SameCalendarDay(*task.EndTime, *f.SelectedDate)
		if !startsOnDay && !endsOnDay {
			return false
		}
	}

	// Range filtering applies only when both bounds are present. A task that
	// starts before the range and ends after it is not matched: only the
	// task's own endpoints are tested, there is no enclosing-interval check.
	if f.DateRange.Bounded() {
		inRange := withinInterval(task.StartTime, *f.DateRange.Start, *f.DateRange.End) ||
			withinInterval(task.EffectiveEnd(), *f.DateRange.Start, *f.DateRange.End)
		if !inRange {
			return false
		}
	}

	return true
}

// SameCalendarDay reports whether a and b fall on the same calendar day,
// ignoring time-of-day. The comparison is made in a's location so that
// user-facing calendar semantics follow the consumer's local day rather than
// the UTC day.
func SameCalendarDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// withinInterval reports whether t lies in [start, end] inclusive. An
// inverted interval (end before start) matches nothing, which is how the
// engine degrades for user-entered inverted ranges.
func withinInterval(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
