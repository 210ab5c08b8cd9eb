// Package calendar builds the month-aligned day grid used for calendar
// rendering. Weeks follow a Monday-first convention regardless of locale.
package calendar

import (
	"time"

	"github.com/rezkam/taskmaster/internal/domain"
	"github.com/rezkam/taskmaster/internal/filter"
)

// DaysPerWeek is fixed: every produced week holds exactly seven cells.
const DaysPerWeek = 7

// DayCell is one date of the grid paired with the tasks touching it.
// Derived and ephemeral: recomputed on every render pass, never persisted.
type DayCell struct {
	Date time.Time

	// Tasks whose start or end falls on this date, in collection order.
	// A task spanning two days appears in both cells.
	Tasks []domain.Task

	// InMonth is false for the padding days of adjacent months.
	InMonth bool

	Today    bool
	Selected bool
}

// Week is an ordered run of exactly seven day cells, Monday through Sunday.
type Week []DayCell

// MonthGrid is the week-aligned matrix covering the full calendar month of
// the reference date, padded at both ends to whole weeks.
type MonthGrid struct {
	Reference time.Time
	Weeks     []Week
}

// BuildMonthGrid enumerates every date from the Monday on or before the first
// of the reference month through the Sunday on or after its last day, buckets
// tasks per date, and partitions the dates into weeks. now and selected feed
// the Today and Selected cell tags; selected may be nil.
func BuildMonthGrid(reference time.Time, tasks []domain.Task, selected *time.Time, now time.Time) MonthGrid {
	firstOfMonth := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	// Week alignment is idempotent: a month starting on a Monday gets zero
	// leading padding.
	start := firstOfMonth.AddDate(0, 0, -daysSinceMonday(firstOfMonth.Weekday()))
	end := lastOfMonth.AddDate(0, 0, daysUntilSunday(lastOfMonth.Weekday()))

	grid := MonthGrid{Reference: reference}

	var week Week
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		cell := DayCell{
			Date:    day,
			Tasks:   tasksForDate(day, tasks),
			InMonth: day.Month() == reference.Month() && day.Year() == reference.Year(),
			Today:   filter.SameCalendarDay(day, now),
		}
		if selected != nil {
			cell.Selected = filter.SameCalendarDay(day, *selected)
		}

		week = append(week, cell)
		if len(week) == DaysPerWeek {
			grid.Weeks = append(grid.Weeks, week)
			week = nil
		}
	}

	return grid
}

// tasksForDate returns the ordered subset of tasks whose start or end falls
// on the given date.
func tasksForDate(date time.Time, tasks []domain.Task) []domain.Task {
	var matched []domain.Task
	for _, task := range tasks {
		if filter.SameCalendarDay(task.StartTime, date) ||
			(task.EndTime != nil && filter.SameCalendarDay(*task.EndTime, date)) {
			matched = append(matched, task)
		}
	}
	return matched
}

// daysSinceMonday maps a weekday to its offset from the preceding Monday.
func daysSinceMonday(d time.Weekday) int {
	return (int(d) + 6) % DaysPerWeek
}

// daysUntilSunday maps a weekday to its offset to the following Sunday.
func daysUntilSunday(d time.Weekday) int {
	return (DaysPerWeek - int(d)) % DaysPerWeek
}
