// Package task holds the in-memory task collection and its filter state, and
// recomputes the derived views (filtered list, month grid) on demand.
package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rezkam/taskmaster/internal/calendar"
	"github.com/rezkam/taskmaster/internal/domain"
	"github.com/rezkam/taskmaster/internal/filter"
	"github.com/rezkam/taskmaster/internal/ptr"
)

// Coordinator owns the task list and filter state for one authenticated
// owner. Mutations persist through the repository before the in-memory list
// changes, so a failed store write never diverges memory from disk.
//
// Each operation runs to completion under the mutex; callers on concurrent
// requests serialize rather than interleave over the same task.
type Coordinator struct {
	repo Repository

	mu      sync.Mutex
	ownerID string
	tasks   []domain.Task
	filter  domain.FilterState
}

// NewCoordinator creates a coordinator with no bound owner and the
// all-permissive default filter.
func NewCoordinator(repo Repository) *Coordinator {
	return &Coordinator{
		repo:   repo,
		filter: domain.DefaultFilterState(),
	}
}

// Bind loads the owner's tasks from the store and makes them the in-memory
// collection. Binding the empty owner clears the collection.
func (c *Coordinator) Bind(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.ownerID = ""
		c.tasks = nil
		return nil
	}

	tasks, err := c.repo.List(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ownerID = ownerID
	c.tasks = tasks
	return nil
}

// Add validates, persists, and prepends a new task. Empty text or a missing
// owner rejects before any store call.
func (c *Coordinator) Add(ctx context.Context, text, category string, startTime time.Time, endTime *time.Time) (domain.Task, error) {
	taskText, err := domain.NewTaskText(text)
	if err != nil {
		return domain.Task{}, err
	}
	if err := domain.ValidateStartTime(startTime); err != nil {
		return domain.Task{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ownerID == "" {
		return domain.Task{}, domain.ErrNotAuthorized
	}

	created, err := c.repo.Insert(ctx, c.ownerID, domain.Task{
		Text:      taskText.String(),
		Category:  category,
		StartTime: startTime,
		EndTime:   endTime,
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}

	c.tasks = append([]domain.Task{created}, c.tasks...)
	return created, nil
}

// ToggleCompletion flips the completed flag of the task with the given id.
// The new value is persisted before the in-memory record changes.
func (c *Coordinator) ToggleCompletion(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ownerID == "" {
		return domain.ErrNotAuthorized
	}

	idx := c.indexOf(id)
	if idx < 0 {
		return domain.ErrNotFound
	}

	completed := !c.tasks[idx].Completed
	if err := c.repo.Update(ctx, c.ownerID, id, Update{Completed: ptr.To(completed)}); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	c.tasks[idx].Completed = completed
	return nil
}

// Edit replaces the four mutable fields of the task with the given id.
// Passing a nil endTime clears any existing end time.
func (c *Coordinator) Edit(ctx context.Context, id, text, category string, startTime time.Time, endTime *time.Time) error {
	taskText, err := domain.NewTaskText(text)
	if err != nil {
		return err
	}
	if err := domain.ValidateStartTime(startTime); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ownerID == "" {
		return domain.ErrNotAuthorized
	}

	idx := c.indexOf(id)
	if idx < 0 {
		return domain.ErrNotFound
	}

	update := Update{
		Text:       ptr.To(taskText.String()),
		Category:   ptr.To(category),
		StartTime:  ptr.To(startTime),
		EndTime:    endTime,
		SetEndTime: true,
	}
	if err := c.repo.Update(ctx, c.ownerID, id, update); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	c.tasks[idx].Text = taskText.String()
	c.tasks[idx].Category = category
	c.tasks[idx].StartTime = startTime
	c.tasks[idx].EndTime = endTime
	return nil
}

// Remove deletes the task with the given id from the store and the list.
func (c *Coordinator) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ownerID == "" {
		return domain.ErrNotAuthorized
	}

	idx := c.indexOf(id)
	if idx < 0 {
		return domain.ErrNotFound
	}

	if err := c.repo.Delete(ctx, c.ownerID, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	c.tasks = append(c.tasks[:idx], c.tasks[idx+1:]...)
	return nil
}

// SetFilterState replaces the filter state wholesale.
func (c *Coordinator) SetFilterState(f domain.FilterState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
}

// ResetFilters restores the all-permissive default.
func (c *Coordinator) ResetFilters() {
	c.SetFilterState(domain.DefaultFilterState())
}

// FilterState returns the current filter state.
func (c *Coordinator) FilterState() domain.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Tasks returns a copy of the full task list in collection order.
func (c *Coordinator) Tasks() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// FilteredTasks returns the order-preserving subsequence of tasks matching
// the current filter state.
func (c *Coordinator) FilteredTasks() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasksMatching(c.filter)
}

// TasksMatching evaluates an ad-hoc filter state against the collection
// without touching the stored one.
func (c *Coordinator) TasksMatching(f domain.FilterState) []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasksMatching(f)
}

// tasksMatching is the shared filtered view. Callers must hold the mutex.
func (c *Coordinator) tasksMatching(f domain.FilterState) []domain.Task {
	var out []domain.Task
	for _, t := range c.tasks {
		if filter.Matches(t, f) {
			out = append(out, t)
		}
	}
	return out
}

// MonthGrid builds the calendar grid for the month containing reference.
// Buckets are computed over the full task list, not the filtered view, so
// the calendar always shows every task.
func (c *Coordinator) MonthGrid(reference, now time.Time) calendar.MonthGrid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return calendar.BuildMonthGrid(reference, c.tasks, c.filter.SelectedDate, now)
}

// indexOf returns the position of the task with the given id, or -1.
// Callers must hold the mutex.
func (c *Coordinator) indexOf(id string) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
