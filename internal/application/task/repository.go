package task

import (
	"context"
	"time"

	"github.com/rezkam/taskmaster/internal/domain"
)

// Update contains the partial fields applied by a store update. A nil field
// is left untouched; EndTime is special-cased because clearing it is a valid
// update, so it is only applied when SetEndTime is true.
type Update struct {
	Text      *string
	Category  *string
	StartTime *time.Time
	Completed *bool

	EndTime    *time.Time
	SetEndTime bool
}

// Repository defines the durable task store consumed by the coordinator.
// Every operation is scoped to an owner; an id that exists under a different
// owner behaves exactly like a missing id.
type Repository interface {
	// List returns all tasks owned by ownerID, newest created first.
	List(ctx context.Context, ownerID string) ([]domain.Task, error)

	// Insert persists a task without an id, assigning a fresh id. A zero
	// CreatedAt is assigned by the store; a non-zero one is preserved.
	Insert(ctx context.Context, ownerID string, task domain.Task) (domain.Task, error)

	// Update applies partial fields to the task with the given id.
	// Returns domain.ErrNotFound on unknown id or owner mismatch.
	Update(ctx context.Context, ownerID, id string, update Update) error

	// Delete removes the task with the given id.
	// Returns domain.ErrNotFound on unknown id or owner mismatch.
	Delete(ctx context.Context, ownerID, id string) error
}
