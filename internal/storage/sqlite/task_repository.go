package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/taskmaster/internal/application/task"
	"github.com/rezkam/taskmaster/internal/domain"
)

// TaskRepository implements task.Repository on the shared store.
type TaskRepository struct {
	store *Store
}

// NewTaskRepository creates a task repository.
func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

// List returns all tasks owned by ownerID, newest created first.
func (r *TaskRepository) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, text, completed, category, start_time, end_time, created_at
		FROM tasks
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// Insert persists a task, assigning a fresh id. A zero CreatedAt gets the
// current time; a non-zero one (snapshot imports) is preserved.
func (r *TaskRepository) Insert(ctx context.Context, ownerID string, t domain.Task) (domain.Task, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to generate id: %w", err)
	}
	t.ID = id.String()

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	var endTime sql.NullString
	if t.EndTime != nil {
		endTime = sql.NullString{String: formatTime(*t.EndTime), Valid: true}
	}

	_, err = r.store.db.ExecContext(ctx, `
		INSERT INTO tasks (id, owner_id, text, completed, category, start_time, end_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, ownerID, t.Text, t.Completed, t.Category,
		formatTime(t.StartTime), endTime, formatTime(t.CreatedAt))
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}

	return t, nil
}

// Update applies partial fields to the task with the given id.
func (r *TaskRepository) Update(ctx context.Context, ownerID, id string, update task.Update) error {
	var sets []string
	var args []any

	if update.Text != nil {
		sets = append(sets, "text = ?")
		args = append(args, *update.Text)
	}
	if update.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *update.Category)
	}
	if update.StartTime != nil {
		sets = append(sets, "start_time = ?")
		args = append(args, formatTime(*update.StartTime))
	}
	if update.SetEndTime {
		sets = append(sets, "end_time = ?")
		if update.EndTime != nil {
			args = append(args, formatTime(*update.EndTime))
		} else {
			args = append(args, nil)
		}
	}
	if update.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *update.Completed)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id, ownerID)
	result, err := r.store.db.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ? AND owner_id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the task with the given id.
func (r *TaskRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.store.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTask(rows *sql.Rows) (domain.Task, error) {
	var t domain.Task
	var startTime, createdAt string
	var endTime sql.NullString

	if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.Category, &startTime, &endTime, &createdAt); err != nil {
		return domain.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}

	var err error
	if t.StartTime, err = parseTime(startTime); err != nil {
		return domain.Task{}, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Task{}, err
	}
	if endTime.Valid {
		end, err := parseTime(endTime.String)
		if err != nil {
			return domain.Task{}, err
		}
		t.EndTime = &end
	}

	return t, nil
}
