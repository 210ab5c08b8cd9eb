package domain

import "time"

// SnapshotRecord is the portable representation of a task used by export and
// import. Internal identifiers (task id, owner) are stripped: importing a
// snapshot always mints fresh ids.
type SnapshotRecord struct {
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Category  string     `json:"category"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	// CreatedAt is preserved on import when present; a zero value means the
	// store assigns a fresh creation time.
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// SnapshotFromTask strips a task down to its portable fields.
func SnapshotFromTask(t Task) SnapshotRecord {
	return SnapshotRecord{
		Text:      t.Text,
		Completed: t.Completed,
		Category:  t.Category,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		CreatedAt: t.CreatedAt,
	}
}

// Task converts the record back into a task without an id; the store assigns
// one on insert.
func (r SnapshotRecord) Task() Task {
	return Task{
		Text:      r.Text,
		Completed: r.Completed,
		Category:  r.Category,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		CreatedAt: r.CreatedAt,
	}
}
