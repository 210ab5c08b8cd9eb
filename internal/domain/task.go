package domain

import "time"

// Task is a user-owned, time-bound unit of work with completion status.
//
// Tasks are immutable value records from the filtering engine's point of view:
// every mutation goes through the coordinator, which persists first and then
// replaces the record in its list. Ownership is a storage-boundary concern and
// is never carried on the domain record itself.
type Task struct {
	ID        string
	Text      string
	Completed bool

	// Category is a free-form label. A suggested vocabulary exists (see
	// DefaultCategories) but any string is valid, including user-typed values.
	Category string

	// StartTime is required and always present.
	StartTime time.Time

	// EndTime is optional. An inverted range (EndTime before StartTime) is
	// not rejected; downstream comparisons tolerate it.
	EndTime *time.Time

	// CreatedAt is set once at creation and never mutated.
	CreatedAt time.Time
}

// EffectiveEnd returns EndTime when present, otherwise StartTime.
// Used by range filtering for tasks without an explicit end.
func (t Task) EffectiveEnd() time.Time {
	if t.EndTime != nil {
		return *t.EndTime
	}
	return t.StartTime
}

// User is an authenticated identity. The password hash never leaves the
// storage and authentication layers.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Session represents an issued session token. Only the BLAKE2b hash of the
// token's secret is stored; the full token exists client-side only.
type Session struct {
	ShortToken string
	SecretHash []byte
	UserID     string
	CreatedAt  time.Time
	LastUsedAt time.Time
}
