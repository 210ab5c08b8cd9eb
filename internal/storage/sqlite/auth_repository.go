package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rezkam/taskmaster/internal/domain"
)

// AuthRepository implements auth.Repository on the shared store.
type AuthRepository struct {
	store *Store
}

// NewAuthRepository creates an auth repository.
func NewAuthRepository(store *Store) *AuthRepository {
	return &AuthRepository{store: store}
}

// CreateUser persists a new user with their password hash.
func (r *AuthRepository) CreateUser(ctx context.Context, user domain.User, passwordHash []byte) error {
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		user.ID, user.Email, passwordHash, formatTime(user.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user and their password hash by email.
func (r *AuthRepository) FindUserByEmail(ctx context.Context, email string) (domain.User, []byte, error) {
	var user domain.User
	var hash []byte
	var createdAt string

	err := r.store.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, email).
		Scan(&user.ID, &user.Email, &hash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, nil, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.User{}, nil, err
	}
	return user, hash, nil
}

// FindUserByID retrieves a user by id.
func (r *AuthRepository) FindUserByID(ctx context.Context, id string) (domain.User, error) {
	var user domain.User
	var createdAt string

	err := r.store.db.QueryRowContext(ctx, `
		SELECT id, email, created_at FROM users WHERE id = ?`, id).
		Scan(&user.ID, &user.Email, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to find user by id: %w", err)
	}

	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// CreateSession persists a new session.
func (r *AuthRepository) CreateSession(ctx context.Context, session domain.Session) error {
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO sessions (short_token, secret_hash, user_id, created_at, last_used_at)
		VALUES (?, ?, ?, ?, ?)`,
		session.ShortToken, session.SecretHash, session.UserID,
		formatTime(session.CreatedAt), formatTime(session.LastUsedAt))
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindSession retrieves a session by its short token.
func (r *AuthRepository) FindSession(ctx context.Context, shortToken string) (domain.Session, error) {
	var session domain.Session
	var createdAt, lastUsedAt string

	err := r.store.db.QueryRowContext(ctx, `
		SELECT short_token, secret_hash, user_id, created_at, last_used_at
		FROM sessions WHERE short_token = ?`, shortToken).
		Scan(&session.ShortToken, &session.SecretHash, &session.UserID, &createdAt, &lastUsedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to find session: %w", err)
	}

	if session.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Session{}, err
	}
	if session.LastUsedAt, err = parseTime(lastUsedAt); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// DeleteSession removes a session by its short token.
func (r *AuthRepository) DeleteSession(ctx context.Context, shortToken string) error {
	if _, err := r.store.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE short_token = ?", shortToken); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// UpdateSessionLastUsed updates the last used timestamp for a session.
func (r *AuthRepository) UpdateSessionLastUsed(ctx context.Context, shortToken string, timestamp time.Time) error {
	if _, err := r.store.db.ExecContext(ctx,
		"UPDATE sessions SET last_used_at = ? WHERE short_token = ?",
		formatTime(timestamp), shortToken); err != nil {
		return fmt.Errorf("failed to update session last_used_at: %w", err)
	}
	return nil
}

// DeleteSessionsIdleSince removes sessions whose last_used_at is before the
// cutoff and reports how many were deleted. datetime() normalizes the stored
// text timestamps so fractional-second precision differences do not affect
// the comparison.
func (r *AuthRepository) DeleteSessionsIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.store.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE datetime(last_used_at) < datetime(?)", formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to delete idle sessions: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sessions: %w", err)
	}
	return deleted, nil
}

// isUniqueViolation checks if an error is a SQLite unique constraint
// violation. The modernc driver surfaces these in the error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
