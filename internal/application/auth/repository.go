package auth

import (
	"context"
	"time"

	"github.com/rezkam/taskmaster/internal/domain"
)

// Repository defines storage operations for authentication.
type Repository interface {
	// CreateUser persists a new user with their password hash.
	// Returns domain.ErrEmailTaken if the email is already registered.
	CreateUser(ctx context.Context, user domain.User, passwordHash []byte) error

	// FindUserByEmail retrieves a user and their password hash by email.
	// Returns domain.ErrNotFound if no such user exists.
	FindUserByEmail(ctx context.Context, email string) (domain.User, []byte, error)

	// CreateSession persists a new session.
	CreateSession(ctx context.Context, session domain.Session) error

	// FindSession retrieves a session by its short token.
	// Returns domain.ErrNotFound if no such session exists.
	FindSession(ctx context.Context, shortToken string) (domain.Session, error)

	// FindUserByID retrieves a user by id.
	// Returns domain.ErrNotFound if no such user exists.
	FindUserByID(ctx context.Context, id string) (domain.User, error)

	// DeleteSession removes a session by its short token.
	DeleteSession(ctx context.Context, shortToken string) error

	// UpdateSessionLastUsed updates the last used timestamp for a session.
	UpdateSessionLastUsed(ctx context.Context, shortToken string, timestamp time.Time) error
}
