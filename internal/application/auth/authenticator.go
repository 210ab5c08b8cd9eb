// Package auth provides email/password authentication and session issuing.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rezkam/taskmaster/internal/domain"
	"github.com/rezkam/taskmaster/internal/token"
)

// Default configuration values.
const (
	DefaultBcryptCost       = bcrypt.DefaultCost
	DefaultOperationTimeout = 5 * time.Second
	DefaultUpdateQueueSize  = 1000
)

// Config holds configuration for the Authenticator.
type Config struct {
	BcryptCost       int           // Password hashing cost
	OperationTimeout time.Duration // Timeout for storage operations
	UpdateQueueSize  int           // Buffer size for last_used_at updates
}

// lastUsedUpdate holds information for updating a session's last_used_at.
type lastUsedUpdate struct {
	shortToken string
	timestamp  time.Time
}

// Authenticator handles sign-up, sign-in, and session token validation.
// Session last_used_at updates run on a background worker so validation
// never blocks on a non-critical write.
type Authenticator struct {
	repo             Repository
	appCtx           context.Context
	bcryptCost       int
	operationTimeout time.Duration

	lastUsedUpdates chan lastUsedUpdate
	shutdownChan    chan struct{}
	shutdownOnce    sync.Once
	wg              sync.WaitGroup
}

// NewAuthenticator creates an authenticator and starts the background worker
// for last_used_at updates. ctx should be an application-level context that
// gets cancelled on shutdown.
func NewAuthenticator(ctx context.Context, repo Repository, config Config) *Authenticator {
	if config.BcryptCost < bcrypt.MinCost {
		config.BcryptCost = DefaultBcryptCost
	}
	if config.OperationTimeout < 0 {
		config.OperationTimeout = DefaultOperationTimeout
	}
	if config.UpdateQueueSize <= 0 {
		config.UpdateQueueSize = DefaultUpdateQueueSize
	}

	a := &Authenticator{
		repo:             repo,
		appCtx:           ctx,
		bcryptCost:       config.BcryptCost,
		operationTimeout: config.OperationTimeout,
		lastUsedUpdates:  make(chan lastUsedUpdate, config.UpdateQueueSize),
		shutdownChan:     make(chan struct{}),
	}

	a.wg.Add(1)
	go a.processLastUsedUpdates()

	return a
}

// SignUp registers a new user and issues a session token.
func (a *Authenticator) SignUp(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domain.User{}, "", fmt.Errorf("failed to generate id: %w", err)
	}

	user := domain.User{
		ID:        id.String(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	if err := a.repo.CreateUser(ctx, user, hash); err != nil {
		return domain.User{}, "", err
	}

	sessionToken, err := a.issueSession(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	return user, sessionToken, nil
}

// SignIn validates credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, hash, err := a.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", domain.ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	sessionToken, err := a.issueSession(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	return user, sessionToken, nil
}

// Authenticate resolves a session token to its user. A valid token enqueues
// a last_used_at update; queue overflow drops the update rather than block.
func (a *Authenticator) Authenticate(ctx context.Context, sessionToken string) (domain.User, error) {
	parts, err := token.Parse(sessionToken)
	if err != nil {
		return domain.User{}, err
	}

	session, err := a.repo.FindSession(ctx, parts.ShortToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrInvalidSessionToken
		}
		return domain.User{}, fmt.Errorf("failed to look up session: %w", err)
	}

	if !parts.Verify(session.SecretHash) {
		return domain.User{}, domain.ErrInvalidSessionToken
	}

	user, err := a.repo.FindUserByID(ctx, session.UserID)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to look up session user: %w", err)
	}

	select {
	case a.lastUsedUpdates <- lastUsedUpdate{shortToken: parts.ShortToken, timestamp: time.Now().UTC()}:
	default:
		slog.WarnContext(ctx, "Session last_used_at queue full, dropping update",
			slog.String("session", parts.DisplayToken()))
	}

	return user, nil
}

// SignOut deletes the session behind a token. An unparseable token is a
// no-op success: the session the caller holds is unusable either way.
func (a *Authenticator) SignOut(ctx context.Context, sessionToken string) error {
	parts, err := token.Parse(sessionToken)
	if err != nil {
		return nil
	}
	return a.repo.DeleteSession(ctx, parts.ShortToken)
}

func (a *Authenticator) issueSession(ctx context.Context, userID string) (string, error) {
	parts, err := token.Generate()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now().UTC()
	session := domain.Session{
		ShortToken: parts.ShortToken,
		SecretHash: parts.SecretHash(),
		UserID:     userID,
		CreatedAt:  now,
		LastUsedAt: now,
	}

	if err := a.repo.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return parts.FullToken, nil
}

// processLastUsedUpdates drains the update queue on a single goroutine.
func (a *Authenticator) processLastUsedUpdates() {
	defer a.wg.Done()

	for {
		select {
		case update := <-a.lastUsedUpdates:
			ctx, cancel := context.WithTimeout(a.appCtx, a.operationTimeout)
			if err := a.repo.UpdateSessionLastUsed(ctx, update.shortToken, update.timestamp); err != nil {
				slog.WarnContext(ctx, "Failed to update session last_used_at",
					slog.String("error", err.Error()))
			}
			cancel()

		case <-a.shutdownChan:
			// Drain remaining updates before exiting. Cleanup uses a fresh
			// background context because appCtx is already cancelled here.
			for {
				select {
				case update := <-a.lastUsedUpdates:
					ctx, cancel := context.WithTimeout(context.Background(), a.operationTimeout)
					_ = a.repo.UpdateSessionLastUsed(ctx, update.shortToken, update.timestamp)
					cancel()
				default:
					return
				}
			}
		}
	}
}

// Shutdown stops the background worker after it finishes queued updates.
// Idempotent.
func (a *Authenticator) Shutdown() {
	a.shutdownOnce.Do(func() {
		close(a.shutdownChan)
	})
	a.wg.Wait()
}
