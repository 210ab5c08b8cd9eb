package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rezkam/taskmaster/internal/domain"
)

// memAuthRepo is an in-memory Repository for authenticator tests.
type memAuthRepo struct {
	mu       sync.Mutex
	users    map[string]domain.User // by id
	byEmail  map[string]string      // email -> id
	hashes   map[string][]byte      // id -> password hash
	sessions map[string]domain.Session
}

func newMemAuthRepo() *memAuthRepo {
	return &memAuthRepo{
		users:    make(map[string]domain.User),
		byEmail:  make(map[string]string),
		hashes:   make(map[string][]byte),
		sessions: make(map[string]domain.Session),
	}
}

func (r *memAuthRepo) CreateUser(ctx context.Context, user domain.User, hash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return domain.ErrEmailTaken
	}
	r.users[user.ID] = user
	r.byEmail[user.Email] = user.ID
	r.hashes[user.ID] = hash
	return nil
}

func (r *memAuthRepo) FindUserByEmail(ctx context.Context, email string) (domain.User, []byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, nil, domain.ErrNotFound
	}
	return r.users[id], r.hashes[id], nil
}

func (r *memAuthRepo) FindUserByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (r *memAuthRepo) CreateSession(ctx context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ShortToken] = session
	return nil
}

func (r *memAuthRepo) FindSession(ctx context.Context, shortToken string) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[shortToken]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return session, nil
}

func (r *memAuthRepo) DeleteSession(ctx context.Context, shortToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, shortToken)
	return nil
}

func (r *memAuthRepo) UpdateSessionLastUsed(ctx context.Context, shortToken string, ts time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[shortToken]; ok {
		session.LastUsedAt = ts
		r.sessions[shortToken] = session
	}
	return nil
}

func newTestAuthenticator(t *testing.T) (*Authenticator, *memAuthRepo) {
	t.Helper()
	repo := newMemAuthRepo()
	a := NewAuthenticator(context.Background(), repo, Config{BcryptCost: bcrypt.MinCost})
	t.Cleanup(a.Shutdown)
	return a, repo
}

func TestSignUpAndSignIn(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ctx := context.Background()

	user, signUpToken, err := a.SignUp(ctx, "Alice@Example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "email normalized to lower case")
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, signUpToken)

	signedIn, signInToken, err := a.SignIn(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)
	assert.NotEqual(t, signUpToken, signInToken, "each sign-in issues a fresh session")
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ctx := context.Background()

	_, _, err := a.SignUp(ctx, "bob@example.com", "pw")
	require.NoError(t, err)

	_, _, err = a.SignUp(ctx, "bob@example.com", "other")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestSignIn_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ctx := context.Background()

	_, _, err := a.SignUp(ctx, "carol@example.com", "right")
	require.NoError(t, err)

	_, _, wrongPw := a.SignIn(ctx, "carol@example.com", "wrong")
	_, _, unknown := a.SignIn(ctx, "nobody@example.com", "whatever")

	assert.ErrorIs(t, wrongPw, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, domain.ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ctx := context.Background()

	user, sessionToken, err := a.SignUp(ctx, "dave@example.com", "pw")
	require.NoError(t, err)

	resolved, err := a.Authenticate(ctx, sessionToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	_, err = a.Authenticate(ctx, "tm-v1-000000000000-bogussecret")
	assert.ErrorIs(t, err, domain.ErrInvalidSessionToken)

	_, err = a.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidSessionToken)
}

func TestAuthenticate_TamperedSecret(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ctx := context.Background()

	_, sessionToken, err := a.SignUp(ctx, "eve@example.com", "pw")
	require.NoError(t, err)

	// Swap the secret for another valid-looking one: short token still
	// resolves but the hash comparison must fail.
	tampered := sessionToken[:len(sessionToken)-5] + "XXXXX"
	_, err = a.Authenticate(ctx, tampered)
	assert.ErrorIs(t, err, domain.ErrInvalidSessionToken)
}

func TestSignOut(t *testing.T) {
	a, repo := newTestAuthenticator(t)
	ctx := context.Background()

	_, sessionToken, err := a.SignUp(ctx, "frank@example.com", "pw")
	require.NoError(t, err)
	require.Len(t, repo.sessions, 1)

	require.NoError(t, a.SignOut(ctx, sessionToken))
	assert.Empty(t, repo.sessions)

	_, err = a.Authenticate(ctx, sessionToken)
	assert.ErrorIs(t, err, domain.ErrInvalidSessionToken)

	assert.NoError(t, a.SignOut(ctx, "not-a-token"), "unparseable token sign-out is a no-op")
}

func TestShutdownIsIdempotent(t *testing.T) {
	repo := newMemAuthRepo()
	a := NewAuthenticator(context.Background(), repo, Config{BcryptCost: bcrypt.MinCost})

	a.Shutdown()
	a.Shutdown()
}
