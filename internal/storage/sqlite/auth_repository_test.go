package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/taskmaster/internal/domain"
)

func TestAuthRepository_CreateAndFindUser(t *testing.T) {
	store := newTestStore(t)
	repo := NewAuthRepository(store)
	ctx := context.Background()

	user := domain.User{
		ID:        "user-1",
		Email:     "alice@example.com",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateUser(ctx, user, []byte("bcrypt-hash")))

	found, hash, err := repo.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user, found)
	assert.Equal(t, []byte("bcrypt-hash"), hash)

	byID, err := repo.FindUserByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, user, byID)
}

func TestAuthRepository_UniqueEmail(t *testing.T) {
	store := newTestStore(t)
	repo := NewAuthRepository(store)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.CreateUser(ctx, domain.User{ID: "u1", Email: "dup@example.com", CreatedAt: now}, []byte("h1")))

	err := repo.CreateUser(ctx, domain.User{ID: "u2", Email: "dup@example.com", CreatedAt: now}, []byte("h2"))
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthRepository_FindUserNotFound(t *testing.T) {
	store := newTestStore(t)
	repo := NewAuthRepository(store)
	ctx := context.Background()

	_, _, err := repo.FindUserByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.FindUserByID(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthRepository_SessionLifecycle(t *testing.T) {
	store := newTestStore(t)
	repo := NewAuthRepository(store)
	ctx := context.Background()

	createTestUser(t, store, "user-1", "s@example.com")

	now := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	session := domain.Session{
		ShortToken: "a3f5d8c2b4e6",
		SecretHash: []byte{1, 2, 3, 4},
		UserID:     "user-1",
		CreatedAt:  now,
		LastUsedAt: now,
	}
	require.NoError(t, repo.CreateSession(ctx, session))

	found, err := repo.FindSession(ctx, "a3f5d8c2b4e6")
	require.NoError(t, err)
	assert.Equal(t, session, found)

	later := now.Add(time.Hour)
	require.NoError(t, repo.UpdateSessionLastUsed(ctx, "a3f5d8c2b4e6", later))
	found, err = repo.FindSession(ctx, "a3f5d8c2b4e6")
	require.NoError(t, err)
	assert.Equal(t, later, found.LastUsedAt)

	require.NoError(t, repo.DeleteSession(ctx, "a3f5d8c2b4e6"))
	_, err = repo.FindSession(ctx, "a3f5d8c2b4e6")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthRepository_DeleteSessionsIdleSince(t *testing.T) {
	store := newTestStore(t)
	repo := NewAuthRepository(store)
	ctx := context.Background()

	createTestUser(t, store, "user-1", "s@example.com")

	cutoff := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	stale := domain.Session{
		ShortToken: "stale-token",
		SecretHash: []byte{1},
		UserID:     "user-1",
		CreatedAt:  cutoff.Add(-48 * time.Hour),
		LastUsedAt: cutoff.Add(-24 * time.Hour),
	}
	fresh := domain.Session{
		ShortToken: "fresh-token",
		SecretHash: []byte{2},
		UserID:     "user-1",
		CreatedAt:  cutoff.Add(-48 * time.Hour),
		LastUsedAt: cutoff.Add(time.Hour),
	}
	require.NoError(t, repo.CreateSession(ctx, stale))
	require.NoError(t, repo.CreateSession(ctx, fresh))

	deleted, err := repo.DeleteSessionsIdleSince(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.FindSession(ctx, "stale-token")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.FindSession(ctx, "fresh-token")
	assert.NoError(t, err)
}
