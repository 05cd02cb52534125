package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standup-tracker/internal/domain/entity"
)

func newTestStorage(t *testing.T) (*SessionStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStorage(client), mr
}

func testSession() *entity.Session {
	now := time.Now().UTC()
	return &entity.Session{
		ID:        "b7f6b5a0-0000-4000-8000-000000000001",
		UserID:    "42",
		Login:     "octocat",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestSessionStorage_SetGet(t *testing.T) {
	storage, _ := newTestStorage(t)
	ctx := context.Background()

	session := testSession()
	require.NoError(t, storage.Set(ctx, session))

	got, err := storage.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, "42", got.UserID)
	assert.Equal(t, "octocat", got.Login)
}

func TestSessionStorage_GetMissing(t *testing.T) {
	storage, _ := newTestStorage(t)

	_, err := storage.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestSessionStorage_SetExpired(t *testing.T) {
	storage, _ := newTestStorage(t)

	session := testSession()
	session.ExpiresAt = time.Now().Add(-time.Minute)
	assert.Error(t, storage.Set(context.Background(), session))
}

func TestSessionStorage_TTLExpiry(t *testing.T) {
	storage, mr := newTestStorage(t)
	ctx := context.Background()

	session := testSession()
	require.NoError(t, storage.Set(ctx, session))

	mr.FastForward(2 * time.Hour)

	_, err := storage.Get(ctx, session.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestSessionStorage_Delete(t *testing.T) {
	storage, _ := newTestStorage(t)
	ctx := context.Background()

	session := testSession()
	require.NoError(t, storage.Set(ctx, session))
	require.NoError(t, storage.Delete(ctx, session.ID))

	_, err := storage.Get(ctx, session.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, storage.Delete(ctx, session.ID))
}
