package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/gradebook/internal/domain/auth"
	"github.com/target/gradebook/internal/ports"
	"github.com/target/gradebook/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func teacherSession(id, userID string, ttl time.Duration) domainauth.Session {
	return domainauth.Session{
		ID:        id,
		UserID:    userID,
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@school.example",
		Role:      domainauth.RoleTeacher,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := teacherSession("test-session-1", "user-123", 30*time.Minute)
	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.UserID, retrieved.UserID)
	assert.Equal(t, session.FirstName, retrieved.FirstName)
	assert.Equal(t, session.Role, retrieved.Role)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)

	members := client.SMembers(ctx, "session:user:user-123").Val()
	assert.Equal(t, []string{"test-session-1"}, members)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "non-existent")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	_, err = store.Get(context.Background(), "")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_GetStoreFailureIsNotNotFound(t *testing.T) {
	// Nothing listens on this port; the error must not look like a missing session.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	store := NewSessionStore(client)
	_, err := store.Get(context.Background(), "any")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, teacherSession("test-session-delete", "user-123", 30*time.Minute)))
	require.NoError(t, store.Delete(ctx, "test-session-delete"))

	_, err := store.Get(ctx, "test-session-delete")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_DeleteUserSessions(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, teacherSession("laptop", "user-1", 30*time.Minute)))
	require.NoError(t, store.Save(ctx, teacherSession("phone", "user-1", time.Hour)))
	require.NoError(t, store.Save(ctx, teacherSession("other", "user-2", time.Hour)))

	n, err := store.DeleteUserSessions(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = store.Get(ctx, "laptop")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, "phone")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, "other")
	require.NoError(t, err)

	assert.Equal(t, int64(0), client.Exists(ctx, "session:user:user-1").Val())
}

func TestSessionStore_DeleteUserSessionsUnknownUser(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	n, err := NewSessionStore(client).DeleteUserSessions(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSessionStore_IndexOutlivesShorterSession(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, teacherSession("long", "user-1", 2*time.Hour)))
	require.NoError(t, store.Save(ctx, teacherSession("short", "user-1", time.Minute)))

	ttl := client.TTL(ctx, "session:user:user-1").Val()
	assert.Greater(t, ttl, time.Hour)
}

func TestSessionStore_TTLExpiration(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, teacherSession("test-session-ttl", "user-123", 100*time.Millisecond)))
	time.Sleep(200 * time.Millisecond)

	_, err := store.Get(ctx, "test-session-ttl")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStoreWithPrefix(client, "test-prefix:")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, teacherSession("prefix-test", "user-123", 30*time.Minute)))

	assert.Equal(t, int64(1), client.Exists(ctx, "test-prefix:prefix-test").Val())
	assert.Equal(t, int64(1), client.Exists(ctx, "test-prefix:user:user-123").Val())
}

func TestSessionStore_SaveValidation(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	err := store.Save(ctx, teacherSession("", "user-123", time.Minute))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID cannot be empty")

	err = store.Save(ctx, teacherSession("no-user", "", time.Minute))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user ID cannot be empty")

	err = store.Save(ctx, teacherSession("expired", "user-123", -time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session is expired")
}
