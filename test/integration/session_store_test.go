package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"legal-assistant-be/internal/apperr"
	"legal-assistant-be/internal/pkg/logger"
	"legal-assistant-be/pkg/session"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxHistory int, ttl time.Duration) *session.Store {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)

	testLogger := logger.NewZapLogger("../../logs/test.log", false)
	store, err := session.NewStore(redis.NewClient(opts), maxHistory, ttl, testLogger)
	require.NoError(t, err)
	return store
}

func TestSessionLifecycle(t *testing.T) {
	store := newTestStore(t, 10, time.Hour)
	ctx := context.Background()
	userId := "it-user-" + uuid.NewString()

	sessionId, err := store.Create(ctx, userId)
	require.NoError(t, err)
	require.NotEmpty(t, sessionId)

	t.Run("New session starts empty", func(t *testing.T) {
		history, err := store.GetHistory(ctx, userId, sessionId)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("Append preserves order", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, userId, sessionId, session.RoleUser, "What is section 302?"))
		require.NoError(t, store.Append(ctx, userId, sessionId, session.RoleAssistant, "Section 302 covers..."))

		history, err := store.GetHistory(ctx, userId, sessionId)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, session.RoleUser, history[0].Role)
		assert.Equal(t, session.RoleAssistant, history[1].Role)
	})

	t.Run("Latest returns the session", func(t *testing.T) {
		latest, err := store.Latest(ctx, userId)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, sessionId, latest.Id)
	})

	t.Run("Delete removes the session", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, userId, sessionId))

		_, err := store.GetHistory(ctx, userId, sessionId)
		assert.ErrorIs(t, err, apperr.ErrSessionNotFound)

		latest, err := store.Latest(ctx, userId)
		require.NoError(t, err)
		assert.Nil(t, latest)
	})
}

func TestSessionHistoryTrimsOldestFirst(t *testing.T) {
	store := newTestStore(t, 4, time.Hour)
	ctx := context.Background()
	userId := "it-user-" + uuid.NewString()

	sessionId, err := store.Create(ctx, userId)
	require.NoError(t, err)
	defer store.Delete(ctx, userId, sessionId)

	for i := 0; i < 7; i++ {
		require.NoError(t, store.Append(ctx, userId, sessionId, session.RoleUser, fmt.Sprintf("message %d", i)))
	}

	history, err := store.GetHistory(ctx, userId, sessionId)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "message 3", history[0].Content)
	assert.Equal(t, "message 6", history[3].Content)
}

func TestSessionOwnershipEnforced(t *testing.T) {
	store := newTestStore(t, 10, time.Hour)
	ctx := context.Background()
	owner := "it-owner-" + uuid.NewString()
	intruder := "it-intruder-" + uuid.NewString()

	sessionId, err := store.Create(ctx, owner)
	require.NoError(t, err)
	defer store.Delete(ctx, owner, sessionId)

	_, err = store.GetHistory(ctx, intruder, sessionId)
	assert.ErrorIs(t, err, apperr.ErrOwnershipViolation)

	err = store.Append(ctx, intruder, sessionId, session.RoleUser, "hijack")
	assert.ErrorIs(t, err, apperr.ErrOwnershipViolation)

	err = store.Delete(ctx, intruder, sessionId)
	assert.ErrorIs(t, err, apperr.ErrOwnershipViolation)

	// owner is unaffected
	history, err := store.GetHistory(ctx, owner, sessionId)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSessionUnknownIdIsNotFound(t *testing.T) {
	store := newTestStore(t, 10, time.Hour)
	ctx := context.Background()

	_, err := store.GetHistory(ctx, "it-user", uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrSessionNotFound)

	err = store.Append(ctx, "it-user", uuid.NewString(), session.RoleUser, "hello")
	assert.ErrorIs(t, err, apperr.ErrSessionNotFound)
}

func TestSessionLatestPicksMostRecentActivity(t *testing.T) {
	store := newTestStore(t, 10, time.Hour)
	ctx := context.Background()
	userId := "it-user-" + uuid.NewString()

	first, err := store.Create(ctx, userId)
	require.NoError(t, err)
	defer store.Delete(ctx, userId, first)

	second, err := store.Create(ctx, userId)
	require.NoError(t, err)
	defer store.Delete(ctx, userId, second)

	// touch the first session last so it becomes the most recent
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, store.Append(ctx, userId, first, session.RoleUser, "ping"))

	latest, err := store.Latest(ctx, userId)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, first, latest.Id)
}

func TestSessionExpiryIsSlidingWindow(t *testing.T) {
	ttl := 2 * time.Second
	store := newTestStore(t, 10, ttl)
	ctx := context.Background()
	userId := "it-user-" + uuid.NewString()

	sessionId, err := store.Create(ctx, userId)
	require.NoError(t, err)

	// Append past the halfway point; the write re-arms a full TTL window,
	// so the session must outlive its original expiry.
	time.Sleep(1200 * time.Millisecond)
	require.NoError(t, store.Append(ctx, userId, sessionId, session.RoleUser, "still here"))

	time.Sleep(1300 * time.Millisecond) // past the original window, inside the re-armed one
	history, err := store.GetHistory(ctx, userId, sessionId)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	time.Sleep(1500 * time.Millisecond) // past the re-armed window too
	_, err = store.GetHistory(ctx, userId, sessionId)
	assert.ErrorIs(t, err, apperr.ErrSessionNotFound)

	// The reverse index still holds the expired id; Latest must skip it.
	latest, err := store.Latest(ctx, userId)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestSessionConcurrentAppendsAllLand(t *testing.T) {
	store := newTestStore(t, 50, time.Hour)
	ctx := context.Background()
	userId := "it-user-" + uuid.NewString()

	sessionId, err := store.Create(ctx, userId)
	require.NoError(t, err)
	defer store.Delete(ctx, userId, sessionId)

	const writers = 4
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs <- store.Append(ctx, userId, sessionId, session.RoleUser, fmt.Sprintf("concurrent %d", n))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	history, err := store.GetHistory(ctx, userId, sessionId)
	require.NoError(t, err)
	assert.Len(t, history, writers)
}
