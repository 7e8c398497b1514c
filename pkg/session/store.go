package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"legal-assistant-be/internal/apperr"
	"legal-assistant-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// casAttempts bounds the optimistic-lock retry loop on concurrent appends to
// the same session.
const casAttempts = 5

// Store persists conversation sessions in redis with sliding-window TTL,
// ownership enforcement and bounded history. A per-user set of session ids
// (`user_sessions:<userId>`) serves as the reverse index for recency lookups.
type Store struct {
	rdb        *redis.Client
	maxHistory int
	ttl        time.Duration
	logger     logger.ILogger
}

// NewStore verifies connectivity before returning; an unreachable redis at
// construction time is a hard failure, the store cannot be used.
func NewStore(rdb *redis.Client, maxHistory int, ttl time.Duration, log logger.ILogger) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: ping: %v", apperr.ErrStoreUnavailable, err)
	}

	log.Info("SessionStore", "Redis connected", map[string]interface{}{
		"max_history": maxHistory,
		"ttl_hours":   ttl.Hours(),
	})

	return &Store{
		rdb:        rdb,
		maxHistory: maxHistory,
		ttl:        ttl,
		logger:     log,
	}, nil
}

func sessionKey(sessionId string) string {
	return "session:" + sessionId
}

func userSessionsKey(userId string) string {
	return "user_sessions:" + userId
}

// Create writes a fresh session and registers it in the user's reverse index
// in one MULTI/EXEC pipeline, so a failure cannot leave an index entry
// without a session or the other way around.
func (s *Store) Create(ctx context.Context, userId string) (string, error) {
	sessionId := uuid.NewString()
	now := time.Now().UTC()

	raw, err := json.Marshal(&Session{
		Id:           sessionId,
		UserId:       userId,
		History:      []Message{},
		CreatedAt:    now,
		LastActivity: now,
	})
	if err != nil {
		return "", fmt.Errorf("encode session %s: %w", sessionId, err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(sessionId), raw, s.ttl)
	pipe.SAdd(ctx, userSessionsKey(userId), sessionId)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("%w: create session: %v", apperr.ErrStoreUnavailable, err)
	}

	s.logger.Info("SessionStore", "Session created", map[string]interface{}{
		"user_id":    userId,
		"session_id": sessionId,
	})
	return sessionId, nil
}

// GetHistory returns the session's messages in insertion order. It never
// refreshes the TTL.
func (s *Store) GetHistory(ctx context.Context, userId, sessionId string) ([]Message, error) {
	sess, err := s.load(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	return sess.History, nil
}

// Append adds one message, trims history to the bound (oldest first), bumps
// LastActivity and re-arms a full TTL window. Concurrent appends to the same
// session are serialized via optimistic locking (WATCH/MULTI/EXEC): a lost
// race retries against the fresh state, so no append is silently dropped.
func (s *Store) Append(ctx context.Context, userId, sessionId, role, content string) error {
	key := sessionKey(sessionId)

	for attempt := 0; attempt < casAttempts; attempt++ {
		err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			raw, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("%w: session %s", apperr.ErrSessionNotFound, sessionId)
			}
			if err != nil {
				return fmt.Errorf("%w: read session %s: %v", apperr.ErrStoreUnavailable, sessionId, err)
			}

			var sess Session
			if err := json.Unmarshal(raw, &sess); err != nil {
				return fmt.Errorf("decode session %s: %w", sessionId, err)
			}
			if sess.UserId != userId {
				return fmt.Errorf("%w: session %s", apperr.ErrOwnershipViolation, sessionId)
			}

			sess.History = append(sess.History, Message{Role: role, Content: content})
			if len(sess.History) > s.maxHistory {
				sess.History = sess.History[len(sess.History)-s.maxHistory:]
			}

			// LastActivity must never move backwards
			now := time.Now().UTC()
			if now.After(sess.LastActivity) {
				sess.LastActivity = now
			}

			updated, err := json.Marshal(&sess)
			if err != nil {
				return fmt.Errorf("encode session %s: %w", sessionId, err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, updated, s.ttl)
				return nil
			})
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue // concurrent writer won, retry on fresh state
		}
		if err != nil && !isDomainErr(err) {
			return fmt.Errorf("%w: append to session %s: %v", apperr.ErrStoreUnavailable, sessionId, err)
		}
		return err
	}

	return fmt.Errorf("%w: append to session %s: contention limit reached", apperr.ErrStoreUnavailable, sessionId)
}

// Latest returns the user's live session with the maximum LastActivity, or
// nil when none exist. Stale reverse-index entries (expired sessions) are
// skipped rather than failing the lookup.
func (s *Store) Latest(ctx context.Context, userId string) (*Session, error) {
	sessionIds, err := s.rdb.SMembers(ctx, userSessionsKey(userId)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: list sessions for user %s: %v", apperr.ErrStoreUnavailable, userId, err)
	}

	var latest *Session
	for _, sessionId := range sessionIds {
		raw, err := s.rdb.Get(ctx, sessionKey(sessionId)).Bytes()
		if errors.Is(err, redis.Nil) {
			continue // expired, index entry is stale
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read session %s: %v", apperr.ErrStoreUnavailable, sessionId, err)
		}

		var sess Session
		if err := json.Unmarshal(raw, &sess); err != nil {
			s.logger.Warn("SessionStore", "Skipping undecodable session", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
			continue
		}
		if sess.UserId != userId {
			continue
		}
		if latest == nil || sess.LastActivity.After(latest.LastActivity) {
			copied := sess
			latest = &copied
		}
	}
	return latest, nil
}

// Delete removes a session and its reverse-index entry. Ownership is
// verified first with the same NotFound/Ownership semantics as reads.
func (s *Store) Delete(ctx context.Context, userId, sessionId string) error {
	if _, err := s.load(ctx, userId, sessionId); err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(sessionId))
	pipe.SRem(ctx, userSessionsKey(userId), sessionId)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: delete session %s: %v", apperr.ErrStoreUnavailable, sessionId, err)
	}

	s.logger.Info("SessionStore", "Session deleted", map[string]interface{}{
		"user_id":    userId,
		"session_id": sessionId,
	})
	return nil
}

func (s *Store) load(ctx context.Context, userId, sessionId string) (*Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(sessionId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: session %s", apperr.ErrSessionNotFound, sessionId)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read session %s: %v", apperr.ErrStoreUnavailable, sessionId, err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionId, err)
	}
	if sess.UserId != userId {
		return nil, fmt.Errorf("%w: session %s", apperr.ErrOwnershipViolation, sessionId)
	}
	return &sess, nil
}

func isDomainErr(err error) bool {
	return errors.Is(err, apperr.ErrSessionNotFound) ||
		errors.Is(err, apperr.ErrOwnershipViolation) ||
		errors.Is(err, apperr.ErrStoreUnavailable)
}
