// Package session implements the durable per-session state store on Redis
// with sliding TTL, plus the degraded in-memory fallback used when the
// backing store is unavailable.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/leadgate-ai/dialogue-core/internal/core/error"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
	logx "github.com/leadgate-ai/dialogue-core/pkg/logger"
)

// RedisSessionRepository persists one JSON state record per session.
type RedisSessionRepository struct {
	rdb redis.Cmdable
}

// NewRedisSessionRepository creates a Redis-backed session repository.
func NewRedisSessionRepository(rdb redis.Cmdable) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb}
}

func (r *RedisSessionRepository) sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s:state", sessionID)
}

// Get loads the session state. A store miss returns (nil, nil). The manager
// refreshes the TTL after every successful read so expiry slides with activity.
func (r *RedisSessionRepository) Get(ctx context.Context, sessionID string) (*model.SessionState, error) {
	key := r.sessionKey(sessionID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session state from redis")
		return nil, errx.WrapRedis(err)
	}

	var state model.SessionState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// Undecodable payloads are corruption: report a miss so the caller
		// reinitializes instead of failing the turn.
		logx.Warn().Err(err).Str("key", key).Msg("corrupt session payload, treating as miss")
		return nil, nil
	}

	return &state, nil
}

// Set stores the session state with the given TTL.
func (r *RedisSessionRepository) Set(ctx context.Context, sessionID string, state *model.SessionState, ttl time.Duration) error {
	b, err := json.Marshal(state)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal session state")
		return fmt.Errorf("marshal session state: %w", err)
	}

	key := r.sessionKey(sessionID)
	if err := r.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to write session state to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

// Exists reports whether a state record is present for the session.
func (r *RedisSessionRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, r.sessionKey(sessionID)).Result()
	if err != nil {
		return false, errx.WrapRedis(err)
	}
	return n > 0, nil
}

// RefreshTTL resets the expiry window to the full duration.
func (r *RedisSessionRepository) RefreshTTL(ctx context.Context, sessionID string, ttl time.Duration) error {
	key := r.sessionKey(sessionID)
	if ttl <= 0 {
		return nil
	}
	ok, err := r.rdb.Expire(ctx, key, ttl).Result()
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to refresh session TTL")
		return errx.WrapRedis(err)
	}
	if !ok {
		logx.Warn().Str("key", key).Dur("ttl", ttl).Msg("failed to set TTL on session key")
	}
	return nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
