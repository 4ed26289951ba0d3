package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"startup-chatbot-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists sessions and CSRF tokens in Redis so multiple
// server instances can serve the same client.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
	log logger.ILogger
}

var _ SessionStore = &RedisStore{}

func NewRedisStore(rdb *redis.Client, ttl time.Duration, log logger.ILogger) *RedisStore {
	return &RedisStore{
		rdb: rdb,
		ttl: ttl,
		log: log,
	}
}

func (s *RedisStore) GetSession(ctx context.Context, sessionID string) (*Session, bool) {
	data, err := s.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Error("store", "Redis session get failed", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
		return nil, false
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		s.log.Error("store", "Stored session document is corrupt", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, false
	}
	return &session, true
}

func (s *RedisStore) SetSession(ctx context.Context, sessionID string, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		s.log.Error("store", "Session marshal failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return err
	}

	if err := s.rdb.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		s.log.Error("store", "Redis session set failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}

func (s *RedisStore) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		s.log.Error("store", "Redis session delete failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}

func (s *RedisStore) GetCSRFToken(ctx context.Context, sessionID string) (string, bool) {
	token, err := s.rdb.Get(ctx, csrfKey(sessionID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Error("store", "Redis CSRF get failed", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
		return "", false
	}
	return token, true
}

func (s *RedisStore) SetCSRFToken(ctx context.Context, sessionID string, token string) error {
	if err := s.rdb.Set(ctx, csrfKey(sessionID), token, s.ttl).Err(); err != nil {
		s.log.Error("store", "Redis CSRF set failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
