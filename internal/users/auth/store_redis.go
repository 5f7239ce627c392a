// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
)

// RedisSessionRepository implements [SessionRepository] using Redis.
type RedisSessionRepository struct {
	client redis.UniversalClient
}

// NewSessionRepository creates a new Redis-backed [SessionRepository].
func NewSessionRepository(client redis.UniversalClient) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(id string) string {
	return constants.RedisPrefixSession + id
}

/*
Create stores a session as JSON with the given TTL.

Parameters:
  - context: context.Context
  - session: *Session
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, sessionKey(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves a live session.

Returns:
  - *Session: The stored session
  - error: dberr.ErrNotFound if absent or expired, otherwise connectivity errors
*/
func (repository *RedisSessionRepository) Get(context context.Context, id string) (*Session, error) {
	payload, err := repository.client.Get(context, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}
	return session, nil
}

// Delete removes the session key.
func (repository *RedisSessionRepository) Delete(context context.Context, id string) error {
	if err := repository.client.Del(context, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
