package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	red "github.com/redis/go-redis/v9"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

const defaultSessionStatePrefix = "scorepredictor:session"

var _ model.SessionStateStore = (*SessionStateRepository)(nil)

// SessionStateRepository keeps session state as JSON values with a TTL.
type SessionStateRepository struct {
	client red.UniversalClient
	prefix string
}

func NewSessionStateRepository(client red.UniversalClient, keyPrefix string) *SessionStateRepository {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultSessionStatePrefix
	}

	return &SessionStateRepository{client: client, prefix: prefix}
}

func (r *SessionStateRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	if id == "" {
		return nil, model.ErrNotFound
	}

	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, red.Nil) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (r *SessionStateRepository) Save(ctx context.Context, session *model.Session, ttl time.Duration) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session id is required")
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := r.client.Set(ctx, r.key(session.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *SessionStateRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (r *SessionStateRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *SessionStateRepository) key(id string) string {
	return r.prefix + ":" + id
}
