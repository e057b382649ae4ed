package model

import (
	"context"
	"time"
)

// SessionStore persists login sessions for expiry bookkeeping.
type SessionStore interface {
	Create(ctx context.Context, record SessionRecord) (int64, error)
	GetByToken(ctx context.Context, tokenHash string) (SessionRecord, error)
	DeleteByToken(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionRecord is a persisted login. TokenHash is the hex sha256 of the
// session id; the id itself is never stored.
type SessionRecord struct {
	ID        int64
	UserID    int64
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
}
