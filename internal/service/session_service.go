package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/scorepredictor-server/internal/logger"
	"github.com/dtroode/scorepredictor-server/internal/model"
)

// Sessions issues signed session cookies and keeps the persisted
// sessions table in step with them. Only a digest of the session id is
// stored, so a leaked table cannot be replayed as cookies.
type Sessions struct {
	manager model.TokenManager
	store   model.SessionStore
	ttl     time.Duration
	logger  *logger.Logger
	now     func() time.Time
}

func NewSessions(manager model.TokenManager, store model.SessionStore, ttl time.Duration, logger *logger.Logger) *Sessions {
	return &Sessions{
		manager: manager,
		store:   store,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Sign returns the cookie value for sessionID.
func (s *Sessions) Sign(sessionID string) (string, error) {
	token, err := s.manager.GenerateSessionToken(sessionID, s.ttl)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return token, nil
}

// Parse returns the session id carried by a cookie value.
func (s *Sessions) Parse(token string) (string, error) {
	id, err := s.manager.ParseSessionToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrUnauthenticated, err)
	}
	return id, nil
}

// Open records an authenticated session for userID.
func (s *Sessions) Open(ctx context.Context, sessionID string, userID int64) error {
	now := s.now().UTC()
	_, err := s.store.Create(ctx, model.SessionRecord{
		UserID:    userID,
		TokenHash: hashSessionID(sessionID),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	})
	if err != nil {
		s.logger.Error("Sessions service: failed to open session",
			"user_id", userID,
			"error", err.Error())
		return model.NewStorageError("open session", err)
	}
	return nil
}

// Resolve returns the user bound to sessionID.
func (s *Sessions) Resolve(ctx context.Context, sessionID string) (int64, error) {
	rec, err := s.store.GetByToken(ctx, hashSessionID(sessionID))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, model.ErrUnauthenticated
		}
		return 0, model.NewStorageError("resolve session", err)
	}

	if !s.now().Before(rec.ExpiresAt) {
		s.logger.Debug("Sessions service: session expired",
			"user_id", rec.UserID,
			"expired_at", rec.ExpiresAt)
		return 0, model.ErrSessionExpired
	}
	return rec.UserID, nil
}

// Close forgets sessionID. Closing an unknown session is not an error.
func (s *Sessions) Close(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteByToken(ctx, hashSessionID(sessionID)); err != nil {
		return model.NewStorageError("close session", err)
	}
	return nil
}

// PurgeExpired removes expired session rows and reports how many went.
func (s *Sessions) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, model.NewStorageError("purge sessions", err)
	}
	return n, nil
}

// RunPurger calls PurgeExpired every interval until ctx is done.
func (s *Sessions) RunPurger(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				s.logger.Error("Sessions service: purge failed", "error", err.Error())
				continue
			}
			if n > 0 {
				s.logger.Info("Sessions service: purged expired sessions", "count", n)
			}
		}
	}
}

func hashSessionID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
