package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

var _ model.SessionStateStore = (*SessionStateRepository)(nil)

type entry struct {
	session   model.Session
	expiresAt time.Time
}

// SessionStateRepository keeps session state in process memory. It is used
// when no Redis address is configured.
type SessionStateRepository struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewSessionStateRepository() *SessionStateRepository {
	return &SessionStateRepository{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (r *SessionStateRepository) Get(_ context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if !r.now().Before(e.expiresAt) {
		delete(r.entries, id)
		return nil, model.ErrNotFound
	}

	return e.session.Clone(), nil
}

func (r *SessionStateRepository) Save(_ context.Context, session *model.Session, ttl time.Duration) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session id is required")
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[session.ID] = entry{session: *session.Clone(), expiresAt: r.now().Add(ttl)}
	return nil
}

func (r *SessionStateRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, id)
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (r *SessionStateRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, e := range r.entries {
		if !now.Before(e.expiresAt) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *SessionStateRepository) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
