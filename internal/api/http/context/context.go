package context

import (
	"context"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

type sessionKey struct{}

type requestIDKey struct{}

var _ model.ContextManager = (*Manager)(nil)

// Manager carries the per-request session on a context.Context.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) SetSessionToContext(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session stored by the session
// middleware. The pointer is shared with the middleware, which persists
// whatever the handler leaves in it.
func (m *Manager) GetSessionFromContext(ctx context.Context) (*model.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*model.Session)
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}

// WithRequestID stores the correlation id of the request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation id, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
