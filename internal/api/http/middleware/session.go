package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/google/uuid"

	"github.com/dtroode/scorepredictor-server/internal/api/http/handler"
	"github.com/dtroode/scorepredictor-server/internal/logger"
	"github.com/dtroode/scorepredictor-server/internal/model"
)

// SessionCodec turns session ids into signed cookie values and back, and
// closes the persisted record of a login that could not be delivered.
type SessionCodec interface {
	Sign(sessionID string) (string, error)
	Parse(token string) (string, error)
	TTL() time.Duration
	Close(ctx context.Context, sessionID string) error
}

// CookieOptions describes the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

// Sessions loads the caller's session before the handler runs and stores
// it, with a refreshed cookie, before the first byte of the response.
type Sessions struct {
	codec    SessionCodec
	state    model.SessionStateStore
	contexts model.ContextManager
	cookie   CookieOptions
	logger   *logger.Logger
	newID    func() string
}

func NewSessions(
	codec SessionCodec,
	state model.SessionStateStore,
	contexts model.ContextManager,
	cookie CookieOptions,
	logger *logger.Logger,
) *Sessions {
	return &Sessions{
		codec:    codec,
		state:    state,
		contexts: contexts,
		cookie:   cookie,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// Handler loads the session and commits it before the response goes out.
// A session that cannot be stored or signed turns the response into 503.
// Untouched anonymous sessions are neither stored nor sent.
func (m *Sessions) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, loadedID, err := m.load(c)
		if err != nil {
			m.logger.Error("Session middleware: failed to load session", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, handler.NewErrorResponse(c, "session store unavailable"))
			return
		}

		w := &sessionWriter{ResponseWriter: c.Writer}
		w.commit = func() error { return m.commit(c, session, loadedID) }
		w.fail = func(err error) {
			m.logger.Error("Session middleware: failed to commit session", "error", err.Error())
			m.rollback(c, session, loadedID)
			c.Abort()
			w.ResponseWriter.Header().Del("Content-Type")
			w.ResponseWriter.WriteHeader(http.StatusServiceUnavailable)
			_ = render.JSON{Data: handler.NewErrorResponse(c, "service temporarily unavailable")}.Render(w.ResponseWriter)
		}
		c.Writer = w
		c.Request = c.Request.WithContext(m.contexts.SetSessionToContext(c.Request.Context(), session))

		c.Next()

		w.commitOnce()
	}
}

// load returns the stored session named by the cookie, or a fresh one.
// loadedID is empty for fresh sessions.
func (m *Sessions) load(c *gin.Context) (session *model.Session, loadedID string, err error) {
	token, err := c.Cookie(m.cookie.Name)
	if err != nil || token == "" {
		return model.NewSession(m.newID()), "", nil
	}

	id, err := m.codec.Parse(token)
	if err != nil {
		m.logger.Debug("Session middleware: ignoring invalid cookie", "error", err.Error())
		return model.NewSession(m.newID()), "", nil
	}

	session, err = m.state.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewSession(m.newID()), "", nil
		}
		return nil, "", err
	}
	return session, id, nil
}

func (m *Sessions) commit(c *gin.Context, session *model.Session, loadedID string) error {
	if loadedID == "" && session.Pristine() {
		return nil
	}

	ctx := c.Request.Context()
	ttl := m.codec.TTL()
	if err := m.state.Save(ctx, session, ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	token, err := m.codec.Sign(session.ID)
	if err != nil {
		if loadedID != session.ID {
			if delErr := m.state.Delete(ctx, session.ID); delErr != nil {
				m.logger.Warn("Session middleware: failed to drop unsigned session", "error", delErr.Error())
			}
		}
		return fmt.Errorf("failed to sign session: %w", err)
	}

	// Login rotates the id; the state under the old id must not outlive it.
	if loadedID != "" && loadedID != session.ID {
		if err := m.state.Delete(ctx, loadedID); err != nil {
			m.logger.Warn("Session middleware: failed to drop rotated session", "error", err.Error())
		}
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// rollback closes a login opened during this request, since the client will
// never hold its cookie.
func (m *Sessions) rollback(c *gin.Context, session *model.Session, loadedID string) {
	if !session.Authenticated || session.ID == loadedID {
		return
	}
	if err := m.codec.Close(c.Request.Context(), session.ID); err != nil {
		m.logger.Warn("Session middleware: failed to close undelivered session", "error", err.Error())
	}
}

// sessionWriter runs commit once, before headers go out. When commit fails
// the handler's response is replaced by fail's and later writes are dropped.
type sessionWriter struct {
	gin.ResponseWriter
	commit    func() error
	fail      func(err error)
	committed bool
	failed    bool
}

func (w *sessionWriter) commitOnce() {
	if w.committed {
		return
	}
	w.committed = true
	if err := w.commit(); err != nil {
		w.failed = true
		w.fail(err)
	}
}

func (w *sessionWriter) WriteHeaderNow() {
	w.commitOnce()
	if w.failed {
		return
	}
	w.ResponseWriter.WriteHeaderNow()
}

func (w *sessionWriter) Write(data []byte) (int, error) {
	w.commitOnce()
	if w.failed {
		return len(data), nil
	}
	return w.ResponseWriter.Write(data)
}

func (w *sessionWriter) WriteString(s string) (int, error) {
	w.commitOnce()
	if w.failed {
		return len(s), nil
	}
	return w.ResponseWriter.WriteString(s)
}

func (w *sessionWriter) Flush() {
	w.commitOnce()
	w.ResponseWriter.Flush()
}
