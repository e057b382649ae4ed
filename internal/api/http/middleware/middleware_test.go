package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/scorepredictor-server/internal/api/http/context"
	"github.com/dtroode/scorepredictor-server/internal/logger"
	"github.com/dtroode/scorepredictor-server/internal/mocks"
	"github.com/dtroode/scorepredictor-server/internal/model"
	"github.com/dtroode/scorepredictor-server/internal/repository/memory"
	"github.com/dtroode/scorepredictor-server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "propagated", incoming: "abc-123", keep: true},
		{name: "generated", incoming: ""},
		{name: "oversized replaced", incoming: string(bytes.Repeat([]byte("x"), 200))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			r := gin.New()
			r.Use(RequestID())
			r.GET("/", func(c *gin.Context) {
				seen = httpcontext.RequestID(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			require.NotEmpty(t, got)
			assert.Equal(t, got, seen)
			if tt.keep {
				assert.Equal(t, tt.incoming, got)
			} else {
				assert.NotEqual(t, tt.incoming, got)
			}
		})
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithFormat(&buf, -4, "json")

	r := gin.New()
	r.Use(RequestID(), Logging(log))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"route":"/items/:id"`)
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"request_id":"req-1"`)
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: reg, Namespace: "test"})
	require.NoError(t, err)

	r := gin.New()
	r.Use(m.Handler())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for range 3 {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 3.0, promtest.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/ping", "200")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "unmatched", "404")))
	assert.Equal(t, 0.0, promtest.ToFloat64(m.InFlight))

	_, err = NewHTTPMetrics(HTTPMetricsOptions{Registerer: reg, Namespace: "test"})
	require.NoError(t, err)
}

func TestHTTPMetrics_NilIsNoop(t *testing.T) {
	var m *HTTPMetrics

	r := gin.New()
	r.Use(m.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

// stubCodec signs ids by prefixing them.
type stubCodec struct{}

func (stubCodec) Sign(id string) (string, error) { return "signed." + id, nil }

func (stubCodec) Parse(token string) (string, error) {
	if len(token) <= len("signed.") || token[:len("signed.")] != "signed." {
		return "", errors.New("bad signature")
	}
	return token[len("signed."):], nil
}

func (stubCodec) TTL() time.Duration { return time.Hour }

func (stubCodec) Close(context.Context, string) error { return nil }

func newSessionRouter(state model.SessionStateStore, h gin.HandlerFunc) (*gin.Engine, *Sessions) {
	contexts := httpcontext.NewManager()
	mw := NewSessions(stubCodec{}, state, contexts, CookieOptions{Name: "session"}, testutil.MakeNoopLogger())
	mw.newID = func() string { return "fresh" }

	r := gin.New()
	r.Use(mw.Handler())
	r.Any("/", h)
	return r, mw
}

func sessionFrom(c *gin.Context) *model.Session {
	s, _ := httpcontext.NewManager().GetSessionFromContext(c.Request.Context())
	return s
}

func cookieNamed(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestSessions_FreshSession(t *testing.T) {
	state := memory.NewSessionStateRepository()

	var seen *model.Session
	r, _ := newSessionRouter(state, func(c *gin.Context) {
		seen = sessionFrom(c)
		seen.Mode = model.AuthModeSignup
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "fresh", seen.ID)

	cookie := cookieNamed(t, w, "session")
	assert.Equal(t, "signed.fresh", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)

	stored, err := state.Get(t.Context(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, model.AuthModeSignup, stored.Mode)
}

func TestSessions_LoadsAndRotates(t *testing.T) {
	state := memory.NewSessionStateRepository()
	existing := model.NewSession("old")
	require.NoError(t, state.Save(t.Context(), existing, time.Hour))

	r, _ := newSessionRouter(state, func(c *gin.Context) {
		s := sessionFrom(c)
		require.Equal(t, "old", s.ID)
		s.ID = "rotated"
		s.Bind(model.PublicUser{ID: 7, Username: "alice"})
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "signed.old"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "signed.rotated", cookieNamed(t, w, "session").Value)

	_, err := state.Get(t.Context(), "old")
	assert.ErrorIs(t, err, model.ErrNotFound)

	stored, err := state.Get(t.Context(), "rotated")
	require.NoError(t, err)
	assert.True(t, stored.Authenticated)
	assert.Equal(t, int64(7), stored.User.ID)
}

func TestSessions_UnusableCookieStartsFresh(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
	}{
		{name: "bad signature", cookie: "forged"},
		{name: "unknown id", cookie: "signed.ghost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			r, _ := newSessionRouter(memory.NewSessionStateRepository(), func(c *gin.Context) {
				s := sessionFrom(c)
				seen = s.ID
				s.Mode = model.AuthModeSignup
				c.String(http.StatusOK, "ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "fresh", seen)
			assert.Equal(t, "signed.fresh", cookieNamed(t, w, "session").Value)
		})
	}
}

func TestSessions_StateStoreDown(t *testing.T) {
	state := mocks.NewSessionStateStore(t)
	state.On("Get", mock.Anything, "abc").Return(nil, errors.New("redis: connection refused"))

	r, _ := newSessionRouter(state, func(c *gin.Context) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "signed.abc"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestSessions_UntouchedFreshSessionIsNotStored(t *testing.T) {
	state := mocks.NewSessionStateStore(t)

	r, _ := newSessionRouter(state, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": sessionFrom(c).Authenticated})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
	assert.Empty(t, w.Result().Cookies())
	state.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessions_SaveFailure(t *testing.T) {
	t.Run("anonymous change", func(t *testing.T) {
		state := mocks.NewSessionStateStore(t)
		state.On("Save", mock.Anything, mock.Anything, time.Hour).Return(errors.New("redis: timeout"))

		r, _ := newSessionRouter(state, func(c *gin.Context) {
			sessionFrom(c).Mode = model.AuthModeSignup
			c.String(http.StatusOK, "ok")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "service temporarily unavailable")
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("login closes the opened record", func(t *testing.T) {
		existing := model.NewSession("old")

		state := mocks.NewSessionStateStore(t)
		state.On("Get", mock.Anything, "old").Return(existing, nil)
		state.On("Save", mock.Anything, mock.MatchedBy(func(s *model.Session) bool {
			return s.ID == "rotated"
		}), time.Hour).Return(errors.New("redis: timeout"))

		codec := mocks.NewSessionCodec(t)
		codec.On("Parse", "signed.old").Return("old", nil)
		codec.On("TTL").Return(time.Hour)
		codec.On("Close", mock.Anything, "rotated").Return(nil)

		mw := NewSessions(codec, state, httpcontext.NewManager(), CookieOptions{Name: "session"}, testutil.MakeNoopLogger())

		r := gin.New()
		r.Use(mw.Handler())
		r.POST("/", func(c *gin.Context) {
			s := sessionFrom(c)
			s.ID = "rotated"
			s.Bind(model.PublicUser{ID: 7, Username: "alice"})
			c.JSON(http.StatusOK, gin.H{"authenticated": true})
		})

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "signed.old"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "authenticated")
		assert.Empty(t, w.Result().Cookies())
		codec.AssertNotCalled(t, "Sign", mock.Anything)
		state.AssertNotCalled(t, "Delete", mock.Anything, "old")
	})
}

func TestRequireAuth(t *testing.T) {
	bound := model.NewSession("sid")
	bound.Bind(model.PublicUser{ID: 7})

	tests := []struct {
		name       string
		session    *model.Session
		resolves   bool
		wantStatus int
	}{
		{name: "no session", wantStatus: http.StatusUnauthorized},
		{name: "anonymous", session: model.NewSession("anon"), wantStatus: http.StatusUnauthorized},
		{name: "bound", session: bound, resolves: true, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := mocks.NewUserResolver(t)
			contexts := httpcontext.NewManager()
			if tt.session != nil {
				user := model.PublicUser{}
				if tt.resolves {
					user = *tt.session.User
				}
				users.On("CurrentUser", mock.Anything, tt.session).Return(user, tt.resolves)
			}

			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.session != nil {
					c.Request = c.Request.WithContext(contexts.SetSessionToContext(c.Request.Context(), tt.session))
				}
				c.Next()
			})
			r.GET("/", RequireAuth(users, contexts), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestSessions_SignFailure(t *testing.T) {
	codec := mocks.NewSessionCodec(t)
	codec.On("TTL").Return(time.Hour)
	codec.On("Sign", "fresh").Return("", errors.New("key unavailable"))

	state := memory.NewSessionStateRepository()
	mw := NewSessions(codec, state, httpcontext.NewManager(), CookieOptions{Name: "session"}, testutil.MakeNoopLogger())
	mw.newID = func() string { return "fresh" }

	r := gin.New()
	r.Use(mw.Handler())
	r.POST("/", func(c *gin.Context) {
		sessionFrom(c).Mode = model.AuthModeSignup
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, w.Result().Cookies())

	_, err := state.Get(t.Context(), "fresh")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
