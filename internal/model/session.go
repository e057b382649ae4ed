package model

import (
	"context"
	"time"
)

// AuthMode selects which form an unauthenticated session sees.
type AuthMode string

const (
	AuthModeLogin  AuthMode = "login"
	AuthModeSignup AuthMode = "signup"
)

// Valid reports whether m is a known mode.
func (m AuthMode) Valid() bool {
	return m == AuthModeLogin || m == AuthModeSignup
}

// Page is the pending navigation target of an authenticated session.
type Page string

const (
	PageDashboard Page = "dashboard"
	PagePredictor Page = "predictor"
	PageResults   Page = "results"
	PageTips      Page = "tips"
	PageHowTo     Page = "howto"
	PageProfile   Page = "profile"
	PageHistory   Page = "history"
)

// Valid reports whether p is a known page.
func (p Page) Valid() bool {
	switch p {
	case PageDashboard, PagePredictor, PageResults, PageTips, PageHowTo, PageProfile, PageHistory:
		return true
	}
	return false
}

// SessionStateStore keeps transient per-client session state.
type SessionStateStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// Session is the state of one logical client context. It is owned by a
// single request at a time and is never shared.
type Session struct {
	ID            string      `json:"id"`
	Authenticated bool        `json:"authenticated"`
	User          *PublicUser `json:"user,omitempty"`
	Mode          AuthMode    `json:"mode"`
	Page          Page        `json:"page"`
	LastInputs    []float64   `json:"last_inputs,omitempty"`

	// resolved is set once the persisted record has been checked during the
	// current request. It is never stored.
	resolved bool
}

// NewSession returns an unauthenticated session showing the login form.
func NewSession(id string) *Session {
	return &Session{
		ID:   id,
		Mode: AuthModeLogin,
		Page: PageDashboard,
	}
}

// Bind marks the session authenticated as user. The user is copied.
func (s *Session) Bind(user PublicUser) {
	s.Authenticated = true
	s.User = &user
	s.Mode = AuthModeLogin
	s.Page = PageDashboard
	s.LastInputs = nil
}

// Reset clears the bound user and transient scoring state.
func (s *Session) Reset() {
	s.resolved = false
	s.Authenticated = false
	s.User = nil
	s.Mode = AuthModeLogin
	s.Page = PageDashboard
	s.LastInputs = nil
}

// HasPrediction reports whether last prediction inputs are buffered.
func (s *Session) HasPrediction() bool {
	return len(s.LastInputs) > 0
}

// MarkResolved records that the persisted session was checked for this
// request.
func (s *Session) MarkResolved() {
	s.resolved = true
}

// Resolved reports whether MarkResolved was called on this copy.
func (s *Session) Resolved() bool {
	return s.resolved
}

// Pristine reports whether s still looks exactly like NewSession made it.
func (s *Session) Pristine() bool {
	return !s.Authenticated && s.User == nil && s.Mode == AuthModeLogin &&
		s.Page == PageDashboard && len(s.LastInputs) == 0
}

// Clone returns a deep copy that does not carry the resolved mark.
func (s *Session) Clone() *Session {
	out := *s
	out.resolved = false
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.LastInputs != nil {
		out.LastInputs = append([]float64(nil), s.LastInputs...)
	}
	return &out
}
