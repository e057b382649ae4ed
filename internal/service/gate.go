package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/dtroode/scorepredictor-server/internal/logger"
	"github.com/dtroode/scorepredictor-server/internal/metrics"
	"github.com/dtroode/scorepredictor-server/internal/model"
	"github.com/dtroode/scorepredictor-server/internal/scoring"
)

// CredentialStore is the part of Credentials the gate calls.
type CredentialStore interface {
	CreateUser(ctx context.Context, nu model.NewUser) (int64, error)
	VerifyUser(ctx context.Context, username, password string) (model.PublicUser, error)
	SavePrediction(ctx context.Context, p model.Prediction) (int64, error)
}

// SessionBook tracks which session ids are logged in.
type SessionBook interface {
	Open(ctx context.Context, sessionID string, userID int64) error
	Resolve(ctx context.Context, sessionID string) (int64, error)
	Close(ctx context.Context, sessionID string) error
}

// Scorer turns raw feature input into a bounded score.
type Scorer interface {
	Features() []string
	Vector(in model.FeatureInput) ([]float64, error)
	Predict(values []float64) (float64, error)
}

// Gate drives the per-session authentication state machine. Every call
// takes the caller's session explicitly and mutates it only after the
// backing store has answered.
type Gate struct {
	credentials CredentialStore
	sessions    SessionBook
	scorer      Scorer
	metrics     *metrics.Metrics
	logger      *logger.Logger
	newID       func() string
}

func NewGate(
	credentials CredentialStore,
	sessions SessionBook,
	scorer Scorer,
	m *metrics.Metrics,
	logger *logger.Logger,
) *Gate {
	return &Gate{
		credentials: credentials,
		sessions:    sessions,
		scorer:      scorer,
		metrics:     m,
		logger:      logger,
		newID:       uuid.NewString,
	}
}

// Login authenticates s. The session id is replaced so an id seen before
// login cannot be reused afterwards.
func (g *Gate) Login(ctx context.Context, s *model.Session, form model.LoginForm) (model.PublicUser, error) {
	if err := validateLogin(form); err != nil {
		g.metrics.ObserveLogin(metrics.ResultRejected)
		return model.PublicUser{}, err
	}

	user, err := g.credentials.VerifyUser(ctx, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			g.logger.Info("Gate service: login rejected", "username", form.Username)
			g.metrics.ObserveLogin(metrics.ResultRejected)
		} else {
			g.metrics.ObserveLogin(metrics.ResultError)
		}
		return model.PublicUser{}, err
	}

	newID := g.newID()
	if err := g.sessions.Open(ctx, newID, user.ID); err != nil {
		g.metrics.ObserveLogin(metrics.ResultError)
		return model.PublicUser{}, err
	}

	if s.Authenticated {
		if err := g.sessions.Close(ctx, s.ID); err != nil {
			g.logger.Warn("Gate service: failed to close replaced session",
				"user_id", user.ID,
				"error", err.Error())
		}
	}

	s.ID = newID
	s.Bind(user)
	s.MarkResolved()

	g.logger.Info("Gate service: user logged in",
		"user_id", user.ID,
		"username", user.Username)
	g.metrics.ObserveLogin(metrics.ResultSuccess)
	return user, nil
}

// Signup registers a new user and returns s to login mode. Only an
// unauthenticated session showing the signup form may sign up, and it is
// never authenticated by it.
func (g *Gate) Signup(ctx context.Context, s *model.Session, form model.SignupForm) (model.SignupResult, error) {
	if s.Authenticated || s.Mode != model.AuthModeSignup {
		g.metrics.ObserveSignup(metrics.ResultRejected)
		return model.SignupResult{}, model.ErrInvalidNavigation
	}

	advisory, err := validateSignup(form)
	if err != nil {
		g.metrics.ObserveSignup(metrics.ResultRejected)
		return model.SignupResult{}, err
	}

	id, err := g.credentials.CreateUser(ctx, model.NewUser{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		FullName: form.FullName,
	})
	if err != nil {
		if errors.Is(err, model.ErrStorage) {
			g.metrics.ObserveSignup(metrics.ResultError)
		} else {
			g.metrics.ObserveSignup(metrics.ResultRejected)
		}
		return model.SignupResult{}, err
	}

	s.Mode = model.AuthModeLogin

	g.metrics.ObserveSignup(metrics.ResultSuccess)
	return model.SignupResult{UserID: id, Advisory: advisory}, nil
}

// SwitchMode changes which form an unauthenticated session shows.
func (g *Gate) SwitchMode(s *model.Session, mode model.AuthMode) error {
	if !mode.Valid() || s.Authenticated {
		return model.ErrInvalidNavigation
	}
	s.Mode = mode
	return nil
}

// Logout unbinds the user. The session is reset even when the persisted
// record cannot be removed; the purger will drop it once it expires.
func (g *Gate) Logout(ctx context.Context, s *model.Session) {
	if s.Authenticated {
		if err := g.sessions.Close(ctx, s.ID); err != nil {
			g.logger.Error("Gate service: failed to close session", "error", err.Error())
		}
		if s.User != nil {
			g.logger.Info("Gate service: user logged out", "user_id", s.User.ID)
		}
	}
	s.Reset()
}

// CurrentUser returns the user bound to s if its persisted session is
// still valid.
func (g *Gate) CurrentUser(ctx context.Context, s *model.Session) (model.PublicUser, bool) {
	user, err := g.authenticated(ctx, s)
	if err != nil {
		return model.PublicUser{}, false
	}
	return user, true
}

// Navigate moves an authenticated session to page.
func (g *Gate) Navigate(ctx context.Context, s *model.Session, page model.Page) error {
	if _, err := g.authenticated(ctx, s); err != nil {
		return err
	}
	if !page.Valid() {
		return model.ErrInvalidNavigation
	}
	if page == model.PageResults && !s.HasPrediction() {
		return model.ErrInvalidNavigation
	}
	s.Page = page
	return nil
}

// ResetPrediction drops the buffered inputs and returns to the predictor.
func (g *Gate) ResetPrediction(ctx context.Context, s *model.Session) error {
	if _, err := g.authenticated(ctx, s); err != nil {
		return err
	}
	s.LastInputs = nil
	s.Page = model.PagePredictor
	return nil
}

// Predict scores input for the session's user and records it in history.
// A history failure is reported through Saved and never fails the call.
func (g *Gate) Predict(ctx context.Context, s *model.Session, input model.FeatureInput) (model.PredictionResult, error) {
	user, err := g.authenticated(ctx, s)
	if err != nil {
		return model.PredictionResult{}, err
	}

	values, err := g.scorer.Vector(input)
	if err != nil {
		g.metrics.PredictionFailed()
		return model.PredictionResult{}, err
	}

	score, err := g.scorer.Predict(values)
	if err != nil {
		g.logger.Error("Gate service: prediction failed",
			"user_id", user.ID,
			"error", err.Error())
		g.metrics.PredictionFailed()
		return model.PredictionResult{}, err
	}
	g.metrics.ObservePrediction(score)

	features := make(map[string]float64, len(values))
	for i, name := range g.scorer.Features() {
		if i < len(values) {
			features[name] = values[i]
		}
	}

	result := model.PredictionResult{
		Score:      score,
		Assessment: scoring.Assess(score),
		Features:   features,
	}

	result.PredictionID, result.Saved = g.record(ctx, user.ID, result)

	s.LastInputs = values
	s.Page = model.PageResults
	return result, nil
}

func (g *Gate) record(ctx context.Context, userID int64, result model.PredictionResult) (int64, bool) {
	data, err := json.Marshal(result.Features)
	if err != nil {
		g.logger.Error("Gate service: failed to encode features", "user_id", userID, "error", err.Error())
		g.metrics.HistorySaveFailed()
		return 0, false
	}

	id, err := g.credentials.SavePrediction(ctx, model.Prediction{
		UserID:   userID,
		Score:    result.Score,
		Grade:    result.Grade,
		Features: string(data),
	})
	if err != nil {
		g.logger.Error("Gate service: failed to save prediction",
			"user_id", userID,
			"error", err.Error())
		g.metrics.HistorySaveFailed()
		return 0, false
	}
	return id, true
}

// authenticated checks s against the persisted session and resets it when
// the record is gone or expired. Storage faults leave s untouched. A session
// already checked during this request is trusted.
func (g *Gate) authenticated(ctx context.Context, s *model.Session) (model.PublicUser, error) {
	if !s.Authenticated || s.User == nil {
		return model.PublicUser{}, model.ErrUnauthenticated
	}
	if s.Resolved() {
		return *s.User, nil
	}

	userID, err := g.sessions.Resolve(ctx, s.ID)
	if err != nil {
		if errors.Is(err, model.ErrUnauthenticated) || errors.Is(err, model.ErrSessionExpired) {
			g.logger.Info("Gate service: session no longer valid",
				"user_id", s.User.ID,
				"reason", err.Error())
			s.Reset()
		}
		return model.PublicUser{}, err
	}

	if userID != s.User.ID {
		g.logger.Warn("Gate service: session bound to another user",
			"session_user_id", s.User.ID,
			"record_user_id", userID)
		s.Reset()
		return model.PublicUser{}, model.ErrUnauthenticated
	}

	s.MarkResolved()
	return *s.User, nil
}
