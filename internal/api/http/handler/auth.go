package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

// Gate is the session state machine the handlers drive.
type Gate interface {
	Login(ctx context.Context, s *model.Session, form model.LoginForm) (model.PublicUser, error)
	Signup(ctx context.Context, s *model.Session, form model.SignupForm) (model.SignupResult, error)
	SwitchMode(s *model.Session, mode model.AuthMode) error
	Logout(ctx context.Context, s *model.Session)
	CurrentUser(ctx context.Context, s *model.Session) (model.PublicUser, bool)
	Navigate(ctx context.Context, s *model.Session, page model.Page) error
	ResetPrediction(ctx context.Context, s *model.Session) error
	Predict(ctx context.Context, s *model.Session, input model.FeatureInput) (model.PredictionResult, error)
}

// SessionView is what the presentation layer renders from.
type SessionView struct {
	Authenticated bool              `json:"authenticated"`
	User          *model.PublicUser `json:"user,omitempty"`
	Mode          model.AuthMode    `json:"mode"`
	Page          model.Page        `json:"page"`
	HasPrediction bool              `json:"has_prediction"`
}

func viewOf(s *model.Session) SessionView {
	return SessionView{
		Authenticated: s.Authenticated,
		User:          s.User,
		Mode:          s.Mode,
		Page:          s.Page,
		HasPrediction: s.HasPrediction(),
	}
}

type modeRequest struct {
	Mode model.AuthMode `json:"mode" binding:"required"`
}

type pageRequest struct {
	Page model.Page `json:"page" binding:"required"`
}

type Auth struct {
	gate     Gate
	contexts model.ContextManager
}

func NewAuth(gate Gate, contexts model.ContextManager) *Auth {
	return &Auth{gate: gate, contexts: contexts}
}

// Session reports the current state, dropping a login that is no longer
// backed by a live session record.
func (h *Auth) Session(c *gin.Context) {
	s, ok := session(c, h.contexts)
	if !ok {
		return
	}

	h.gate.CurrentUser(c.Request.Context(), s)
	c.JSON(http.StatusOK, viewOf(s))
}

func (h *Auth) Login(c *gin.Context) {
	s, ok := session(c, h.contexts)
	if !ok {
		return
	}

	var form model.LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "malformed login request")
		return
	}

	if _, err := h.gate.Login(c.Request.Context(), s, form); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(s))
}

type signupResponse struct {
	model.SignupResult
	Session SessionView `json:"session"`
}

func (h *Auth) Signup(c *gin.Context) {
	s, ok := session(c, h.contexts)
	if !ok {
		return
	}

	var form model.SignupForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "malformed signup request")
		return
	}

	res, err := h.gate.Signup(c.Request.Context(), s, form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, signupResponse{SignupResult: res, Session: viewOf(s)})
}

func (h *Auth) SwitchMode(c *gin.Context) {
	s, ok := session(c, h.contexts)
	if !ok {
		return
	}

	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "mode is required")
		return
	}

	if err := h.gate.SwitchMode(s, req.Mode); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(s))
}

func (h *Auth) Logout(c *gin.Context) {
	s, ok := session(c, h.contexts)
	if !ok {
		return
	}

	h.gate.Logout(c.Request.Context(), s)
	c.JSON(http.StatusOK, viewOf(s))
}

func (h *Auth) Navigate(c *gin.Context) {
	s, ok := session(c, h.contexts)
	if !ok {
		return
	}

	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "page is required")
		return
	}

	if err := h.gate.Navigate(c.Request.Context(), s, req.Page); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(s))
}
