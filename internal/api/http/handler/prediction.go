package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

// Account exposes the logged-in user's own records.
type Account interface {
	GetUserByID(ctx context.Context, id int64) (model.UserProfile, error)
	UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) error
	ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error
	GetUserPredictions(ctx context.Context, userID int64, limit int) ([]model.Prediction, error)
	GetUserStats(ctx context.Context, userID int64) (model.PredictionStats, error)
}

type Prediction struct {
	gate     Gate
	account  Account
	contexts model.ContextManager
}

func NewPrediction(gate Gate, account Account, contexts model.ContextManager) *Prediction {
	return &Prediction{gate: gate, account: account, contexts: contexts}
}

func (h *Prediction) Predict(c *gin.Context) {
	s, ok := session(c, h.contexts)
	if !ok {
		return
	}

	var input model.FeatureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "malformed feature input")
		return
	}

	res, err := h.gate.Predict(c.Request.Context(), s, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Prediction) Reset(c *gin.Context) {
	s, ok := session(c, h.contexts)
	if !ok {
		return
	}

	if err := h.gate.ResetPrediction(c.Request.Context(), s); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(s))
}

// History lists recent predictions. limit is optional; the service applies
// the default and the cap.
func (h *Prediction) History(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "limit must be an integer")
			return
		}
		limit = n
	}

	predictions, err := h.account.GetUserPredictions(c.Request.Context(), user.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}

func (h *Prediction) Stats(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}

	stats, err := h.account.GetUserStats(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Prediction) user(c *gin.Context) (*model.PublicUser, bool) {
	return boundUser(c, h.contexts)
}

// boundUser returns the session's user. Routes using it sit behind
// RequireAuth, so a missing user means the request bypassed it.
func boundUser(c *gin.Context, contexts model.ContextManager) (*model.PublicUser, bool) {
	s, ok := session(c, contexts)
	if !ok {
		return nil, false
	}
	if !s.Authenticated || s.User == nil {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, model.ErrUnauthenticated.Error()))
		return nil, false
	}
	return s.User, true
}
