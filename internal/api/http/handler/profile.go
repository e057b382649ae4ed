package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

type passwordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type Profile struct {
	account  Account
	contexts model.ContextManager
}

func NewProfile(account Account, contexts model.ContextManager) *Profile {
	return &Profile{account: account, contexts: contexts}
}

func (h *Profile) Get(c *gin.Context) {
	user, ok := boundUser(c, h.contexts)
	if !ok {
		return
	}

	profile, err := h.account.GetUserByID(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update applies a partial profile change and refreshes the copy of the
// user held by the session.
func (h *Profile) Update(c *gin.Context) {
	user, ok := boundUser(c, h.contexts)
	if !ok {
		return
	}

	var update model.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "malformed profile update")
		return
	}

	ctx := c.Request.Context()
	if err := h.account.UpdateProfile(ctx, user.ID, update); err != nil {
		respondError(c, err)
		return
	}

	profile, err := h.account.GetUserByID(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	*user = profile.PublicUser

	c.JSON(http.StatusOK, profile)
}

func (h *Profile) ChangePassword(c *gin.Context) {
	user, ok := boundUser(c, h.contexts)
	if !ok {
		return
	}

	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "old_password and new_password are required")
		return
	}

	if err := h.account.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
