package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/scorepredictor-server/internal/scoring"
)

// Model serves what the predictor form needs to render.
type Model struct {
	descriptor scoring.Descriptor
}

func NewModel(descriptor scoring.Descriptor) *Model {
	return &Model{descriptor: descriptor}
}

func (h *Model) Descriptor(c *gin.Context) {
	c.JSON(http.StatusOK, h.descriptor)
}

func (h *Model) Tips(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tips": scoring.GeneralTips()})
}
