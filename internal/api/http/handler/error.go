package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httpcontext "github.com/dtroode/scorepredictor-server/internal/api/http/context"
	"github.com/dtroode/scorepredictor-server/internal/model"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func NewErrorResponse(c *gin.Context, msg string) ErrorResponse {
	return ErrorResponse{
		Error:     msg,
		RequestID: httpcontext.RequestID(c.Request.Context()),
	}
}

// ErrorCase maps a sentinel error to a status code. An empty Message
// reuses the sentinel's own text.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

var errorCases = []ErrorCase{
	{Err: model.ErrMissingFields, Status: http.StatusBadRequest},
	{Err: model.ErrInvalidEmailFormat, Status: http.StatusBadRequest},
	{Err: model.ErrWeakPassword, Status: http.StatusBadRequest},
	{Err: model.ErrPasswordMismatch, Status: http.StatusBadRequest},
	{Err: model.ErrTermsNotAccepted, Status: http.StatusBadRequest},
	{Err: model.ErrInvalidOldPassword, Status: http.StatusBadRequest},
	{Err: model.ErrDuplicateUsername, Status: http.StatusConflict},
	{Err: model.ErrDuplicateEmail, Status: http.StatusConflict},
	{Err: model.ErrInvalidNavigation, Status: http.StatusConflict},
	{Err: model.ErrInvalidCredentials, Status: http.StatusUnauthorized},
	{Err: model.ErrUnauthenticated, Status: http.StatusUnauthorized},
	{Err: model.ErrSessionExpired, Status: http.StatusUnauthorized},
	{Err: model.ErrNotFound, Status: http.StatusNotFound},
	{Err: model.ErrPrediction, Status: http.StatusUnprocessableEntity, Message: model.ErrPrediction.Error()},
	{Err: model.ErrStorage, Status: http.StatusServiceUnavailable, Message: "service temporarily unavailable"},
}

// RespondWithMappedError writes the first matching case, or a generic 500.
// Wrapped details never reach the client.
func RespondWithMappedError(c *gin.Context, err error, cases []ErrorCase) {
	for _, cs := range cases {
		if cs.Err == nil || !errors.Is(err, cs.Err) {
			continue
		}
		msg := cs.Message
		if msg == "" {
			msg = cs.Err.Error()
		}
		_ = c.Error(err)
		c.JSON(cs.Status, NewErrorResponse(c, msg))
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "internal error"))
}

func respondError(c *gin.Context, err error) {
	RespondWithMappedError(c, err, errorCases)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, NewErrorResponse(c, msg))
}

// session returns the request's session or answers 500 when the session
// middleware did not run.
func session(c *gin.Context, contexts model.ContextManager) (*model.Session, bool) {
	s, ok := contexts.GetSessionFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "internal error"))
		return nil, false
	}
	return s, true
}
