package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/scorepredictor-server/internal/api/http/handler"
	"github.com/dtroode/scorepredictor-server/internal/model"
)

// UserResolver reports the user bound to a session.
type UserResolver interface {
	CurrentUser(ctx context.Context, s *model.Session) (model.PublicUser, bool)
}

// RequireAuth rejects requests whose session is not logged in.
func RequireAuth(users UserResolver, contexts model.ContextManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		s, ok := contexts.GetSessionFromContext(ctx)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse(c, model.ErrUnauthenticated.Error()))
			return
		}
		if _, ok := users.CurrentUser(ctx, s); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse(c, model.ErrUnauthenticated.Error()))
			return
		}

		c.Next()
	}
}
