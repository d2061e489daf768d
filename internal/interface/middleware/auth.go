package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/todo-api/internal/application"
	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/pkg/response"
)

const (
	CtxUserKey   = "user"
	CtxUserIDKey = "userID"
)

// TokenResolver turns a bearer token into the calling user.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*entity.User, error)
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	response.Error[any](c, http.StatusUnauthorized, msg, nil)
}

// Auth reads "Authorization: Bearer <token>", resolves it to an active user
// and stores the user in the Gin context.
func Auth(users TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			unauthorized(c, "Not authenticated")
			return
		}
		u, err := users.ResolveToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			unauthorized(c, "Could not validate credentials")
			return
		}
		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := application.RequireAdmin(CurrentUser(c)); err != nil {
			response.Error[any](c, http.StatusForbidden, err.Error(), nil)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user set by Auth, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
