package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/todo-api/internal/interface/http"
)

// AuthModule registers /auth.
// Public: POST /auth/signup, POST /auth/login
// Protected: PATCH /auth/change-password, DELETE /auth/leave
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/signup", m.Handler.Signup)
	g.POST("/login", m.Handler.Login)

	protected := g.Group("/", m.Auth)
	protected.PATCH("/change-password", m.Handler.ChangePassword)
	protected.DELETE("/leave", m.Handler.Leave)
}
