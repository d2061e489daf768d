package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/todo-api/internal/interface/http"
	"github.com/oksasatya/todo-api/internal/interface/middleware"
)

// UserModule registers /users; every route needs a bearer token.
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users", m.Auth)
	g.GET("/all", middleware.RequireAdmin(), m.Handler.All)
	g.GET("/", m.Handler.Me)
	g.PATCH("/", m.Handler.Update)
	g.GET("/:id", m.Handler.ByID)
}
