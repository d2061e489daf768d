package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/todo-api/internal/interface/http"
	"github.com/oksasatya/todo-api/internal/interface/middleware"
)

type TodoModule struct {
	Handler *handlers.TodoHandler
	Auth    gin.HandlerFunc
}

func NewTodoModule(h *handlers.TodoHandler, auth gin.HandlerFunc) *TodoModule {
	return &TodoModule{Handler: h, Auth: auth}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/todos", m.Auth)
	g.GET("/all", middleware.RequireAdmin(), m.Handler.All)
	g.POST("/", m.Handler.Create)
	g.GET("/", m.Handler.Mine)
	g.GET("/:id", m.Handler.Get)
	g.PATCH("/:id", m.Handler.Update)
	g.DELETE("/:id", m.Handler.Delete)
}
