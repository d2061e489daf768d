package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/todo-api/internal/interface/http"
)

type AddressModule struct {
	Handler *handlers.AddressHandler
	Auth    gin.HandlerFunc
}

func NewAddressModule(h *handlers.AddressHandler, auth gin.HandlerFunc) *AddressModule {
	return &AddressModule{Handler: h, Auth: auth}
}

func (m *AddressModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/address", m.Auth)
	g.GET("/", m.Handler.Mine)
	g.POST("/", m.Handler.Create)
	g.PATCH("/", m.Handler.Update)
	g.DELETE("/", m.Handler.Delete)
	g.GET("/:id", m.Handler.Get)
}
