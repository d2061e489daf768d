package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/todo-api/internal/container"
	handlers "github.com/oksasatya/todo-api/internal/interface/http"
	"github.com/oksasatya/todo-api/internal/interface/middleware"
	"github.com/oksasatya/todo-api/internal/router/modules"
)

// InitModules registers every feature module built from c.
func InitModules(r *Registry, c *container.Container) {
	auth := middleware.Auth(c.Users)
	r.Add(
		modules.NewAuthModule(handlers.NewAuthHandler(c.Users, c.Logger), auth),
		modules.NewUserModule(handlers.NewUserHandler(c.Users, c.Logger), auth),
		modules.NewTodoModule(handlers.NewTodoHandler(c.Todos, c.Logger), auth),
		modules.NewAddressModule(handlers.NewAddressHandler(c.Addresses, c.Logger), auth),
	)
}

// NewEngine builds the Gin engine with global middleware and all routes.
func NewEngine(c *container.Container) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	if origins := c.Config.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	reg := NewRegistry(r, c.Config.APIPrefix)
	reg.Use(middleware.RealIP())
	if c.Config.HTTPLogEnabled && c.Logger != nil {
		reg.Use(middleware.AccessLog(c.Logger))
	}
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}
