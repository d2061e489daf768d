package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todo-api/internal/application"
	"github.com/oksasatya/todo-api/internal/interface/middleware"
	"github.com/oksasatya/todo-api/pkg/response"
)

type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

// All GET /users/all (admin)
func (h *UserHandler) All(c *gin.Context) {
	profiles, err := h.Users.ListProfiles(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]UserWithAddress, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toUserWithAddress(p))
	}
	response.Success(c, http.StatusOK, out, "users", nil)
}

// Me GET /users/
func (h *UserHandler) Me(c *gin.Context) {
	p, err := h.Users.Profile(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserWithAddress(p), "user", nil)
}

// ByID GET /users/:id
func (h *UserHandler) ByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.Users.ProfileByID(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserWithAddress(p), "user", nil)
}

// Update PATCH /users/
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), application.ProfilePatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserOut(u), "user updated", nil)
}
