package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todo-api/internal/application"
	"github.com/oksasatya/todo-api/internal/interface/middleware"
	"github.com/oksasatya/todo-api/pkg/response"
)

type AuthHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(users *application.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Logger: logger}
}

// Signup POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.Users.Signup(c.Request.Context(), application.SignupInput{
		Email:       req.Email,
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserOut(u), "user created", nil)
}

// Login POST /auth/login, accepting JSON or an OAuth2 password form.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	var err error
	if c.ContentType() == binding.MIMEJSON {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBindWith(&req, binding.Form)
	}
	if err != nil {
		bindError(c, err)
		return
	}
	tok, err := h.Users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, TokenOut{
		AccessToken: tok.Token,
		TokenType:   tok.Type,
		ExpiresAt:   tok.ExpiresAt,
	}, "login successful", nil)
}

// ChangePassword PATCH /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.Users.ChangePassword(c.Request.Context(), middleware.CurrentUser(c), application.PasswordChange{
		Username:        req.Username,
		CurrentPassword: req.Password,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserOut(u), "password changed", nil)
}

// Leave DELETE /auth/leave deactivates the caller.
func (h *AuthHandler) Leave(c *gin.Context) {
	u, err := h.Users.Deactivate(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserOut(u), "user deactivated", nil)
}
