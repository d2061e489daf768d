package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todo-api/internal/application"
	"github.com/oksasatya/todo-api/internal/interface/middleware"
	"github.com/oksasatya/todo-api/pkg/response"
)

const noAddressYet = "No address yet."

type AddressHandler struct {
	Addresses *application.AddressService
	Logger    *logrus.Logger
}

func NewAddressHandler(addresses *application.AddressService, logger *logrus.Logger) *AddressHandler {
	return &AddressHandler{Addresses: addresses, Logger: logger}
}

// Mine GET /address/ answers 200 with null data when the caller has none.
func (h *AddressHandler) Mine(c *gin.Context) {
	a, found, err := h.Addresses.GetMine(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if !found {
		response.Success[*AddressOut](c, http.StatusOK, nil, noAddressYet, nil)
		return
	}
	out := toAddressOut(a)
	response.Success(c, http.StatusOK, &out, "address", nil)
}

// Get GET /address/:id
func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	r, err := h.Addresses.GetByID(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toAddressWithUser(r), "address", nil)
}

// Create POST /address/
func (h *AddressHandler) Create(c *gin.Context) {
	var req createAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	r, err := h.Addresses.CreateForUser(c.Request.Context(), application.AddressInput{
		Address1: req.Address1,
		Address2: req.Address2,
		AptNum:   req.AptNum,
		City:     req.City,
		State:    req.State,
		Country:  req.Country,
		Zipcode:  req.Zipcode,
	}, middleware.CurrentUser(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toAddressWithUser(r), "address created", nil)
}

// Update PATCH /address/
func (h *AddressHandler) Update(c *gin.Context) {
	var req updateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	r, err := h.Addresses.UpdateMine(c.Request.Context(), middleware.CurrentUser(c), req.patch())
	if errors.Is(err, application.ErrNoAddress) {
		response.Success[*AddressWithUser](c, http.StatusOK, nil, noAddressYet, nil)
		return
	}
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toAddressWithUser(r), "address updated", nil)
}

// Delete DELETE /address/ returns the caller without the address.
func (h *AddressHandler) Delete(c *gin.Context) {
	u, err := h.Addresses.DeleteMine(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserWithAddress(application.Profile{User: u}), "address deleted", nil)
}
