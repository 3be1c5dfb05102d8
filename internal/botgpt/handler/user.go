// Package handler provides HTTP handlers for the BOT-GPT API.
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/biz"
	"github.com/NikhilAnand12/BOT-GPT/internal/pkg/httputils"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	svc *biz.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *biz.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
}

// Create handles user creation.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrInvalidParam.WithMessage(err.Error()), nil)
		return
	}

	user, err := h.svc.Create(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteCreated(c, nil, user)
}

// Get handles user retrieval by id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, user)
}
