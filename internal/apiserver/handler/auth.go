package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/medreq/internal/apiserver/biz"
	api "github.com/kart-io/medreq/internal/model"
	"github.com/kart-io/medreq/pkg/response"
)

// AuthHandler handles login and registration.
type AuthHandler struct {
	svc *biz.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *biz.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if !bind(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, resp)
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if !bind(c, &req) {
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, resp)
}
