package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/medreq/internal/apiserver/biz"
	api "github.com/kart-io/medreq/internal/model"
	"github.com/kart-io/medreq/pkg/response"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	svc *biz.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *biz.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	user, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, user)
}

// Update handles PUT /api/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req api.UpdateUserRequest
	if !bind(c, &req) {
		return
	}

	user, err := h.svc.Update(c.Request.Context(), uid, id, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, user)
}
