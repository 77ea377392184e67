package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/medreq/internal/apiserver/biz"
	api "github.com/kart-io/medreq/internal/model"
	errno "github.com/kart-io/medreq/pkg/errors"
	"github.com/kart-io/medreq/pkg/response"
)

// RequestHandler handles medical-supply requests.
type RequestHandler struct {
	svc *biz.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(svc *biz.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

// List handles GET /api/requests?page=N[&user_id=ID]. Users only see their
// own requests; a foreign user_id is forbidden.
func (h *RequestHandler) List(c *gin.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}

	if raw := c.Query("user_id"); raw != "" {
		if want, err := strconv.ParseUint(raw, 10, 64); err != nil || want != uid {
			response.Fail(c, errno.ErrForbidden)
			return
		}
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	out, err := h.svc.List(c.Request.Context(), uid, page)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, out)
}

// Create handles POST /api/requests.
func (h *RequestHandler) Create(c *gin.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}

	var payload api.CreateRequestPayload
	if !bind(c, &payload) {
		return
	}

	out, err := h.svc.Create(c.Request.Context(), uid, &payload)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, out)
}
