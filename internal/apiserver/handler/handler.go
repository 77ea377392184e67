// Package handler implements the HTTP handlers of the reference server.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/medreq/internal/apiserver/biz"
	errno "github.com/kart-io/medreq/pkg/errors"
	"github.com/kart-io/medreq/pkg/middleware"
	"github.com/kart-io/medreq/pkg/response"
	"github.com/kart-io/medreq/pkg/validator"
)

// Handler groups the handlers of every resource.
type Handler struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Medicines *MedicineHandler
	Requests  *RequestHandler
}

// New creates the handlers on top of the business services.
func New(svc *biz.Services) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Users:     NewUserHandler(svc.Users),
		Medicines: NewMedicineHandler(svc.Medicines),
		Requests:  NewRequestHandler(svc.Requests),
	}
}

// bind 解析 JSON 并按请求语言校验, 失败时已写出响应
func bind(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.Fail(c, errno.ErrBadRequest.WithMessage("invalid request body").WithCause(err))
		return false
	}
	if verrs := validator.StructWithLang(obj, response.Lang(c.Request)); verrs.HasErrors() {
		response.Fail(c, verrs)
		return false
	}
	return true
}

// caller returns the authenticated user id. Routes using it sit behind
// middleware.Auth, so a missing id is a wiring bug.
func caller(c *gin.Context) (uint64, bool) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, errno.ErrUnauthorized)
	}
	return uid, ok
}

func idParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, errno.ErrNotFound)
		return 0, false
	}
	return id, true
}
