package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/medreq/internal/apiserver/biz"
	"github.com/kart-io/medreq/pkg/response"
)

// MedicineHandler serves the catalogue.
type MedicineHandler struct {
	svc *biz.MedicineService
}

// NewMedicineHandler creates a new MedicineHandler.
func NewMedicineHandler(svc *biz.MedicineService) *MedicineHandler {
	return &MedicineHandler{svc: svc}
}

// List handles GET /api/medicines.
func (h *MedicineHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, list)
}
