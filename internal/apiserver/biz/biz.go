// Package biz holds the business rules of the reference server.
package biz

import (
	"github.com/kart-io/medreq/internal/apiserver/store"
	"github.com/kart-io/medreq/pkg/security/auth/jwt"
)

// PerPage is the page size of GET /requests.
const PerPage = 10

// Services bundles the business services.
type Services struct {
	Auth      *AuthService
	Users     *UserService
	Medicines *MedicineService
	Requests  *RequestService
}

// New wires the services on top of one store.
func New(f store.Factory, tokens *jwt.JWT) *Services {
	return &Services{
		Auth:      NewAuthService(f, tokens),
		Users:     NewUserService(f),
		Medicines: NewMedicineService(f),
		Requests:  NewRequestService(f),
	}
}
