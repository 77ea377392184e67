package biz

import (
	"context"
	"errors"
	"strings"

	"github.com/kart-io/logger"

	"github.com/kart-io/medreq/internal/apiserver/model"
	"github.com/kart-io/medreq/internal/apiserver/store"
	api "github.com/kart-io/medreq/internal/model"
	errno "github.com/kart-io/medreq/pkg/errors"
	"github.com/kart-io/medreq/pkg/validator"
)

// RequestService handles medical-supply requests.
type RequestService struct {
	store store.Factory
}

// NewRequestService creates a new RequestService.
func NewRequestService(f store.Factory) *RequestService {
	return &RequestService{store: f}
}

// List returns one page of the user's requests, newest first. Pages start
// at 1; smaller values are treated as 1.
func (s *RequestService) List(ctx context.Context, userID uint64, page int) (*api.RequestPage, error) {
	if page < 1 {
		page = 1
	}

	total, rows, err := s.store.Requests().ListByUser(ctx, userID, (page-1)*PerPage, PerPage)
	if err != nil {
		return nil, err
	}

	out := &api.RequestPage{
		Data:        make([]api.Request, 0, len(rows)),
		CurrentPage: page,
		LastPage:    lastPage(total, PerPage),
		Total:       int(total),
		PerPage:     PerPage,
	}
	for _, r := range rows {
		out.Data = append(out.Data, r.API())
	}
	return out, nil
}

// Create stores a request for userID. The delivery fields are required for
// NO POS medicines and dropped for the rest.
func (s *RequestService) Create(ctx context.Context, userID uint64, p *api.CreateRequestPayload) (*api.Request, error) {
	if p.MedicineID == 0 {
		return nil, validator.NewValidationError("medicine_id", "required", "The medicine id field is required.")
	}

	med, err := s.store.Medicines().Get(ctx, p.MedicineID)
	if err != nil {
		if errors.Is(err, errno.ErrNotFound) {
			return nil, validator.NewValidationError("medicine_id", "exists", "The selected medicine id is invalid.")
		}
		return nil, err
	}

	row := &model.Request{UserID: userID, MedicineID: med.ID}
	if med.IsNoPos {
		if verrs := requireDelivery(p); verrs.HasErrors() {
			return nil, verrs
		}
		row.OrderNumber = trimmed(p.OrderNumber)
		row.Address = trimmed(p.Address)
		row.Phone = trimmed(p.Phone)
		row.Email = trimmed(p.Email)
	}

	if err := s.store.Requests().Create(ctx, row); err != nil {
		return nil, err
	}

	logger.Global().WithCtx(ctx).Infow("Request created",
		"request_id", row.ID, "user_id", userID, "medicine_id", med.ID, "no_pos", med.IsNoPos)
	out := row.API()
	return &out, nil
}

// requireDelivery 检查 NO POS 药品的四个配送字段
func requireDelivery(p *api.CreateRequestPayload) *validator.ValidationErrors {
	verrs := validator.NewValidationErrors()
	fields := []struct {
		name  string
		label string
		value *string
	}{
		{"order_number", "order number", p.OrderNumber},
		{"address", "address", p.Address},
		{"phone", "phone", p.Phone},
		{"email", "email", p.Email},
	}
	for _, f := range fields {
		if strings.TrimSpace(api.Deref(f.value)) == "" {
			verrs.Append(f.name, "required_if", "The "+f.label+" field is required for NO POS medicines.")
		}
	}
	if e := api.Deref(p.Email); strings.TrimSpace(e) != "" {
		if err := validator.Var(strings.TrimSpace(e), "email"); err != nil {
			verrs.Append("email", "email", "The email field must be a valid email address.")
		}
	}
	return verrs
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func lastPage(total int64, perPage int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
