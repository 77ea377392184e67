package biz

import (
	"context"

	"github.com/kart-io/medreq/internal/apiserver/store"
	api "github.com/kart-io/medreq/internal/model"
)

// MedicineService serves the catalogue.
type MedicineService struct {
	store store.Factory
}

// NewMedicineService creates a new MedicineService.
func NewMedicineService(f store.Factory) *MedicineService {
	return &MedicineService{store: f}
}

// List returns every medicine.
func (s *MedicineService) List(ctx context.Context) ([]api.Medicine, error) {
	list, err := s.store.Medicines().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]api.Medicine, 0, len(list))
	for _, m := range list {
		out = append(out, m.API())
	}
	return out, nil
}
