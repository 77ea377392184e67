package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/kart-io/medreq/internal/apiserver/model"
)

type medicines struct {
	db *gorm.DB
}

func newMedicines(db *gorm.DB) *medicines {
	return &medicines{db}
}

// Create inserts the given medicines.
func (m *medicines) Create(ctx context.Context, list ...*model.Medicine) error {
	if len(list) == 0 {
		return nil
	}
	return wrap(m.db.WithContext(ctx).Create(list).Error)
}

// Get retrieves a medicine by id.
func (m *medicines) Get(ctx context.Context, id uint64) (*model.Medicine, error) {
	var med model.Medicine
	if err := m.db.WithContext(ctx).First(&med, id).Error; err != nil {
		return nil, wrap(err)
	}
	return &med, nil
}

// List returns the catalogue ordered by name.
func (m *medicines) List(ctx context.Context) ([]*model.Medicine, error) {
	var list []*model.Medicine
	if err := m.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, wrap(err)
	}
	return list, nil
}

// Count returns the number of medicines.
func (m *medicines) Count(ctx context.Context) (int64, error) {
	var n int64
	err := m.db.WithContext(ctx).Model(&model.Medicine{}).Count(&n).Error
	return n, wrap(err)
}
