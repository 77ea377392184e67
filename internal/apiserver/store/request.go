package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/kart-io/medreq/internal/apiserver/model"
)

type requests struct {
	db *gorm.DB
}

func newRequests(db *gorm.DB) *requests {
	return &requests{db}
}

// Create inserts the request and loads its medicine.
func (r *requests) Create(ctx context.Context, req *model.Request) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Medicine").Create(req).Error; err != nil {
		return wrap(err)
	}
	return wrap(db.First(&req.Medicine, req.MedicineID).Error)
}

// ListByUser lists requests of userID with pagination, newest first.
func (r *requests) ListByUser(ctx context.Context, userID uint64, offset, limit int) (int64, []*model.Request, error) {
	var count int64
	var list []*model.Request

	q := r.db.WithContext(ctx).Model(&model.Request{}).Where("user_id = ?", userID)
	if err := q.Count(&count).Error; err != nil {
		return 0, nil, wrap(err)
	}

	err := q.Preload("Medicine").
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	if err != nil {
		return 0, nil, wrap(err)
	}
	return count, list, nil
}
