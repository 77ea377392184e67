// Package store is the gorm persistence layer of the reference server.
package store

import (
	"context"

	"github.com/kart-io/medreq/internal/apiserver/model"
)

// Factory defines the factory interface for creating stores.
type Factory interface {
	Users() UserStore
	Medicines() MedicineStore
	Requests() RequestStore
	AutoMigrate() error
}

// UserStore defines the user storage interface.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uint64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// MedicineStore defines the medicine storage interface.
type MedicineStore interface {
	Create(ctx context.Context, medicines ...*model.Medicine) error
	Get(ctx context.Context, id uint64) (*model.Medicine, error)
	List(ctx context.Context) ([]*model.Medicine, error)
	Count(ctx context.Context) (int64, error)
}

// RequestStore defines the request storage interface.
type RequestStore interface {
	Create(ctx context.Context, req *model.Request) error
	// ListByUser returns one page of the user's requests, newest first, with
	// the medicine loaded, plus the total count.
	ListByUser(ctx context.Context, userID uint64, offset, limit int) (int64, []*model.Request, error)
}
