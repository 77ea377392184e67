package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kart-io/medreq/internal/apiserver/model"
	errno "github.com/kart-io/medreq/pkg/errors"
)

// datastore implements the Factory interface.
type datastore struct {
	db *gorm.DB
}

// New returns a Factory backed by db.
func New(db *gorm.DB) Factory {
	return &datastore{db: db}
}

// Users returns the user store.
func (ds *datastore) Users() UserStore {
	return newUsers(ds.db)
}

// Medicines returns the medicine store.
func (ds *datastore) Medicines() MedicineStore {
	return newMedicines(ds.db)
}

// Requests returns the request store.
func (ds *datastore) Requests() RequestStore {
	return newRequests(ds.db)
}

// AutoMigrate migrates the database schema.
func (ds *datastore) AutoMigrate() error {
	return ds.db.AutoMigrate(model.All()...)
}

// wrap 将 gorm 错误映射为 errno
func wrap(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errno.ErrNotFound.WithCause(err)
	default:
		return errno.ErrDatabase.WithCause(err)
	}
}
