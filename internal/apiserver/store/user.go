package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/kart-io/medreq/internal/apiserver/model"
)

type users struct {
	db *gorm.DB
}

func newUsers(db *gorm.DB) *users {
	return &users{db}
}

// Create creates a new user.
func (u *users) Create(ctx context.Context, user *model.User) error {
	return wrap(u.db.WithContext(ctx).Create(user).Error)
}

// Update saves name, email and password of an existing user.
func (u *users) Update(ctx context.Context, user *model.User) error {
	return wrap(u.db.WithContext(ctx).Save(user).Error)
}

// Get retrieves a user by id.
func (u *users) Get(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrap(err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, ignoring case.
func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := u.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, wrap(err)
	}
	return &user, nil
}
