package biz

import (
	"context"
	"strings"

	"github.com/kart-io/medreq/internal/apiserver/store"
	api "github.com/kart-io/medreq/internal/model"
	errno "github.com/kart-io/medreq/pkg/errors"
)

// UserService handles user business logic.
type UserService struct {
	store store.Factory
}

// NewUserService creates a new UserService.
func NewUserService(f store.Factory) *UserService {
	return &UserService{store: f}
}

// Get retrieves a user.
func (s *UserService) Get(ctx context.Context, id uint64) (*api.User, error) {
	user, err := s.store.Users().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := user.API()
	return &out, nil
}

// Update changes name and email. Only the owner may update an account.
func (s *UserService) Update(ctx context.Context, callerID, id uint64, req *api.UpdateUserRequest) (*api.User, error) {
	if callerID != id {
		return nil, errno.ErrForbidden
	}

	user, err := s.store.Users().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(req.Email)
	if err := ensureEmailFree(ctx, s.store, email, id); err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = email
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	out := user.API()
	return &out, nil
}
