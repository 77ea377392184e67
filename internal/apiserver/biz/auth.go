package biz

import (
	"context"
	"errors"
	"strings"

	"github.com/kart-io/logger"
	"golang.org/x/crypto/bcrypt"

	"github.com/kart-io/medreq/internal/apiserver/model"
	"github.com/kart-io/medreq/internal/apiserver/store"
	api "github.com/kart-io/medreq/internal/model"
	errno "github.com/kart-io/medreq/pkg/errors"
	"github.com/kart-io/medreq/pkg/security/auth/jwt"
	"github.com/kart-io/medreq/pkg/validator"
)

// MsgRegistered is returned by a successful registration.
const MsgRegistered = "User registered successfully"

// AuthService handles login and registration.
type AuthService struct {
	store  store.Factory
	tokens *jwt.JWT
	cost   int
}

// NewAuthService creates a new AuthService.
func NewAuthService(f store.Factory, tokens *jwt.JWT) *AuthService {
	return &AuthService{store: f, tokens: tokens, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost, tests use bcrypt.MinCost.
func (s *AuthService) WithCost(cost int) *AuthService {
	s.cost = cost
	return s
}

// Login checks the credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	user, err := s.store.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errno.ErrNotFound) {
			return nil, errno.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.Global().WithCtx(ctx).Debugw("Password mismatch", "user_id", user.ID)
		return nil, errno.ErrInvalidCredentials
	}

	token, _, err := s.tokens.Sign(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &api.LoginResponse{Token: token, User: user.API()}, nil
}

// Register creates the account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	email := strings.TrimSpace(req.Email)
	if err := ensureEmailFree(ctx, s.store, email, 0); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, errno.ErrInternal.WithCause(err)
	}

	user := &model.User{Name: strings.TrimSpace(req.Name), Email: email, Password: string(hashed)}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Global().WithCtx(ctx).Infow("User registered", "user_id", user.ID)
	return &api.RegisterResponse{Message: MsgRegistered}, nil
}

// ensureEmailFree 邮箱已被其他用户占用时返回 422
func ensureEmailFree(ctx context.Context, f store.Factory, email string, self uint64) error {
	existing, err := f.Users().GetByEmail(ctx, email)
	switch {
	case errors.Is(err, errno.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == self:
		return nil
	}
	return validator.NewValidationError("email", "unique", errno.ErrEmailTaken.MessageEN)
}
