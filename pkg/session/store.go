// Package session persists the authenticated session between invocations.
//
// A session is two items in a Backend: "token" holds the bearer token and
// "user" holds the JSON-encoded user. Both are written on login and removed
// together on logout.
package session

import (
	"context"
	"errors"
	"strings"

	"github.com/kart-io/medreq/internal/model"
	errno "github.com/kart-io/medreq/pkg/errors"
	"github.com/kart-io/medreq/pkg/utils/json"
)

// Storage keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Store reads and writes the session through a Backend.
type Store struct {
	backend Backend
}

// NewStore returns a Store over backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Get returns the stored session. ok is false when no token is stored.
// A token without a readable user record still counts as a session.
func (s *Store) Get(ctx context.Context) (model.Session, bool, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return model.Session{}, false, err
	}
	if token == "" {
		return model.Session{}, false, nil
	}

	sess := model.Session{Token: token}
	raw, err := s.backend.GetItem(ctx, KeyUser)
	switch {
	case errors.Is(err, ErrNotFound):
		return sess, true, nil
	case err != nil:
		return model.Session{}, false, errno.ErrSessionStore.WithCause(err)
	}

	// 用户记录损坏时仍保留 token
	_ = json.Unmarshal([]byte(raw), &sess.User)
	return sess, true, nil
}

// Set persists the token and the user.
func (s *Store) Set(ctx context.Context, sess model.Session) error {
	if strings.TrimSpace(sess.Token) == "" {
		return errno.ErrSessionStore.WithMessage("refusing to store an empty token")
	}

	user, err := json.Marshal(sess.User)
	if err != nil {
		return errno.ErrSessionStore.WithCause(err)
	}
	if err := s.backend.SetItem(ctx, KeyToken, sess.Token); err != nil {
		return errno.ErrSessionStore.WithCause(err)
	}
	if err := s.backend.SetItem(ctx, KeyUser, string(user)); err != nil {
		return errno.ErrSessionStore.WithCause(err)
	}
	return nil
}

// Clear removes both keys. It attempts both removals even if the first fails.
func (s *Store) Clear(ctx context.Context) error {
	errToken := s.backend.RemoveItem(ctx, KeyToken)
	errUser := s.backend.RemoveItem(ctx, KeyUser)
	if err := errors.Join(errToken, errUser); err != nil {
		return errno.ErrSessionStore.WithCause(err)
	}
	return nil
}

// Token returns the stored token, or "" when absent.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, err := s.backend.GetItem(ctx, KeyToken)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errno.ErrSessionStore.WithCause(err)
	}
	return token, nil
}
