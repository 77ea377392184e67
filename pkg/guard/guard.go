// Package guard gates commands on the presence of a stored session.
//
// The check runs on every invocation; nothing is cached between calls.
package guard

import (
	"context"
	"fmt"
)

// Routes the guard redirects to.
const (
	RouteLogin    = "/login"
	RouteRequests = "/requests"
)

// TokenSource yields the current bearer token, "" when logged out.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// RedirectError tells the caller to navigate to Route instead of showing the
// requested content.
type RedirectError struct {
	Route string
}

// Error implements the error interface.
func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s", e.Route)
}

// Guard checks a TokenSource before running content.
type Guard struct {
	tokens TokenSource
}

// New returns a Guard reading from tokens.
func New(tokens TokenSource) *Guard {
	return &Guard{tokens: tokens}
}

func (g *Guard) authenticated(ctx context.Context) (bool, error) {
	token, err := g.tokens.Token(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// Protect runs content only when a token is stored. Otherwise content is not
// run and a *RedirectError to the login route is returned.
func (g *Guard) Protect(ctx context.Context, content func(ctx context.Context) error) error {
	ok, err := g.authenticated(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return &RedirectError{Route: RouteLogin}
	}
	return content(ctx)
}

// PublicOnly runs content only when no token is stored, otherwise it redirects
// to the requests route. Used for the login screen.
func (g *Guard) PublicOnly(ctx context.Context, content func(ctx context.Context) error) error {
	ok, err := g.authenticated(ctx)
	if err != nil {
		return err
	}
	if ok {
		return &RedirectError{Route: RouteRequests}
	}
	return content(ctx)
}
