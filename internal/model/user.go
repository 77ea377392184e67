// Package model defines the wire types exchanged with the medreq API.
package model

import "strings"

// User is the authenticated account as returned by the API.
type User struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Session is what a successful login leaves behind on the client.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.Token) != ""
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name                 string `json:"name" validate:"notblank,max=255"`
	Email                string `json:"email" validate:"notblank,email,max=255"`
	Password             string `json:"password" validate:"notblank"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password"`
}

// RegisterResponse is returned by POST /auth/register. Token is only set by
// backends that log the new user in immediately.
type RegisterResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// UpdateUserRequest is the body of PUT /users/{id}.
type UpdateUserRequest struct {
	Name  string `json:"name" validate:"notblank,max=255"`
	Email string `json:"email" validate:"notblank,email,max=255"`
}
