// Package jwt issues and verifies the bearer tokens of the reference server.
//
// Tokens are HMAC signed; the subject claim carries the numeric user id.
//
// Usage:
//
//	j, err := jwt.New(opts)
//	token, expiresAt, err := j.Sign(ctx, user.ID)
//	userID, err := j.Verify(ctx, token)
package jwt

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	errno "github.com/kart-io/medreq/pkg/errors"
	options "github.com/kart-io/medreq/pkg/options/jwt"
)

// JWT signs and verifies tokens.
type JWT struct {
	opts   *options.Options
	method jwt.SigningMethod
	now    func() time.Time
}

// Option is a functional option for JWT.
type Option func(*JWT)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) { j.now = now }
}

// New creates a JWT from completed options.
func New(opts *options.Options, o ...Option) (*JWT, error) {
	if opts == nil {
		return nil, fmt.Errorf("jwt options cannot be nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate options: %w", err)
	}

	j := &JWT{opts: opts, now: time.Now}
	for _, fn := range o {
		fn(j)
	}

	j.method = jwt.GetSigningMethod(opts.SigningMethod)
	if j.method == nil {
		return nil, fmt.Errorf("unsupported signing method: %s", opts.SigningMethod)
	}
	return j, nil
}

// Sign creates a token whose subject is userID.
func (j *JWT) Sign(_ context.Context, userID uint64) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.opts.Expired)

	tokenID, err := generateTokenID()
	if err != nil {
		return "", time.Time{}, err
	}

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		Issuer:    j.opts.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        tokenID,
	}

	signed, err := jwt.NewWithClaims(j.method, claims).SignedString([]byte(j.opts.Key))
	if err != nil {
		return "", time.Time{}, errno.ErrInternal.WithCause(err).WithMessage("failed to sign token")
	}
	return signed, expiresAt, nil
}

// Verify validates the token and returns the user id of its subject.
func (j *JWT) Verify(_ context.Context, tokenString string) (uint64, error) {
	if tokenString == "" {
		return 0, errno.ErrUnauthorized.WithMessage("token is empty")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{j.method.Alg()}), jwt.WithoutClaimsValidation())
	var claims jwt.RegisteredClaims
	token, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(j.opts.Key), nil
	})
	if err != nil {
		return 0, mapParseError(err)
	}
	if !token.Valid {
		return 0, errno.ErrUnauthorized.WithMessage("invalid token")
	}

	// 时间相关的声明按注入的时钟校验
	now := j.now()
	if !claims.VerifyExpiresAt(now, true) {
		return 0, errno.ErrUnauthorized.WithMessage("token is expired")
	}
	if !claims.VerifyNotBefore(now, false) {
		return 0, errno.ErrUnauthorized.WithMessage("token not valid yet")
	}
	if j.opts.Issuer != "" && !claims.VerifyIssuer(j.opts.Issuer, true) {
		return 0, errno.ErrUnauthorized.WithMessage("unexpected issuer")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, errno.ErrUnauthorized.WithMessage("invalid subject")
	}
	return userID, nil
}

// mapParseError maps jwt parse errors to errno values.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrSignatureInvalid):
		return errno.ErrUnauthorized.WithCause(err).WithMessage("invalid signature")
	case errors.Is(err, jwt.ErrTokenMalformed):
		return errno.ErrUnauthorized.WithCause(err).WithMessage("malformed token")
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return errno.ErrUnauthorized.WithCause(err).WithMessage("unexpected signing method")
	default:
		return errno.ErrUnauthorized.WithCause(err)
	}
}

// generateTokenID generates a random token ID.
func generateTokenID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", errno.ErrInternal.WithCause(err).WithMessage("failed to generate token ID")
	}
	return hex.EncodeToString(b), nil
}
