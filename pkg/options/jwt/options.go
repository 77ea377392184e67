// Package jwt provides the bearer token options of the reference server.
//
// Configuration Example (YAML):
//
//	jwt:
//	  key: "a-secret-of-at-least-32-characters"
//	  signing-method: "HS256"
//	  expired: "12h"
//	  issuer: "medreq"
//
// The key may also come from the MEDREQ_JWT_KEY environment variable.
package jwt

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
)

const (
	// DefaultSigningMethod is the default JWT signing algorithm.
	DefaultSigningMethod = "HS256"

	// DefaultExpired is the default token lifetime.
	DefaultExpired = 12 * time.Hour

	// DefaultIssuer is the default token issuer.
	DefaultIssuer = "medreq"

	// MinKeyLength is the minimum required key length.
	MinKeyLength = 32

	// KeyEnv is read when no key was configured.
	KeyEnv = "MEDREQ_JWT_KEY"
)

// SupportedSigningMethods lists the HMAC algorithms accepted for Key.
var SupportedSigningMethods = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Options contains JWT configuration.
type Options struct {
	// Key is the HMAC secret used to sign tokens.
	Key string `json:"-" mapstructure:"key"`

	// SigningMethod is one of SupportedSigningMethods.
	SigningMethod string `json:"signing-method" mapstructure:"signing-method"`

	// Expired is how long an issued token stays valid.
	Expired time.Duration `json:"expired" mapstructure:"expired"`

	// Issuer is written to the iss claim.
	Issuer string `json:"issuer" mapstructure:"issuer"`

	// generated 为 true 表示密钥是启动时随机生成的
	generated bool
}

// NewOptions creates Options with default values.
func NewOptions() *Options {
	return &Options{
		SigningMethod: DefaultSigningMethod,
		Expired:       DefaultExpired,
		Issuer:        DefaultIssuer,
	}
}

// Complete reads the key from the environment, or generates a random one so
// a development server starts without configuration. Tokens signed with a
// generated key do not survive a restart.
func (o *Options) Complete() error {
	if o.Key == "" {
		o.Key = os.Getenv(KeyEnv)
	}
	if o.Key == "" {
		b := make([]byte, MinKeyLength)
		if _, err := rand.Read(b); err != nil {
			return fmt.Errorf("generate jwt key: %w", err)
		}
		o.Key = hex.EncodeToString(b)
		o.generated = true
	}
	return nil
}

// Generated reports whether Complete had to invent the key.
func (o *Options) Generated() bool { return o.generated }

// Validate validates the JWT options.
func (o *Options) Validate() error {
	if !SupportedSigningMethods[o.SigningMethod] {
		return fmt.Errorf("unsupported jwt.signing-method %q", o.SigningMethod)
	}
	if len(o.Key) < MinKeyLength {
		return fmt.Errorf("jwt.key must be at least %d characters", MinKeyLength)
	}
	if o.Expired <= 0 {
		return fmt.Errorf("jwt.expired must be positive")
	}
	return nil
}

// AddFlags adds flags for JWT options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Key, "jwt.key", o.Key, "HMAC signing key (prefer the "+KeyEnv+" env var).")
	fs.StringVar(&o.SigningMethod, "jwt.signing-method", o.SigningMethod, "Signing algorithm: HS256, HS384 or HS512.")
	fs.DurationVar(&o.Expired, "jwt.expired", o.Expired, "Token lifetime.")
	fs.StringVar(&o.Issuer, "jwt.issuer", o.Issuer, "Token issuer.")
}
