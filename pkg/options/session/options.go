// Package session holds the options selecting where the session is persisted.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

// Supported backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options defines where the session token and user are stored.
type Options struct {
	Backend   string `json:"backend" mapstructure:"backend"`
	Path      string `json:"path" mapstructure:"path"`
	KeyPrefix string `json:"key-prefix" mapstructure:"key-prefix"`
}

// NewOptions creates Options with defaults.
func NewOptions() *Options {
	return &Options{
		Backend:   BackendFile,
		KeyPrefix: "medreq:session:",
	}
}

// Complete resolves the default file path under the user's home directory.
func (o *Options) Complete() error {
	o.Backend = strings.ToLower(strings.TrimSpace(o.Backend))
	if o.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		o.Path = filepath.Join(home, ".medreq", "session.json")
	}
	return nil
}

// Validate checks if the options are valid.
func (o *Options) Validate() error {
	switch o.Backend {
	case BackendFile:
		if o.Path == "" {
			return fmt.Errorf("session.path must not be empty for the file backend")
		}
	case BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unsupported session.backend %q (want file, redis or memory)", o.Backend)
	}
	return nil
}

// AddFlags adds flags for session options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Backend, "session.backend", o.Backend, "Where to keep the session: file, redis or memory.")
	fs.StringVar(&o.Path, "session.path", o.Path, "Session file for the file backend (default ~/.medreq/session.json).")
	fs.StringVar(&o.KeyPrefix, "session.key-prefix", o.KeyPrefix, "Key prefix for the redis backend.")
}
