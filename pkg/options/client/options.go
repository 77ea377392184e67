// Package client holds the options of the medreq API client.
package client

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// DefaultBaseURL is the API root used when none is configured.
const DefaultBaseURL = "http://127.0.0.1:8000/api"

// Options defines how the API client reaches the backend.
type Options struct {
	BaseURL              string        `json:"base-url" mapstructure:"base-url"`
	Timeout              time.Duration `json:"timeout" mapstructure:"timeout"`
	UserAgent            string        `json:"user-agent" mapstructure:"user-agent"`
	LogoutOnUnauthorized bool          `json:"logout-on-unauthorized" mapstructure:"logout-on-unauthorized"`
	Language             string        `json:"language" mapstructure:"language"`
}

// NewOptions creates Options with defaults.
func NewOptions() *Options {
	return &Options{
		BaseURL:              DefaultBaseURL,
		Timeout:              30 * time.Second,
		UserAgent:            "medreq",
		LogoutOnUnauthorized: true,
		Language:             "es",
	}
}

// Complete normalises the base URL.
func (o *Options) Complete() error {
	o.BaseURL = strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	return nil
}

// Validate checks if the options are valid.
func (o *Options) Validate() error {
	u, err := url.Parse(o.BaseURL)
	if err != nil {
		return fmt.Errorf("client.base-url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("client.base-url must be an http(s) URL, got %q", o.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("client.base-url has no host: %q", o.BaseURL)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("client.timeout must not be negative")
	}
	return nil
}

// AddFlags adds flags for client options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BaseURL, "client.base-url", o.BaseURL, "Root URL of the medreq API.")
	fs.DurationVar(&o.Timeout, "client.timeout", o.Timeout, "Per-call timeout (0 disables).")
	fs.StringVar(&o.UserAgent, "client.user-agent", o.UserAgent, "User-Agent header sent with every call.")
	fs.BoolVar(&o.LogoutOnUnauthorized, "client.logout-on-unauthorized", o.LogoutOnUnauthorized,
		"Clear the stored session when the API answers 401.")
	fs.StringVar(&o.Language, "client.language", o.Language, "Language for local validation messages (en, es).")
}
