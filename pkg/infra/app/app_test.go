package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOptions struct {
	BaseURL  string `mapstructure:"base-url"`
	Language string `mapstructure:"language"`
	invalid  bool
}

func (o *testOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BaseURL, "base-url", o.BaseURL, "API base URL.")
	fs.StringVar(&o.Language, "language", o.Language, "Message language.")
}

func (o *testOptions) Complete() error {
	if o.Language == "" {
		o.Language = "es"
	}
	return nil
}

func (o *testOptions) Validate() error {
	if o.invalid {
		return errors.New("invalid")
	}
	return nil
}

func newTestApp(t *testing.T, opts *testOptions, inits *int) *App {
	t.Helper()
	noop := &cobra.Command{Use: "noop", RunE: func(*cobra.Command, []string) error { return nil }}
	return NewApp(
		WithName("medreq-test"),
		WithOptions(opts),
		WithEnvFiles(filepath.Join(t.TempDir(), "missing.env")),
		WithInitFunc(func() error { *inits++; return nil }),
		WithCommands(noop),
	)
}

func TestApp_ConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "medreq.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("base-url: http://file.test/api\nlanguage: ${MEDREQ_TEST_LANG}\n"), 0o600))
	t.Setenv("MEDREQ_TEST_LANG", "en")

	t.Run("file with expansion", func(t *testing.T) {
		opts, inits := &testOptions{}, 0
		a := newTestApp(t, opts, &inits)
		require.NoError(t, a.Execute([]string{"noop", "-c", cfg}, &bytes.Buffer{}, &bytes.Buffer{}))
		assert.Equal(t, "http://file.test/api", opts.BaseURL)
		assert.Equal(t, "en", opts.Language)
		assert.Equal(t, 1, inits)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("MEDREQ_TEST_BASE_URL", "http://env.test/api")
		opts, inits := &testOptions{}, 0
		a := newTestApp(t, opts, &inits)
		require.NoError(t, a.Execute([]string{"noop", "-c", cfg}, &bytes.Buffer{}, &bytes.Buffer{}))
		assert.Equal(t, "http://env.test/api", opts.BaseURL)
	})

	t.Run("flag over env", func(t *testing.T) {
		t.Setenv("MEDREQ_TEST_BASE_URL", "http://env.test/api")
		opts, inits := &testOptions{}, 0
		a := newTestApp(t, opts, &inits)
		args := []string{"noop", "-c", cfg, "--base-url", "http://flag.test/api"}
		require.NoError(t, a.Execute(args, &bytes.Buffer{}, &bytes.Buffer{}))
		assert.Equal(t, "http://flag.test/api", opts.BaseURL)
	})
}

func TestApp_ValidateStopsInit(t *testing.T) {
	opts, inits := &testOptions{invalid: true}, 0
	a := newTestApp(t, opts, &inits)

	cfg := filepath.Join(t.TempDir(), "medreq.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("language: en\n"), 0o600))

	err := a.Execute([]string{"noop", "-c", cfg}, &bytes.Buffer{}, &bytes.Buffer{})
	require.EqualError(t, err, "invalid")
	assert.Equal(t, 0, inits)
}

func TestEnvPrefix(t *testing.T) {
	assert.Equal(t, "MEDREQ_SERVER", EnvPrefix("medreq-server"))
	assert.Equal(t, "MEDREQ", EnvPrefix("medreq"))
}
