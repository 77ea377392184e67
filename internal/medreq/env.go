package medreq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kart-io/logger"

	"github.com/kart-io/medreq/internal/medreq/form"
	"github.com/kart-io/medreq/internal/medreq/view"
	"github.com/kart-io/medreq/pkg/client"
	"github.com/kart-io/medreq/pkg/component/redis"
	errno "github.com/kart-io/medreq/pkg/errors"
	"github.com/kart-io/medreq/pkg/guard"
	"github.com/kart-io/medreq/pkg/infra/tracing"
	sessionopts "github.com/kart-io/medreq/pkg/options/session"
	"github.com/kart-io/medreq/pkg/session"
)

// Env is everything a command needs for one invocation.
type Env struct {
	Options *Options
	Store   *session.Store
	API     *client.Client
	Guard   *guard.Guard
	Notify  *view.Notifier
	Out     io.Writer
	In      io.Reader

	closers []func(context.Context) error
}

// reportedError marks an error whose notification was already printed.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err}
}

// printError prints errors that did not go through a Notifier.
func printError(w io.Writer, err error) {
	var r reportedError
	if errors.As(err, &r) {
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

// newBackend opens the configured session backend.
func newBackend(ctx context.Context, opts *Options) (session.Backend, func(context.Context) error, error) {
	switch opts.Session.Backend {
	case sessionopts.BackendMemory:
		return session.NewMemoryBackend(), nil, nil
	case sessionopts.BackendRedis:
		rc, err := redis.New(ctx, opts.Redis)
		if err != nil {
			return nil, nil, errno.ErrSessionStore.WithCause(err)
		}
		closeFn := func(context.Context) error { return rc.Close() }
		return session.NewRedisBackend(rc.Client(), opts.Session.KeyPrefix), closeFn, nil
	default:
		return session.NewFileBackend(opts.Session.Path), nil, nil
	}
}

// envConfig carries test seams; production leaves it zero.
type envConfig struct {
	backend    session.Backend
	httpClient *http.Client
	tracing    []tracing.ProviderOption
}

// NewEnv opens the session store, starts tracing and builds the API client.
func NewEnv(ctx context.Context, opts *Options, out, errOut io.Writer, in io.Reader, cfg envConfig) (*Env, error) {
	env := &Env{
		Options: opts,
		Out:     out,
		In:      in,
		Notify:  view.NewNotifier(errOut, opts.Client.Language),
	}

	backend := cfg.backend
	if backend == nil {
		b, closeFn, err := newBackend(ctx, opts)
		if err != nil {
			return nil, err
		}
		backend = b
		if closeFn != nil {
			env.closers = append(env.closers, closeFn)
		}
	}
	env.Store = session.NewStore(backend)
	env.Guard = guard.New(env.Store)

	provider, err := tracing.NewProvider(ctx, opts.Tracing, cfg.tracing...)
	if err != nil {
		_ = env.Close(ctx)
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	env.closers = append(env.closers, provider.Shutdown)

	copts := []client.Option{client.WithTokenSource(env.Store)}
	if cfg.httpClient != nil {
		copts = append(copts, client.WithHTTPClient(cfg.httpClient))
	}
	if opts.Client.LogoutOnUnauthorized {
		copts = append(copts, client.WithOnUnauthorized(func(ctx context.Context) {
			// 服务端拒绝令牌时清除本地会话
			if err := env.Store.Clear(ctx); err != nil {
				logger.Warnw("failed to clear session after 401", "error", err.Error())
				return
			}
			logger.Infow("session cleared after 401")
		}))
	}
	env.API = client.NewFromOptions(opts.Client, copts...)

	logger.Debugw("environment ready",
		"base_url", env.API.BaseURL(),
		"session_backend", opts.Session.Backend,
		"tracing", provider.Enabled(),
	)
	return env, nil
}

// Close releases the backend and flushes spans, in reverse order.
func (e *Env) Close(ctx context.Context) error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i](ctx))
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Lang is the notification language.
func (e *Env) Lang() string { return e.Options.Client.Language }

// Protect runs content when a session exists. Without one it prints the
// not-logged-in notice and fails.
func (e *Env) Protect(ctx context.Context, content func(ctx context.Context) error) error {
	err := e.Guard.Protect(ctx, content)
	var re *guard.RedirectError
	if errors.As(err, &re) {
		_ = e.Notify.Fail(errno.ErrNotAuthenticated, form.MsgLoginFailed)
		_, _ = fmt.Fprintf(e.Notify.Writer(), "  run `%s login` first\n", Name)
		return reported(errno.ErrNotAuthenticated)
	}
	return err
}
