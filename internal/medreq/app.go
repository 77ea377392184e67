// Package medreq is the medreq command line: sign in, browse and create
// medical-supply requests against the medreq API.
package medreq

import (
	"context"
	"net/http"

	"github.com/kart-io/logger"
	"github.com/spf13/cobra"

	"github.com/kart-io/medreq/pkg/infra/app"
	"github.com/kart-io/medreq/pkg/infra/tracing"
	"github.com/kart-io/medreq/pkg/session"
)

// Name is the name of the application.
const Name = "medreq"

const appDescription = `medreq is the command line client of the medical-supply request service.

Sign in once with "medreq login"; the token and user are stored locally
(file, redis or memory backend) and sent with every later call until
"medreq logout".`

// AppOption customises the runtime of the commands.
type AppOption func(*envConfig)

// WithSessionBackend stores the session in b instead of the configured backend.
func WithSessionBackend(b session.Backend) AppOption {
	return func(c *envConfig) { c.backend = b }
}

// WithHTTPClient sends API calls through hc.
func WithHTTPClient(hc *http.Client) AppOption {
	return func(c *envConfig) { c.httpClient = hc }
}

// WithTracing passes options to the tracing provider.
func WithTracing(popts ...tracing.ProviderOption) AppOption {
	return func(c *envConfig) { c.tracing = append(c.tracing, popts...) }
}

// NewApp creates the medreq application.
func NewApp(aopts ...AppOption) *app.App {
	opts := NewOptions()
	opts.Client.UserAgent = app.UserAgent(Name)

	c := &cli{opts: opts}
	for _, o := range aopts {
		o(&c.cfg)
	}

	return app.NewApp(
		app.WithName(Name),
		app.WithShortDescription("Medical-supply request client"),
		app.WithDescription(appDescription),
		app.WithOptions(opts),
		app.WithInitFunc(func() error {
			opts.Log.AddInitialField("service.name", Name)
			opts.Log.AddInitialField("service.version", app.GetVersion())
			return opts.Log.Init()
		}),
		app.WithErrorHandler(printError),
		app.WithCommands(c.commands()...),
	)
}

// cli binds commands to the shared options.
type cli struct {
	opts *Options
	cfg  envConfig
}

// run opens an Env for the duration of fn.
func (c *cli) run(cmd *cobra.Command, fn func(ctx context.Context, env *Env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := NewEnv(ctx, c.opts, cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), c.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.Close(context.WithoutCancel(ctx)); cerr != nil {
			logger.Warnw("failed to close environment", "error", cerr.Error())
		}
	}()

	return fn(ctx, env)
}
