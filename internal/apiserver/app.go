// Package apiserver is the reference backend of the medreq client: auth,
// users, the medicine catalogue and requests over a gin JSON API.
package apiserver

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kart-io/logger"

	"github.com/kart-io/medreq/pkg/infra/app"
)

// Name is the name of the application.
const Name = "medreq-server"

const appDescription = `medreq-server serves the medreq JSON API.

It stores users, medicines and requests in sqlite (default), mysql or
postgres, seeds the medicine catalogue on first start and signs bearer
tokens with an HMAC key (MEDREQ_JWT_KEY).`

// NewApp creates the server application.
func NewApp() *app.App {
	opts := NewOptions()

	return app.NewApp(
		app.WithName(Name),
		app.WithShortDescription("medreq reference API server"),
		app.WithDescription(appDescription),
		app.WithOptions(opts),
		app.WithInitFunc(func() error {
			opts.Log.AddInitialField("service.name", Name)
			opts.Log.AddInitialField("service.version", app.GetVersion())
			return opts.Log.Init()
		}),
		app.WithRunFunc(func() error {
			return run(opts)
		}),
	)
}

func run(opts *Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := NewServer(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Warnw("Close server resources", "error", err.Error())
		}
	}()

	if err := srv.Run(ctx); err != nil {
		return err
	}
	logger.Info("Server exited gracefully")
	return nil
}
