package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/medreq/internal/apiserver/biz"
	"github.com/kart-io/medreq/internal/apiserver/handler"
	"github.com/kart-io/medreq/internal/apiserver/router"
	"github.com/kart-io/medreq/internal/apiserver/store"
	"github.com/kart-io/medreq/pkg/component/db"
	"github.com/kart-io/medreq/pkg/infra/tracing"
	"github.com/kart-io/medreq/pkg/security/auth/jwt"
)

// Server is the assembled reference server.
type Server struct {
	opts     *Options
	db       *db.Client
	tracer   *tracing.Provider
	engine   *gin.Engine
	Services *biz.Services
}

// NewServer opens the database, migrates and seeds it, and builds the router.
// opts must be completed and validated.
func NewServer(ctx context.Context, opts *Options) (*Server, error) {
	gin.SetMode(opts.HTTP.Mode)

	if opts.JWT.Generated() {
		logger.Warnw("No JWT key configured, using a random key; tokens will not survive a restart",
			"env", "MEDREQ_JWT_KEY")
	}
	tokens, err := jwt.New(opts.JWT)
	if err != nil {
		return nil, err
	}

	tracer, err := tracing.NewProvider(ctx, opts.Tracing)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	client, err := db.New(ctx, opts.DB)
	if err != nil {
		_ = tracer.Shutdown(ctx)
		return nil, err
	}
	logger.Infow("Database connected", "driver", client.Name())

	s := &Server{opts: opts, db: client, tracer: tracer}
	if err := s.prepareStore(ctx); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	s.buildRouter(tokens)
	return s, nil
}

func (s *Server) prepareStore(ctx context.Context) error {
	f := store.New(s.db.DB())
	if err := f.AutoMigrate(); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if s.opts.DB.Seed {
		if err := store.Seed(ctx, f); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}

func (s *Server) buildRouter(tokens *jwt.JWT) {
	s.Services = biz.New(store.New(s.db.DB()), tokens)
	s.engine = router.New(handler.New(s.Services), tokens, s.opts.HTTP.AllowOrigins)
}

// Handler returns the HTTP handler, for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.opts.HTTP.ReadTimeout,
		WriteTimeout: s.opts.HTTP.WriteTimeout,
		IdleTimeout:  s.opts.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("HTTP server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return <-errCh
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.HTTP.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Close releases the database and flushes spans.
func (s *Server) Close(ctx context.Context) error {
	return errors.Join(s.db.Close(), s.tracer.Shutdown(ctx))
}
