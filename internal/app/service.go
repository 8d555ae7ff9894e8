// Package service runs the HTTP server: it builds the route table from
// configuration, wraps it in the middleware chain and owns the listener.
package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/okian/featurelab/internal/adapters/http/api"
	"github.com/okian/featurelab/internal/adapters/http/swagger"
	"github.com/okian/featurelab/internal/config"
	"github.com/okian/featurelab/internal/domain/cities"
	"github.com/okian/featurelab/pkg/logger"
)

const readHeaderTimeout = 5 * time.Second

// Lifecycle errors.
var (
	ErrAlreadyStarted = errors.New("service already started")
	ErrNotStarted     = errors.New("service not started")
)

// Service owns the HTTP server for the feature API.
type Service struct {
	mu sync.Mutex

	cfg    *config.Config
	logger logger.Logger

	srv     *http.Server
	ln      net.Listener
	errCh   chan error
	started bool
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the configuration used to build routes and the server.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: config.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Handler builds the full handler: routes, optional docs and the middleware
// chain, outermost first.
func (s *Service) Handler(ctx context.Context) http.Handler {
	cfg := s.cfg
	mux := http.NewServeMux()

	api.NewServer(
		api.WithAPIKey(cfg.APIKey),
		api.WithBanner(cfg.Banner),
		api.WithColors(cfg.Colors),
		api.WithCities(cities.NewDirectory(cfg.CityFacts)),
		api.WithMaxBodyBytes(cfg.MaxBodyBytes),
		api.WithMetricsEndpoint(cfg.MetricsEnabled),
		api.WithLogger(s.logger.Named("api")),
	).Register(ctx, mux)

	if cfg.DocsEnabled {
		swagger.Register(ctx, mux)
	}

	chain := []api.Middleware{
		middleware.Recoverer,
		middleware.RealIP,
		api.RequestID,
		api.AccessLog(s.logger.Named("http")),
	}
	if len(cfg.CORSAllowedOrigins) > 0 {
		chain = append(chain, api.CORS(cfg.CORSAllowedOrigins))
	}
	chain = append(chain, middleware.StripSlashes)

	return api.Chain(mux, chain...)
}

// Start binds the listen address and serves in the background. Bind errors
// are returned synchronously.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("service.start: listen %s: %w", s.cfg.Addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(ctx),
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.srv = srv
	s.ln = ln
	s.errCh = errCh
	s.started = true

	s.logger.Info(ctx, "HTTP server started",
		logger.String("addr", ln.Addr().String()),
		logger.Bool("metrics", s.cfg.MetricsEnabled),
		logger.Bool("docs", s.cfg.DocsEnabled),
	)
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Service) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// URL returns the base URL of the bound listener.
func (s *Service) URL() string {
	return "http://" + s.Addr()
}

// Wait blocks until ctx is done or the server stops. It returns the serve
// error, if any; a server closed by Stop yields nil.
func (s *Service) Wait(ctx context.Context) error {
	s.mu.Lock()
	errCh := s.errCh
	s.mu.Unlock()

	if errCh == nil {
		return ErrNotStarted
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("service.serve: %w", err)
		}
		return nil
	}
}

// Stop gracefully shuts the server down, bounded by ctx.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.started = false

	s.logger.Info(ctx, "stopping HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("service.stop: %w", err)
	}
	s.logger.Info(ctx, "HTTP server stopped")
	return nil
}
