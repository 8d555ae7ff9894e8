// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"slices"

	"github.com/okian/featurelab/internal/domain/cities"
	"github.com/okian/featurelab/pkg/logger"
)

// Defaults used when an Option is not supplied.
const (
	DefaultAPIKey       = "mysecretkey"
	DefaultBanner       = "Welcome to Feature Lab Service!"
	DefaultMaxBodyBytes = 100 << 10
)

// DefaultColors is the list served by GET /colors unless configured.
var DefaultColors = []string{"red", "blue", "green", "yellow"}

// Route is one entry of the static dispatch table.
type Route struct {
	Method  string
	Pattern string
	Name    string
	Handler http.HandlerFunc
}

// Server wires HTTP routes for the feature API.
type Server struct {
	rootHandler      *RootHandler
	greetHandler     *GreetHandler
	mathHandler      *MathHandler
	personHandler    *PersonHandler
	areaHandler      *AreaHandler
	cityHandler      *CityHandler
	colorsHandler    *ColorsHandler
	protectedHandler *ProtectedHandler
	healthHandler    *HealthHandler

	metricsEnabled bool
}

type settings struct {
	apiKey         string
	banner         string
	colors         []string
	directory      *cities.Directory
	maxBodyBytes   int64
	metricsEnabled bool
	logger         logger.Logger
}

// Option configures NewServer.
type Option func(*settings)

// WithAPIKey sets the shared secret for GET /protected-data.
func WithAPIKey(key string) Option {
	return func(s *settings) {
		if key != "" {
			s.apiKey = key
		}
	}
}

// WithBanner sets the root page heading.
func WithBanner(banner string) Option {
	return func(s *settings) {
		if banner != "" {
			s.banner = banner
		}
	}
}

// WithColors sets the list served by GET /colors.
func WithColors(colors []string) Option {
	return func(s *settings) {
		if colors != nil {
			s.colors = slices.Clone(colors)
		}
	}
}

// WithCities sets the facts directory for GET /city/{city_name}.
func WithCities(d *cities.Directory) Option {
	return func(s *settings) {
		if d != nil {
			s.directory = d
		}
	}
}

// WithMaxBodyBytes caps JSON request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithMetricsEndpoint toggles GET /metrics.
func WithMetricsEndpoint(enabled bool) Option {
	return func(s *settings) {
		s.metricsEnabled = enabled
	}
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(opts ...Option) *Server {
	s := settings{
		apiKey:         DefaultAPIKey,
		banner:         DefaultBanner,
		colors:         slices.Clone(DefaultColors),
		maxBodyBytes:   DefaultMaxBodyBytes,
		metricsEnabled: true,
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.directory == nil {
		s.directory = cities.NewDirectory(nil)
	}

	return &Server{
		rootHandler:      NewRootHandler(s.banner),
		greetHandler:     NewGreetHandler(),
		mathHandler:      NewMathHandler(),
		personHandler:    NewPersonHandler(s.maxBodyBytes, s.logger),
		areaHandler:      NewAreaHandler(s.maxBodyBytes, s.logger),
		cityHandler:      NewCityHandler(s.directory),
		colorsHandler:    NewColorsHandler(s.colors),
		protectedHandler: NewProtectedHandler(s.apiKey, s.logger),
		healthHandler:    NewHealthHandler(),
		metricsEnabled:   s.metricsEnabled,
	}
}

// Routes returns the dispatch table. GET patterns also answer HEAD.
func (s *Server) Routes() []Route {
	routes := []Route{
		{http.MethodGet, "/{$}", "root", s.rootHandler.HandleRoot},
		{http.MethodGet, "/greet", "greet", s.greetHandler.HandleGreet},
		{http.MethodGet, "/cube/{number}", "cube", s.mathHandler.HandleCube},
		{http.MethodGet, "/add", "add", s.mathHandler.HandleAdd},
		{http.MethodGet, "/factorial/{n}", "factorial", s.mathHandler.HandleFactorial},
		{http.MethodPost, "/person", "person", s.personHandler.HandlePerson},
		{http.MethodGet, "/city/{city_name}", "city", s.cityHandler.HandleCity},
		{http.MethodPost, "/area/rectangle", "area_rectangle", s.areaHandler.HandleRectangle},
		{http.MethodGet, "/power/{base}", "power", s.mathHandler.HandlePower},
		{http.MethodGet, "/colors", "colors", s.colorsHandler.HandleColors},
		{http.MethodGet, "/protected-data", "protected_data", s.protectedHandler.HandleProtectedData},
		{http.MethodGet, "/cookie-greet", "cookie_greet", s.greetHandler.HandleCookieGreet},
		{http.MethodGet, "/healthz", "healthz", s.healthHandler.HandleHealth},
	}
	if s.metricsEnabled {
		routes = append(routes, Route{http.MethodGet, "/metrics", "metrics", s.healthHandler.HandleMetrics})
	}
	return routes
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	for _, rt := range s.Routes() {
		mux.HandleFunc(rt.Method+" "+rt.Pattern, MetricsMiddleware(rt.Handler, rt.Name))
	}
}

// queryValue returns the last value of key; repeated keys are last-write-wins.
func queryValue(r *http.Request, key string) (string, bool) {
	values := r.URL.Query()[key]
	if len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}
