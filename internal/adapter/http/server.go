package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/brewery-dashboard/internal/dashboard"
	"github.com/couchcryptid/brewery-dashboard/internal/domain"
)

// Dashboard is the service surface the API serves.
type Dashboard interface {
	sharedobs.ReadinessChecker
	Load(ctx context.Context) error
	View(q domain.Query) dashboard.View
	Charts() domain.ChartSet
	Detail(ctx context.Context, id string) (domain.Brewery, error)
	FilterOptions() []domain.FilterOption
}

// Server exposes health, readiness, metrics, and the dashboard JSON API.
type Server struct {
	httpServer *http.Server
	dash       Dashboard
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /api routes. Browser origins in allowedOrigins receive CORS headers.
func NewServer(addr string, dash Dashboard, allowedOrigins []string, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dash:   dash,
		logger: logger,
	}

	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors(allowedOrigins))

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(dash))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/breweries", s.handleList)
		r.Get("/breweries/{id}", s.handleDetail)
		r.Get("/stats", s.handleStats)
		r.Get("/charts", s.handleCharts)
		r.Get("/filter-types", s.handleFilterTypes)
		r.Post("/refresh", s.handleRefresh)
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
