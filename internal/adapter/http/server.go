package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/config"
	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FeedService serves NEO feed records, typically from a cache.
type FeedService interface {
	Feed(ctx context.Context, start, end time.Time) ([]domain.NearEarthObject, error)
	TodayFeed(ctx context.Context) ([]domain.NearEarthObject, error)
}

// ImpactService builds impact reports for validated inputs.
type ImpactService interface {
	Report(ctx context.Context, lat, lng, energyJoules float64) domain.ImpactReport
}

// Server exposes the NEO feed and impact APIs plus health and metrics endpoints.
type Server struct {
	httpServer *http.Server
	feeds      FeedService
	impacts    ImpactService
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer wires routes, CORS, and request middleware.
func NewServer(cfg *config.Config, feeds FeedService, impacts ImpactService, metrics *observability.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		feeds:   feeds,
		impacts: impacts,
		metrics: metrics,
		logger:  logger,
	}

	router := mux.NewRouter()
	router.Use(s.logRequests)

	router.HandleFunc("/api/neo/feed", s.handleFeed).Methods(http.MethodGet)
	router.HandleFunc("/api/neo/feed/today", s.handleTodayFeed).Methods(http.MethodGet)
	router.HandleFunc("/api/neo/health", textHandler("NEO Collision Engine API is running")).Methods(http.MethodGet)
	router.HandleFunc("/api/impact/query", s.handleImpact).Methods(http.MethodGet)
	router.HandleFunc("/api/impact/health", textHandler("Impact API is running")).Methods(http.MethodGet)
	router.HandleFunc("/healthz", sharedobs.LivenessHandler()).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)

	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           withRequestID(cors(router)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.OverpassTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}
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

func textHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}
