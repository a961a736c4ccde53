package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/metrics"
	"github.com/planta-io/planta/internal/repository"
)

// Router assembles the HTTP surface of the API.
type Router struct {
	userHandler     *UserHandler
	plantHandler    *PlantHandler
	eventHandler    *EventHandler
	authMiddleware  func(http.Handler) http.Handler
	strictOwnership bool
	db              repository.DatabaseHealth
	metrics         *metrics.Metrics
	logger          zerolog.Logger
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	UserHandler    *UserHandler
	PlantHandler   *PlantHandler
	EventHandler   *EventHandler
	AuthMiddleware func(http.Handler) http.Handler

	// StrictOwnership gates the id-addressed routes behind authentication.
	// Left off, they stay reachable without a token, which is what the
	// existing clients expect.
	StrictOwnership bool

	// DB, when set, is pinged by the health endpoint.
	DB repository.DatabaseHealth

	// Metrics, when set, instruments every request.
	Metrics *metrics.Metrics

	Logger zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(config RouterConfig) *Router {
	return &Router{
		userHandler:     config.UserHandler,
		plantHandler:    config.PlantHandler,
		eventHandler:    config.EventHandler,
		authMiddleware:  config.AuthMiddleware,
		strictOwnership: config.StrictOwnership,
		db:              config.DB,
		metrics:         config.Metrics,
		logger:          config.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(rt.requestLogger)
	r.Use(chimiddleware.Recoverer)
	if rt.metrics != nil {
		r.Use(metrics.Middleware(rt.metrics))
	}

	r.Get("/", rt.handleGreeting)
	r.Get("/health", rt.handleHealth)

	r.Post("/register", rt.userHandler.Register)
	r.Post("/login", rt.userHandler.Login)

	// Owner-scoped collection routes are always gated.
	r.Group(func(r chi.Router) {
		r.Use(rt.authMiddleware)

		r.Get("/plants", rt.plantHandler.List)
		r.Post("/plants", rt.plantHandler.Create)
		r.Get("/calendarevents", rt.eventHandler.List)
		r.Post("/calendarevents", rt.eventHandler.Create)
	})

	// Id-addressed routes are gated only under strict ownership.
	r.Group(func(r chi.Router) {
		if rt.strictOwnership {
			r.Use(rt.authMiddleware)
		}

		r.Get("/plant/{plantId}", rt.plantHandler.Get)
		r.Patch("/plant/{plantId}/updated", rt.plantHandler.Update)
		r.Delete("/plant/{plantId}", rt.plantHandler.Delete)
		r.Patch("/calendarevents/{eventId}/completed", rt.eventHandler.SetCompleted)
		r.Delete("/event/{eventId}", rt.eventHandler.Delete)
	})

	return r
}

// handleGreeting handles GET /.
func (rt *Router) handleGreeting(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello from the Planta API!"))
}

// handleHealth handles health check requests.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	if rt.db != nil {
		if err := rt.db.Ping(r.Context()); err != nil {
			rt.logger.Error().Err(err).Msg("health check failed")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// requestLogger logs one line per completed request.
func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		rt.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("request")
	})
}
