package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rpgroster/internal/api/apierr"
	"github.com/mcoot/rpgroster/internal/api/handler"
	"github.com/mcoot/rpgroster/internal/api/response"
	"github.com/mcoot/rpgroster/internal/metrics"
	"github.com/mcoot/rpgroster/internal/middleware"
	"github.com/mcoot/rpgroster/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	PlayerService *player.Service
	// Metrics is optional; when nil no /metrics endpoint is served
	Metrics     *metrics.Metrics
	StorageType string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService, cfg.Logger)

	// Middleware applies to every matched route, outermost first
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(cfg.Logger, writePanic))
	r.Use(middleware.Logging(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Instrument)
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	rest := r.PathPrefix("/rest").Subrouter()

	// Player routes
	rest.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	rest.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	rest.HandleFunc("/players/count", playerHandler.Count).Methods(http.MethodGet)
	rest.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	rest.HandleFunc("/players/{id}", playerHandler.Update).Methods(http.MethodPost, http.MethodPatch)
	rest.HandleFunc("/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)

	// Health check endpoint
	storageType := cfg.StorageType
	rest.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Storage: storageType})
	}).Methods(http.MethodGet)

	return r
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}

func methodNotAllowedHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewMethodNotAllowedError())
}

// writePanic answers a recovered panic with the JSON internal error
func writePanic(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
